package domain

import (
	"fmt"
	"sort"
)

// Food is the schema of the "food" resource.
var Food = &Resource{
	Name: "food",
	Fields: []Field{
		{Name: "name", Type: StringField, Required: true},
		{Name: "calories", Type: NumberField, Required: true},
		{Name: "type", Type: StringField, Required: true, Enum: []string{"fruit", "vegetable", "protein"}},
	},
}

// Clothes is the schema of the "clothes" resource.
var Clothes = &Resource{
	Name: "clothes",
	Fields: []Field{
		{Name: "name", Type: StringField, Required: true},
		{Name: "color", Type: StringField, Required: true},
		{Name: "size", Type: StringField, Required: true},
	},
}

// DefaultResources returns the resources served out of the box.
func DefaultResources() []*Resource {
	return []*Resource{Food, Clothes}
}

// Registry maps resource names to their schemas. It is built once at startup and
// only read afterwards.
type Registry struct {
	resources map[string]*Resource
}

// NewRegistry builds a registry from the given resources. Duplicate names and
// malformed schemas are rejected.
func NewRegistry(resources ...*Resource) (*Registry, error) {
	registry := &Registry{resources: make(map[string]*Resource, len(resources))}
	for _, resource := range resources {
		if err := resource.check(); err != nil {
			return nil, err
		}
		if _, exists := registry.resources[resource.Name]; exists {
			return nil, fmt.Errorf("resource %s registered twice", resource.Name)
		}
		registry.resources[resource.Name] = resource
	}
	return registry, nil
}

// Lookup returns the resource registered under name, or ErrUnknownResource.
func (r *Registry) Lookup(name string) (*Resource, error) {
	resource, ok := r.resources[name]
	if !ok {
		return nil, ErrUnknownResource
	}
	return resource, nil
}

// Names returns the registered resource names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.resources))
	for name := range r.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
