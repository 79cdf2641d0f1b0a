package domain

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/modelgate/internal/validation"
)

// FieldType is the JSON type a field value must have.
type FieldType string

const (
	StringField  FieldType = "string"
	NumberField  FieldType = "number"
	BooleanField FieldType = "boolean"
)

// Field describes one named field of a resource.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	// Enum restricts string fields to a fixed set of values when non-empty.
	Enum []string
}

// Resource is a named record type with its field schema.
type Resource struct {
	Name   string
	Fields []Field
}

// reservedFieldNames are written by the server and cannot be part of a schema.
var reservedFieldNames = []string{"id", "created_at", "updated_at"}

// check reports schema mistakes that would make records unrepresentable.
func (r *Resource) check() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("resource name cannot be blank")
	}
	seen := make(map[string]struct{}, len(r.Fields))
	for _, field := range r.Fields {
		for _, reserved := range reservedFieldNames {
			if field.Name == reserved {
				return fmt.Errorf("resource %s: field name %q is reserved", r.Name, field.Name)
			}
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("resource %s: duplicate field %q", r.Name, field.Name)
		}
		seen[field.Name] = struct{}{}
		switch field.Type {
		case StringField, NumberField, BooleanField:
		default:
			return fmt.Errorf("resource %s: field %q has unsupported type %q", r.Name, field.Name, field.Type)
		}
	}
	return nil
}

// Validate checks a full field set as sent on create. Required fields must be present
// and no field outside the schema is accepted.
func (r *Resource) Validate(fields Fields) error {
	if fields == nil {
		fields = Fields{}
	}
	return validation.Validate(map[string]any(fields), validation.Map(r.keyRules(false)...))
}

// ValidatePatch checks a partial field set as sent on update. Only the supplied fields
// are validated; unknown fields are still rejected.
func (r *Resource) ValidatePatch(fields Fields) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	return validation.Validate(map[string]any(fields), validation.Map(r.keyRules(true)...))
}

func (r *Resource) keyRules(partial bool) []*validation.KeyRules {
	keys := make([]*validation.KeyRules, 0, len(r.Fields))
	for _, field := range r.Fields {
		key := validation.Key(field.Name, field.rules()...)
		if partial || !field.Required {
			key = key.Optional()
		}
		keys = append(keys, key)
	}
	return keys
}

func (f Field) rules() []validation.Rule {
	switch f.Type {
	case NumberField:
		return []validation.Rule{customValidation.IsNumber}
	case BooleanField:
		return []validation.Rule{customValidation.IsBoolean}
	default:
		rules := []validation.Rule{customValidation.IsString}
		if f.Required {
			rules = append(rules, validation.Required, customValidation.NotBlank)
		}
		if len(f.Enum) > 0 {
			values := make([]any, 0, len(f.Enum))
			for _, v := range f.Enum {
				values = append(values, v)
			}
			rules = append(rules, validation.In(values...).
				Error("must be one of "+strings.Join(f.Enum, ", ")))
		}
		return rules
	}
}
