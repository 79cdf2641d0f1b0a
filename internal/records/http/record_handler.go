package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/modelgate/internal/httputil"
	recordsDomain "github.com/allisson/modelgate/internal/records/domain"
	"github.com/allisson/modelgate/internal/records/http/dto"
	recordsUseCase "github.com/allisson/modelgate/internal/records/usecase"
)

// IDParam is the path parameter holding the record ID.
const IDParam = "id"

var errInvalidID = errors.New("invalid record ID format: must be a valid UUID")

// RecordHandler maps the HTTP verbs onto the record store attached by
// ResourceMiddleware. It is shared by every resource.
type RecordHandler struct {
	logger *slog.Logger
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler(logger *slog.Logger) *RecordHandler {
	return &RecordHandler{logger: logger}
}

// ListHandler returns every record of the resource.
// GET /:resource - Requires ReadCapability.
// Returns 200 OK with a JSON array.
func (h *RecordHandler) ListHandler(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	records, err := store.FindAll(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordsToResponse(records))
}

// GetHandler returns one record.
// GET /:resource/:id - Requires ReadCapability.
// Returns 200 OK, or 404 when the record does not exist.
func (h *RecordHandler) GetHandler(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	record, err := store.FindOne(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// CreateHandler validates the body against the resource schema and stores it.
// POST /:resource - Requires CreateCapability.
// Returns 201 Created with the stored record.
func (h *RecordHandler) CreateHandler(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	fields, ok := h.bindFields(c)
	if !ok {
		return
	}

	record, err := store.Create(c.Request.Context(), fields)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecordToResponse(record))
}

// UpdateHandler merges the body into the stored record.
// PUT /:resource/:id - Requires UpdateCapability.
// Returns 200 OK with the updated record.
func (h *RecordHandler) UpdateHandler(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	fields, ok := h.bindFields(c)
	if !ok {
		return
	}

	record, err := store.Update(c.Request.Context(), id, fields)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// DeleteHandler removes a record.
// DELETE /:resource/:id - Requires DeleteCapability.
// Returns 202 Accepted with {"deleted": 1}.
func (h *RecordHandler) DeleteHandler(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	deleted, err := store.Destroy(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, dto.DeleteResponse{Deleted: deleted})
}

// store returns the record store attached by ResourceMiddleware.
func (h *RecordHandler) store(c *gin.Context) (recordsUseCase.RecordStore, bool) {
	store, ok := GetStore(c.Request.Context())
	if !ok {
		h.logger.Error("record handler: no record store in context")
		httputil.HandleErrorGin(c, recordsDomain.ErrUnknownResource, h.logger)
		return nil, false
	}
	return store, true
}

func (h *RecordHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(IDParam))
	if err != nil {
		httputil.HandleBadRequestGin(c, errInvalidID, h.logger)
		return uuid.Nil, false
	}
	return id, true
}

func (h *RecordHandler) bindFields(c *gin.Context) (recordsDomain.Fields, bool) {
	var fields recordsDomain.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}
	return fields, true
}
