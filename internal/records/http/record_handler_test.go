package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/modelgate/internal/errors"
	recordsDomain "github.com/allisson/modelgate/internal/records/domain"
	"github.com/allisson/modelgate/internal/records/usecase/mocks"
)

// setupTestHandler wires the handler behind a middleware that attaches the mock store.
func setupTestHandler(t *testing.T) (*gin.Engine, *mocks.MockRecordStore) {
	t.Helper()

	store := &mocks.MockRecordStore{}
	handler := NewRecordHandler(createTestLogger())

	attach := func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithStore(c.Request.Context(), store))
		c.Next()
	}

	router := gin.New()
	router.GET("/:resource", attach, handler.ListHandler)
	router.POST("/:resource", attach, handler.CreateHandler)
	router.GET("/:resource/:id", attach, handler.GetHandler)
	router.PUT("/:resource/:id", attach, handler.UpdateHandler)
	router.DELETE("/:resource/:id", attach, handler.DeleteHandler)

	return router, store
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newFoodRecord() *recordsDomain.Record {
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	return &recordsDomain.Record{
		ID:        uuid.Must(uuid.NewV7()),
		Resource:  "food",
		Fields:    recordsDomain.Fields{"name": "apple", "calories": float64(52), "type": "fruit"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRecordHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, store := setupTestHandler(t)
		first, second := newFoodRecord(), newFoodRecord()
		store.On("FindAll", mock.Anything).Return([]*recordsDomain.Record{first, second}, nil).Once()

		w := doRequest(router, http.MethodGet, "/food", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var body []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, first.ID.String(), body[0]["id"])
		assert.Equal(t, "apple", body[0]["name"])
		assert.Equal(t, "2026-02-03T04:05:06Z", body[0]["created_at"])
	})

	t.Run("Empty", func(t *testing.T) {
		router, store := setupTestHandler(t)
		store.On("FindAll", mock.Anything).Return([]*recordsDomain.Record{}, nil).Once()

		w := doRequest(router, http.MethodGet, "/food", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("StoreError", func(t *testing.T) {
		router, store := setupTestHandler(t)
		store.On("FindAll", mock.Anything).Return(nil, errors.New("db down")).Once()

		w := doRequest(router, http.MethodGet, "/food", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRecordHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, store := setupTestHandler(t)
		record := newFoodRecord()
		store.On("FindOne", mock.Anything, record.ID).Return(record, nil).Once()

		w := doRequest(router, http.MethodGet, "/food/"+record.ID.String(), "")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeObject(t, w)
		assert.Equal(t, record.ID.String(), body["id"])
		assert.Equal(t, float64(52), body["calories"])
	})

	t.Run("NotFound", func(t *testing.T) {
		router, store := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())
		store.On("FindOne", mock.Anything, id).Return(nil, recordsDomain.ErrRecordNotFound).Once()

		w := doRequest(router, http.MethodGet, "/food/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", decodeObject(t, w)["error"])
	})

	t.Run("MalformedID", func(t *testing.T) {
		router, store := setupTestHandler(t)

		w := doRequest(router, http.MethodGet, "/food/42", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeObject(t, w)["error"])
		store.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
	})
}

func TestRecordHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, store := setupTestHandler(t)
		record := newFoodRecord()
		store.On("Create", mock.Anything, recordsDomain.Fields{
			"name": "apple", "calories": float64(52), "type": "fruit",
		}).Return(record, nil).Once()

		w := doRequest(router, http.MethodPost, "/food", `{"name":"apple","calories":52,"type":"fruit"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeObject(t, w)
		assert.Equal(t, record.ID.String(), body["id"])
		assert.Contains(t, body, "updated_at")
		store.AssertExpectations(t)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		router, store := setupTestHandler(t)

		w := doRequest(router, http.MethodPost, "/food", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("NotAnObject", func(t *testing.T) {
		router, _ := setupTestHandler(t)

		w := doRequest(router, http.MethodPost, "/food", `["apple"]`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ValidationError", func(t *testing.T) {
		router, store := setupTestHandler(t)
		store.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "calories: required key is missing")).Once()

		w := doRequest(router, http.MethodPost, "/food", `{"name":"apple"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeObject(t, w)
		assert.Equal(t, "invalid_input", body["error"])
		assert.Contains(t, body["message"], "calories")
	})
}

func TestRecordHandler_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, store := setupTestHandler(t)
		record := newFoodRecord()
		record.Fields["calories"] = float64(95)
		store.On("Update", mock.Anything, record.ID, recordsDomain.Fields{"calories": float64(95)}).
			Return(record, nil).Once()

		w := doRequest(router, http.MethodPut, "/food/"+record.ID.String(), `{"calories":95}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(95), decodeObject(t, w)["calories"])
	})

	t.Run("NotFound", func(t *testing.T) {
		router, store := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())
		store.On("Update", mock.Anything, id, mock.Anything).Return(nil, recordsDomain.ErrRecordNotFound).Once()

		w := doRequest(router, http.MethodPut, "/food/"+id.String(), `{"calories":95}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MalformedID", func(t *testing.T) {
		router, store := setupTestHandler(t)

		w := doRequest(router, http.MethodPut, "/food/not-a-uuid", `{"calories":95}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecordHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, store := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())
		store.On("Destroy", mock.Anything, id).Return(int64(1), nil).Once()

		w := doRequest(router, http.MethodDelete, "/food/"+id.String(), "")

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.JSONEq(t, `{"deleted":1}`, w.Body.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		router, store := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())
		store.On("Destroy", mock.Anything, id).Return(int64(0), recordsDomain.ErrRecordNotFound).Once()

		w := doRequest(router, http.MethodDelete, "/food/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRecordHandler_NoStore(t *testing.T) {
	handler := NewRecordHandler(createTestLogger())
	router := gin.New()
	router.GET("/:resource", handler.ListHandler)

	w := doRequest(router, http.MethodGet, "/food", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "invalid_model", decodeObject(t, w)["error"])
}
