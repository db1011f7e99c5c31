package respond

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pressroom/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"id":7}`, strings.TrimSpace(w.Body.String()))
}

func TestJSON_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBytes(t *testing.T) {
	w := httptest.NewRecorder()
	Bytes(w, http.StatusOK, []byte(`{"a":1}`))

	assert.Equal(t, `{"a":1}`, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		err      error
		wantBody string
	}{
		{name: "validation message passes", code: http.StatusBadRequest, err: errors.New("invalid id"), wantBody: `{"error":"invalid id"}`},
		{name: "not found passes", code: http.StatusNotFound, err: entity.ErrNotFound, wantBody: `{"error":"entity not found"}`},
		{name: "internal detail hidden", code: http.StatusBadRequest, err: errors.New("pq: relation does not exist"), wantBody: `{"error":"internal server error"}`},
		{name: "5xx always hidden", code: http.StatusInternalServerError, err: errors.New("invalid dsn"), wantBody: `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SafeError(w, tt.code, tt.err)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(w.Body.String()))
		})
	}
}

func TestSafeError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusBadRequest, nil)
	assert.Empty(t, w.Body.String())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusFor(nil))
	assert.Equal(t, http.StatusNotFound, StatusFor(fmt.Errorf("get: %w", entity.ErrNotFound)))
	assert.Equal(t, http.StatusBadRequest, StatusFor(entity.ErrInvalidEntityType))
	assert.Equal(t, http.StatusBadRequest, StatusFor(&entity.ValidationError{Field: "title", Message: "is required"}))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "dial postgres://app:s3cret@db:5432/press failed", want: "dial postgres://app:****@db:5432/press failed"},
		{in: "connect host=db user=app password=s3cret dbname=press", want: "connect host=db user=app password=**** dbname=press"},
		{in: "plain failure", want: "plain failure"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeError(errors.New(tt.in)))
	}
	assert.Empty(t, SanitizeError(nil))
}
