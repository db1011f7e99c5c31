package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_DefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte("hello"))

	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, 5, w.BytesWritten())
}

func TestWriteHeader_FirstWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{}"))
	_, _ = w.Write([]byte("\n"))

	assert.Equal(t, http.StatusNotFound, w.StatusCode())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 3, w.BytesWritten())
	assert.Same(t, http.ResponseWriter(rec), w.Unwrap())
}
