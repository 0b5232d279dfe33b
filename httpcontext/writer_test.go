package httpcontext_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kildevaeld/polka/httpcontext"
	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_TracksStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := httpcontext.NewResponseWriter(rec)

	assert.False(t, w.Written())
	assert.Equal(t, http.StatusOK, w.Status())
	assert.Equal(t, 0, w.Size())

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("hello"))
	w.Write([]byte(" world"))

	assert.True(t, w.Written())
	assert.Equal(t, http.StatusCreated, w.Status())
	assert.Equal(t, 11, w.Size())
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "hello world", rec.Body.String())
}

func TestResponseWriter_ImplicitStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := httpcontext.NewResponseWriter(rec)

	w.Write([]byte("hi"))

	assert.True(t, w.Written())
	assert.Equal(t, http.StatusOK, w.Status())
}

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := httpcontext.NewResponseWriter(rec)

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusNotFound, w.Status())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponseWriter_OnWriteHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	w := httpcontext.NewResponseWriter(rec)

	var statuses []int
	w.OnWriteHeader(func(status int) {
		statuses = append(statuses, status)
	})

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("x"))

	assert.Equal(t, []int{http.StatusAccepted}, statuses)
}
