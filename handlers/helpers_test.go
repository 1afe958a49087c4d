package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riftbook/stats-system/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONRejectsEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	rec := httptest.NewRecorder()

	var dst struct{}
	err := readJSON(rec, req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be empty")
}

func TestReadJSONRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	rec := httptest.NewRecorder()

	var dst struct{}
	err := readJSON(rec, req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "badly-formed JSON")
}

func TestReadJSONRejectsWrongFieldType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"duration": "thirty"}`))
	rec := httptest.NewRecorder()

	var dst struct {
		Duration int `json:"duration"`
	}
	err := readJSON(rec, req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `incorrect JSON type for field "duration"`)
}

func TestReadJSONRejectsMultipleValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}{}`))
	rec := httptest.NewRecorder()

	var dst struct{}
	err := readJSON(rec, req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single JSON value")
}

func TestReadJSONToleratesUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "T1", "extra": true}`))
	rec := httptest.NewRecorder()

	var dst struct {
		Name string `json:"name"`
	}
	require.NoError(t, readJSON(rec, req, &dst))
	assert.Equal(t, "T1", dst.Name)
}

func TestWriteJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, writeJSON(rec, http.StatusCreated, jsonResponse{"ok": true}, nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"player not found", services.ErrPlayerNotFound, http.StatusNotFound},
		{"team not found", services.ErrTeamNotFound, http.StatusNotFound},
		{"game not found", services.ErrGameNotFound, http.StatusNotFound},
		{"user exists", services.ErrUserExists, http.StatusBadRequest},
		{"player id taken", services.ErrPlayerIDTaken, http.StatusBadRequest},
		{"already rostered", services.ErrPlayerAlreadyRostered, http.StatusBadRequest},
		{"bad credentials", services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{"foreign game", services.ErrGameAccessForbidden, http.StatusForbidden},
		{"no logo storage", services.ErrLogoStorageUnavailable, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, req, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestMapServiceErrorToHTTPWrappedError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	wrapped := errors.Join(errors.New("lookup failed"), services.ErrTeamNotFound)
	mapServiceErrorToHTTP(rec, req, wrapped)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequireUserWithoutIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	_, ok := requireUser(rec, req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
