package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riftbook/stats-system/middleware"
	"github.com/riftbook/stats-system/models"
	"github.com/riftbook/stats-system/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	registered map[string]string // username -> password
}

func newFakeAuthService() *fakeAuthService {
	return &fakeAuthService{registered: make(map[string]string)}
}

func (f *fakeAuthService) Register(_ context.Context, input services.RegisterInput) (*models.User, error) {
	if _, ok := f.registered[input.Username]; ok {
		return nil, services.ErrUserExists
	}
	f.registered[input.Username] = input.Password
	return &models.User{ID: len(f.registered), Username: input.Username, Email: input.Email}, nil
}

func (f *fakeAuthService) Login(_ context.Context, input services.LoginInput) (*models.User, error) {
	password, ok := f.registered[input.Username]
	if !ok || password != input.Password {
		return nil, services.ErrAuthInvalidCredentials
	}
	return &models.User{ID: 1, Username: input.Username, Email: input.Username + "@t1.gg"}, nil
}

func TestRegisterHandlerIssuesVerifiableToken(t *testing.T) {
	handler := NewAuthHandler(newFakeAuthService(), testSecret)

	body := `{"username": "faker", "email": "faker@t1.gg", "password": "hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var response struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Registration successful", response.Message)
	assert.Equal(t, 1, response.User.ID)
	assert.Equal(t, "faker", response.User.Username)

	user, err := middleware.NewAuthenticator(testSecret).VerifyToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "faker", user.Username)
	assert.Equal(t, "faker@t1.gg", user.Email)
}

func TestRegisterHandlerRejectsMissingFields(t *testing.T) {
	handler := NewAuthHandler(newFakeAuthService(), testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"username": "faker"}`))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterHandlerDuplicateUser(t *testing.T) {
	svc := newFakeAuthService()
	handler := NewAuthHandler(svc, testSecret)

	body := `{"username": "faker", "email": "faker@t1.gg", "password": "hunter2"}`
	rec := httptest.NewRecorder()
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestLoginHandler(t *testing.T) {
	svc := newFakeAuthService()
	svc.registered["faker"] = "hunter2"
	handler := NewAuthHandler(svc, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username": "faker", "password": "hunter2"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Login successful")
	assert.Contains(t, rec.Body.String(), "token")

	var response struct {
		User struct {
			ID int `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 1, response.User.ID)
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	handler := NewAuthHandler(newFakeAuthService(), testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username": "faker", "password": "wrong"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestForgotPasswordHandlerAcknowledges(t *testing.T) {
	handler := NewAuthHandler(newFakeAuthService(), testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", strings.NewReader(`{"email": "faker@t1.gg"}`))
	rec := httptest.NewRecorder()
	handler.ForgotPassword(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password reset instructions sent")
}

func TestForgotPasswordHandlerRequiresEmail(t *testing.T) {
	handler := NewAuthHandler(newFakeAuthService(), testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ForgotPassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
