package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	args := m.Called(ctx, username, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupEndpoint_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	user := &models.User{Username: "testuser", Email: "test@example.com"}
	mockAuthService.On("Signup", mock.Anything, "testuser", "test@example.com").Return(user, nil)

	w := postJSON(router, "/signup", dto.SignupRequest{
		Username: "testuser",
		Email:    "test@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.SignupResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "testuser", response.Username)
	assert.Equal(t, "test@example.com", response.Email)
	mockAuthService.AssertExpectations(t)
}

func TestSignupEndpoint_UsernameInUse(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	mockAuthService.On("Signup", mock.Anything, "testuser", "test@example.com").
		Return(nil, service.ErrNameInUse)

	w := postJSON(router, "/signup", dto.SignupRequest{
		Username: "testuser",
		Email:    "test@example.com",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestSignupEndpoint_InvalidEmail(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	w := postJSON(router, "/signup", dto.SignupRequest{
		Username: "testuser",
		Email:    "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignupEndpoint_ReservedUsername(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.Signup)

	mockAuthService.On("Signup", mock.Anything, "me", "me@example.com").
		Return(nil, service.ErrInvalidUsername)

	w := postJSON(router, "/signup", dto.SignupRequest{
		Username: "me",
		Email:    "me@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestTokenEndpoint_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("IssueToken", mock.Anything, "testuser", "abcdef0123456789abcd").
		Return("signed.jwt.token", nil)

	w := postJSON(router, "/token", dto.TokenRequest{
		Username:         "testuser",
		ConfirmationCode: "abcdef0123456789abcd",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "signed.jwt.token", response.Token)
	mockAuthService.AssertExpectations(t)
}

func TestTokenEndpoint_UnknownUser(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("IssueToken", mock.Anything, "nonexistent", "abcdef0123456789abcd").
		Return("", service.ErrUserNotFound)

	w := postJSON(router, "/token", dto.TokenRequest{
		Username:         "nonexistent",
		ConfirmationCode: "abcdef0123456789abcd",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestTokenEndpoint_WrongCode(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("IssueToken", mock.Anything, "testuser", "00000000000000000000").
		Return("", service.ErrInvalidCode)

	w := postJSON(router, "/token", dto.TokenRequest{
		Username:         "testuser",
		ConfirmationCode: "00000000000000000000",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertExpectations(t)
}
