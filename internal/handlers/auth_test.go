package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motorlog/motorlog/internal/auth"
	"github.com/motorlog/motorlog/internal/models"
)

// MockUserCollection is a mock implementation of UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func loginRequest(t *testing.T, handler *AuthHandler, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)
	return rec
}

func TestLogin_Success(t *testing.T) {
	authService, _ := auth.NewService()
	users := new(MockUserCollection)
	handler := NewAuthHandler(authService, users)

	hash, _ := authService.HashPassword("correctpassword")
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Username:     "garageowner",
		PasswordHash: hash,
		Role:         models.RoleOwner,
		IsActive:     true,
	}
	users.On("FindUserByUsername", mock.Anything, "garageowner").Return(user, nil)
	users.On("UpdateLastLogin", mock.Anything, user.ID.Hex()).Return(nil)

	rec := loginRequest(t, handler, models.LoginRequest{Username: "garageowner", Password: "correctpassword"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "garageowner", resp.User.Username)
	users.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	authService, _ := auth.NewService()
	users := new(MockUserCollection)
	handler := NewAuthHandler(authService, users)

	hash, _ := authService.HashPassword("correctpassword")
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Username:     "garageowner",
		PasswordHash: hash,
		IsActive:     true,
	}
	users.On("FindUserByUsername", mock.Anything, "garageowner").Return(user, nil)

	rec := loginRequest(t, handler, models.LoginRequest{Username: "garageowner", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_InactiveUser(t *testing.T) {
	authService, _ := auth.NewService()
	users := new(MockUserCollection)
	handler := NewAuthHandler(authService, users)

	user := &models.User{ID: primitive.NewObjectID(), Username: "gone", IsActive: false}
	users.On("FindUserByUsername", mock.Anything, "gone").Return(user, nil)

	rec := loginRequest(t, handler, models.LoginRequest{Username: "gone", Password: "whatever"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	authService, _ := auth.NewService()
	handler := NewAuthHandler(authService, new(MockUserCollection))

	rec := loginRequest(t, handler, models.LoginRequest{Username: "", Password: ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_Success(t *testing.T) {
	authService, _ := auth.NewService()
	users := new(MockUserCollection)
	handler := NewAuthHandler(authService, users)

	users.On("FindUserByUsername", mock.Anything, "newmechanic").Return(nil, assert.AnError)
	users.On("FindUserByEmail", mock.Anything, "mech@example.com").Return(nil, assert.AnError)
	users.On("InsertUser", mock.Anything, mock.AnythingOfType("models.User")).Return(nil)

	body, _ := json.Marshal(models.RegisterRequest{
		Username: "newmechanic",
		Email:    "mech@example.com",
		Password: "longenoughpassword",
		Role:     models.RoleMechanic,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	users.AssertExpectations(t)
}

func TestRegister_InvalidRole(t *testing.T) {
	authService, _ := auth.NewService()
	handler := NewAuthHandler(authService, new(MockUserCollection))

	body, _ := json.Marshal(models.RegisterRequest{
		Username: "newuser",
		Email:    "user@example.com",
		Password: "longenoughpassword",
		Role:     "superadmin",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_ShortPassword(t *testing.T) {
	authService, _ := auth.NewService()
	handler := NewAuthHandler(authService, new(MockUserCollection))

	body, _ := json.Marshal(models.RegisterRequest{
		Username: "newuser",
		Email:    "user@example.com",
		Password: "short",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
