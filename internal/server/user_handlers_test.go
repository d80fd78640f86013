package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFollowRepository is a mock of the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, followerID, followeeID uint) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followeeID uint) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) ListFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockFollowRepository) ListFollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func newUserTestServer(userRepo *MockUserRepository, followRepo *MockFollowRepository) *Server {
	s := &Server{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
	s.userService = service.NewUserService(userRepo, followRepo)
	return s
}

func TestGetUserProfile(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockFollows := new(MockFollowRepository)
	s := newUserTestServer(mockUsers, mockFollows)

	app := fiber.New()
	app.Get("/users/:id", s.GetUserProfile)

	tests := []struct {
		name           string
		userIDParam    string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:        "Success",
			userIDParam: "1",
			mockSetup: func() {
				mockUsers.On("GetByID", mock.Anything, uint(1)).
					Return(&models.User{ID: 1, Username: "testuser"}, nil)
				mockFollows.On("ListFollowerIDs", mock.Anything, uint(1)).Return([]uint{2, 3}, nil)
				mockFollows.On("ListFollowingIDs", mock.Anything, uint(1)).Return([]uint{2}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid ID",
			userIDParam:    "abc",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Not Found",
			userIDParam: "99",
			mockSetup: func() {
				mockUsers.On("GetByID", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("User", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.userIDParam, nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var user models.User
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
				assert.Equal(t, "testuser", user.Username)
				assert.Equal(t, 2, user.FollowerCount)
			}
		})
	}
}

func TestSearchUsers(t *testing.T) {
	mockUsers := new(MockUserRepository)
	s := newUserTestServer(mockUsers, new(MockFollowRepository))

	app := fiber.New()
	app.Get("/users/search", s.SearchUsers)

	t.Run("Success", func(t *testing.T) {
		mockUsers.On("Search", mock.Anything, "go", 20, 0).
			Return([]models.User{{ID: 1, Username: "gopher"}}, nil)
		mockUsers.On("CountSearch", mock.Anything, "go").Return(int64(1), nil)

		req := httptest.NewRequest(http.MethodGet, "/users/search?q=go", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Users      []models.User     `json:"users"`
			Pagination models.Pagination `json:"pagination"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body.Users, 1)
		assert.Equal(t, "gopher", body.Users[0].Username)
	})

	t.Run("Missing Query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/search", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateMyProfile(t *testing.T) {
	t.Run("Updates Bio and Skills", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockFollows := new(MockFollowRepository)
		s := newUserTestServer(mockUsers, mockFollows)

		app := authedApp(s, 1)
		app.Put("/users/me", s.UpdateMyProfile)

		mockUsers.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "testuser"}, nil)
		mockUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Bio == "Building APIs" && len(u.Skills) == 2
		})).Return(nil)
		mockFollows.On("ListFollowerIDs", mock.Anything, uint(1)).Return([]uint{}, nil)
		mockFollows.On("ListFollowingIDs", mock.Anything, uint(1)).Return([]uint{}, nil)

		body, _ := json.Marshal(map[string]any{
			"bio":    "Building APIs",
			"skills": []string{"Go", "Postgres"},
		})
		req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Bio Too Long", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		s := newUserTestServer(mockUsers, new(MockFollowRepository))

		app := authedApp(s, 1)
		app.Put("/users/me", s.UpdateMyProfile)

		mockUsers.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "testuser"}, nil)

		long := bytes.Repeat([]byte("x"), 501)
		body, _ := json.Marshal(map[string]any{"bio": string(long)})
		req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
