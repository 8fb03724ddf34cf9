package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mentorconnect/mentorconnect-api/internal/middleware"
	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/pkg/jwt"
)

type mockProfileService struct {
	mock.Mock
}

func (m *mockProfileService) CreateProfile(ctx context.Context, req *models.CreateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileService) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileService) SelectRole(ctx context.Context, session *models.Session, req *models.SelectRoleRequest) (*models.Profile, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, session *models.Session, req *models.SelectRoleRequest) (*models.Profile, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileService) UploadAvatar(ctx context.Context, session *models.Session, req *models.UploadAvatarRequest) (string, error) {
	args := m.Called(ctx, session, req)
	return args.String(0), args.Error(1)
}

func TestProfileHandler_SelectRoleReissuesSession(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "mentorconnect", 1)

	service := new(mockProfileService)
	service.On("SelectRole", mock.Anything, mock.Anything, mock.Anything).Return(&models.Profile{
		ID:    "profile-1",
		Email: "ada@example.com",
		Name:  "Ada Lovelace",
		Role:  models.RoleAlumni,
	}, nil)

	handler := NewProfileHandler(service, tm, "", false)
	router := gin.New()
	router.Use(middleware.SessionMiddleware(tm, "", false))
	router.POST("/profiles/me/role", handler.SelectRole)

	// The cookie still carries the pre-selection unset role
	staleToken, err := tm.GenerateToken("profile-1", "ada@example.com", "Ada Lovelace", string(models.RoleUnset))
	require.NoError(t, err)

	body := `{"role":"alumni","alumniProfile":{"jobTitle":"Staff Engineer","company":"Initech","industry":"Software"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/profiles/me/role", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: staleToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// A fresh cookie with the selected role must come back so role-gated
	// endpoints work without waiting out the old token's TTL
	var reissued *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			reissued = cookie
		}
	}
	require.NotNil(t, reissued, "role selection must reissue the session cookie")

	claims, err := tm.ValidateToken(reissued.Value)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleAlumni), claims.Role)
	assert.Equal(t, "profile-1", claims.ProfileID)
}
