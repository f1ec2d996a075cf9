package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/skillbridge/skillbridge_backend/internal/apperrors"
	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
	"github.com/skillbridge/skillbridge_backend/internal/handlers"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
	"github.com/skillbridge/skillbridge_backend/internal/utils"
)

// --- Mock CredentialService ---
type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Login(ctx context.Context, params portssvc.LoginParams) (*portssvc.LoginResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.LoginResult), args.Error(1)
}

func (m *MockCredentialService) Refresh(ctx context.Context, rawRefreshToken string) (*portssvc.LoginResult, error) {
	args := m.Called(ctx, rawRefreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.LoginResult), args.Error(1)
}

func (m *MockCredentialService) Logout(ctx context.Context, rawRefreshToken string) error {
	args := m.Called(ctx, rawRefreshToken)
	return args.Error(0)
}

func (m *MockCredentialService) ResolveActor(ctx context.Context, kind domain.ActorKind, actorID string) (*domain.Actor, error) {
	args := m.Called(ctx, kind, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

func (m *MockCredentialService) VerifyEmail(ctx context.Context, rawToken string) (*portssvc.LoginResult, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.LoginResult), args.Error(1)
}

func (m *MockCredentialService) ResendVerification(ctx context.Context, kinds []domain.ActorKind, email string) error {
	args := m.Called(ctx, kinds, email)
	return args.Error(0)
}

func (m *MockCredentialService) ForgotPassword(ctx context.Context, kinds []domain.ActorKind, email string) error {
	args := m.Called(ctx, kinds, email)
	return args.Error(0)
}

func (m *MockCredentialService) ResetPassword(ctx context.Context, rawToken string, newPassword string) error {
	args := m.Called(ctx, rawToken, newPassword)
	return args.Error(0)
}

func (m *MockCredentialService) ChangePassword(ctx context.Context, kind domain.ActorKind, actorID string, currentPassword, newPassword string) (*portssvc.TokenPair, error) {
	args := m.Called(ctx, kind, actorID, currentPassword, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.TokenPair), args.Error(1)
}

func (m *MockCredentialService) Deactivate(ctx context.Context, kind domain.ActorKind, actorID string) error {
	args := m.Called(ctx, kind, actorID)
	return args.Error(0)
}

func (m *MockCredentialService) IssueSession(ctx context.Context, actor *domain.Actor) (*portssvc.TokenPair, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.TokenPair), args.Error(1)
}

var _ portssvc.CredentialSvcFacade = (*MockCredentialService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, actor *domain.Actor) (string, time.Time, error) {
	args := m.Called(ctx, actor)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, actor *domain.Actor) (string, time.Time, error) {
	args := m.Called(ctx, actor)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ParseAccessToken(tokenString string) (*utils.AccessClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.AccessClaims), args.Error(1)
}

func (m *MockTokenService) ParseRefreshToken(tokenString string) (*utils.RefreshClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.RefreshClaims), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateOAuthUser(ctx context.Context, name, email, googleID string, emailVerified bool) (*domain.User, error) {
	args := m.Called(ctx, name, email, googleID, emailVerified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock CompanyService ---
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.Company, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error) {
	args := m.Called(ctx, companyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

var _ portssvc.CompanySvcFacade = (*MockCompanyService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	cfg             *config.Config
	mockCredentials *MockCredentialService
	mockTokens      *MockTokenService
	mockUsers       *MockUserService
	mockCompanies   *MockCompanyService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.cfg = &config.Config{
		AccessTokenCookieName:  "accessToken",
		RefreshTokenCookieName: "refreshToken",
	}
	suite.mockCredentials = new(MockCredentialService)
	suite.mockTokens = new(MockTokenService)
	suite.mockUsers = new(MockUserService)
	suite.mockCompanies = new(MockCompanyService)

	container := &portssvc.ServiceContainer{
		User:         suite.mockUsers,
		Company:      suite.mockCompanies,
		Credential:   suite.mockCredentials,
		TokenService: suite.mockTokens,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, container)
}

func (suite *AuthHandlerTestSuite) performJSON(method, path string, body any, mutate func(*http.Request)) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func cookieValue(w *httptest.ResponseRecorder, name string) (string, bool) {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

func testLoginResult() *portssvc.LoginResult {
	return &portssvc.LoginResult{
		Actor: &domain.Actor{
			ID:    "u-1",
			Kind:  domain.ActorKindUser,
			Role:  domain.RoleLearner,
			Name:  "Alice",
			Email: "alice@example.com",
			Credentials: domain.Credentials{
				IsEmailVerified: true,
				IsActive:        true,
			},
		},
		Tokens: &portssvc.TokenPair{
			AccessToken:      "access-token",
			AccessExpiresAt:  time.Now().Add(15 * time.Minute),
			RefreshToken:     "refresh-token",
			RefreshExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		},
	}
}

// --- Registration ---

func (suite *AuthHandlerTestSuite) TestRegister_ValidationEnvelope() {
	w := suite.performJSON(http.MethodPost, "/api/v1/auth/learner/register", gin.H{
		"name":          "Alice",
		"email":         "not-an-email",
		"password":      "weak",
		"agreedToTerms": false,
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.NotEmpty(resp.Errors)

	params := make(map[string]bool)
	for _, fe := range resp.Errors {
		params[fe.Param] = true
	}
	suite.True(params["email"])
	suite.True(params["password"])
	suite.True(params["agreedToTerms"])
}

func (suite *AuthHandlerTestSuite) TestRegister_PinsRoleFromRoute() {
	suite.mockUsers.On("RegisterUser", mock.Anything, mock.MatchedBy(func(req dto.RegisterUserRequest) bool {
		return req.Role == string(domain.RoleMentor)
	})).Return(&domain.User{UserID: "u-1", Role: domain.RoleMentor}, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/mentor/register", gin.H{
		"name":          "Bob",
		"email":         "bob@example.com",
		"password":      "Passw0rd",
		"agreedToTerms": true,
	}, nil)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmail() {
	suite.mockUsers.On("RegisterUser", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":          "Alice",
		"email":         "alice@example.com",
		"password":      "Passw0rd",
		"agreedToTerms": true,
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUsers.AssertExpectations(suite.T())
}

// --- Login ---

func (suite *AuthHandlerTestSuite) TestLogin_SetsCookies() {
	suite.mockCredentials.On("Login", mock.Anything, mock.MatchedBy(func(p portssvc.LoginParams) bool {
		return len(p.Kinds) == 1 && p.Kinds[0] == domain.ActorKindUser &&
			p.Role == domain.RoleLearner && !p.RejectUnverified
	})).Return(testLoginResult(), nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/learner/login", gin.H{
		"email":    "alice@example.com",
		"password": "Passw0rd",
	}, nil)

	suite.Equal(http.StatusOK, w.Code)

	access, ok := cookieValue(w, "accessToken")
	suite.True(ok)
	suite.Equal("access-token", access)
	refresh, ok := cookieValue(w, "refreshToken")
	suite.True(ok)
	suite.Equal("refresh-token", refresh)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("u-1", resp.Actor.ID)
	suite.Equal("learner", resp.Actor.Role)

	suite.mockCredentials.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_ConsolidatedRejectsUnverified() {
	suite.mockCredentials.On("Login", mock.Anything, mock.MatchedBy(func(p portssvc.LoginParams) bool {
		return len(p.Kinds) == 2 && p.RejectUnverified
	})).Return(nil, apperrors.ErrEmailNotVerified).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "Passw0rd",
	}, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockCredentials.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_LockedAccount() {
	suite.mockCredentials.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.ErrAccountLocked).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/learner/login", gin.H{
		"email":    "bob@example.com",
		"password": "Passw0rd",
	}, nil)

	suite.Equal(http.StatusLocked, w.Code)

	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.NotEmpty(resp.Message)
}

// --- Refresh / logout ---

func (suite *AuthHandlerTestSuite) TestRefresh_MissingCookie() {
	w := suite.performJSON(http.MethodPost, "/api/v1/auth/refresh", nil, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)

	// Both auth cookies are expired on the client
	access, ok := cookieValue(w, "accessToken")
	suite.True(ok)
	suite.Empty(access)
}

func (suite *AuthHandlerTestSuite) TestRefresh_ReplayedToken() {
	suite.mockCredentials.On("Refresh", mock.Anything, "stale-token").Return(nil, apperrors.ErrRefreshTokenInvalid).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/refresh", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "stale-token"})
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCredentials.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRefresh_RotatesCookies() {
	result := testLoginResult()
	suite.mockCredentials.On("Refresh", mock.Anything, "old-refresh").Return(result, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/refresh", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "old-refresh"})
	})

	suite.Equal(http.StatusOK, w.Code)
	refresh, ok := cookieValue(w, "refreshToken")
	suite.True(ok)
	suite.Equal("refresh-token", refresh)
}

func (suite *AuthHandlerTestSuite) TestLogout_AlwaysClearsCookies() {
	suite.mockCredentials.On("Logout", mock.Anything, "some-refresh").Return(nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/auth/logout", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "some-refresh"})
	})

	suite.Equal(http.StatusOK, w.Code)
	refresh, ok := cookieValue(w, "refreshToken")
	suite.True(ok)
	suite.Empty(refresh)
}

// --- Authenticated routes ---

func (suite *AuthHandlerTestSuite) expectAuthenticated(actor *domain.Actor) {
	suite.mockTokens.On("ParseAccessToken", "valid-access").Return(&utils.AccessClaims{
		Kind:             string(actor.Kind),
		Email:            actor.Email,
		Role:             string(actor.Role),
		EmailVerified:    actor.IsEmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{Subject: actor.ID},
	}, nil)
	suite.mockCredentials.On("ResolveActor", mock.Anything, actor.Kind, actor.ID).Return(actor, nil)
}

func (suite *AuthHandlerTestSuite) TestMe_WithBearerToken() {
	actor := testLoginResult().Actor
	suite.expectAuthenticated(actor)

	w := suite.performJSON(http.MethodGet, "/api/v1/auth/me", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer valid-access")
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("u-1", resp.Actor.ID)
	suite.Equal("alice@example.com", resp.Actor.Email)
}

func (suite *AuthHandlerTestSuite) TestMe_WithAccessCookie() {
	actor := testLoginResult().Actor
	suite.expectAuthenticated(actor)

	w := suite.performJSON(http.MethodGet, "/api/v1/auth/me", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "valid-access"})
	})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AuthHandlerTestSuite) TestMe_WithoutToken() {
	w := suite.performJSON(http.MethodGet, "/api/v1/auth/me", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestMe_InvalidToken() {
	suite.mockTokens.On("ParseAccessToken", "bad-token").Return(nil, jwt.ErrTokenSignatureInvalid)

	w := suite.performJSON(http.MethodGet, "/api/v1/auth/me", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer bad-token")
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	// Invalid session clears the auth cookies
	access, ok := cookieValue(w, "accessToken")
	suite.True(ok)
	suite.Empty(access)
}

// --- Company approval gate ---

func unapprovedCompany() *domain.Actor {
	return &domain.Actor{
		ID:    "c-1",
		Kind:  domain.ActorKindCompany,
		Role:  domain.RoleCompany,
		Name:  "Acme",
		Email: "acme@example.com",
		Credentials: domain.Credentials{
			IsEmailVerified: true,
			IsActive:        true,
		},
	}
}

func (suite *AuthHandlerTestSuite) TestUnapprovedCompany_BlockedFromGatedRoutes() {
	suite.expectAuthenticated(unapprovedCompany())

	w := suite.performJSON(http.MethodGet, "/api/v1/auth/company/me", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer valid-access")
	})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthHandlerTestSuite) TestUnapprovedCompany_CanReadApprovalStatus() {
	suite.expectAuthenticated(unapprovedCompany())
	suite.mockCompanies.On("GetCompanyByID", mock.Anything, "c-1").Return(&domain.Company{
		CompanyID:   "c-1",
		CompanyName: "Acme",
		IsApproved:  false,
	}, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/auth/company/approval-status", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer valid-access")
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ApprovalStatusResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.False(resp.IsApproved)
}

func (suite *AuthHandlerTestSuite) TestRoleFamilyGate() {
	// A learner cannot use the mentor family's session routes
	suite.expectAuthenticated(testLoginResult().Actor)

	w := suite.performJSON(http.MethodGet, "/api/v1/auth/mentor/me", nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer valid-access")
	})

	suite.Equal(http.StatusForbidden, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
