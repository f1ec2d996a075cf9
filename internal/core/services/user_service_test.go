package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/skillbridge/skillbridge_backend/internal/apperrors"
	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/core/services"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
	"github.com/skillbridge/skillbridge_backend/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	FindUserByGoogleIDFn func(ctx context.Context, googleID string) (*domain.User, error)
	SaveUserFn           func(ctx context.Context, user domain.User) error
	UpdateUserFn         func(ctx context.Context, user domain.User) error
	LinkGoogleAccountFn  func(ctx context.Context, userID, googleID string, emailVerified bool) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	if m.FindUserByGoogleIDFn != nil {
		return m.FindUserByGoogleIDFn(ctx, googleID)
	}
	args := m.Called(ctx, googleID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) LinkGoogleAccount(ctx context.Context, userID, googleID string, emailVerified bool) error {
	if m.LinkGoogleAccountFn != nil {
		return m.LinkGoogleAccountFn(ctx, userID, googleID, emailVerified)
	}
	args := m.Called(ctx, userID, googleID, emailVerified)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	cfg          *config.Config
	mockUserRepo *MockUserRepository
	mockMailer   *MockMailer
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		EmailVerificationExpiry: 24 * time.Hour,
	}
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockMailer = new(MockMailer)
	suite.service = services.NewUserService(suite.cfg, suite.mockUserRepo, suite.mockMailer)
}

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		Name:          "Alice",
		Email:         "Alice@Example.com",
		Password:      "Passw0rd",
		Role:          "mentor",
		AgreedToTerms: true,
	}

	var saved domain.User
	suite.mockUserRepo.SaveUserFn = func(ctx context.Context, user domain.User) error {
		saved = user
		return nil
	}
	var sentRaw string
	suite.mockMailer.SendVerificationEmailFn = func(to, name, rawToken string) error {
		sentRaw = rawToken
		return nil
	}

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal("alice@example.com", user.Email)
	suite.Equal(domain.RoleMentor, user.Role)
	suite.True(utils.CheckPasswordHash("Passw0rd", user.PasswordHash))
	suite.False(user.IsEmailVerified)
	suite.True(user.IsActive)

	// The emailed raw token hashes to the stored digest
	suite.NotEmpty(sentRaw)
	suite.Equal(utils.HashToken(sentRaw), saved.EmailVerificationTokenHash)
	suite.Require().NotNil(saved.EmailVerificationExpiresAt)
	suite.WithinDuration(time.Now().Add(24*time.Hour), *saved.EmailVerificationExpiresAt, time.Minute)
}

func (suite *UserServiceTestSuite) TestRegisterUser_DefaultsToLearner() {
	suite.mockUserRepo.SaveUserFn = func(ctx context.Context, user domain.User) error { return nil }

	user, err := suite.service.RegisterUser(context.Background(), dto.RegisterUserRequest{
		Name:          "Bob",
		Email:         "bob@example.com",
		Password:      "Passw0rd",
		AgreedToTerms: true,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.RoleLearner, user.Role)
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	suite.mockUserRepo.SaveUserFn = func(ctx context.Context, user domain.User) error {
		return apperrors.ErrDuplicate
	}

	user, err := suite.service.RegisterUser(context.Background(), dto.RegisterUserRequest{
		Name:          "Alice",
		Email:         "alice@example.com",
		Password:      "Passw0rd",
		AgreedToTerms: true,
	})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestRegisterUser_EmailFailureIsSwallowed() {
	suite.mockUserRepo.SaveUserFn = func(ctx context.Context, user domain.User) error { return nil }
	suite.mockMailer.SendVerificationEmailFn = func(to, name, rawToken string) error {
		return assert.AnError
	}

	user, err := suite.service.RegisterUser(context.Background(), dto.RegisterUserRequest{
		Name:          "Alice",
		Email:         "alice@example.com",
		Password:      "Passw0rd",
		AgreedToTerms: true,
	})

	// Account creation survives the delivery failure
	suite.Require().NoError(err)
	suite.NotNil(user)
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_ExistingGoogleAccount() {
	existing := &domain.User{UserID: "u-1", Email: "alice@example.com"}
	suite.mockUserRepo.FindUserByGoogleIDFn = func(ctx context.Context, googleID string) (*domain.User, error) {
		return existing, nil
	}

	user, err := suite.service.CreateOAuthUser(context.Background(), "Alice", "alice@example.com", "sub-123", true)

	suite.Require().NoError(err)
	suite.Equal(existing, user)
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_LinksExistingLocalAccount() {
	existing := &domain.User{UserID: "u-1", Email: "alice@example.com"}
	suite.mockUserRepo.FindUserByGoogleIDFn = func(ctx context.Context, googleID string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}
	suite.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return existing, nil
	}
	linked := false
	suite.mockUserRepo.LinkGoogleAccountFn = func(ctx context.Context, userID, googleID string, emailVerified bool) error {
		linked = userID == "u-1" && googleID == "sub-123" && emailVerified
		return nil
	}

	user, err := suite.service.CreateOAuthUser(context.Background(), "Alice", "Alice@Example.com", "sub-123", true)

	suite.Require().NoError(err)
	suite.True(linked)
	suite.Equal("sub-123", user.GoogleID)
	suite.True(user.IsEmailVerified)
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_CreatesNewLearner() {
	suite.mockUserRepo.FindUserByGoogleIDFn = func(ctx context.Context, googleID string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}
	suite.mockUserRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}
	var saved domain.User
	suite.mockUserRepo.SaveUserFn = func(ctx context.Context, user domain.User) error {
		saved = user
		return nil
	}

	user, err := suite.service.CreateOAuthUser(context.Background(), "Alice", "alice@example.com", "sub-123", true)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleLearner, user.Role)
	suite.Equal("sub-123", saved.GoogleID)
	suite.True(saved.IsEmailVerified)
	suite.Empty(saved.PasswordHash)
}

func (suite *UserServiceTestSuite) TestUpdateUser_TrimsName() {
	existing := &domain.User{UserID: "u-1", Name: "Old Name"}
	suite.mockUserRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		cp := *existing
		return &cp, nil
	}
	var updated domain.User
	suite.mockUserRepo.UpdateUserFn = func(ctx context.Context, user domain.User) error {
		updated = user
		return nil
	}

	newName := "  New Name  "
	user, err := suite.service.UpdateUser(context.Background(), "u-1", dto.UpdateUserRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal("New Name", user.Name)
	suite.Equal("New Name", updated.Name)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
