package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	portsrepo "github.com/skillbridge/skillbridge_backend/internal/core/ports/repositories"
	portssvc "github.com/skillbridge/skillbridge_backend/internal/core/ports/services"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
	"github.com/skillbridge/skillbridge_backend/internal/platform/config"
	"github.com/skillbridge/skillbridge_backend/internal/utils"
)

type userService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
	mailer   portssvc.MailerSvcFacade
}

// NewUserService creates a new instance of userService.
func NewUserService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, mailer portssvc.MailerSvcFacade) portssvc.UserSvcFacade {
	return &userService{cfg: cfg, userRepo: userRepo, mailer: mailer}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a new learner or mentor account.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	if role == "" {
		role = domain.RoleLearner
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rawToken, digest, err := utils.GenerateOneTimeToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	verificationExpiry := time.Now().Add(s.cfg.EmailVerificationExpiry)

	now := time.Now()
	user := domain.User{
		UserID: uuid.NewString(),
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.TrimSpace(strings.ToLower(req.Email)),
		Role:   role,
		Credentials: domain.Credentials{
			PasswordHash:               passwordHash,
			EmailVerificationTokenHash: digest,
			EmailVerificationExpiresAt: &verificationExpiry,
			IsActive:                   true,
		},
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	// Delivery failure does not undo the registration; the actor can ask for
	// a resend.
	if err := s.mailer.SendVerificationEmail(user.Email, user.Name, rawToken); err != nil {
		s.LogError(ctx, err, "Failed to send verification email after registration", slog.String("user_id", user.UserID))
	}

	return &user, nil
}

// CreateOAuthUser creates or links a user from a validated Google identity.
func (s *userService) CreateOAuthUser(ctx context.Context, name, email, googleID string, emailVerified bool) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if user, err := s.userRepo.FindUserByGoogleID(ctx, googleID); err == nil {
		return user, nil
	}

	// Link by email when a local account already exists.
	if user, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		if err := s.userRepo.LinkGoogleAccount(ctx, user.UserID, googleID, emailVerified); err != nil {
			return nil, err
		}
		user.GoogleID = googleID
		if emailVerified {
			user.IsEmailVerified = true
			user.EmailVerificationTokenHash = ""
			user.EmailVerificationExpiresAt = nil
		}
		s.LogInfo(ctx, "Linked Google account to existing user", slog.String("user_id", user.UserID))
		return user, nil
	}

	now := time.Now()
	user := domain.User{
		UserID: uuid.NewString(),
		Name:   strings.TrimSpace(name),
		Email:  email,
		Role:   domain.RoleLearner,
		Credentials: domain.Credentials{
			GoogleID:        googleID,
			IsEmailVerified: emailVerified,
			IsActive:        true,
		},
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Created user via Google OAuth", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// UpdateUser updates profile fields.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}
