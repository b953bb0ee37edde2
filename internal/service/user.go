package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/greatochuko/fobeworkLMS/internal/auth"
	"github.com/greatochuko/fobeworkLMS/internal/domain"
	"github.com/greatochuko/fobeworkLMS/internal/event"
	"github.com/greatochuko/fobeworkLMS/internal/repository"
	apperrors "github.com/greatochuko/fobeworkLMS/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// UserService implements the business logic for registration, login, and
// profile operations.
type UserService struct {
	userRepo repository.UserRepository
	sessions *auth.SessionManager
	producer *event.Producer
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	sessions *auth.SessionManager,
	producer *event.Producer,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		sessions: sessions,
		producer: producer,
		logger:   logger,
	}
}

// --- Input types ---

// RegisterInput holds the parameters for registering a new user.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput holds the parameters for user login.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput holds the parameters for updating a user's profile.
type UpdateProfileInput struct {
	FirstName      *string
	LastName       *string
	ProfilePicture *string
}

// --- Auth Operations ---

// Register creates a new user account, hashes the password, and returns the
// user together with a signed session token. Duplicate detection is left to
// the unique index on the email column, so racing registrations for the same
// address cannot both succeed.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if err := validateEmail(input.Email); err != nil {
		return nil, "", err
	}
	if input.FirstName == "" {
		return nil, "", apperrors.InvalidInput("first name is required")
	}
	if input.LastName == "" {
		return nil, "", apperrors.InvalidInput("last name is required")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        domain.NormalizeEmail(input.Email),
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, token, nil
}

// Login authenticates a user with email and password, returning the user and
// a signed session token. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	if input.Email == "" {
		return nil, "", apperrors.InvalidInput("email is required")
	}
	if input.Password == "" {
		return nil, "", apperrors.InvalidInput("password is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	// Publish login event (non-blocking on failure).
	if err := s.producer.PublishUserLoggedIn(ctx, user.ID, user.Email); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.logged_in event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, token, nil
}

// --- Profile Operations ---

// GetProfile retrieves a user by their ID.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return user, nil
}

// UpdateProfile updates a user's profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user for update: %w", err)
	}

	if input.FirstName != nil {
		if *input.FirstName == "" {
			return nil, apperrors.InvalidInput("first name must not be empty")
		}
		user.FirstName = *input.FirstName
	}

	if input.LastName != nil {
		if *input.LastName == "" {
			return nil, apperrors.InvalidInput("last name must not be empty")
		}
		user.LastName = *input.LastName
	}

	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	// Publish user updated event (non-blocking on failure).
	if err := s.producer.PublishUserUpdated(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.updated event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user profile updated",
		slog.String("user_id", user.ID),
	)

	return user, nil
}

// --- Helpers ---

// validateEmail checks that the email is present and well-formed.
func validateEmail(email string) error {
	if email == "" {
		return apperrors.InvalidInput("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.InvalidInput("email is not a valid address")
	}
	return nil
}

// validatePassword checks that the password meets the minimum length.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}
