package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/wasa-portal/auth-service/internal/apperrors"
	"github.com/wasa-portal/auth-service/internal/metrics"
	"github.com/wasa-portal/auth-service/internal/models"
	"github.com/wasa-portal/auth-service/internal/repository"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]{3,30}$`)

// LoginRequest represents the login input.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks that all fields are present and the role is known.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Role,
			validation.Required,
			validation.In(models.RoleAdmin, models.RoleSupervisor),
		),
	)
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// RegisterRequest represents the registration input. The role is not part
// of the payload; it is fixed by the entrypoint that invokes the flow.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Validate enforces the registration input rules, one submessage per rule.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required,
			validation.Match(usernamePattern).Error("must be 3-30 alphanumeric characters"),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.By(validatePassword),
		),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// validatePassword requires at least 8 alphanumeric characters with at
// least one letter and one digit.
func validatePassword(value interface{}) error {
	password, _ := value.(string)
	var letters, digits int
	for _, c := range password {
		switch {
		case unicode.IsLetter(c) && c <= unicode.MaxASCII:
			letters++
		case unicode.IsDigit(c) && c <= unicode.MaxASCII:
			digits++
		default:
			return errors.New("must contain only letters and digits")
		}
	}
	if len(password) < 8 || letters == 0 || digits == 0 {
		return errors.New("must be at least 8 characters with at least one letter and one digit")
	}
	return nil
}

// AuthService orchestrates the authentication and registration flows.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest, role string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService JWTService
	hasher     PasswordHasher
	logger     *slog.Logger
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo repository.UserRepository, jwtService JWTService, hasher PasswordHasher, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		hasher:     hasher,
		logger:     logger,
	}
}

// Login authenticates a user and issues a signed token. An unknown user and
// a wrong password produce the same response so the endpoint cannot be used
// to enumerate usernames; logs keep the distinction.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := req.Validate(); err != nil {
		s.logger.Error("login failed: missing required fields",
			"username", req.Username, "role", req.Role)
		metrics.LoginAttempts.WithLabelValues("invalid_input").Inc()
		return nil, apperrors.Validation("Username, password and role are required", err)
	}

	user, err := s.userRepo.FindByIdentifierAndRole(ctx, req.Username, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("login failed: user not found",
				"username", req.Username, "role", req.Role)
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, apperrors.Internal("Internal server error", err)
	}

	if err := s.hasher.Verify(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			s.logger.Error("login failed: incorrect password",
				"username", req.Username, "role", req.Role)
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		s.logger.Error("login failed: malformed stored hash",
			"username", req.Username, "role", req.Role)
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, apperrors.Internal("Internal server error", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, apperrors.Internal("Internal server error", err)
	}

	s.logger.Info("login successful", "username", user.Username, "role", user.Role)
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &LoginResponse{Token: token, Role: user.Role}, nil
}

// Register validates input, enforces uniqueness, hashes the password and
// persists the new user with the caller-supplied role.
func (s *authService) Register(ctx context.Context, req RegisterRequest, role string) (*models.User, error) {
	if err := req.Validate(); err != nil {
		s.logger.Error("registration failed: invalid input",
			"username", req.Username, "email", req.Email, "role", role)
		return nil, apperrors.Validation("Validation failed", err)
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, apperrors.Internal("Internal server error", err)
	}
	if exists {
		s.logger.Error("registration failed: user already exists",
			"username", req.Username, "email", req.Email, "role", role)
		return nil, apperrors.Conflict("Username or email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal("Internal server error", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Name:         req.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The pre-check and the insert are separate statements; a
		// concurrent insert surfaces here as a conflict, not a 500.
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Error("registration failed: duplicate insert",
				"username", req.Username, "email", req.Email, "role", role)
			return nil, apperrors.Conflict("Username or email already exists")
		}
		return nil, apperrors.Internal("Internal server error", err)
	}

	s.logger.Info("user registered", "username", user.Username, "role", user.Role)
	metrics.Registrations.WithLabelValues(role).Inc()
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, apperrors.Internal("Internal server error", err)
	}
	return users, nil
}
