package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories"
	"github.com/DivyaPradhan23/grocery-backend/utils"
)

const (
	maxUsernameLength = 150
	msgRequired       = "This field is required."
	msgBadCredentials = "No active account found with the given credentials"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type AuthService struct {
	users    UserStore
	tokens   *utils.TokenIssuer
	validate *validator.Validate
}

func NewAuthService(users UserStore, tokens *utils.TokenIssuer) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// Register creates a customer account. Every field problem is reported
// together; the role is never taken from the request.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	fields := FieldErrors{}

	switch {
	case username == "":
		fields.Add("username", msgRequired)
	case len([]rune(username)) > maxUsernameLength:
		fields.Add("username", "Ensure this field has no more than 150 characters.")
	case !usernamePattern.MatchString(username):
		fields.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	if req.Password == "" {
		fields.Add("password", msgRequired)
	} else {
		for _, problem := range utils.PasswordProblems(req.Password, username) {
			fields.Add("password", problem)
		}
	}

	if email != "" && s.validate.Var(email, "email") != nil {
		fields.Add("email", "Enter a valid email address.")
	}

	if _, ok := fields["username"]; !ok {
		existing, err := s.users.FindByUsername(ctx, username)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrap(err, "lookup username")
		}
		if existing != nil {
			fields.Add("username", "A user with that username already exists.")
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, FieldErrors{"username": {"A user with that username already exists."}}.Err()
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ObtainToken(ctx context.Context, req models.TokenRequest) (*models.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, Unauthorized(msgBadCredentials)
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		return nil, Unauthorized(msgBadCredentials)
	}

	access, err := s.tokens.GenerateAccess(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "sign access token")
	}
	refresh, err := s.tokens.GenerateRefresh(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "sign refresh token")
	}
	return &models.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token carrying
// the user's current role.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := s.tokens.Validate(refreshToken, utils.RefreshToken)
	if err != nil {
		return nil, Unauthorized("Token is invalid or expired")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, Unauthorized("User not found")
		}
		return nil, err
	}

	access, err := s.tokens.GenerateAccess(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "sign access token")
	}
	return &models.TokenPair{Access: access}, nil
}

// Authenticate resolves an access token to the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.tokens.Validate(accessToken, utils.AccessToken)
	if err != nil {
		return nil, Unauthorized("Invalid or expired token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, Unauthorized("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) SetRole(ctx context.Context, username, role string) error {
	if !models.ValidRole(role) {
		return BadRequest("role must be one of: customer, manager")
	}
	if err := s.users.UpdateRole(ctx, username, role); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NotFound("User not found")
		}
		return err
	}
	return nil
}
