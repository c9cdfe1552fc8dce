package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rentfleet/internal/config"
	"rentfleet/internal/domain"
	"rentfleet/internal/repository"
)

// Claims is the JWT payload issued on sign-in. Subject carries the user ID.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles account registration and sign-in.
type AuthService struct {
	userRepo repository.UserRepository
	cfg      config.AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// SignUpRequest contains the parameters for registering an account.
type SignUpRequest struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

// SignUp registers a new account. The returned user never carries the
// password hash.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*domain.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" || req.Role == "" {
		return nil, ErrMissingUserFields
	}

	role, err := ValidateRole(req.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Password:  string(hash),
		Phone:     req.Phone,
		Role:      role,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// Return a copy so stripping the hash never touches the persisted record.
	out := *user
	out.Password = ""
	return &out, nil
}

// SignInResult contains the issued token and the signed-in user.
type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// SignIn verifies the credentials and issues an HS256 JWT.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &SignInResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// VerifyToken parses and verifies a token issued by SignIn.
func VerifyToken(cfg config.AuthConfig, token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// ValidateRole validates a role string.
func ValidateRole(role string) (domain.Role, error) {
	switch domain.Role(role) {
	case domain.RoleAdmin, domain.RoleCustomer:
		return domain.Role(role), nil
	default:
		return "", ErrInvalidUserRole
	}
}
