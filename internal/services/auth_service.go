package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validators"
	"storefront/pkg/apperror"
)

// TokenTTL is the fixed lifetime of an issued bearer token.
const TokenTTL = time.Hour

const invalidCredentials = "invalid email or password"

// Claims is the payload of a bearer token.
type Claims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.StandardClaims
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID string
	Role   models.Role
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,emailshape"`
	Password string `json:"password" validate:"required,strongpassword"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserSummary is the public subset of a user returned on login.
type UserSummary struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// AuthService handles registration, login and bearer token checks.
type AuthService struct {
	users     repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  TokenTTL,
		now:       time.Now,
	}
}

// RegisterUser validates input, hashes the password and stores a new user
// with the standard user role.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validators.Struct(&in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Newf(apperror.CodeDuplicate, "email %s is already registered", in.Email).WithDetail("field", "email")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.Internal(err, "failed to check email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err, "failed to hash password")
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Address:  in.Address,
		Phone:    in.Phone,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, writeError(err, "user", "register")
	}
	return user, nil
}

// LoginUser checks credentials and issues a bearer token. Unknown emails and
// wrong passwords fail identically.
func (s *AuthService) LoginUser(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validators.Struct(&in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.New(apperror.CodeUnauthenticated, invalidCredentials)
		}
		return nil, apperror.Internal(err, "failed to load user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, apperror.New(apperror.CodeUnauthenticated, invalidCredentials)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token: token,
		User:  UserSummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	}, nil
}

// IssueToken signs an HS256 token for user valid for TokenTTL.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: user.ID,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
		},
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperror.Internal(err, "failed to sign token")
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Authorize resolves tokenString to a stored user and checks its current role
// against allowed. An empty allow-list admits any authenticated user.
func (s *AuthService) Authorize(ctx context.Context, tokenString string, allowed []models.Role) (*Identity, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, apperror.New(apperror.CodeUnauthenticated, "missing bearer token")
	}
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeUnauthenticated, err, "invalid or expired token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.New(apperror.CodeUnauthenticated, "token owner no longer exists")
		}
		return nil, apperror.Internal(err, "failed to load token owner")
	}

	if len(allowed) > 0 && !roleAllowed(user.Role, allowed) {
		return nil, apperror.New(apperror.CodeForbidden, "insufficient role")
	}
	return &Identity{UserID: user.ID, Role: user.Role}, nil
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
