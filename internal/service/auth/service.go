package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/parseldesk/backoffice/internal/config"
	"github.com/parseldesk/backoffice/internal/domain/models"
)

const minPasswordLen = 6

// Repository is the persistence surface the service needs.
type Repository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) (*models.User, error)
}

// Claims is the token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service owns registration, login and token verification.
type Service struct {
	repo     Repository
	secret   []byte
	lifespan time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the auth service.
func NewService(repo Repository, cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		secret:   []byte(cfg.JWTSecret),
		lifespan: time.Duration(cfg.TokenLifespan) * time.Hour,
		logger:   logger,
		now:      time.Now,
	}
}

// HashPassword produces a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// ComparePassword checks a password against its stored hash.
func ComparePassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// Register creates a user and returns a fresh token.
func (s *Service) Register(ctx context.Context, in models.RegisterRequest) (*models.AuthResult, error) {
	verr := models.NewValidationError()
	if in.Name == "" {
		verr.Add("name", "Name is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		verr.Add("email", "Email is required")
	}
	if len(in.Password) < minPasswordLen {
		verr.Add("password", "Password must be at least 6 characters")
	}
	if verr.Any() {
		return nil, verr
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:      in.Name,
		Email:     email,
		Password:  hashed,
		Role:      "user",
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		if err == models.ErrConflict {
			verr := models.NewValidationError()
			verr.Add("email", "Email is already registered")
			return nil, verr
		}
		return nil, err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user", user.ID.Hex()))
	return &models.AuthResult{Token: token, User: *user}, nil
}

// Login verifies credentials and returns a fresh token. Bad credentials map
// to ErrUnauthorized without revealing which part was wrong.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err == models.ErrNotFound {
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if !ComparePassword(user.Password, creds.Password) {
		return nil, models.ErrUnauthorized
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user", user.ID.Hex()))
	return &models.AuthResult{Token: token, User: *user}, nil
}

// CurrentUser resolves the user behind a token subject.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile updates the caller's editable fields.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in models.ProfileUpdate) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.ErrUnauthorized
	}

	verr := models.NewValidationError()
	if in.Name == "" {
		verr.Add("name", "Name is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		verr.Add("email", "Email is required")
	}
	if verr.Any() {
		return nil, verr
	}

	return s.repo.UpdateProfile(ctx, id, in.Name, email)
}

// GenerateToken signs a token for the user.
func (s *Service) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifespan)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a token and returns its claims. Any failure maps to
// ErrUnauthorized; the middleware turns that into a 401.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, models.ErrUnauthorized
	}
	return claims, nil
}
