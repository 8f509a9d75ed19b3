package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/neonsnake/neonsnake-backend/internal/dependencies/clock"
	"github.com/neonsnake/neonsnake-backend/internal/model"
	"github.com/neonsnake/neonsnake-backend/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)

// Service handles accounts and bearer tokens. Tokens are stateless signed
// JWTs bound to the user id subject; logout is advisory only.
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	secret      []byte
	tokenExpiry time.Duration

	// serializes the uniqueness check + insert so concurrent signups with
	// the same email or username cannot both pass the check
	signupMu sync.Mutex
}

// Config holds configuration for the auth service
type Config struct {
	// TokenSecret signs issued tokens. If empty, a random per-process secret
	// is generated; tokens then expire with the process.
	TokenSecret []byte
	// TokenExpiry is the validity window of issued tokens
	TokenExpiry time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenExpiry: 30 * time.Minute,
	}
}

// New creates a new auth service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.TokenExpiry == 0 {
		cfg.TokenExpiry = DefaultConfig().TokenExpiry
	}
	secret := cfg.TokenSecret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
	}
	return &Service{
		storage:     storage,
		clock:       clock,
		secret:      secret,
		tokenExpiry: cfg.TokenExpiry,
	}
}

// Signup creates a new account and returns it with a bearer token
func (s *Service) Signup(ctx context.Context, username, email, password string) (*model.User, string, error) {
	s.signupMu.Lock()
	defer s.signupMu.Unlock()

	if _, err := s.storage.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, "", err
	}

	if _, err := s.storage.GetUserByUsername(ctx, username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email and password and returns a bearer token.
// Unknown email and wrong password fail identically so callers cannot tell
// which was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate validates a bearer token and resolves the user it names
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*model.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	user, err := s.storage.GetUser(ctx, model.UserID(claims.Subject))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// issueToken signs a token with the user id as subject and a fixed expiry
func (s *Service) issueToken(user *model.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   string(user.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
