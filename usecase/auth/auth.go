package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/pkg/httpcontext"
	"github.com/subsidyhub/backend/repository"
)

// Actor is the authenticated identity passed explicitly into admin-facing
// service calls.
type Actor struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

type UseCase struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	jwtSecret  []byte
	sessionTTL time.Duration
	logger     *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, jwtSecret string, sessionTTL time.Duration, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &UseCase{
		users:      users,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Login verifies the credentials against the stored bcrypt hash and, on
// success, creates a session and issues a bearer token for API clients.
// Unknown users and wrong passwords fail identically.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*domain.Session, string, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.sessionTTL),
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, "", err
	}

	token, err := uc.issueToken(user, session.ExpiresAt)
	if err != nil {
		return nil, "", err
	}

	uc.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.Bool("is_admin", user.IsAdmin),
		zap.String("remote_addr", httpcontext.MetaFrom(ctx).RemoteAddr))
	return session, token, nil
}

// Session resolves a session cookie value into an actor. Expired sessions
// are removed and rejected.
func (uc *UseCase) Session(ctx context.Context, sessionID string) (*Actor, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return &Actor{
		UserID:   session.UserID,
		Username: session.Username,
		IsAdmin:  session.IsAdmin,
	}, nil
}

// VerifyToken resolves a bearer token into an actor.
func (uc *UseCase) VerifyToken(tokenString string) (*Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	actor := &Actor{}
	if sub, ok := claims["sub"].(float64); ok {
		actor.UserID = int64(sub)
	}
	if username, ok := claims["username"].(string); ok {
		actor.Username = username
	}
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		actor.IsAdmin = isAdmin
	}
	return actor, nil
}

// Logout removes the session.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) issueToken(user *domain.User, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"exp":      expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(uc.jwtSecret)
}

// HashPassword produces a bcrypt hash for seeding credential records.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
