package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/auth"
	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and logout. A successful login
// issues a signed session token and records the live session in Redis;
// logout revokes the record so the token dies before its expiry.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (sessionToken string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (sessionToken string, user *model.User, err error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	userRepo       repository.UserRepository
	sessionService *auth.SessionService
	sessionStore   auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessionService *auth.SessionService, sessionStore auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:       userRepo,
		sessionService: sessionService,
		sessionStore:   sessionStore,
	}
}

// Register creates a new user with a hashed password and signs them in.
func (s *authService) Register(ctx context.Context, email, password, name string) (string, *model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", nil, errors.ErrUserAlreadyExists
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies credentials and starts a new session.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout revokes a session. Revoking an already-dead session is not an error.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessionStore.DeleteSession(ctx, sessionID)
}

func (s *authService) startSession(ctx context.Context, user *model.User) (string, error) {
	sessionID, token, err := s.sessionService.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	session := auth.Session{
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   user.Name,
	}
	if err := s.sessionStore.StoreSession(ctx, sessionID, session, auth.SessionExpiry); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}
