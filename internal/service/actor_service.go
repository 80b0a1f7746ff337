package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"taskboard/internal/auth"
	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ActorService resolves validated session claims into an Actor.
type ActorService interface {
	ResolveActor(ctx context.Context, claims *auth.SessionClaims) (*model.Actor, error)
}

type actorService struct {
	sessionStore auth.SessionStoreInterface
	profileRepo  repository.ProfileRepository
}

// NewActorService creates a new actor service.
func NewActorService(sessionStore auth.SessionStoreInterface, profileRepo repository.ProfileRepository) ActorService {
	return &actorService{
		sessionStore: sessionStore,
		profileRepo:  profileRepo,
	}
}

// ResolveActor checks that the session behind the claims is still live, then
// resolves the identity's role, creating the default profile on first sight.
// Resolution happens fresh on every request: a role change takes effect on
// the next request, and a revoked session fails immediately even though its
// token has not expired.
func (s *actorService) ResolveActor(ctx context.Context, claims *auth.SessionClaims) (*model.Actor, error) {
	if claims == nil || claims.ID == "" {
		return nil, errors.ErrUnauthenticated
	}

	session, err := s.sessionStore.GetSession(ctx, claims.ID)
	if err != nil {
		if stderrors.Is(err, auth.ErrSessionNotFound) {
			return nil, errors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	userID, err := uuid.Parse(session.UserID)
	if err != nil {
		return nil, errors.ErrUnauthenticated
	}

	profile, err := s.profileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	return &model.Actor{
		ID:    userID,
		Role:  profile.Role,
		Email: session.Email,
		Name:  session.Name,
	}, nil
}
