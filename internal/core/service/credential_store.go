package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/todo-api/todo-service/internal/core/domain"
	"github.com/todo-api/todo-service/internal/core/ports"
)

// CredentialStore mediates every read and write of credential records.
type CredentialStore struct {
	repo   ports.CredentialRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
	now    func() time.Time
}

func NewCredentialStore(repo ports.CredentialRepository, hasher ports.PasswordHasher, log zerolog.Logger) *CredentialStore {
	return &CredentialStore{repo: repo, hasher: hasher, log: log, now: time.Now}
}

// Register creates a credential record. An existing username yields
// domain.ErrDuplicateIdentity and nothing is written; a concurrent insert of
// the same username is rejected by the repository's unique index with the
// same error. The returned record carries no password hash.
func (s *CredentialStore) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	reg, err := domain.NewRegistration(username, email, password)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, reg.Username); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, reg.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			s.log.Info().Str("username", reg.Username).Msg("lost registration race on unique index")
		}
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("user_id", created.ID.String()).Msg("user registered")

	out := *created
	out.PasswordHash = ""
	return &out, nil
}

// FindByUsername is a pure lookup; absent records yield domain.ErrNotFound.
func (s *CredentialStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}
