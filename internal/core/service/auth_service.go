package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/todo-api/todo-service/internal/core/domain"
	"github.com/todo-api/todo-service/internal/core/ports"
)

// dummyPassword is hashed at startup and compared against when a username is
// unknown, so a miss costs about as much as a wrong password.
const dummyPassword = "not-a-real-password"

// AuthService implements registration, login and identity resolution.
type AuthService struct {
	store  *CredentialStore
	hasher ports.PasswordHasher
	tokens *TokenIssuer
	log    zerolog.Logger

	dummyMu   sync.Mutex
	dummyHash string
}

// NewAuthService prepares the dummy hash up front. If that fails it is
// retried on the next unknown-username login.
func NewAuthService(store *CredentialStore, hasher ports.PasswordHasher, tokens *TokenIssuer, log zerolog.Logger) *AuthService {
	s := &AuthService{store: store, hasher: hasher, tokens: tokens, log: log}
	s.ensureDummyHash()
	return s
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.store.Register(ctx, username, email, password)
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords both return domain.ErrAuthFailure.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Identity, error) {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, domain.ErrAuthFailure
	}

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.burnDummyCompare(ctx, password)
			return nil, domain.ErrAuthFailure
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		return nil, domain.ErrAuthFailure
	}
	return user.Identity(), nil
}

// Login authenticates and issues an access token with the default TTL.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenResult, error) {
	identity, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.CreateAccessToken(identity.Username, 0)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", identity.Username).Msg("access token issued")
	return &ports.TokenResult{AccessToken: token, TokenType: TokenTypeBearer, ExpiresAt: expiresAt}, nil
}

// ResolveIdentity verifies token (signature, then expiry) and looks up its
// subject. A subject with no credential record is domain.ErrTokenInvalid.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*domain.Identity, error) {
	subject, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return user.Identity(), nil
}

// burnDummyCompare spends one bcrypt comparison so an unknown username costs
// the same as a wrong password.
func (s *AuthService) burnDummyCompare(ctx context.Context, password string) {
	if hash := s.ensureDummyHash(); hash != "" {
		_ = s.hasher.Verify(ctx, password, hash)
	}
}

// ensureDummyHash returns the cached dummy hash, computing it when missing.
// It never uses a request context, so an aborted request cannot leave the
// cache empty.
func (s *AuthService) ensureDummyHash() string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()
	if s.dummyHash != "" {
		return s.dummyHash
	}
	hash, err := s.hasher.Hash(context.Background(), dummyPassword)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not prepare dummy hash")
		return ""
	}
	s.dummyHash = hash
	return hash
}
