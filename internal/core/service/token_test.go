package service

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/todo-api/todo-service/internal/core/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
}

func TestTokenIssuer_ValidUntilTTLElapses(t *testing.T) {
	clock := newTestClock()
	issuer := NewTokenIssuer([]byte("secret"), "todo-api", 30*time.Minute, WithTokenClock(clock.Now))

	token, expiresAt, err := issuer.CreateAccessToken("alice", 0)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if want := clock.now.Add(30 * time.Minute); !expiresAt.Equal(want) {
		t.Fatalf("expiresAt = %v, want %v", expiresAt, want)
	}

	sub, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}
	if sub != "alice" {
		t.Fatalf("subject = %q, want alice", sub)
	}

	clock.Advance(29 * time.Minute)
	if _, err := issuer.Parse(token); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	clock.Advance(time.Minute)
	_, err = issuer.Parse(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid after TTL, got %v", err)
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expiry to be the cause, got %v", err)
	}
}

func TestTokenIssuer_ExplicitTTLOverridesDefault(t *testing.T) {
	clock := newTestClock()
	issuer := NewTokenIssuer([]byte("secret"), "todo-api", time.Hour, WithTokenClock(clock.Now))

	token, _, err := issuer.CreateAccessToken("alice", time.Minute)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	clock.Advance(2 * time.Minute)
	if _, err := issuer.Parse(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestNewTokenIssuer_DefaultTTL(t *testing.T) {
	if got := NewTokenIssuer([]byte("s"), "i", 0).TTL(); got != DefaultTokenTTL {
		t.Fatalf("TTL() = %v, want %v", got, DefaultTokenTTL)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, _, _ := NewTokenIssuer([]byte("right-secret"), "todo-api", time.Hour).CreateAccessToken("alice", 0)

	_, err := NewTokenIssuer([]byte("wrong-secret"), "todo-api", time.Hour).Parse(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenIssuer_TamperedPayload(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), "todo-api", time.Hour)
	token, _, _ := issuer.CreateAccessToken("alice", 0)

	parts := strings.Split(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	// "alice" -> "alicd": a single flipped bit.
	idx := strings.Index(string(payload), "alice")
	payload[idx+4] ^= 0x01
	parts[1] = base64.RawURLEncoding.EncodeToString(payload)

	if _, err := issuer.Parse(strings.Join(parts, ".")); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered payload, got %v", err)
	}
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), "todo-api", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "todo-api",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, token := range map[string]string{"HS512": hs512, "none": none} {
		if _, err := issuer.Parse(token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("%s: expected ErrTokenInvalid, got %v", name, err)
		}
	}
}

func TestTokenIssuer_RequiresExpiryAndIssuer(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), "todo-api", time.Hour)

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
		Issuer:  "todo-api",
	}).SignedString([]byte("secret"))
	foreign, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))

	for name, token := range map[string]string{"no exp": noExp, "foreign issuer": foreign} {
		if _, err := issuer.Parse(token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("%s: expected ErrTokenInvalid, got %v", name, err)
		}
	}
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), "todo-api", time.Hour)

	for _, token := range []string{"", "not-a-token", "not.a.jwt", "a.b.c.d"} {
		if _, err := issuer.Parse(token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("Parse(%q): expected ErrTokenInvalid, got %v", token, err)
		}
	}
}

func TestTokenIssuer_EmptySubject(t *testing.T) {
	_, _, err := NewTokenIssuer([]byte("secret"), "todo-api", time.Hour).CreateAccessToken("", 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
