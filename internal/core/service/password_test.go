package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/todo-api/todo-service/internal/core/domain"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	ctx := context.Background()

	for _, pw := range []string{"pw123!", "correct horse battery staple", "ünïcödé", " "} {
		hash, err := h.Hash(ctx, pw)
		if err != nil {
			t.Fatalf("Hash(%q) returned error: %v", pw, err)
		}
		if hash == pw {
			t.Fatalf("hash must not equal plaintext")
		}
		if !h.Verify(ctx, pw, hash) {
			t.Fatalf("Verify(%q) = false for its own hash", pw)
		}
		if h.Verify(ctx, pw+"x", hash) {
			t.Fatalf("Verify accepted a different password for %q", pw)
		}
	}
}

func TestBcryptHasher_FreshSaltPerCall(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	ctx := context.Background()

	first, _ := h.Hash(ctx, "same-password")
	second, _ := h.Hash(ctx, "same-password")
	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
	if !h.Verify(ctx, "same-password", first) || !h.Verify(ctx, "same-password", second) {
		t.Fatal("both hashes must verify")
	}
}

func TestBcryptHasher_MalformedHashIsMismatch(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	ctx := context.Background()

	for _, hash := range []string{"", "plain", "$2a$04$short", strings.Repeat("$", 60)} {
		if h.Verify(ctx, "anything", hash) {
			t.Fatalf("Verify must be false for malformed hash %q", hash)
		}
	}
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(context.Background(), strings.Repeat("a", 73))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, bcrypt.DefaultCost},
		{1, bcrypt.MinCost},
		{bcrypt.MaxCost + 5, bcrypt.MaxCost},
		{bcrypt.MinCost + 2, bcrypt.MinCost + 2},
	}
	for _, tc := range cases {
		if got := NewBcryptHasher(tc.in).Cost(); got != tc.want {
			t.Errorf("NewBcryptHasher(%d).Cost() = %d, want %d", tc.in, got, tc.want)
		}
	}
}
