package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"github.com/todo-api/todo-service/internal/core/domain"
)

const owner domain.UserID = "65f0c0ffee0000000000a11c"

func TestIdempotencyStore_LookupMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewIdempotencyStore(db, time.Hour)

	mock.ExpectGet("idem:todo:" + string(owner) + ":k1").RedisNil()

	id, err := store.Lookup(context.Background(), owner, "k1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if id != "" {
		t.Fatalf("expected empty id on miss, got %q", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestIdempotencyStore_LookupHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewIdempotencyStore(db, time.Hour)

	mock.ExpectGet("idem:todo:" + string(owner) + ":k1").SetVal("65f0c0ffee0000000000b0b0")

	id, err := store.Lookup(context.Background(), owner, "k1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if id != "65f0c0ffee0000000000b0b0" {
		t.Fatalf("unexpected id %q", id)
	}
}

func TestIdempotencyStore_LookupError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewIdempotencyStore(db, time.Hour)

	mock.ExpectGet("idem:todo:" + string(owner) + ":k1").SetErr(errors.New("connection refused"))

	if _, err := store.Lookup(context.Background(), owner, "k1"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestIdempotencyStore_RememberUsesSetNXWithTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewIdempotencyStore(db, 2*time.Hour)

	mock.ExpectSetNX("idem:todo:"+string(owner)+":k1", "65f0c0ffee0000000000b0b0", 2*time.Hour).SetVal(true)

	if err := store.Remember(context.Background(), owner, "k1", "65f0c0ffee0000000000b0b0"); err != nil {
		t.Fatalf("Remember: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	db, _ := redismock.NewClientMock()
	if got := NewIdempotencyStore(db, 0).ttl; got != defaultIdempotencyTTL {
		t.Fatalf("ttl = %v, want %v", got, defaultIdempotencyTTL)
	}
}
