package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	titleMaxLen       = 200
	descriptionMaxLen = 2000
)

// TodoID is the opaque identifier of a todo item.
type TodoID string

func (id TodoID) String() string { return string(id) }

// Todo is a single item on a user's list.
type Todo struct {
	ID          TodoID    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	OwnerID     UserID    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoInput carries the user-editable fields of a todo.
type TodoInput struct {
	Title       string
	Description *string
	Completed   bool
}

// Validate normalises the input in place and rejects empty or oversized fields.
func (in *TodoInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return invalid("title must not be empty")
	}
	if utf8.RuneCountInString(in.Title) > titleMaxLen {
		return invalid("title must be at most 200 characters")
	}
	if in.Description != nil && utf8.RuneCountInString(*in.Description) > descriptionMaxLen {
		return invalid("description must be at most 2000 characters")
	}
	return nil
}

// NewTodo builds an unsaved todo owned by owner.
func NewTodo(owner UserID, in TodoInput, now time.Time) (*Todo, error) {
	if owner == "" {
		return nil, invalid("owner is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &Todo{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		OwnerID:     owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
