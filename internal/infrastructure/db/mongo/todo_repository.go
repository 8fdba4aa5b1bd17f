package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/todo-api/todo-service/internal/core/domain"
)

const collectionTodos = "todos"

// TodoRepository implements ports.TodoRepository. Every query carries the
// owner's user_id next to the _id, so foreign items are simply not found.
type TodoRepository struct {
	col *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{col: db.Collection(collectionTodos)}
}

type mongoTodo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description *string            `bson:"description"`
	Completed   bool               `bson:"completed"`
	UserID      string             `bson:"user_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (t mongoTodo) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          todoIDFromObjectID(t.ID),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		OwnerID:     domain.UserID(t.UserID),
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

// ownedFilter matches a single todo belonging to owner.
func ownedFilter(owner domain.UserID, id domain.TodoID) (bson.M, error) {
	oid, err := parseObjectID(string(id))
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid, "user_id": string(owner)}, nil
}

// Create inserts a new todo document.
func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTodo{
		ID:          primitive.NewObjectID(),
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		UserID:      string(todo.OwnerID),
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns up to limit of owner's todos, newest first.
func (r *TodoRepository) List(ctx context.Context, owner domain.UserID, limit int) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": string(owner)}, opts)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	var docs []mongoTodo
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}

	out := make([]*domain.Todo, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *TodoRepository) Get(ctx context.Context, owner domain.UserID, id domain.TodoID) (*domain.Todo, error) {
	filter, err := ownedFilter(owner, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTodo
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces the editable fields in a single atomic find-and-modify and
// returns the document as it is after the write.
func (r *TodoRepository) Update(ctx context.Context, owner domain.UserID, id domain.TodoID, in domain.TodoInput, updatedAt time.Time) (*domain.Todo, error) {
	filter, err := ownedFilter(owner, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       in.Title,
		"description": in.Description,
		"completed":   in.Completed,
		"updated_at":  updatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoTodo
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TodoRepository) Delete(ctx context.Context, owner domain.UserID, id domain.TodoID) error {
	filter, err := ownedFilter(owner, id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the owner listing index on the todos collection.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("ensure todo indexes: %w", err)
	}
	return nil
}
