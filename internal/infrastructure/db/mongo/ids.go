package mongo

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/todo-api/todo-service/internal/core/domain"
)

// parseObjectID accepts only the canonical lowercase hex form produced by
// ObjectID.Hex, so the mapping between domain IDs and ObjectIDs stays
// one-to-one. Anything else is reported as domain.ErrNotFound.
func parseObjectID(s string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil || oid.Hex() != s {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}

func userIDFromObjectID(oid primitive.ObjectID) domain.UserID {
	return domain.UserID(oid.Hex())
}

func todoIDFromObjectID(oid primitive.ObjectID) domain.TodoID {
	return domain.TodoID(oid.Hex())
}
