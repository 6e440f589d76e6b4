package api

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type keyType string

const userIDKey keyType = "userID"

// ctxWithUserID adds the authenticated user id to the context
func ctxWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves the authenticated user id from the context
func ctxGetUserID(ctx context.Context) (uuid.UUID, error) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, errors.New("user id not found in context")
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user id in context is not a uuid")
	}
	return userID, nil
}
