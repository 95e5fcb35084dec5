package auth

import (
	"context"

	"github.com/google/uuid"
)

// GetUserIDFromContext retrieves the UserID (uuid.UUID) from the request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetOrgIDFromContext retrieves the OrgID (uuid.UUID) from the request context.
func GetOrgIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	orgID, ok := ctx.Value(OrgIDKey).(uuid.UUID)
	return orgID, ok
}
