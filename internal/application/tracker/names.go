package tracker

import (
	"context"
	"fmt"
	"time"
)

// lookupTimeout bounds a single directory round-trip. A slow or failing
// directory degrades the display name, never the command.
const lookupTimeout = 5 * time.Second

// UnknownName is the placeholder label for a participant whose display name
// could not be resolved.
func UnknownName(userID string) string {
	return fmt.Sprintf("Unknown User (%s)", userID)
}

// ResolveName resolves one participant's display name with a bounded timeout,
// falling back to the placeholder on any error.
func ResolveName(ctx context.Context, dir Directory, chatID int64, userID string) string {
	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	name, err := dir.DisplayName(lookupCtx, chatID, userID)
	if err != nil || name == "" {
		return UnknownName(userID)
	}
	return name
}

// ResolveNames resolves display names for a set of participants. Lookups run
// sequentially; callers hold no locks here, so slowness only delays rendering.
func ResolveNames(ctx context.Context, dir Directory, chatID int64, userIDs []string) map[string]string {
	names := make(map[string]string, len(userIDs))
	for _, id := range userIDs {
		names[id] = ResolveName(ctx, dir, chatID, id)
	}
	return names
}
