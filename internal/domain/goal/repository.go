package goal

import "context"

// Repository is the persistence port for the singleton goal document.
// Implementations must round-trip the aggregate losslessly.
type Repository interface {
	// Load returns the persisted goal, or shared.ErrNoActiveGoal when the
	// slot is empty.
	Load(ctx context.Context) (*Goal, error)

	// Save stores the goal, replacing any previous snapshot.
	Save(ctx context.Context, g *Goal) error

	// Clear empties the goal slot.
	Clear(ctx context.Context) error
}
