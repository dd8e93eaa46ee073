package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeDirectory maps user IDs to names; missing IDs error.
type fakeDirectory struct {
	names map[string]string
}

func (d *fakeDirectory) DisplayName(ctx context.Context, chatID int64, userID string) (string, error) {
	name, ok := d.names[userID]
	if !ok {
		return "", errors.New("member not found")
	}
	return name, nil
}

func TestResolveName(t *testing.T) {
	dir := &fakeDirectory{names: map[string]string{"100": "Alice"}}
	ctx := context.Background()

	assert.Equal(t, "Alice", ResolveName(ctx, dir, 42, "100"))
	assert.Equal(t, "Unknown User (200)", ResolveName(ctx, dir, 42, "200"))
}

func TestResolveName_EmptyFallsBack(t *testing.T) {
	dir := &fakeDirectory{names: map[string]string{"100": ""}}

	assert.Equal(t, "Unknown User (100)", ResolveName(context.Background(), dir, 42, "100"))
}

func TestResolveNames(t *testing.T) {
	dir := &fakeDirectory{names: map[string]string{"100": "Alice", "300": "Carol"}}

	names := ResolveNames(context.Background(), dir, 42, []string{"100", "200", "300"})
	assert.Equal(t, map[string]string{
		"100": "Alice",
		"200": "Unknown User (200)",
		"300": "Carol",
	}, names)
}
