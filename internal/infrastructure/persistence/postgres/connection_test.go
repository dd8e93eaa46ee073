package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnection_PingAfterClose(t *testing.T) {
	c := &Connection{closed: true}
	assert.ErrorIs(t, c.Ping(context.Background()), ErrConnectionClosed)
}

func TestNewConnectionFromURL_InvalidURL(t *testing.T) {
	_, err := NewConnectionFromURL(context.Background(), "://not-a-url")
	assert.Error(t, err)
}
