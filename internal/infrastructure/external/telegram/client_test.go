package telegram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func commandMessage(text string, cmdLen int) *Message {
	return &Message{
		Text: text,
		Entities: []MessageEntity{
			{Type: "bot_command", Offset: 0, Length: cmdLen},
		},
	}
}

func TestExtractCommand(t *testing.T) {
	t.Run("plain command", func(t *testing.T) {
		msg := commandMessage("/record_workout situps 60", 15)
		assert.Equal(t, "record_workout", ExtractCommand(msg))
	})

	t.Run("strips bot username suffix", func(t *testing.T) {
		msg := commandMessage("/view_goal@fitcrew_bot", 22)
		assert.Equal(t, "view_goal", ExtractCommand(msg))
	})

	t.Run("plain text is not a command", func(t *testing.T) {
		assert.Equal(t, "", ExtractCommand(&Message{Text: "hello"}))
	})

	t.Run("command mid-message is ignored", func(t *testing.T) {
		msg := &Message{
			Text: "try /view_goal",
			Entities: []MessageEntity{
				{Type: "bot_command", Offset: 4, Length: 10},
			},
		}
		assert.Equal(t, "", ExtractCommand(msg))
	})

	t.Run("nil message", func(t *testing.T) {
		assert.Equal(t, "", ExtractCommand(nil))
	})
}

func TestExtractCommandArgs(t *testing.T) {
	msg := commandMessage("/record_workout situps 60", 15)
	assert.Equal(t, "situps 60", ExtractCommandArgs(msg))

	bare := commandMessage("/view_goal", 10)
	assert.Equal(t, "", ExtractCommandArgs(bare))
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Alice", (&User{FirstName: "Alice"}).FullName())
	assert.Equal(t, "Alice Smith", (&User{FirstName: "Alice", LastName: "Smith"}).FullName())
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(&APIError{Code: 429}))
	assert.True(t, isRetryableError(&APIError{Code: 502}))
	assert.False(t, isRetryableError(&APIError{Code: 400}))
	assert.False(t, isRetryableError(&APIError{Code: 403}))

	assert.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	assert.False(t, isRetryableError(errors.New("invalid token")))
	assert.False(t, isRetryableError(nil))
}
