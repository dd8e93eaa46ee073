package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/goal"
)

func TestBuildRecordAnnouncement(t *testing.T) {
	out := goal.RecordOutcome{
		Exercise:       "situps",
		AddedToDaily:   40,
		NewLifetime:    100,
		LifetimeTarget: 500,
	}

	got := BuildRecordAnnouncement("Alice", "spring", out, []string{"Bob", "Carol"})
	assert.Equal(t, `Alice recorded situps: +40. Total Progress: 100/500 for "spring". Bob Carol`, got)
}

func TestBuildRecordAnnouncement_Completed(t *testing.T) {
	out := goal.RecordOutcome{
		Exercise:       "situps",
		AddedToDaily:   20,
		NewLifetime:    500,
		LifetimeTarget: 500,
	}

	got := BuildRecordAnnouncement("Alice", "spring", out, nil)
	assert.Equal(t, `Alice recorded situps: +20. Total Progress: Completed! for "spring".`, got)
}

func TestBuildCreditAnnouncements(t *testing.T) {
	assert.Equal(t, "Alice completed full workout for the day! Bob",
		BuildFullCreditAnnouncement("Alice", []string{"Bob"}))
	assert.Equal(t, "Alice completed half workout for the day!",
		BuildHalfCreditAnnouncement("Alice", nil))
	assert.Equal(t, "Alice has now completed a full workout for the day after recording! Bob",
		BuildAutoPromoteAnnouncement("Alice", []string{"Bob"}))
}

func TestBuildRestAnnouncement(t *testing.T) {
	got := BuildRestAnnouncement("Alice", goal.RestOutcome{Used: 3, Quota: 4}, []string{"Bob"})
	assert.Equal(t, "Alice claimed a rest day! Rest used for Alice: 3/4. Bob", got)
}

func TestBuildGoalCompletedAnnouncement(t *testing.T) {
	assert.Equal(t, "Congratulations Alice has completed the goal with 5 days! 🎉🎊🥳",
		BuildGoalCompletedAnnouncement("Alice", 5.0))
	assert.Equal(t, "Congratulations Alice has completed the goal with 5.5 days! 🎉🎊🥳",
		BuildGoalCompletedAnnouncement("Alice", 5.5))
}

func TestBuildChangeMessages(t *testing.T) {
	changes := map[string]goal.TargetChange{
		"situps":  {Old: 100, New: 50},
		"pushups": {Old: 50, New: 25},
	}
	order := []string{"pushups", "situps"}

	assert.Equal(t,
		"Goal updated! Changed daily targets: pushups: 50 → 25, situps: 100 → 50. Affects current day and forward.",
		BuildChangeReply(changes, order))

	assert.Equal(t,
		`Goal "spring" updated! New daily targets: pushups: 50 → 25, situps: 100 → 50. Affects today onward. Alice Bob`,
		BuildChangeAnnouncement("spring", changes, order, []string{"Alice", "Bob"}))
}
