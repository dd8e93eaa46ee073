package presenter

import (
	"fmt"
	"strings"

	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/goal"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHAT ANNOUNCEMENTS
// Sent to the goal chat so co-participants see each other's activity. Each
// takes the actor's resolved display name and the other participants' names
// to append as a nudge.
// ══════════════════════════════════════════════════════════════════════════════

// mentionSuffix joins the other participants' names, prefixed with a space.
func mentionSuffix(others []string) string {
	if len(others) == 0 {
		return ""
	}
	return " " + strings.Join(others, " ")
}

// BuildRecordAnnouncement announces a recorded workout with lifetime status.
func BuildRecordAnnouncement(actor, goalName string, out goal.RecordOutcome, others []string) string {
	return fmt.Sprintf("%s recorded %s: +%s. Total Progress: %s for %q.%s",
		actor, out.Exercise,
		FormatAmount(out.AddedToDaily),
		FormatTotalStatus(out.NewLifetime, out.LifetimeTarget),
		goalName,
		mentionSuffix(others),
	)
}

// BuildAutoPromoteAnnouncement announces that a recording finished the
// participant's full day.
func BuildAutoPromoteAnnouncement(actor string, others []string) string {
	return fmt.Sprintf("%s has now completed a full workout for the day after recording!%s",
		actor, mentionSuffix(others))
}

// BuildFullCreditAnnouncement announces an explicit full-day completion.
func BuildFullCreditAnnouncement(actor string, others []string) string {
	return fmt.Sprintf("%s completed full workout for the day!%s", actor, mentionSuffix(others))
}

// BuildHalfCreditAnnouncement announces a half-day completion.
func BuildHalfCreditAnnouncement(actor string, others []string) string {
	return fmt.Sprintf("%s completed half workout for the day!%s", actor, mentionSuffix(others))
}

// BuildRestAnnouncement announces a claimed rest day with the updated counter.
func BuildRestAnnouncement(actor string, out goal.RestOutcome, others []string) string {
	return fmt.Sprintf("%s claimed a rest day! Rest used for %s: %d/%d.%s",
		actor, actor, out.Used, out.Quota, mentionSuffix(others))
}

// BuildGoalCompletedAnnouncement congratulates a participant who reached the
// goal's effective days.
func BuildGoalCompletedAnnouncement(actor string, completedDays float64) string {
	return fmt.Sprintf("Congratulations %s has completed the goal with %s days! 🎉🎊🥳",
		actor, FormatAmount(completedDays))
}

// BuildChangeAnnouncement announces updated daily targets to the chat.
func BuildChangeAnnouncement(goalName string, changes map[string]goal.TargetChange, exercises []string, names []string) string {
	return fmt.Sprintf("Goal %q updated! New daily targets: %s. Affects today onward.%s",
		goalName, formatChanges(changes, exercises), mentionSuffix(names))
}

// BuildChangeReply renders the private confirmation for a target change.
func BuildChangeReply(changes map[string]goal.TargetChange, exercises []string) string {
	return fmt.Sprintf("Goal updated! Changed daily targets: %s. Affects current day and forward.",
		formatChanges(changes, exercises))
}

// formatChanges renders "ex: old → new" pairs in the given exercise order,
// skipping exercises without a change.
func formatChanges(changes map[string]goal.TargetChange, exercises []string) string {
	parts := make([]string, 0, len(changes))
	for _, ex := range exercises {
		change, ok := changes[ex]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s → %s",
			ex, FormatAmount(change.Old), FormatAmount(change.New)))
	}
	return strings.Join(parts, ", ")
}
