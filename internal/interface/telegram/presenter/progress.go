// Package presenter renders goal state and command outcomes into the plain
// text messages the bot sends. All functions are pure; display names arrive
// pre-resolved so no presenter touches the network.
package presenter

import (
	"fmt"
	"strings"

	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/goal"
)

// FormatAmount renders an amount without a trailing ".0" when it is whole.
func FormatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// FormatTotalStatus renders lifetime progress for one exercise, collapsing to
// "Completed!" once the lifetime target is reached.
func FormatTotalStatus(newTotal, total float64) string {
	if newTotal == total {
		return "Completed!"
	}
	return fmt.Sprintf("%s/%s", FormatAmount(newTotal), FormatAmount(total))
}

// BuildMyProgress renders one participant's daily progress with their rest and
// completed-day counters.
func BuildMyProgress(g *goal.Goal, userID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Your Progress for %q:\n", g.Name)
	fmt.Fprintf(&b, "Rest used: %d/%d (Completed Days: %s/%d)\n",
		g.RestUsed[userID], g.RestQuota,
		FormatAmount(g.CompletedDays[userID]), g.EffectiveDays,
	)
	b.WriteString("  Daily Progress:\n")
	for _, ex := range g.Exercises() {
		fmt.Fprintf(&b, "    %s: %s/%s\n",
			ex,
			FormatAmount(g.Daily[userID][ex]),
			FormatAmount(g.DailyTargets[ex]),
		)
	}

	return b.String()
}

// BuildEveryoneProgress renders every participant's daily progress in join
// order. names maps participant IDs to resolved display names.
func BuildEveryoneProgress(g *goal.Goal, names map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Goal %q Daily Progress:\n", g.Name)
	for _, userID := range g.Participants {
		fmt.Fprintf(&b, "%s (Rest used: %d/%d (Completed Days: %s/%d)) :\n",
			names[userID],
			g.RestUsed[userID], g.RestQuota,
			FormatAmount(g.CompletedDays[userID]), g.EffectiveDays,
		)
		for _, ex := range g.Exercises() {
			fmt.Fprintf(&b, "  %s: %s/%s\n",
				ex,
				FormatAmount(g.Daily[userID][ex]),
				FormatAmount(g.DailyTargets[ex]),
			)
		}
	}

	return b.String()
}

// BuildGoalView renders the goal's current daily targets.
func BuildGoalView(g *goal.Goal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Current Goal %q:\nDaily Goals:\n", g.Name)
	for _, ex := range g.Exercises() {
		fmt.Fprintf(&b, "  %s: %s\n", ex, FormatAmount(g.DailyTargets[ex]))
	}

	return b.String()
}

// BuildParticipantList renders the participants in join order.
func BuildParticipantList(g *goal.Goal, names map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Participants in %q:\n", g.Name)
	for _, userID := range g.Participants {
		fmt.Fprintf(&b, "- %s\n", names[userID])
	}

	return b.String()
}

// BuildGoalCreated renders the creation confirmation.
func BuildGoalCreated(g *goal.Goal, weeks int) string {
	pairs := make([]string, 0, len(g.DailyTargets))
	for _, ex := range g.Exercises() {
		pairs = append(pairs, fmt.Sprintf("%s:%s", ex, FormatAmount(g.DailyTargets[ex])))
	}
	return fmt.Sprintf(
		"Goal %q created! Daily amounts: %s. Total weeks: %d, Effective workout days: %d. Join with /join_goal.",
		g.Name, strings.Join(pairs, ", "), weeks, g.EffectiveDays,
	)
}
