package goal

import "github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS ARITHMETIC
// Pure clamping rules shared by daily and lifetime progress. The same function
// is applied twice per recording: once against the daily target and once
// against the lifetime target, where the lifetime delta is the amount actually
// absorbed into the daily bucket, not the raw requested amount.
// ══════════════════════════════════════════════════════════════════════════════

// ApplyDelta adds a non-negative delta to the current amount, clamped at the
// target. Negative deltas are rejected; corrections go through FixDaily.
func ApplyDelta(current, target, delta float64) (float64, error) {
	if delta < 0 {
		return current, shared.ErrInvalidAmount
	}
	return min(current+delta, target), nil
}

// FixDaily replaces the current daily amount with newDaily clamped to
// [0, target] and returns the adjusted value together with the signed delta
// the caller must apply to lifetime progress (with its own independent clamp).
func FixDaily(current, target, newDaily float64) (adjusted, delta float64) {
	adjusted = clamp(newDaily, 0, target)
	return adjusted, adjusted - current
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
