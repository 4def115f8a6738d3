package model

import "time"

// HintQuota is the per-user hint allowance: a daily free allotment plus a
// purchased balance that never auto-resets.
type HintQuota struct {
	FreeUsed  int
	Purchased int
	LastReset time.Time
}

// ApplyReset zeroes the free counter on the first access of a new UTC day.
// Calling it again within the same day is a no-op, so CanUse followed by
// Consume does not double-reset.
func (q *HintQuota) ApplyReset(now time.Time) {
	if utcDate(q.LastReset).Before(utcDate(now)) {
		q.FreeUsed = 0
		q.LastReset = now
	}
}

// CanUse reports whether any hint (free or purchased) is available.
func (q *HintQuota) CanUse(now time.Time, freeLimit int) bool {
	q.ApplyReset(now)
	return (freeLimit-q.FreeUsed)+q.Purchased > 0
}

// Consume spends a free hint if one remains today, otherwise a purchased
// hint. Returns false when neither is available.
func (q *HintQuota) Consume(now time.Time, freeLimit int) bool {
	q.ApplyReset(now)
	if freeLimit-q.FreeUsed > 0 {
		q.FreeUsed++
		return true
	}
	if q.Purchased > 0 {
		q.Purchased--
		return true
	}
	return false
}

// FreeRemaining is the number of free hints left today.
func (q *HintQuota) FreeRemaining(now time.Time, freeLimit int) int {
	q.ApplyReset(now)
	remaining := freeLimit - q.FreeUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
