package model

import (
	"testing"
	"time"
)

const freeLimit = 3

var day1 = time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

func TestHintQuotaFreeAllotment(t *testing.T) {
	q := HintQuota{LastReset: day1}

	for i := 0; i < freeLimit; i++ {
		if !q.Consume(day1, freeLimit) {
			t.Fatalf("consume %d failed, want success", i+1)
		}
	}
	if q.FreeUsed != freeLimit {
		t.Errorf("FreeUsed = %d, want %d", q.FreeUsed, freeLimit)
	}
	if q.Consume(day1, freeLimit) {
		t.Error("fourth consume succeeded with no purchased balance")
	}
	if q.CanUse(day1, freeLimit) {
		t.Error("CanUse = true after allotment exhausted")
	}
}

func TestHintQuotaPurchasedFallback(t *testing.T) {
	q := HintQuota{FreeUsed: freeLimit, Purchased: 2, LastReset: day1}

	if !q.CanUse(day1, freeLimit) {
		t.Fatal("CanUse = false with purchased balance remaining")
	}
	if !q.Consume(day1, freeLimit) {
		t.Fatal("consume failed with purchased balance remaining")
	}
	if q.Purchased != 1 {
		t.Errorf("Purchased = %d, want 1", q.Purchased)
	}
	// Free hints are always preferred over purchased ones.
	if q.FreeUsed != freeLimit {
		t.Errorf("FreeUsed = %d, purchased consume must not touch it", q.FreeUsed)
	}
}

func TestHintQuotaDailyReset(t *testing.T) {
	q := HintQuota{FreeUsed: freeLimit, Purchased: 0, LastReset: day1}

	nextDay := day1.Add(24 * time.Hour)
	if !q.CanUse(nextDay, freeLimit) {
		t.Fatal("CanUse = false on a new UTC day")
	}
	if q.FreeUsed != 0 {
		t.Errorf("FreeUsed = %d after reset, want 0", q.FreeUsed)
	}
	if !q.LastReset.Equal(nextDay) {
		t.Errorf("LastReset = %v, want %v", q.LastReset, nextDay)
	}
}

func TestHintQuotaResetAtUTCMidnightBoundary(t *testing.T) {
	lateNight := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	justPastMidnight := time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC)

	q := HintQuota{FreeUsed: freeLimit, LastReset: lateNight}
	if q.CanUse(lateNight, freeLimit) {
		t.Error("CanUse = true before midnight with allotment spent")
	}
	if !q.CanUse(justPastMidnight, freeLimit) {
		t.Error("CanUse = false just past UTC midnight")
	}
}

func TestHintQuotaNoDoubleReset(t *testing.T) {
	q := HintQuota{FreeUsed: 2, LastReset: day1}

	later := day1.Add(time.Hour)
	q.CanUse(later, freeLimit)
	if !q.Consume(later, freeLimit) {
		t.Fatal("consume failed")
	}
	// Same day: no reset in between, the counter keeps advancing.
	if q.FreeUsed != 3 {
		t.Errorf("FreeUsed = %d, want 3", q.FreeUsed)
	}
}

func TestHintQuotaPurchasedSurvivesReset(t *testing.T) {
	q := HintQuota{FreeUsed: freeLimit, Purchased: 5, LastReset: day1}
	q.ApplyReset(day1.Add(48 * time.Hour))
	if q.Purchased != 5 {
		t.Errorf("Purchased = %d after reset, want 5", q.Purchased)
	}
	if q.FreeUsed != 0 {
		t.Errorf("FreeUsed = %d after reset, want 0", q.FreeUsed)
	}
}

func TestHintQuotaFreeRemaining(t *testing.T) {
	q := HintQuota{FreeUsed: 1, LastReset: day1}
	if got := q.FreeRemaining(day1, freeLimit); got != 2 {
		t.Errorf("FreeRemaining = %d, want 2", got)
	}
	q.FreeUsed = freeLimit + 1 // over-count from a historical limit change
	if got := q.FreeRemaining(day1, freeLimit); got != 0 {
		t.Errorf("FreeRemaining = %d, want clamped to 0", got)
	}
}
