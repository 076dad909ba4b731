// ABOUTME: Tests for the real and fake clocks.
// ABOUTME: Fake time only moves when Advance or Set is called.
package clock

import (
	"testing"
	"time"
)

func TestFakeAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	f := NewFake(start)

	f.Advance(90 * time.Second)

	if got := f.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Errorf("Now() = %v, want %v", got, start.Add(90*time.Second))
	}
}

func TestFakeSet(t *testing.T) {
	f := NewFake(time.Time{})
	when := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	f.Set(when)

	if !f.Now().Equal(when) {
		t.Errorf("Now() = %v, want %v", f.Now(), when)
	}
}
