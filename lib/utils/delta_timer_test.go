package utils

import (
	"testing"
	"time"
)

func TestDeltaTimer(t *testing.T) {
	var d DeltaTimer
	if dt := d.Next(); dt != 0 {
		t.Fatalf("first Next() = %s, want 0", dt)
	}

	d.Set(time.Now().Add(-50 * time.Millisecond))
	if dt := d.Next(); dt < 50*time.Millisecond {
		t.Fatalf("Next() = %s, want at least 50ms", dt)
	}
}
