package forecast

import "testing"

func TestCompassPeriodic(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{1, "N"},
		{359, "N"},
		{361, "N"},
		{-10, "N"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{315, "NW"},
		{22, "N"},
		{23, "NE"},
		{67, "NE"},
		{68, "E"},
	}
	for _, tt := range tests {
		if got := Compass(tt.deg); got != tt.want {
			t.Errorf("Compass(%v) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}

func TestFreezingLevel(t *testing.T) {
	// 1900m site at +5°C: 1900 + (5/6.5)*1000 = 2669m rounded.
	if got := FreezingLevel(5, 1900); got != 2669 {
		t.Errorf("FreezingLevel(5, 1900) = %d, want 2669", got)
	}
	if got := FreezingLevel(0, 1900); got != 1900 {
		t.Errorf("FreezingLevel(0, 1900) = %d, want 1900", got)
	}
}

func TestFreezingLevelMonotonic(t *testing.T) {
	prev := FreezingLevel(-20, 1900)
	for temp := -19; temp <= 15; temp++ {
		cur := FreezingLevel(float64(temp), 1900)
		if cur <= prev {
			t.Fatalf("FreezingLevel not increasing at %d°C: %d then %d", temp, prev, cur)
		}
		// ~153.8m per °C with the standard lapse rate.
		if diff := cur - prev; diff < 153 || diff > 155 {
			t.Fatalf("FreezingLevel step at %d°C = %dm, want ~154m", temp, diff)
		}
		prev = cur
	}
}

func TestWMOInfo(t *testing.T) {
	desc, icon := WMOInfo(73)
	if desc != "Snow" || icon == "" {
		t.Errorf("WMOInfo(73) = (%q, %q)", desc, icon)
	}

	// Unknown codes fall back to overcast.
	desc, _ = WMOInfo(42)
	if desc != "Overcast" {
		t.Errorf("WMOInfo(42) = %q, want Overcast", desc)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2026-03-01"); got != "Sun, Mar 1" {
		t.Errorf("FormatDate = %q, want %q", got, "Sun, Mar 1")
	}
	if got := WeekdayName("2026-03-02"); got != "Monday" {
		t.Errorf("WeekdayName = %q, want Monday", got)
	}
	// Malformed input is passed through rather than panicking.
	if got := FormatDate("bogus"); got != "bogus" {
		t.Errorf("FormatDate(bogus) = %q", got)
	}
}
