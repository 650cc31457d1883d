package timefmt

import "testing"

func TestMinutesToClock(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{1, "00:01"},
		{540, "09:00"},
		{1050, "17:30"},
		{1439, "23:59"},
	}

	for _, c := range cases {
		got, err := MinutesToClock(c.minutes)
		if err != nil {
			t.Fatalf("MinutesToClock(%d): %v", c.minutes, err)
		}
		if got != c.want {
			t.Fatalf("MinutesToClock(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestMinutesToClockOutOfRange(t *testing.T) {
	for _, minutes := range []int{-1, 1440, 100000} {
		if _, err := MinutesToClock(minutes); err == nil {
			t.Fatalf("MinutesToClock(%d) expected error", minutes)
		}
	}
}

func TestClockToMinutes(t *testing.T) {
	cases := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"17:30", 1050},
		{"23:59", 1439},
	}

	for _, c := range cases {
		got, err := ClockToMinutes(c.clock)
		if err != nil {
			t.Fatalf("ClockToMinutes(%q): %v", c.clock, err)
		}
		if got != c.want {
			t.Fatalf("ClockToMinutes(%q) = %d, want %d", c.clock, got, c.want)
		}
	}
}

func TestClockToMinutesRejectsBadInput(t *testing.T) {
	for _, clock := range []string{"", "9:00", "24:00", "12:60", "12-30", "ab:cd", "12:345", "12:3a", " 9:00", "+9:00", "1a:00", "09 00"} {
		if _, err := ClockToMinutes(clock); err == nil {
			t.Fatalf("ClockToMinutes(%q) expected error", clock)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 59, 60, 720, 1439} {
		clock, err := MinutesToClock(minutes)
		if err != nil {
			t.Fatalf("MinutesToClock(%d): %v", minutes, err)
		}
		back, err := ClockToMinutes(clock)
		if err != nil {
			t.Fatalf("ClockToMinutes(%q): %v", clock, err)
		}
		if back != minutes {
			t.Fatalf("round trip %d -> %q -> %d", minutes, clock, back)
		}
	}
}

func TestWeekdayName(t *testing.T) {
	if name, err := WeekdayName(0); err != nil || name != "Sunday" {
		t.Fatalf("WeekdayName(0) = %q, %v", name, err)
	}
	if name, err := WeekdayName(6); err != nil || name != "Saturday" {
		t.Fatalf("WeekdayName(6) = %q, %v", name, err)
	}
	if _, err := WeekdayName(7); err == nil {
		t.Fatal("WeekdayName(7) expected error")
	}
	if _, err := WeekdayName(-1); err == nil {
		t.Fatal("WeekdayName(-1) expected error")
	}
}
