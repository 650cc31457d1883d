package editstate

import (
	"errors"
	"testing"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		from Status
		ev   Event
		want Status
		ok   bool
	}{
		{Saved, Edit, Touched, true},
		{Touched, Edit, Touched, true},
		{Touched, Submit, Saving, true},
		{Saving, SaveOK, Saved, true},
		{Saving, SaveFail, Touched, true},

		{Saved, Submit, Saved, false},
		{Saved, SaveOK, Saved, false},
		{Saved, SaveFail, Saved, false},
		{Touched, SaveOK, Touched, false},
		{Touched, SaveFail, Touched, false},
		{Saving, Edit, Saving, false},
		{Saving, Submit, Saving, false},
	}

	for _, c := range cases {
		got, err := Transition(c.from, c.ev)
		if c.ok && err != nil {
			t.Fatalf("Transition(%s, %s): unexpected error %v", c.from, c.ev, err)
		}
		if !c.ok {
			if err == nil {
				t.Fatalf("Transition(%s, %s): expected error", c.from, c.ev)
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("Transition(%s, %s): error %v is not ErrInvalidTransition", c.from, c.ev, err)
			}
		}
		if got != c.want {
			t.Fatalf("Transition(%s, %s) = %s, want %s", c.from, c.ev, got, c.want)
		}
	}
}

func TestSaveFailKeepsRowDirty(t *testing.T) {
	// A failed save must land back on touched so the edit is not lost.
	s, err := Transition(Saving, SaveFail)
	if err != nil {
		t.Fatalf("Transition(Saving, SaveFail): %v", err)
	}
	if s != Touched {
		t.Fatalf("after failed save status = %s, want %s", s, Touched)
	}

	// And the row can be resubmitted.
	if _, err := Transition(s, Submit); err != nil {
		t.Fatalf("resubmit after failure: %v", err)
	}
}

func TestParseStatusRoundTrip(t *testing.T) {
	for _, s := range []Status{Saved, Touched, Saving} {
		parsed, err := ParseStatus(s.String())
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", s.String(), err)
		}
		if parsed != s {
			t.Fatalf("ParseStatus(%q) = %s, want %s", s.String(), parsed, s)
		}
	}

	if _, err := ParseStatus("dirty"); err == nil {
		t.Fatal(`ParseStatus("dirty") expected error`)
	}
}
