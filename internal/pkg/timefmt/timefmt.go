// Package timefmt converts between the minutes-since-midnight integers
// stored for schedule windows and the HH:MM strings shown to people.
package timefmt

import (
	"fmt"

	"github.com/pkg/errors"
)

// MinutesPerDay bounds every schedule window offset.
const MinutesPerDay = 24 * 60

var weekdayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// MinutesToClock formats minutes since midnight as HH:MM.
func MinutesToClock(minutes int) (string, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", errors.Errorf("minutes %d out of range [0,%d)", minutes, MinutesPerDay)
	}

	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// ClockToMinutes parses an HH:MM string into minutes since midnight.
// Exactly five characters, digits only, no sign or space prefixes.
func ClockToMinutes(clock string) (int, error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, errors.Errorf("clock %q must be in HH:MM form", clock)
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if clock[i] < '0' || clock[i] > '9' {
			return 0, errors.Errorf("clock %q must be in HH:MM form", clock)
		}
	}

	h := int(clock[0]-'0')*10 + int(clock[1]-'0')
	m := int(clock[3]-'0')*10 + int(clock[4]-'0')
	if h > 23 || m > 59 {
		return 0, errors.Errorf("clock %q out of range", clock)
	}

	return h*60 + m, nil
}

// WeekdayName maps 0=Sunday..6=Saturday to its name.
func WeekdayName(day int) (string, error) {
	if day < 0 || day > 6 {
		return "", errors.Errorf("week day %d out of range [0,6]", day)
	}

	return weekdayNames[day], nil
}
