// Package editstate models the save status of a schedule row being
// edited: Saved -> Touched -> Saving -> Saved. The transition function
// rejects anything outside that cycle, and a redis backed tracker keeps
// the current status per schedule so concurrent admin sessions see
// in-flight saves.
package editstate

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Status int

const (
	Saved Status = iota
	Touched
	Saving
)

func (s Status) String() string {
	switch s {
	case Saved:
		return "saved"
	case Touched:
		return "touched"
	case Saving:
		return "saving"
	}
	return "unknown"
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case "saved":
		return Saved, nil
	case "touched":
		return Touched, nil
	case "saving":
		return Saving, nil
	}
	return Saved, errors.Errorf("unknown status %q", s)
}

// Event is something that happens to an edited schedule row.
type Event int

const (
	// Edit is a field change.
	Edit Event = iota
	// Submit starts persisting the touched fields.
	Submit
	// SaveOK is a successful persist.
	SaveOK
	// SaveFail is a failed persist. The row stays touched so the form
	// remains dirty and the error is surfaced, not swallowed.
	SaveFail
)

func (e Event) String() string {
	switch e {
	case Edit:
		return "edit"
	case Submit:
		return "submit"
	case SaveOK:
		return "save_ok"
	case SaveFail:
		return "save_fail"
	}
	return "unknown"
}

// ErrInvalidTransition is returned for any event a status does not
// accept.
var ErrInvalidTransition = errors.New("invalid edit state transition")

// Transition applies an event to a status.
func Transition(from Status, ev Event) (Status, error) {
	switch ev {
	case Edit:
		if from == Saved || from == Touched {
			return Touched, nil
		}
	case Submit:
		if from == Touched {
			return Saving, nil
		}
	case SaveOK:
		if from == Saving {
			return Saved, nil
		}
	case SaveFail:
		if from == Saving {
			return Touched, nil
		}
	}

	return from, errors.Wrapf(ErrInvalidTransition, "%s on %s", ev, from)
}

// trackTTL keeps abandoned editing sessions from lingering forever.
const trackTTL = time.Hour

// Tracker stores the current edit status per schedule id.
type Tracker struct {
	redisDB *redis.Client
}

func NewTracker(redisDB *redis.Client) *Tracker {
	return &Tracker{redisDB: redisDB}
}

// Get returns the tracked status, Saved when nothing is tracked.
func (t *Tracker) Get(ctx context.Context, scheduleID int) (Status, error) {
	val, err := t.redisDB.Get(ctx, trackKey(scheduleID)).Result()
	if errors.Is(err, redis.Nil) {
		return Saved, nil
	}
	if err != nil {
		return Saved, errors.Wrap(err, "reading edit status")
	}

	return ParseStatus(val)
}

// Apply runs the transition for the event and stores the result.
func (t *Tracker) Apply(ctx context.Context, scheduleID int, ev Event) (Status, error) {
	current, err := t.Get(ctx, scheduleID)
	if err != nil {
		return current, err
	}

	next, err := Transition(current, ev)
	if err != nil {
		return current, err
	}

	if next == Saved {
		if err := t.redisDB.Del(ctx, trackKey(scheduleID)).Err(); err != nil {
			return next, errors.Wrap(err, "clearing edit status")
		}
		return next, nil
	}

	if err := t.redisDB.Set(ctx, trackKey(scheduleID), next.String(), trackTTL).Err(); err != nil {
		return next, errors.Wrap(err, "storing edit status")
	}

	return next, nil
}

// Clear drops tracking for a schedule, used when the row is deleted.
func (t *Tracker) Clear(ctx context.Context, scheduleID int) error {
	if err := t.redisDB.Del(ctx, trackKey(scheduleID)).Err(); err != nil {
		return errors.Wrap(err, "clearing edit status")
	}
	return nil
}

func trackKey(scheduleID int) string {
	return "editstate:schedule:" + strconv.Itoa(scheduleID)
}
