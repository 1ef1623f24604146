package cuelist

import (
	"time"

	"github.com/robmorgan/lcs/config"
)

// I've borrowed heavily from: http://www.stagelightingprimer.com/index.html?slfs-control.html&2

type status int

const (
	statusEnqueued status = iota
	statusActive
	statusProcessed
	statusStopped
)

func (s status) String() string {
	switch s {
	case statusActive:
		return "active"
	case statusProcessed:
		return "processed"
	case statusStopped:
		return "stopped"
	default:
		return "enqueued"
	}
}

// Cue sets dimmer levels and fades the whole universe towards them. Dimmers the cue
// does not mention keep the level of the previous cue, so levels track through.
type Cue struct {
	ID   int64
	Name string

	// Levels maps dimmer names to the level they fade to.
	Levels map[string]uint8

	// A cue's "time" is a measure of how long it takes the cue to complete, once it has been executed.
	FadeTime time.Duration

	// The (optional) length of time after "Go" after which the cue will begin its fade.
	WaitTime time.Duration

	// Hang: how long to hold the finished look before the next cue starts.
	HoldTime time.Duration

	Status     status
	StartedAt  time.Time
	FinishedAt time.Time
}

// RealDuration is how long the cue took from start to finish, waits and holds included.
func (c *Cue) RealDuration() time.Duration {
	return c.FinishedAt.Sub(c.StartedAt)
}

// State returns the playback status as text.
func (c *Cue) State() string {
	return c.Status.String()
}

// FromConfig converts the cues of a patch file.
func FromConfig(cues []config.Cue) []Cue {
	out := make([]Cue, 0, len(cues))
	for _, c := range cues {
		levels := make(map[string]uint8, len(c.Levels))
		for name, level := range c.Levels {
			levels[name] = level
		}
		out = append(out, Cue{
			Name:     c.Name,
			Levels:   levels,
			FadeTime: c.Fade,
			WaitTime: c.Wait,
			HoldTime: c.Hold,
		})
	}
	return out
}
