// Package cuelist plays back sequences of cues on a universe.
package cuelist

import (
	"context"
	"sync"
	"time"

	"github.com/robmorgan/lcs/logger"
	"github.com/robmorgan/lcs/universe"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"k8s.io/utils/clock"
)

// Fader is the part of a universe cues are played on.
type Fader interface {
	SetTarget(name string, target uint8) error
	FadeInAll(duration time.Duration) (*universe.Transition, error)
}

// Master plays cue lists one cue at a time.
type Master struct {
	clock     clock.Clock
	fader     Fader
	idLock    sync.Mutex
	currentID int64
}

// NewMaster creates a cue master playing on fader.
func NewMaster(cl clock.Clock, fader Fader) *Master {
	return &Master{
		clock:     cl,
		fader:     fader,
		currentID: 1,
	}
}

func (m *Master) getNextIDForUse() int64 {
	m.idLock.Lock()
	defer m.idLock.Unlock()

	id := m.currentID
	m.currentID++
	return id
}

// EnQueueCue appends a copy of c to cl and returns it with its ID set.
func (m *Master) EnQueueCue(c Cue, cl *CueList) *Cue {
	c.Status = statusEnqueued
	if c.ID == 0 {
		c.ID = m.getNextIDForUse()
	}
	queued := c
	cl.enqueue(&queued)
	return &c
}

// ProcessCueList plays every queued cue in order and returns once the queue is
// empty. Cancelling ctx stops the running fade and returns ctx.Err().
func (m *Master) ProcessCueList(ctx context.Context, cl *CueList) error {
	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"cue_list": cl.Name, "cues": cl.Pending()}).Info("ProcessCueList started")

	for {
		nextCue := cl.deQueueNextCue()
		if nextCue == nil {
			logger.WithField("cue_list", cl.Name).Info("ProcessCueList finished")
			return nil
		}

		err := m.processCue(ctx, nextCue, func() { cl.setActive(*nextCue) })
		cl.finish(nextCue)
		if err != nil {
			return err
		}
	}
}

// ProcessCue waits, sets the cue's levels, fades to them and holds the result.
func (m *Master) ProcessCue(ctx context.Context, c *Cue) error {
	return m.processCue(ctx, c, nil)
}

// processCue plays c, calling started once its status and start time are set.
func (m *Master) processCue(ctx context.Context, c *Cue, started func()) error {
	logger := logger.GetProjectLogger().WithFields(logrus.Fields{"cue_id": c.ID, "cue_name": c.Name})
	logger.WithFields(logrus.Fields{"fade": c.FadeTime, "levels": len(c.Levels)}).Info("ProcessCue")

	c.Status = statusActive
	c.StartedAt = m.clock.Now()
	if started != nil {
		started()
	}
	defer func() {
		c.FinishedAt = m.clock.Now()
		if c.Status == statusActive {
			c.Status = statusStopped
		}
	}()

	if err := m.sleep(ctx, c.WaitTime); err != nil {
		return err
	}

	names := maps.Keys(c.Levels)
	slices.Sort(names)
	for _, name := range names {
		if err := m.fader.SetTarget(name, c.Levels[name]); err != nil {
			return err
		}
	}

	transition, err := m.fader.FadeInAll(c.FadeTime)
	if err != nil {
		return err
	}
	select {
	case <-transition.Done():
	case <-ctx.Done():
		transition.Stop()
		logger.Info("cue stopped")
		return ctx.Err()
	}

	if err := m.sleep(ctx, c.HoldTime); err != nil {
		return err
	}

	c.Status = statusProcessed
	return nil
}

func (m *Master) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-m.clock.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
