package cuelist

import (
	"sync"

	"github.com/robmorgan/lcs/logger"
)

// CueList stores a queue of cues and the ones already played back.
type CueList struct {
	Name string

	mu        sync.Mutex
	queue     []*Cue
	active    Cue
	hasActive bool
	processed []Cue
}

func NewCueList(cueListName string) *CueList {
	logger := logger.GetProjectLogger()
	logger.Debugf("Cue list created with name: %s", cueListName)

	return &CueList{
		Name:  cueListName,
		queue: make([]*Cue, 0),
	}
}

func (cl *CueList) enqueue(c *Cue) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.queue = append(cl.queue, c)
}

func (cl *CueList) deQueueNextCue() *Cue {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if len(cl.queue) == 0 {
		return nil
	}
	c := cl.queue[0]
	cl.queue = cl.queue[1:]
	return c
}

// setActive records a snapshot of the cue being played.
func (cl *CueList) setActive(c Cue) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.active = c
	cl.hasActive = true
}

func (cl *CueList) finish(c *Cue) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.active = Cue{}
	cl.hasActive = false
	cl.processed = append(cl.processed, *c)
}

// Pending returns the number of cues waiting to be played.
func (cl *CueList) Pending() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.queue)
}

// ActiveCue returns a copy of the cue being played. ok is false between cues.
func (cl *CueList) ActiveCue() (Cue, bool) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.active, cl.hasActive
}

// ProcessedCues returns copies of every cue played so far, stopped ones included.
func (cl *CueList) ProcessedCues() []Cue {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return append([]Cue(nil), cl.processed...)
}
