package universe

import "errors"

var (
	// ErrNotRunning is returned by fades while no output driver runs. No transition is started.
	ErrNotRunning = errors.New("universe output is not running")

	// ErrAlreadyRunning is returned when Start is called on a running universe.
	ErrAlreadyRunning = errors.New("universe output already running")

	// ErrNoSuchDimmer is returned for a dimmer name that was never added.
	ErrNoSuchDimmer = errors.New("no such dimmer")

	// ErrNoSuchComposite is returned for a composite light name that was never added.
	ErrNoSuchComposite = errors.New("no such composite light")

	// ErrDuplicateDimmer is returned when a fixture already has a dimmer.
	ErrDuplicateDimmer = errors.New("dimmer already added")

	// ErrDuplicateComposite is returned when a fixture already has a composite light.
	ErrDuplicateComposite = errors.New("composite light already added")

	// ErrFadeInProgress is returned when a dimmer is already driven by a running transition.
	ErrFadeInProgress = errors.New("fade already in progress")

	// ErrTransitionStopped is returned by a second Stop on the same transition.
	ErrTransitionStopped = errors.New("transition already stopped")
)
