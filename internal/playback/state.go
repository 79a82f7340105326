package playback

import "github.com/llehouerou/tide/internal/engine"

// State represents the playback state visible to subscribers.
type State int

const (
	StateStopped State = iota
	StatePaused
	StatePlaying
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePaused:
		return "Paused"
	case StatePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// stateFromEngine maps an engine-reported state to a public state.
// Transient engine states like Buffering have no public equivalent and
// are not forwarded; ok is false for those.
func stateFromEngine(s engine.State) (State, bool) {
	switch s {
	case engine.Playing:
		return StatePlaying, true
	case engine.Paused:
		return StatePaused, true
	case engine.Stopped:
		return StateStopped, true
	default:
		return StateStopped, false
	}
}
