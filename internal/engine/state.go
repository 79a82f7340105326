package engine

// State is the engine-reported playback state.
type State int

const (
	Stopped State = iota
	Buffering
	Paused
	Playing
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Buffering:
		return "Buffering"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}
