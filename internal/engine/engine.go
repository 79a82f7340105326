// Package engine defines the boundary to the external playback engine.
//
// The engine decodes media, renders video and owns its own execution
// context; this package only describes the surface the coordination core
// consumes: commands the core issues and callbacks the engine fires.
package engine

import "time"

// MediaInfo describes the asset the engine is currently handling.
type MediaInfo struct {
	URI      string
	Title    string
	Duration time.Duration
}

// Callbacks are the entry points the engine invokes asynchronously.
// Nil fields are skipped. The engine may deliver callbacks on a
// different goroutine than the one issuing commands.
type Callbacks struct {
	URILoaded                  func(uri string)
	EndOfStream                func()
	MediaInfoUpdated           func(info MediaInfo)
	PositionUpdated            func(position time.Duration)
	VideoDimensionsChanged     func(width, height int)
	StateChanged               func(state State)
	VolumeChanged              func()
	Error                      func(message string)
	AudioVideoOffsetChanged    func(offset time.Duration)
	SubtitleVideoOffsetChanged func(offset time.Duration)
}

// Interface is the engine contract consumed by the playback core.
type Interface interface {
	// Name returns the engine-assigned identifier for this instance,
	// stable for its lifetime.
	Name() string

	CurrentURI() string
	SetURI(uri string)

	Play()
	Pause()
	Stop()

	// Seek moves playback to an absolute position. Completion is
	// observed through callbacks, not a return value.
	Seek(position time.Duration)

	// Position reports the current playback position. ok is false when
	// the engine has no position yet.
	Position() (position time.Duration, ok bool)

	// Duration reports the stream duration. ok is false when the
	// duration is unknown, e.g. for a live stream.
	Duration() (duration time.Duration, ok bool)

	Volume() float64
	SetVolume(volume float64)
	SetMuted(muted bool)

	SetSubtitleURI(uri string)
	SetSubtitleTrack(index int) error
	SetSubtitleTrackEnabled(enabled bool)

	SetAudioTrack(index int) error
	SetAudioTrackEnabled(enabled bool)

	SetVideoTrack(index int) error
	SetVideoTrackEnabled(enabled bool)

	SetVisualization(name string) error
	SetVisualizationEnabled(enabled bool)

	// Connect registers the callback set. Only one set is active per
	// engine instance; connecting replaces any previous set.
	Connect(cb Callbacks)
}
