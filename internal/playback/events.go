package playback

import "time"

// Event is the closed set of playback events delivered to subscribers.
// Each subscriber receives every event emitted after it registered,
// exactly once, in emission order.
type Event interface {
	playbackEvent()
}

// MediaInfoUpdated is emitted at most once per distinct URI, the first
// time the engine reports media info for an asset.
type MediaInfoUpdated struct{}

// PositionUpdated is emitted on every engine position tick. It carries
// no payload; consumers query the session for the current position.
type PositionUpdated struct{}

// EndOfStream is emitted when the current item finishes playing.
type EndOfStream struct {
	URI string
}

// EndOfPlaylist is emitted when the last playlist item finishes and
// there is nothing left to advance to.
type EndOfPlaylist struct{}

// StateChanged is emitted when the engine transitions between stopped,
// paused and playing.
type StateChanged struct {
	State State
}

// VideoDimensionsChanged is emitted when the video size changes.
type VideoDimensionsChanged struct {
	Width  int
	Height int
}

// VolumeChanged carries the engine volume in the 0-1 range.
type VolumeChanged struct {
	Volume float64
}

// ErrorEvent forwards an engine-reported failure. The core does not
// attempt recovery; retry policy belongs to the consumer.
type ErrorEvent struct {
	Message string
}

// AudioVideoOffsetChanged is emitted when the audio/video sync offset
// changes.
type AudioVideoOffsetChanged struct {
	Offset time.Duration
}

// SubtitleVideoOffsetChanged is emitted when the subtitle sync offset
// changes.
type SubtitleVideoOffsetChanged struct {
	Offset time.Duration
}

func (MediaInfoUpdated) playbackEvent()           {}
func (PositionUpdated) playbackEvent()            {}
func (EndOfStream) playbackEvent()                {}
func (EndOfPlaylist) playbackEvent()              {}
func (StateChanged) playbackEvent()               {}
func (VideoDimensionsChanged) playbackEvent()     {}
func (VolumeChanged) playbackEvent()              {}
func (ErrorEvent) playbackEvent()                 {}
func (AudioVideoOffsetChanged) playbackEvent()    {}
func (SubtitleVideoOffsetChanged) playbackEvent() {}
