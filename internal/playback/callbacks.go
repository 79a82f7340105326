package playback

import (
	"time"

	"github.com/llehouerou/tide/internal/engine"
)

// adapter translates engine callbacks into registry operations and
// event emissions. It binds the player id and the registry handle at
// construction, so no callback has to re-resolve its player by name.
//
// Callbacks arrive on the engine's execution context; every mutation
// goes through the registry, which serializes access per player.
type adapter struct {
	id       PlayerID
	engine   engine.Interface
	registry *Registry
}

func bindCallbacks(id PlayerID, eng engine.Interface, reg *Registry) {
	a := &adapter{id: id, engine: eng, registry: reg}
	eng.Connect(engine.Callbacks{
		URILoaded:                  a.uriLoaded,
		EndOfStream:                a.endOfStream,
		MediaInfoUpdated:           a.mediaInfoUpdated,
		PositionUpdated:            a.positionUpdated,
		VideoDimensionsChanged:     a.videoDimensionsChanged,
		StateChanged:               a.stateChanged,
		VolumeChanged:              a.volumeChanged,
		Error:                      a.errorReported,
		AudioVideoOffsetChanged:    a.audioVideoOffsetChanged,
		SubtitleVideoOffsetChanged: a.subtitleVideoOffsetChanged,
	})
}

// uriLoaded resumes the freshly loaded asset from its cached position,
// if one is known, then starts playback.
func (a *adapter) uriLoaded(uri string) {
	a.engine.Pause()
	a.registry.With(a.id, func(r *Record) {
		if position, ok := r.ResumePosition(uri); ok {
			a.engine.Seek(position)
		}
	})
	a.engine.Play()
}

func (a *adapter) endOfStream() {
	uri := a.engine.CurrentURI()
	if uri == "" {
		return
	}
	a.registry.WithMut(a.id, func(r *Record) {
		r.EndOfStream(uri, a.engine.SetURI)
	})
}

func (a *adapter) mediaInfoUpdated(info engine.MediaInfo) {
	a.registry.WithMut(a.id, func(r *Record) {
		r.MediaInfoUpdated(info.URI)
	})
}

func (a *adapter) positionUpdated(_ time.Duration) {
	a.registry.WithMut(a.id, func(r *Record) {
		r.Notify(PositionUpdated{})
	})
}

func (a *adapter) videoDimensionsChanged(width, height int) {
	a.registry.WithMut(a.id, func(r *Record) {
		r.Notify(VideoDimensionsChanged{Width: width, Height: height})
	})
}

func (a *adapter) stateChanged(es engine.State) {
	st, ok := stateFromEngine(es)
	if !ok {
		return
	}
	a.registry.WithMut(a.id, func(r *Record) {
		r.Notify(StateChanged{State: st})
	})
}

func (a *adapter) volumeChanged() {
	volume := a.engine.Volume()
	a.registry.WithMut(a.id, func(r *Record) {
		r.Notify(VolumeChanged{Volume: volume})
	})
}

func (a *adapter) errorReported(message string) {
	a.registry.WithMut(a.id, func(r *Record) {
		r.Notify(ErrorEvent{Message: message})
	})
}

func (a *adapter) audioVideoOffsetChanged(offset time.Duration) {
	a.registry.WithMut(a.id, func(r *Record) {
		r.Notify(AudioVideoOffsetChanged{Offset: offset})
	})
}

func (a *adapter) subtitleVideoOffsetChanged(offset time.Duration) {
	a.registry.WithMut(a.id, func(r *Record) {
		r.Notify(SubtitleVideoOffsetChanged{Offset: offset})
	})
}
