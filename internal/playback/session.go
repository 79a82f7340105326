package playback

import (
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/llehouerou/tide/internal/engine"
	"github.com/llehouerou/tide/internal/log"
	"github.com/llehouerou/tide/internal/mediacache"
	"github.com/llehouerou/tide/internal/state"
)

// ErrEmptyPlaylist is returned when LoadPlaylist is given no items.
var ErrEmptyPlaylist = errors.New("playback: empty playlist")

// defaultVolumeStep is the volume increment used by IncreaseVolume and
// DecreaseVolume when the session is not configured otherwise.
const defaultVolumeStep = 0.07

// SeekDirection selects which way a relative seek moves.
type SeekDirection int

const (
	SeekBackward SeekDirection = iota
	SeekForward
)

// SubtitleTrack selects a subtitle source: an in-band track by index or
// an external file by URI. Selecting one replaces the other; passing a
// nil SubtitleTrack to ConfigureSubtitleTrack disables subtitles.
type SubtitleTrack interface {
	subtitleTrack()
}

// InbandSubtitle selects a subtitle track embedded in the stream.
type InbandSubtitle struct {
	Index int
}

// ExternalSubtitle selects a subtitle file by URI.
type ExternalSubtitle struct {
	URI string
}

func (InbandSubtitle) subtitleTrack()   {}
func (ExternalSubtitle) subtitleTrack() {}

// Options configures a session.
type Options struct {
	// CacheFile is the path of the resume-position document. Empty
	// disables resume caching for this session.
	CacheFile string

	// Store persists shell state (volume, last playlist) across runs.
	// Nil disables state persistence.
	Store *state.Manager

	// VolumeStep overrides the increment used by Increase/DecreaseVolume.
	// Zero means the default step.
	VolumeStep float64
}

// Session is the façade both the engine-callback layer and the UI call
// into. It owns the engine handle, translates engine callbacks into
// registry operations and event emissions, and exposes the command
// surface that mutates engine and registry state consistently.
type Session struct {
	id         PlayerID
	engine     engine.Interface
	registry   *Registry
	store      *state.Manager
	volumeStep float64

	closeOnce sync.Once
	closeErr  error
}

// NewSession constructs a session around eng, inserts its state record
// into reg and wires the engine callbacks. When opts.Store holds a
// volume for this player, it is restored into the engine.
func NewSession(eng engine.Interface, reg *Registry, opts Options) *Session {
	var cache *mediacache.Cache
	if opts.CacheFile != "" {
		cache = mediacache.Open(opts.CacheFile)
	}

	step := opts.VolumeStep
	if step <= 0 {
		step = defaultVolumeStep
	}

	s := &Session{
		id:         PlayerID(eng.Name()),
		engine:     eng,
		registry:   reg,
		store:      opts.Store,
		volumeStep: step,
	}

	reg.Insert(s.id, NewRecord(cache))
	bindCallbacks(s.id, eng, reg)

	if s.store != nil {
		if v, ok, err := s.store.Volume(string(s.id)); err != nil {
			log.Warnf("playback: restore volume for %s: %v", s.id, err)
		} else if ok {
			eng.SetVolume(v)
		}
	}

	return s
}

// ID returns the player identifier of this session.
func (s *Session) ID() PlayerID {
	return s.id
}

// Subscribe registers a new event sink for this player. Once the
// session is closed it returns an already-closed subscription, so
// consumers can always range over Events and wait on Done.
func (s *Session) Subscribe() *Subscription {
	var sub *Subscription
	s.registry.WithMut(s.id, func(r *Record) {
		sub = r.Subscribe()
	})
	if sub == nil {
		sub = newSubscription()
		sub.Close()
	}
	return sub
}

// LoadPlaylist replaces the playlist, loads the first item into the
// engine and resets the playlist cursor.
func (s *Session) LoadPlaylist(items []string) error {
	if len(items) == 0 {
		return ErrEmptyPlaylist
	}
	s.engine.SetURI(items[0])
	s.registry.WithMut(s.id, func(r *Record) {
		r.SetPlaylist(items)
	})
	return nil
}

// Playlist returns the current playlist and cursor.
func (s *Session) Playlist() (items []string, index int) {
	s.registry.With(s.id, func(r *Record) {
		items = r.Playlist()
		index = r.CurrentIndex()
	})
	return items, index
}

// Seek moves playback by offset in the given direction, clamped to the
// stream edges: backward seeks only run when the position is at least
// offset from the start, forward seeks only when the destination stays
// within a known duration. Unknown duration means a live stream, which
// disables forward seeking entirely. Out-of-range seeks are no-ops, not
// errors.
func (s *Session) Seek(direction SeekDirection, offset time.Duration) {
	position, ok := s.engine.Position()
	if !ok {
		return
	}

	switch direction {
	case SeekBackward:
		if position >= offset {
			s.engine.Seek(position - offset)
		}
	case SeekForward:
		duration, known := s.engine.Duration()
		if known && position+offset <= duration {
			s.engine.Seek(position + offset)
		}
	}
}

// SeekTo moves playback to an absolute position.
func (s *Session) SeekTo(position time.Duration) {
	s.engine.Seek(position)
}

// Position reports the engine's current playback position.
func (s *Session) Position() (time.Duration, bool) {
	return s.engine.Position()
}

// Duration reports the engine's current stream duration; ok is false
// for live streams.
func (s *Session) Duration() (time.Duration, bool) {
	return s.engine.Duration()
}

// CurrentURI returns the URI currently loaded in the engine.
func (s *Session) CurrentURI() string {
	return s.engine.CurrentURI()
}

// TogglePause plays when paused and pauses otherwise. The caller
// supplies the current state; tracking it here as well would let the
// two copies diverge.
func (s *Session) TogglePause(currentlyPaused bool) {
	if currentlyPaused {
		s.engine.Play()
	} else {
		s.engine.Pause()
	}
}

// Stop halts playback.
func (s *Session) Stop() {
	s.engine.Stop()
}

// SetVolume sets the engine volume on the 0-1 range.
func (s *Session) SetVolume(volume float64) {
	s.engine.SetVolume(volume)
}

// Volume returns the engine volume.
func (s *Session) Volume() float64 {
	return s.engine.Volume()
}

// IncreaseVolume raises the volume by one step, clamped to 1.0.
func (s *Session) IncreaseVolume() {
	value := s.engine.Volume()
	if value+s.volumeStep < 1.0 {
		s.engine.SetVolume(value + s.volumeStep)
	} else {
		s.engine.SetVolume(1.0)
	}
}

// DecreaseVolume lowers the volume by one step, clamped to 0.0.
func (s *Session) DecreaseVolume() {
	value := s.engine.Volume()
	if value >= s.volumeStep {
		s.engine.SetVolume(value - s.volumeStep)
	} else {
		s.engine.SetVolume(0.0)
	}
}

// ToggleMute mutes or unmutes the engine.
func (s *Session) ToggleMute(enabled bool) {
	s.engine.SetMuted(enabled)
}

// ConfigureSubtitleTrack selects a subtitle source, or disables
// subtitles when track is nil. Selecting an external file replaces any
// in-band selection and vice versa.
func (s *Session) ConfigureSubtitleTrack(track SubtitleTrack) error {
	enabled := false
	switch t := track.(type) {
	case nil:
	case InbandSubtitle:
		if err := s.engine.SetSubtitleTrack(t.Index); err != nil {
			return err
		}
		enabled = true
	case ExternalSubtitle:
		s.engine.SetSubtitleURI(t.URI)
		enabled = true
	}
	s.engine.SetSubtitleTrackEnabled(enabled)
	return nil
}

// SetAudioTrackIndex selects the audio track; a negative index disables
// audio.
func (s *Session) SetAudioTrackIndex(index int) error {
	s.engine.SetAudioTrackEnabled(index >= 0)
	if index >= 0 {
		return s.engine.SetAudioTrack(index)
	}
	return nil
}

// SetVideoTrackIndex selects the video track; a negative index disables
// video.
func (s *Session) SetVideoTrackIndex(index int) error {
	s.engine.SetVideoTrackEnabled(index >= 0)
	if index >= 0 {
		return s.engine.SetVideoTrack(index)
	}
	return nil
}

// SetAudioVisualization enables the named visualization, or disables
// visualization when name is empty.
func (s *Session) SetAudioVisualization(name string) error {
	if name == "" {
		s.engine.SetVisualizationEnabled(false)
		return nil
	}
	if err := s.engine.SetVisualization(name); err != nil {
		return err
	}
	s.engine.SetVisualizationEnabled(true)
	return nil
}

// WriteLastKnownPosition persists the current playback position as the
// resume point for the current asset. It skips persistence when there
// is no URI, when the URI is an ephemeral fd source, when the duration
// is unknown (a live stream cannot be resumed) and when the position
// equals the duration exactly (a fully-watched item would otherwise
// resume straight into end-of-stream). A persistence failure is
// returned, not swallowed, but never interrupts playback.
func (s *Session) WriteLastKnownPosition() error {
	uri := s.engine.CurrentURI()
	if uri == "" {
		return nil
	}
	if u, err := url.Parse(uri); err == nil && u.Scheme == "fd" {
		return nil
	}

	position, _ := s.engine.Position()
	duration, known := s.engine.Duration()
	if !known {
		return nil
	}
	if position == duration {
		return nil
	}

	var persistErr error
	s.registry.WithMut(s.id, func(r *Record) {
		persistErr = r.UpdateCacheAndPersist(mediacache.KeyForURI(uri), position)
	})
	return persistErr
}

// Close tears the session down: it records the last known position,
// snapshots shell state into the store, removes the record from the
// registry and closes every subscription. Lookups for this player fail
// cleanly afterwards. Close is idempotent.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if err := s.WriteLastKnownPosition(); err != nil {
			log.Warnf("playback: write last position for %s: %v", s.id, err)
			s.closeErr = err
		}

		if s.store != nil {
			s.snapshotState()
		}

		s.registry.Remove(s.id, func(r *Record) {
			r.closeSubscribers()
		})
	})
	return s.closeErr
}

func (s *Session) snapshotState() {
	if err := s.store.SaveVolume(string(s.id), s.engine.Volume()); err != nil {
		log.Warnf("playback: save volume for %s: %v", s.id, err)
	}

	var items []string
	var index int
	s.registry.With(s.id, func(r *Record) {
		items = r.Playlist()
		index = r.CurrentIndex()
	})
	if len(items) == 0 {
		return
	}
	if err := s.store.SavePlaylist(string(s.id), items, index); err != nil {
		log.Warnf("playback: save playlist for %s: %v", s.id, err)
	}
}
