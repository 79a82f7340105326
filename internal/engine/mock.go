package engine

import (
	"sync"
	"time"
)

// Mock is a test double for the playback engine. Tests drive it by
// setting position/duration and firing callbacks the way a real engine
// would.
type Mock struct {
	mu sync.Mutex

	name        string
	uri         string
	state       State
	position    time.Duration
	positionOK  bool
	duration    time.Duration
	durationOK  bool
	volume      float64
	muted       bool
	subtitleURI string

	cb Callbacks

	uriCalls      []string
	seekCalls     []time.Duration
	playCalls     int
	pauseCalls    int
	stopCalls     int
	subtitleTrack int
	subtitleOn    bool
	audioTrack    int
	audioOn       bool
	videoTrack    int
	videoOn       bool
	visualization string
	visOn         bool
	trackErr      error
}

// NewMock creates a mock engine named id.
func NewMock(id string) *Mock {
	return &Mock{
		name:          id,
		state:         Stopped,
		volume:        1.0,
		subtitleTrack: -1,
		audioTrack:    -1,
		videoTrack:    -1,
	}
}

func (m *Mock) Name() string { return m.name }

func (m *Mock) CurrentURI() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uri
}

func (m *Mock) SetURI(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uri = uri
	m.uriCalls = append(m.uriCalls, uri)
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	m.state = Playing
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
	m.state = Stopped
}

func (m *Mock) Seek(position time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, position)
	m.position = position
	m.positionOK = true
}

func (m *Mock) Position() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position, m.positionOK
}

func (m *Mock) Duration() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration, m.durationOK
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) SetVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = volume
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

func (m *Mock) SetSubtitleURI(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subtitleURI = uri
}

func (m *Mock) SetSubtitleTrack(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.trackErr != nil {
		return m.trackErr
	}
	m.subtitleTrack = index
	return nil
}

func (m *Mock) SetSubtitleTrackEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subtitleOn = enabled
}

func (m *Mock) SetAudioTrack(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.trackErr != nil {
		return m.trackErr
	}
	m.audioTrack = index
	return nil
}

func (m *Mock) SetAudioTrackEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audioOn = enabled
}

func (m *Mock) SetVideoTrack(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.trackErr != nil {
		return m.trackErr
	}
	m.videoTrack = index
	return nil
}

func (m *Mock) SetVideoTrackEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.videoOn = enabled
}

func (m *Mock) SetVisualization(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.trackErr != nil {
		return m.trackErr
	}
	m.visualization = name
	return nil
}

func (m *Mock) SetVisualizationEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visOn = enabled
}

func (m *Mock) Connect(cb Callbacks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cb = cb
}

// Test helpers

func (m *Mock) SetPosition(p time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = p
	m.positionOK = true
}

func (m *Mock) ClearPosition() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = 0
	m.positionOK = false
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
	m.durationOK = true
}

func (m *Mock) ClearDuration() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = 0
	m.durationOK = false
}

func (m *Mock) SetTrackError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trackErr = err
}

func (m *Mock) URICalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.uriCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

func (m *Mock) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *Mock) SubtitleURI() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subtitleURI
}

func (m *Mock) SubtitleTrack() (index int, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subtitleTrack, m.subtitleOn
}

func (m *Mock) AudioTrack() (index int, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.audioTrack, m.audioOn
}

func (m *Mock) VideoTrack() (index int, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.videoTrack, m.videoOn
}

func (m *Mock) Visualization() (name string, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visualization, m.visOn
}

func (m *Mock) callbacks() Callbacks {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cb
}

// Callback firing helpers simulate the engine's asynchronous signals.
// They run the handler on the calling goroutine, like the signal
// dispatcher of a real engine would on its own context.

func (m *Mock) FireURILoaded(uri string) {
	if cb := m.callbacks(); cb.URILoaded != nil {
		cb.URILoaded(uri)
	}
}

func (m *Mock) FireEndOfStream() {
	if cb := m.callbacks(); cb.EndOfStream != nil {
		cb.EndOfStream()
	}
}

func (m *Mock) FireMediaInfoUpdated(info MediaInfo) {
	if cb := m.callbacks(); cb.MediaInfoUpdated != nil {
		cb.MediaInfoUpdated(info)
	}
}

func (m *Mock) FirePositionUpdated(position time.Duration) {
	if cb := m.callbacks(); cb.PositionUpdated != nil {
		cb.PositionUpdated(position)
	}
}

func (m *Mock) FireVideoDimensionsChanged(width, height int) {
	if cb := m.callbacks(); cb.VideoDimensionsChanged != nil {
		cb.VideoDimensionsChanged(width, height)
	}
}

func (m *Mock) FireStateChanged(state State) {
	if cb := m.callbacks(); cb.StateChanged != nil {
		cb.StateChanged(state)
	}
}

func (m *Mock) FireVolumeChanged() {
	if cb := m.callbacks(); cb.VolumeChanged != nil {
		cb.VolumeChanged()
	}
}

func (m *Mock) FireError(message string) {
	if cb := m.callbacks(); cb.Error != nil {
		cb.Error(message)
	}
}

func (m *Mock) FireAudioVideoOffsetChanged(offset time.Duration) {
	if cb := m.callbacks(); cb.AudioVideoOffsetChanged != nil {
		cb.AudioVideoOffsetChanged(offset)
	}
}

func (m *Mock) FireSubtitleVideoOffsetChanged(offset time.Duration) {
	if cb := m.callbacks(); cb.SubtitleVideoOffsetChanged != nil {
		cb.SubtitleVideoOffsetChanged(offset)
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
