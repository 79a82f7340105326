package playback

import (
	"time"

	"github.com/llehouerou/tide/internal/log"
	"github.com/llehouerou/tide/internal/mediacache"
)

// Record is the per-player mutable state: the playlist and its cursor,
// the subscriber list, the last URI reported through a media-info
// callback, and an optional resume-position cache.
//
// A Record is only reached through Registry.With / Registry.WithMut,
// which serialize access per player; its methods assume the caller
// holds the corresponding lock and perform no locking of their own.
type Record struct {
	subscribers []*Subscription
	playlist    []string
	index       int
	currentURI  string
	cache       *mediacache.Cache
}

// NewRecord creates a record with an optional resume cache.
func NewRecord(cache *mediacache.Cache) *Record {
	return &Record{cache: cache}
}

// SetPlaylist replaces the playlist and resets the cursor to the first
// item. It does not command the engine; the session loads item zero.
func (r *Record) SetPlaylist(items []string) {
	r.playlist = append([]string(nil), items...)
	r.index = 0
}

// Playlist returns a copy of the playlist items.
func (r *Record) Playlist() []string {
	return append([]string(nil), r.playlist...)
}

// CurrentIndex returns the playlist cursor. It equals the playlist
// length once the playlist has been exhausted.
func (r *Record) CurrentIndex() int {
	return r.index
}

// Subscribe registers a new event sink. Subscribers registered after an
// event was emitted never see that event.
func (r *Record) Subscribe() *Subscription {
	sub := newSubscription()
	r.subscribers = append(r.subscribers, sub)
	return sub
}

// Notify delivers ev to every live subscriber. Closed subscriptions are
// pruned and the remaining subscribers still receive the event.
func (r *Record) Notify(ev Event) {
	live := r.subscribers[:0]
	for _, sub := range r.subscribers {
		if sub.send(ev) {
			live = append(live, sub)
		} else {
			log.Debugf("playback: pruned closed subscriber (%T)", ev)
		}
	}
	for i := len(live); i < len(r.subscribers); i++ {
		r.subscribers[i] = nil
	}
	r.subscribers = live
}

// MediaInfoUpdated emits MediaInfoUpdated at most once per distinct
// URI. The engine fires the underlying callback repeatedly for the same
// asset; comparing against the last seen URI debounces those.
func (r *Record) MediaInfoUpdated(uri string) {
	if r.currentURI == uri {
		return
	}
	r.currentURI = uri
	r.Notify(MediaInfoUpdated{})
}

// CurrentURI returns the last URI reported via a media-info callback.
func (r *Record) CurrentURI() string {
	return r.currentURI
}

// EndOfStream runs the playlist-advance transition. It emits
// EndOfStream for the finished item, advances the cursor and asks load
// to start the next item; past the last item it emits EndOfPlaylist
// instead. The cursor saturates at the playlist length, so a stray
// extra end-of-stream re-emits EndOfPlaylist without moving further.
func (r *Record) EndOfStream(uri string, load func(uri string)) {
	r.Notify(EndOfStream{URI: uri})

	if r.index < len(r.playlist) {
		r.index++
	}
	if r.index < len(r.playlist) {
		load(r.playlist[r.index])
		return
	}
	r.Notify(EndOfPlaylist{})
}

// ResumePosition returns the cached resume position for uri, if a
// cache is attached and holds one.
func (r *Record) ResumePosition(uri string) (time.Duration, bool) {
	if r.cache == nil {
		return 0, false
	}
	return r.cache.FindLastPosition(uri)
}

// UpdateCacheAndPersist upserts a resume position and writes the cache
// through to disk. Without an attached cache it is a no-op: caching is
// optional per session.
func (r *Record) UpdateCacheAndPersist(key mediacache.ContentKey, position time.Duration) error {
	if r.cache == nil {
		return nil
	}
	r.cache.Update(key, position)
	return r.cache.Persist()
}

// closeSubscribers closes every subscription; used on session teardown.
func (r *Record) closeSubscribers() {
	for _, sub := range r.subscribers {
		sub.Close()
	}
	r.subscribers = nil
}
