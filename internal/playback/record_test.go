package playback

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/llehouerou/tide/internal/mediacache"
)

func drainOne(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.Events:
		return ev
	default:
		t.Fatal("expected a pending event")
		return nil
	}
}

func assertNoEvent(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case ev := <-sub.Events:
		t.Fatalf("unexpected event %#v", ev)
	default:
	}
}

func TestRecord_SetPlaylistResetsIndex(t *testing.T) {
	r := NewRecord(nil)
	r.SetPlaylist([]string{"a", "b"})
	r.EndOfStream("a", func(string) {})

	r.SetPlaylist([]string{"x", "y", "z"})

	if r.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 after SetPlaylist", r.CurrentIndex())
	}
	if got := r.Playlist(); len(got) != 3 || got[0] != "x" {
		t.Errorf("Playlist() = %v, want [x y z]", got)
	}
}

func TestRecord_PlaylistIsCopied(t *testing.T) {
	items := []string{"a", "b"}
	r := NewRecord(nil)
	r.SetPlaylist(items)

	items[0] = "mutated"

	if got := r.Playlist(); got[0] != "a" {
		t.Errorf("Playlist()[0] = %q, want a (caller slice must not alias)", got[0])
	}
}

func TestRecord_NotifyAllSubscribersExactlyOnce(t *testing.T) {
	r := NewRecord(nil)
	subs := []*Subscription{r.Subscribe(), r.Subscribe(), r.Subscribe()}

	r.Notify(EndOfStream{URI: "a"})
	r.Notify(EndOfPlaylist{})

	for i, sub := range subs {
		if ev := drainOne(t, sub); ev != (EndOfStream{URI: "a"}) {
			t.Errorf("subscriber %d first event = %#v", i, ev)
		}
		if ev := drainOne(t, sub); ev != (EndOfPlaylist{}) {
			t.Errorf("subscriber %d second event = %#v", i, ev)
		}
		assertNoEvent(t, sub)
	}
}

func TestRecord_NotifyPrunesClosedSubscribers(t *testing.T) {
	r := NewRecord(nil)
	dead := r.Subscribe()
	live := r.Subscribe()

	dead.Close()
	r.Notify(PositionUpdated{})

	// The live subscriber still sees the event.
	if ev := drainOne(t, live); ev != (PositionUpdated{}) {
		t.Errorf("live subscriber event = %#v", ev)
	}
	if len(r.subscribers) != 1 {
		t.Errorf("subscriber count = %d, want 1 after pruning", len(r.subscribers))
	}
}

func TestRecord_SubscribeAfterEmission(t *testing.T) {
	r := NewRecord(nil)
	r.Notify(EndOfPlaylist{})

	late := r.Subscribe()

	assertNoEvent(t, late)
}

func TestRecord_MediaInfoUpdatedDebounced(t *testing.T) {
	r := NewRecord(nil)
	sub := r.Subscribe()

	r.MediaInfoUpdated("file:///a.mkv")
	r.MediaInfoUpdated("file:///a.mkv")
	r.MediaInfoUpdated("file:///a.mkv")

	if ev := drainOne(t, sub); ev != (MediaInfoUpdated{}) {
		t.Errorf("event = %#v, want MediaInfoUpdated", ev)
	}
	assertNoEvent(t, sub)

	r.MediaInfoUpdated("file:///b.mkv")
	if ev := drainOne(t, sub); ev != (MediaInfoUpdated{}) {
		t.Errorf("event = %#v, want MediaInfoUpdated for new URI", ev)
	}
	if r.CurrentURI() != "file:///b.mkv" {
		t.Errorf("CurrentURI() = %q", r.CurrentURI())
	}
}

func TestRecord_EndOfStreamAdvances(t *testing.T) {
	r := NewRecord(nil)
	r.SetPlaylist([]string{"x", "y"})
	sub := r.Subscribe()

	var loaded []string
	load := func(uri string) { loaded = append(loaded, uri) }

	r.EndOfStream("x", load)

	if ev := drainOne(t, sub); ev != (EndOfStream{URI: "x"}) {
		t.Errorf("event = %#v, want EndOfStream(x)", ev)
	}
	assertNoEvent(t, sub)
	if r.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", r.CurrentIndex())
	}
	if len(loaded) != 1 || loaded[0] != "y" {
		t.Errorf("loaded = %v, want [y]", loaded)
	}
}

func TestRecord_EndOfStreamTerminal(t *testing.T) {
	r := NewRecord(nil)
	r.SetPlaylist([]string{"x", "y"})
	sub := r.Subscribe()

	var loaded []string
	load := func(uri string) { loaded = append(loaded, uri) }

	r.EndOfStream("x", load)
	drainOne(t, sub) // EndOfStream(x)

	r.EndOfStream("y", load)

	if ev := drainOne(t, sub); ev != (EndOfStream{URI: "y"}) {
		t.Errorf("event = %#v, want EndOfStream(y)", ev)
	}
	if ev := drainOne(t, sub); ev != (EndOfPlaylist{}) {
		t.Errorf("event = %#v, want EndOfPlaylist", ev)
	}
	if len(loaded) != 1 {
		t.Errorf("loaded = %v, no further engine load expected", loaded)
	}

	// A stray extra end-of-stream must not advance or go out of bounds.
	index := r.CurrentIndex()
	r.EndOfStream("y", load)
	drainOne(t, sub) // EndOfStream(y)
	if ev := drainOne(t, sub); ev != (EndOfPlaylist{}) {
		t.Errorf("event = %#v, want EndOfPlaylist again", ev)
	}
	if r.CurrentIndex() != index {
		t.Errorf("CurrentIndex() moved from %d to %d on stray end-of-stream", index, r.CurrentIndex())
	}
	if len(loaded) != 1 {
		t.Errorf("loaded = %v, stray end-of-stream must not load", loaded)
	}
}

func TestRecord_EndOfStreamEveryItem(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	r := NewRecord(nil)
	r.SetPlaylist(items)

	var loaded []string
	load := func(uri string) { loaded = append(loaded, uri) }

	for i := range items {
		wantIndex := i + 1
		r.EndOfStream(items[i], load)
		if wantIndex < len(items) && r.CurrentIndex() != wantIndex {
			t.Fatalf("after end-of-stream %d: index = %d, want %d", i, r.CurrentIndex(), wantIndex)
		}
	}

	if len(loaded) != len(items)-1 {
		t.Errorf("loaded %d items, want %d", len(loaded), len(items)-1)
	}
}

func TestRecord_UpdateCacheAndPersist_NoCache(t *testing.T) {
	r := NewRecord(nil)

	if err := r.UpdateCacheAndPersist(mediacache.KeyForURI("a"), time.Second); err != nil {
		t.Errorf("UpdateCacheAndPersist without cache = %v, want nil", err)
	}
}

func TestRecord_UpdateCacheAndPersist_WritesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")
	r := NewRecord(mediacache.Open(path))

	if err := r.UpdateCacheAndPersist(mediacache.KeyForURI("file:///a.mkv"), 90*time.Second); err != nil {
		t.Fatalf("UpdateCacheAndPersist() error: %v", err)
	}

	pos, ok := mediacache.Open(path).FindLastPosition("file:///a.mkv")
	if !ok || pos != 90*time.Second {
		t.Errorf("reopened cache position = %v, %v, want 90s, true", pos, ok)
	}
}

func TestRecord_ResumePosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")
	cache := mediacache.Open(path)
	cache.Update(mediacache.KeyForURI("file:///a.mkv"), 3*time.Minute)

	r := NewRecord(cache)

	pos, ok := r.ResumePosition("file:///a.mkv")
	if !ok || pos != 3*time.Minute {
		t.Errorf("ResumePosition = %v, %v, want 3m, true", pos, ok)
	}
	if _, ok := r.ResumePosition("file:///other.mkv"); ok {
		t.Error("ResumePosition for unknown URI should report absence")
	}

	if _, ok := NewRecord(nil).ResumePosition("file:///a.mkv"); ok {
		t.Error("ResumePosition without cache should report absence")
	}
}
