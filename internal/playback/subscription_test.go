package playback

import (
	"testing"
	"time"
)

func TestSubscription_DeliversInOrder(t *testing.T) {
	sub := newSubscription()

	events := []Event{
		MediaInfoUpdated{},
		PositionUpdated{},
		EndOfStream{URI: "file:///a.mkv"},
		EndOfPlaylist{},
	}
	for _, ev := range events {
		if !sub.send(ev) {
			t.Fatalf("send(%T) = false, want true", ev)
		}
	}

	for i, want := range events {
		got := <-sub.Events
		if got != want {
			t.Errorf("event %d = %#v, want %#v", i, got, want)
		}
	}
}

func TestSubscription_SendAfterClose(t *testing.T) {
	sub := newSubscription()
	sub.Close()

	if sub.send(PositionUpdated{}) {
		t.Error("send after Close should report a dead subscriber")
	}
}

func TestSubscription_CloseUnblocksSender(t *testing.T) {
	sub := newSubscription()

	// Fill the buffer without a consumer.
	for i := 0; i < eventBufferSize; i++ {
		if !sub.send(PositionUpdated{}) {
			t.Fatal("send into free buffer should succeed")
		}
	}

	done := make(chan bool)
	go func() {
		done <- sub.send(PositionUpdated{})
	}()

	sub.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("send unblocked by Close should report a dead subscriber")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send still blocked after Close")
	}
}

func TestSubscription_CloseIdempotent(t *testing.T) {
	sub := newSubscription()
	sub.Close()
	sub.Close()
	<-sub.Done
}
