package notify

import (
	"github.com/llehouerou/tide/internal/log"
	"github.com/llehouerou/tide/internal/playback"
)

// Watch drains a playback subscription in a goroutine and posts desktop
// notifications for the events that warrant one: a new asset and
// engine-reported errors. current resolves a human-readable description
// of the current asset at notification time. Watch returns immediately;
// the goroutine exits when the subscription is closed.
func Watch(n Notifier, sub *playback.Subscription, current func() string) {
	go func() {
		var lastID uint32
		for {
			select {
			case <-sub.Done:
				return
			case ev := <-sub.Events:
				switch e := ev.(type) {
				case playback.MediaInfoUpdated:
					id, err := n.Notify(Notification{
						Title:      "Now playing",
						Body:       current(),
						ReplacesID: lastID,
						Timeout:    5000,
					})
					if err != nil {
						log.Warnf("notify: now-playing notification: %v", err)
						continue
					}
					lastID = id
				case playback.ErrorEvent:
					if _, err := n.Notify(Notification{
						Title:   "Playback error",
						Body:    e.Message,
						Urgency: UrgencyCritical,
					}); err != nil {
						log.Warnf("notify: error notification: %v", err)
					}
				}
			}
		}
	}()
}
