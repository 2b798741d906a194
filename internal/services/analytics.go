package services

import (
	"context"
	"sync"
	"time"

	"menulink/internal/logger"
)

// EventSender posts one analytics event.
type EventSender interface {
	TrackEvent(ctx context.Context, token, eventType string, payload map[string]interface{}) error
}

// Tracker records events without blocking or failing the caller.
type Tracker interface {
	Track(ctx context.Context, eventType string, payload map[string]interface{})
	Wait()
}

type tracker struct {
	sender  EventSender
	log     *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewTracker(sender EventSender, log *logger.Logger, timeout time.Duration) Tracker {
	return &tracker{sender: sender, log: log, timeout: timeout}
}

func (t *tracker) Track(ctx context.Context, eventType string, payload map[string]interface{}) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		// detached from the request so the response is not held up
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
		defer cancel()
		if err := t.sender.TrackEvent(sendCtx, "", eventType, payload); err != nil {
			t.log.Warn(ctx).Err(err).Str("event", eventType).Msg("analytics error")
		}
	}()
}

// Wait blocks until in-flight events finish. Used on shutdown and in tests.
func (t *tracker) Wait() {
	t.wg.Wait()
}
