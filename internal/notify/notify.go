// Package notify posts desktop notifications for the steps an operator
// would otherwise miss while looking at the flashcards: pauses, cards
// marked forgotten, and shutdown.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dycw/skritter/internal/review"
)

// Sender delivers one notification. replaces is the id of a notification to
// update in place, or 0.
type Sender interface {
	Send(ctx context.Context, summary, body string, replaces uint32) (uint32, error)
}

// Message is a notification derived from a step.
type Message struct {
	Summary string
	Body    string
}

// MessageFor returns the notification for s. ok is false for steps that
// are not worth interrupting the operator for.
func MessageFor(s review.Step) (Message, bool) {
	switch s.Action {
	case review.ActionTogglePause:
		if s.From.Paused() {
			return Message{"Skritter resumed", "Back to " + lower(s.To)}, true
		}
		return Message{"Skritter paused", "Paused during " + lower(s.From)}, true
	case review.ActionFailCurrent:
		return Message{"Marked forgotten", "Current card marked as forgotten"}, true
	case review.ActionFailPrevious:
		return Message{"Marked forgotten", "Previous card marked as forgotten"}, true
	case review.ActionShutDown:
		return Message{"Skritter stopped", "Review loop shut down"}, true
	}
	return Message{}, false
}

func lower(s review.State) string {
	switch s {
	case review.StateInit, review.StateTest:
		return "test"
	default:
		return "review"
	}
}

const sendTimeout = 2 * time.Second

// Notifier is a review.Observer that sends notifications from a background
// goroutine so a slow notification daemon never delays the review loop.
// Successive notifications replace each other.
type Notifier struct {
	sender Sender
	log    *slog.Logger
	queue  chan Message
	done   chan struct{}
	once   sync.Once
}

var _ review.Observer = (*Notifier)(nil)

// New starts a Notifier. Close must be called to flush it.
func New(sender Sender, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	n := &Notifier{
		sender: sender,
		log:    log,
		queue:  make(chan Message, 16),
		done:   make(chan struct{}),
	}
	go n.loop()
	return n
}

func (n *Notifier) OnStep(s review.Step) {
	msg, ok := MessageFor(s)
	if !ok {
		return
	}
	select {
	case n.queue <- msg:
	default:
		n.log.Warn("notification dropped", "summary", msg.Summary)
	}
}

func (n *Notifier) loop() {
	defer close(n.done)
	var id uint32
	for msg := range n.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		newID, err := n.sender.Send(ctx, msg.Summary, msg.Body, id)
		cancel()
		if err != nil {
			n.log.Warn("notification failed", "summary", msg.Summary, "error", err)
			continue
		}
		id = newID
	}
}

// Close sends queued notifications and stops the worker.
func (n *Notifier) Close() error {
	n.once.Do(func() { close(n.queue) })
	<-n.done
	return nil
}
