package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/livecard/larkstream/internal/adapter"
	"github.com/livecard/larkstream/internal/logger"
	"github.com/livecard/larkstream/models"
)

const (
	// DefaultThrottle is the minimum interval between accepted updates.
	DefaultThrottle = 100 * time.Millisecond

	// maxContainedErrors is the number of contained delivery failures after
	// which the circuit breaker closes the session for good.
	maxContainedErrors = 5

	// queueCapacity bounds the per-session mutation queue. Accepted updates
	// arrive at most once per throttle window, so the queue only fills when
	// the remote surface is much slower than the producer.
	queueCapacity = 64

	// summaryMaxLen bounds the collapsed-view summary set on close.
	summaryMaxLen = 50
)

type state int

const (
	stateUnstarted state = iota
	stateActive
	stateClosed
)

// Options configures a [Session].
type Options struct {
	// Throttle is the minimum interval between accepted updates. Zero or
	// negative selects [DefaultThrottle].
	Throttle time.Duration

	// OnError is invoked for every contained delivery failure. May be nil.
	OnError func(error)

	// Logger receives structured session logs. Nil selects a nop logger.
	Logger *logger.Logger
}

// Session owns the lifecycle of one remote live card. It is safe for
// concurrent use by multiple producers; mutations are totally ordered by the
// acceptance order of their updates.
type Session struct {
	api      adapter.CardAPI
	throttle time.Duration
	onError  func(error)
	logger   *logger.Logger

	mu           sync.Mutex
	st           state
	starting     bool
	finalized    bool
	cardID       string
	messageID    string
	sequence     int
	currentText  string
	pending      string
	hasPending   bool
	lastAccepted time.Time
	errCount     int

	// ctx is detached from the Start caller's context so queued mutations
	// survive a request-scoped cancellation.
	ctx context.Context

	qmu     sync.Mutex
	qclosed bool
	tasks   chan func()
	done    chan struct{}

	now func() time.Time
}

// New constructs an unstarted session speaking to api. Nothing touches the
// network until [Session.Start].
func New(api adapter.CardAPI, opts Options) *Session {
	throttle := opts.Throttle
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Session{
		api:      api,
		throttle: throttle,
		onError:  opts.OnError,
		logger:   log,
		now:      time.Now,
	}
}

// Start creates the remote card and sends the initial message referencing it
// to the recipient. Idempotent: a second call on a started session is a
// no-op returning nil. Any failure propagates and leaves the session
// unstarted with no partial state retained.
func (s *Session) Start(ctx context.Context, receiveID string, idType models.ReceiveIDType) error {
	s.mu.Lock()
	if s.st != stateUnstarted || s.starting {
		s.mu.Unlock()
		return nil
	}
	s.starting = true
	s.mu.Unlock()

	cardID, err := s.api.CreateCard(ctx)
	if err != nil {
		s.abortStart()
		return fmt.Errorf("create card: %w", err)
	}

	messageID, err := s.api.SendCardMessage(ctx, receiveID, idType, cardID)
	if err != nil {
		s.abortStart()
		return fmt.Errorf("send card message: %w", err)
	}

	s.mu.Lock()
	s.cardID = cardID
	s.messageID = messageID
	s.sequence = 1
	s.currentText = ""
	// The window opens at start, so a burst right after the card appears
	// coalesces like any other.
	s.lastAccepted = s.now()
	s.ctx = context.WithoutCancel(ctx)
	s.tasks = make(chan func(), queueCapacity)
	s.done = make(chan struct{})
	s.st = stateActive
	s.starting = false
	s.mu.Unlock()

	go s.worker()

	s.logger.Info().
		Str("card_id", cardID).
		Str("message_id", messageID).
		Msg("streaming session started")
	return nil
}

// Update records text as the latest partial body and, throttle permitting,
// enqueues a content-replace mutation. Calls inside the throttle window only
// replace the pending value; a later accepted update or Close flushes it.
// No-op on an unstarted or closed session. Never fails: delivery errors are
// contained and surface only through [Session.ErrorCount] and the error
// callback.
func (s *Session) Update(text string) {
	s.mu.Lock()
	if s.st != stateActive {
		s.mu.Unlock()
		return
	}

	now := s.now()
	if now.Sub(s.lastAccepted) < s.throttle {
		// Inside the window: keep only the newest value for a later flush.
		s.pending = text
		s.hasPending = true
		s.mu.Unlock()
		return
	}

	s.pending = ""
	s.hasPending = false
	// Stamp before the network call so a burst issued while a request is in
	// flight still coalesces.
	s.lastAccepted = now
	s.mu.Unlock()

	s.enqueue(func() {
		if s.isClosed() {
			return // close raced in; skip rather than interrupt
		}
		s.pushContent(text)
	})
}

// Close finalizes the session: it marks the session closed, drains the
// mutation queue, flushes the final text (explicit argument wins over a
// pending throttled value, which wins over the last sent text), and disables
// streaming mode with a truncated summary. Never fails; flush errors are
// contained. A second Close, or a Close after the circuit breaker tripped,
// performs no further mutations.
func (s *Session) Close(finalText ...string) {
	s.mu.Lock()
	if s.st == stateUnstarted || s.finalized {
		s.mu.Unlock()
		return
	}
	tripped := s.st == stateClosed
	s.st = stateClosed
	s.finalized = true
	pending, hadPending := s.pending, s.hasPending
	s.pending = ""
	s.hasPending = false
	s.mu.Unlock()

	if !tripped {
		var explicit string
		hasExplicit := len(finalText) > 0 && finalText[0] != ""
		if hasExplicit {
			explicit = finalText[0]
		}
		s.enqueue(s.finalizeTask(explicit, hasExplicit, pending, hadPending))
	}

	s.qmu.Lock()
	s.qclosed = true
	close(s.tasks)
	s.qmu.Unlock()

	<-s.done
	s.logger.Info().Str("card_id", s.CardID()).Int("errors", s.ErrorCount()).Msg("streaming session closed")
}

// Active reports whether Start succeeded and the session has not been closed
// by Close or the circuit breaker.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st == stateActive
}

// ErrorCount returns the number of contained delivery failures so far.
func (s *Session) ErrorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errCount
}

// CardID returns the remote card id, or "" before Start.
func (s *Session) CardID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cardID
}

// MessageID returns the id of the message carrying the card, or "" before
// Start.
func (s *Session) MessageID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messageID
}

// worker is the single consumer of the session's task queue. Running tasks
// one at a time is what guarantees the total order of mutations.
func (s *Session) worker() {
	defer close(s.done)
	for task := range s.tasks {
		task()
	}
}

// enqueue hands a task to the worker unless the queue has been shut down by
// Close, in which case the task is dropped.
func (s *Session) enqueue(task func()) {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	if s.qclosed {
		return
	}
	s.tasks <- task
}

// pushContent issues one content-replace mutation. currentText is set before
// the call so the latest intended state is never lost even if this call fails
// and a later one races in.
func (s *Session) pushContent(text string) {
	s.mu.Lock()
	seq := s.sequence
	s.sequence++
	s.currentText = text
	cardID := s.cardID
	s.mu.Unlock()

	if err := s.api.UpdateContent(s.ctx, cardID, text, seq); err != nil {
		s.containError(fmt.Errorf("content update: %w", err))
	}
}

// finalizeTask builds the closing flush: it runs after every earlier queued
// mutation has drained, sends the final text if it differs from what was last
// sent, and always follows with the settings mutation that disables streaming
// mode.
func (s *Session) finalizeTask(explicit string, hasExplicit bool, pending string, hadPending bool) func() {
	return func() {
		s.mu.Lock()
		final := s.currentText
		switch {
		case hasExplicit:
			final = explicit
		case hadPending:
			final = pending
		}
		current := s.currentText
		cardID := s.cardID
		s.mu.Unlock()

		if final != current {
			s.pushContent(final)
		}

		settings, err := models.ClosedSettingsJSON(summarize(final))
		if err != nil {
			s.containError(err)
			return
		}

		s.mu.Lock()
		seq := s.sequence
		s.sequence++
		s.mu.Unlock()

		if err := s.api.UpdateSettings(s.ctx, cardID, settings, seq); err != nil {
			s.containError(fmt.Errorf("close settings update: %w", err))
		}
	}
}

// containError counts and reports a delivery failure without ever raising it
// to the producer. Reaching the error threshold closes the session for good:
// a one-way transition with no reset, so a persistently failing endpoint
// stops receiving partial updates.
func (s *Session) containError(err error) {
	s.mu.Lock()
	s.errCount++
	count := s.errCount
	tripped := count >= maxContainedErrors && s.st == stateActive
	if tripped {
		s.st = stateClosed
	}
	s.mu.Unlock()

	s.logger.Error().Err(err).Int("error_count", count).Msg("delivery failure contained")
	if s.onError != nil {
		s.onError(err)
	}
	if tripped {
		s.logger.Warn().Int("error_count", count).Msg("error threshold reached, session closed")
	}
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st == stateClosed
}

func (s *Session) abortStart() {
	s.mu.Lock()
	s.starting = false
	s.mu.Unlock()
}

// summarize collapses whitespace runs (newlines included) to single spaces
// and truncates to summaryMaxLen runes with an ellipsis suffix.
func summarize(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")

	runes := []rune(collapsed)
	if len(runes) <= summaryMaxLen {
		return collapsed
	}
	return string(runes[:summaryMaxLen-3]) + "..."
}
