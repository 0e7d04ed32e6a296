package core

import (
	"context"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const (
	DefaultRefreshRequestTimeout = 2 * time.Minute

	defaultRefreshInitialBackoff = 500 * time.Millisecond
	defaultRefreshMaxBackoff     = 10 * time.Second
)

type RefreshBackoffScheduler interface {
	NextDelay(attempt int) time.Duration
}

type ExponentialBackoffScheduler struct {
	Initial time.Duration
	Max     time.Duration
}

func (s ExponentialBackoffScheduler) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	initial := s.Initial
	if initial <= 0 {
		initial = defaultRefreshInitialBackoff
	}
	max := s.Max
	if max <= 0 {
		max = defaultRefreshMaxBackoff
	}

	delay := initial
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}

type refreshOutcome struct {
	token string
	err   error
}

type pendingRefresh struct {
	id   string
	done chan refreshOutcome
}

// RefreshBroker mediates the token-refresh round trip between the native
// layer and the application layer as an explicit single-slot continuation.
// Request occupies the slot and blocks; Provide or Fail resumes it. A second
// Request while one is pending is rejected rather than silently replacing
// the first continuation.
type RefreshBroker struct {
	mu      sync.Mutex
	pending *pendingRefresh
	timeout time.Duration
	onNeed  func(requestID string)
}

type RefreshBrokerOption func(*RefreshBroker)

// WithRefreshTimeout bounds how long a Request waits for a provided token.
func WithRefreshTimeout(timeout time.Duration) RefreshBrokerOption {
	return func(b *RefreshBroker) {
		if timeout > 0 {
			b.timeout = timeout
		}
	}
}

// WithRefreshNeededFunc is invoked once per accepted Request, after the slot
// is occupied. The event bridge hangs off this hook.
func WithRefreshNeededFunc(fn func(requestID string)) RefreshBrokerOption {
	return func(b *RefreshBroker) {
		b.onNeed = fn
	}
}

func NewRefreshBroker(opts ...RefreshBrokerOption) *RefreshBroker {
	broker := &RefreshBroker{timeout: DefaultRefreshRequestTimeout}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(broker)
	}
	return broker
}

// Pending reports whether a refresh continuation is currently in flight.
func (b *RefreshBroker) Pending() bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending != nil
}

// Request begins a refresh round trip and blocks until Provide, Fail, the
// context, or the broker timeout settles it.
func (b *RefreshBroker) Request(ctx context.Context) (string, error) {
	if b == nil {
		return "", refreshInternalError("refresh broker is not configured")
	}

	b.mu.Lock()
	if b.pending != nil {
		inFlight := b.pending.id
		b.mu.Unlock()
		return "", goerrors.New("core: token refresh already in flight", goerrors.CategoryConflict).
			WithTextCode(BridgeErrorRefreshInFlight).
			WithMetadata(map[string]any{"pending_request_id": inFlight})
	}
	request := &pendingRefresh{
		id:   uuid.NewString(),
		done: make(chan refreshOutcome, 1),
	}
	b.pending = request
	onNeed := b.onNeed
	timeout := b.timeout
	b.mu.Unlock()

	if onNeed != nil {
		onNeed(request.id)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case outcome := <-request.done:
		if outcome.err != nil {
			return "", outcome.err
		}
		return outcome.token, nil
	case <-timer.C:
		if outcome, settled := b.clear(request); settled {
			if outcome.err != nil {
				return "", outcome.err
			}
			return outcome.token, nil
		}
		return "", goerrors.New("core: token refresh timed out", goerrors.CategoryAuth).
			WithTextCode(BridgeErrorRefreshFailed)
	case <-ctx.Done():
		if outcome, settled := b.clear(request); settled {
			if outcome.err != nil {
				return "", outcome.err
			}
			return outcome.token, nil
		}
		return "", goerrors.Wrap(ctx.Err(), goerrors.CategoryAuth, "core: token refresh aborted").
			WithTextCode(BridgeErrorRefreshFailed)
	}
}

// Provide resumes the pending continuation with a refreshed token.
func (b *RefreshBroker) Provide(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return b.settle(refreshOutcome{err: goerrors.New(
			"core: refreshed token is required", goerrors.CategoryBadInput).
			WithTextCode(BridgeErrorInvalidConfig)}, true)
	}
	return b.settle(refreshOutcome{token: token}, false)
}

// Fail resumes the pending continuation with a refresh failure.
func (b *RefreshBroker) Fail(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "token refresh failed"
	}
	return b.settle(refreshOutcome{err: goerrors.New(
		"core: "+reason, goerrors.CategoryAuth).
		WithTextCode(BridgeErrorRefreshFailed)}, false)
}

func (b *RefreshBroker) settle(outcome refreshOutcome, keepPendingOnBadInput bool) error {
	if b == nil {
		return refreshInternalError("refresh broker is not configured")
	}
	b.mu.Lock()
	request := b.pending
	if request == nil {
		b.mu.Unlock()
		return goerrors.New("core: no pending refresh", goerrors.CategoryConflict).
			WithTextCode(BridgeErrorNoPendingRefresh)
	}
	if outcome.err != nil && keepPendingOnBadInput {
		// A blank token is the provider's mistake, not a settled refresh;
		// the continuation stays armed for a retry.
		b.mu.Unlock()
		return outcome.err
	}
	b.pending = nil
	// Delivered under the lock (the channel is buffered) so clear observes a
	// settled outcome instead of racing it.
	request.done <- outcome
	b.mu.Unlock()
	return nil
}

// clear releases the slot after a timeout or cancellation. If Provide or Fail
// settled the request first, the outcome is returned so the requester honors
// it instead of reporting a failure for a token that was already accepted.
func (b *RefreshBroker) clear(request *pendingRefresh) (refreshOutcome, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == request {
		b.pending = nil
		return refreshOutcome{}, false
	}
	select {
	case outcome := <-request.done:
		return outcome, true
	default:
		return refreshOutcome{}, false
	}
}

func refreshInternalError(message string) error {
	return goerrors.New("core: "+message, goerrors.CategoryInternal).
		WithTextCode(BridgeErrorInternal)
}
