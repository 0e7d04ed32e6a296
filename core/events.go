package core

import (
	"strings"
	"sync"
)

const (
	ChannelLog          = "log"
	ChannelNavigation   = "navigation"
	ChannelTokenRefresh = "token_refresh"
	ChannelAuthFailure  = "auth_failure"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogEvent carries a native SDK log line: level, message, and an optional
// stringified error.
type LogEvent struct {
	Level   LogLevel
	Message string
	Error   string
}

// AuthFailureEvent carries an optional error string from the native layer.
type AuthFailureEvent struct {
	Error string
}

// TokenRefreshEvent has no payload beyond the continuation id.
type TokenRefreshEvent struct {
	RequestID string
}

type LogListener func(event LogEvent)

type NavigationListener func(request NavigationRequest)

type TokenRefreshListener func(event TokenRefreshEvent)

type AuthFailureListener func(event AuthFailureEvent)

// EventBridge relays native SDK callbacks to application listeners. Every
// channel is disabled until a listener registers, so an unused channel costs
// nothing. Delivery order within a channel follows emission order; no
// cross-channel ordering is guaranteed.
type EventBridge struct {
	mu           sync.RWMutex
	log          LogListener
	navigation   NavigationListener
	tokenRefresh TokenRefreshListener
	authFailure  AuthFailureListener
}

func NewEventBridge() *EventBridge {
	return &EventBridge{}
}

func (b *EventBridge) OnLog(listener LogListener) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = listener
}

func (b *EventBridge) OnNavigation(listener NavigationListener) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.navigation = listener
}

func (b *EventBridge) OnTokenRefresh(listener TokenRefreshListener) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokenRefresh = listener
}

func (b *EventBridge) OnAuthFailure(listener AuthFailureListener) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.authFailure = listener
}

// Enabled reports whether a listener is registered for the channel.
func (b *EventBridge) Enabled(channel string) bool {
	if b == nil {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	switch strings.TrimSpace(strings.ToLower(channel)) {
	case ChannelLog:
		return b.log != nil
	case ChannelNavigation:
		return b.navigation != nil
	case ChannelTokenRefresh:
		return b.tokenRefresh != nil
	case ChannelAuthFailure:
		return b.authFailure != nil
	default:
		return false
	}
}

func (b *EventBridge) EmitLog(event LogEvent) {
	if b == nil {
		return
	}
	b.mu.RLock()
	listener := b.log
	b.mu.RUnlock()
	if listener == nil {
		return
	}
	listener(event)
}

func (b *EventBridge) EmitNavigation(request NavigationRequest) {
	if b == nil {
		return
	}
	b.mu.RLock()
	listener := b.navigation
	b.mu.RUnlock()
	if listener == nil {
		return
	}
	listener(request.Normalize())
}

func (b *EventBridge) EmitTokenRefresh(event TokenRefreshEvent) {
	if b == nil {
		return
	}
	b.mu.RLock()
	listener := b.tokenRefresh
	b.mu.RUnlock()
	if listener == nil {
		return
	}
	listener(event)
}

func (b *EventBridge) EmitAuthFailure(event AuthFailureEvent) {
	if b == nil {
		return
	}
	b.mu.RLock()
	listener := b.authFailure
	b.mu.RUnlock()
	if listener == nil {
		return
	}
	listener(event)
}
