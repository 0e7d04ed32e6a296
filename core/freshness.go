package core

import (
	"strings"
	"time"
)

const (
	DefaultRefreshLeadWindow  = 5 * time.Minute
	DefaultExpiringSoonWindow = 5 * time.Minute
)

// CredentialTokenState captures access-token lifecycle state for the cached
// employee credential. Expiry is optional; tokens without one never report
// expired.
type CredentialTokenState struct {
	ExpiresAt      *time.Time
	HasAccessToken bool
	CanAutoRefresh bool
	IsExpired      bool
	IsExpiringSoon bool
}

// ResolveCredentialTokenState evaluates expiry and refreshability flags.
func ResolveCredentialTokenState(
	now time.Time,
	token string,
	expiresAt *time.Time,
	canAutoRefresh bool,
	expiringSoonWindow time.Duration,
) CredentialTokenState {
	if now.IsZero() {
		now = time.Now().UTC()
	} else {
		now = now.UTC()
	}
	if expiringSoonWindow <= 0 {
		expiringSoonWindow = DefaultExpiringSoonWindow
	}

	state := CredentialTokenState{
		HasAccessToken: strings.TrimSpace(token) != "",
		CanAutoRefresh: canAutoRefresh,
	}
	if expiresAt == nil {
		return state
	}
	expiry := expiresAt.UTC()
	state.ExpiresAt = &expiry
	if !expiry.After(now) {
		state.IsExpired = true
		return state
	}
	state.IsExpiringSoon = !expiry.After(now.Add(expiringSoonWindow))
	return state
}

// ShouldRequestRefresh returns true when a refresh should be requested ahead
// of the next native credential lookup.
func ShouldRequestRefresh(now time.Time, state CredentialTokenState, refreshLeadWindow time.Duration) bool {
	if !state.CanAutoRefresh {
		return false
	}
	if !state.HasAccessToken {
		return true
	}
	if state.ExpiresAt == nil {
		return false
	}
	if refreshLeadWindow <= 0 {
		refreshLeadWindow = DefaultRefreshLeadWindow
	}
	if now.IsZero() {
		now = time.Now().UTC()
	} else {
		now = now.UTC()
	}
	return !state.ExpiresAt.UTC().After(now.Add(refreshLeadWindow))
}
