package core

import (
	"context"
	"fmt"
	"testing"
)

func TestServiceCredentialResolver_ConstantCredentials(t *testing.T) {
	resolver := ServiceCredentialResolver{OrganizationID: " 00Dxx0000001 "}

	creds, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if creds.AuthToken != "" || creds.UserID != "" {
		t.Fatalf("guest credentials must be tokenless: %#v", creds)
	}
	if creds.OrgID != "00Dxx0000001" {
		t.Fatalf("unexpected org %q", creds.OrgID)
	}
}

func TestChainCredentialResolver_FirstHitWins(t *testing.T) {
	host := &stubHostSession{
		creds: Credentials{AuthToken: "host-token", OrgID: "00D", UserID: "005"},
		ok:    true,
	}
	cache := NewMemoryTokenCache()
	cache.SetToken("cached-token")
	delegate := &stubRefreshDelegate{token: "delegate-token"}

	resolver := NewChainCredentialResolver(
		HostSessionSource{Provider: host},
		CachedTokenSource{Cache: cache},
		DelegateSource{Delegate: delegate, Cache: cache},
	)

	creds, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if creds.AuthToken != "host-token" {
		t.Fatalf("expected host session to win, got %q", creds.AuthToken)
	}
	if delegate.calls != 0 {
		t.Fatalf("delegate must not run when an earlier source hits")
	}
}

func TestHostSessionSource_ErrorFallsThrough(t *testing.T) {
	host := &stubHostSession{err: fmt.Errorf("keychain unavailable")}
	cache := NewMemoryTokenCache()
	cache.SetToken("cached-token")

	resolver := NewChainCredentialResolver(
		HostSessionSource{Provider: host},
		CachedTokenSource{Cache: cache, OrganizationID: "00D", UserID: "005"},
	)

	creds, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if creds.AuthToken != "cached-token" {
		t.Fatalf("broken host lookup must fall through to the cache, got %q", creds.AuthToken)
	}
	if creds.OrgID != "00D" || creds.UserID != "005" {
		t.Fatalf("cached credentials must carry identity context: %#v", creds)
	}
}

func TestHostSessionSource_TokenlessSessionPasses(t *testing.T) {
	host := &stubHostSession{creds: Credentials{OrgID: "00D"}, ok: true}

	source := HostSessionSource{Provider: host}
	_, ok, err := source.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ok {
		t.Fatalf("a session without a token must pass to the next source")
	}
}

func TestDelegateSource_CachesToken(t *testing.T) {
	cache := NewMemoryTokenCache()
	delegate := &stubRefreshDelegate{token: "  fresh-token  "}

	source := DelegateSource{Delegate: delegate, Cache: cache, OrganizationID: "00D", UserID: "005"}
	creds, ok, err := source.Resolve(context.Background())
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	if creds.AuthToken != "fresh-token" {
		t.Fatalf("expected trimmed delegate token, got %q", creds.AuthToken)
	}
	if token, cached := cache.Token(); !cached || token != "fresh-token" {
		t.Fatalf("expected delegate token in cache, got %q", token)
	}
}

func TestDelegateSource_ErrorAbortsChain(t *testing.T) {
	delegate := &stubRefreshDelegate{err: fmt.Errorf("host rejected refresh")}

	resolver := NewChainCredentialResolver(
		DelegateSource{Delegate: delegate},
	)
	_, err := resolver.Resolve(context.Background())
	if code := textCodeOf(t, err); code != BridgeErrorNotAvailable {
		t.Fatalf("expected %s, got %s", BridgeErrorNotAvailable, code)
	}
}

func TestDelegateSource_EmptyTokenPasses(t *testing.T) {
	source := DelegateSource{Delegate: &stubRefreshDelegate{token: "   "}}

	_, ok, err := source.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ok {
		t.Fatalf("blank delegate token must pass, not hit")
	}
}

func TestChainCredentialResolver_TotalMiss(t *testing.T) {
	resolver := NewChainCredentialResolver(
		HostSessionSource{},
		CachedTokenSource{Cache: NewMemoryTokenCache()},
		DelegateSource{},
	)

	_, err := resolver.Resolve(context.Background())
	if code := textCodeOf(t, err); code != BridgeErrorNotAvailable {
		t.Fatalf("expected %s, got %s", BridgeErrorNotAvailable, code)
	}
}

func TestChainCredentialResolver_NoSourcesReportsNoActivity(t *testing.T) {
	// An empty chain means the host never wired an auth surface; that is a
	// different signal than present sources that all missed.
	for _, resolver := range []*ChainCredentialResolver{
		NewChainCredentialResolver(),
		NewChainCredentialResolver(nil, nil),
	} {
		_, err := resolver.Resolve(context.Background())
		if code := textCodeOf(t, err); code != BridgeErrorNoActivity {
			t.Fatalf("expected %s, got %s", BridgeErrorNoActivity, code)
		}
	}
}

func TestMemoryTokenCache(t *testing.T) {
	cache := NewMemoryTokenCache()

	if _, ok := cache.Token(); ok {
		t.Fatalf("empty cache must report no token")
	}

	cache.SetToken("  token-1  ")
	token, ok := cache.Token()
	if !ok || token != "token-1" {
		t.Fatalf("expected trimmed token, got %q ok=%v", token, ok)
	}

	cache.SetToken("   ")
	if _, ok := cache.Token(); ok {
		t.Fatalf("blank set must leave the cache empty")
	}

	cache.SetToken("token-2")
	cache.Clear()
	if _, ok := cache.Token(); ok {
		t.Fatalf("clear must empty the cache")
	}
}
