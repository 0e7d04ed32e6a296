package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// ServiceCredentialResolver is the guest-mode resolver: a constant function,
// not a real resolution. Token and user are always empty.
type ServiceCredentialResolver struct {
	OrganizationID string
}

func (r ServiceCredentialResolver) Resolve(context.Context) (Credentials, error) {
	return Credentials{OrgID: strings.TrimSpace(r.OrganizationID)}, nil
}

// ChainCredentialResolver evaluates credential sources in priority order and
// returns the first hit. Sources signal a pass with ok=false; a source error
// aborts the chain. A total miss is a configuration error for the single
// call, never process-fatal.
type ChainCredentialResolver struct {
	sources []CredentialSource
}

func NewChainCredentialResolver(sources ...CredentialSource) *ChainCredentialResolver {
	kept := make([]CredentialSource, 0, len(sources))
	for _, source := range sources {
		if source == nil {
			continue
		}
		kept = append(kept, source)
	}
	return &ChainCredentialResolver{sources: kept}
}

func (r *ChainCredentialResolver) Resolve(ctx context.Context) (Credentials, error) {
	if r == nil || len(r.sources) == 0 {
		// No sources at all means the host auth surface is absent, which is
		// a different condition than sources that were asked and missed.
		return Credentials{}, goerrors.New("core: no credential sources configured", goerrors.CategoryAuth).
			WithTextCode(BridgeErrorNoActivity)
	}
	for _, source := range r.sources {
		creds, ok, err := source.Resolve(ctx)
		if err != nil {
			return Credentials{}, goerrors.Wrap(err, goerrors.CategoryAuth,
				fmt.Sprintf("core: credential source %q failed", source.Name())).
				WithTextCode(BridgeErrorNotAvailable)
		}
		if ok {
			return creds, nil
		}
	}
	return Credentials{}, credentialsNotAvailableError("all credential sources exhausted")
}

func credentialsNotAvailableError(reason string) error {
	return goerrors.New("core: credentials not available: "+reason, goerrors.CategoryAuth).
		WithTextCode(BridgeErrorNotAvailable)
}

// HostSessionSource resolves against a live host Mobile SDK session. It is
// the highest-priority employee source.
type HostSessionSource struct {
	Provider HostSessionProvider
}

func (s HostSessionSource) Name() string { return "host_session" }

func (s HostSessionSource) Resolve(ctx context.Context) (Credentials, bool, error) {
	if s.Provider == nil {
		return Credentials{}, false, nil
	}
	creds, ok, err := s.Provider.CurrentSession(ctx)
	if err != nil {
		// A broken host lookup falls through to the cached token rather
		// than failing the chain; the session may simply be gone.
		return Credentials{}, false, nil
	}
	if !ok || strings.TrimSpace(creds.AuthToken) == "" {
		return Credentials{}, false, nil
	}
	return creds, true, nil
}

// CachedTokenSource resolves the last cached direct token.
type CachedTokenSource struct {
	Cache          TokenCache
	OrganizationID string
	UserID         string
}

func (s CachedTokenSource) Name() string { return "cached_token" }

func (s CachedTokenSource) Resolve(context.Context) (Credentials, bool, error) {
	if s.Cache == nil {
		return Credentials{}, false, nil
	}
	token, ok := s.Cache.Token()
	if !ok || strings.TrimSpace(token) == "" {
		return Credentials{}, false, nil
	}
	return Credentials{
		AuthToken: strings.TrimSpace(token),
		OrgID:     strings.TrimSpace(s.OrganizationID),
		UserID:    strings.TrimSpace(s.UserID),
	}, true, nil
}

// DelegateSource asks the registered refresh delegate for a fresh token and
// caches the result for subsequent lookups.
type DelegateSource struct {
	Delegate       RefreshDelegate
	Cache          TokenCache
	OrganizationID string
	UserID         string
}

func (s DelegateSource) Name() string { return "refresh_delegate" }

func (s DelegateSource) Resolve(ctx context.Context) (Credentials, bool, error) {
	if s.Delegate == nil {
		return Credentials{}, false, nil
	}
	token, err := s.Delegate.RefreshToken(ctx)
	if err != nil {
		return Credentials{}, false, goerrors.Wrap(err, goerrors.CategoryAuth, "core: refresh delegate failed").
			WithTextCode(BridgeErrorRefreshFailed)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Credentials{}, false, nil
	}
	if s.Cache != nil {
		s.Cache.SetToken(token)
	}
	return Credentials{
		AuthToken: token,
		OrgID:     strings.TrimSpace(s.OrganizationID),
		UserID:    strings.TrimSpace(s.UserID),
	}, true, nil
}

// MemoryTokenCache is the default in-process token cache.
type MemoryTokenCache struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenCache() *MemoryTokenCache {
	return &MemoryTokenCache{}
}

func (c *MemoryTokenCache) Token() (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if strings.TrimSpace(c.token) == "" {
		return "", false
	}
	return c.token, true
}

func (c *MemoryTokenCache) SetToken(token string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *MemoryTokenCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

var (
	_ CredentialResolver = ServiceCredentialResolver{}
	_ CredentialResolver = (*ChainCredentialResolver)(nil)
	_ CredentialSource   = HostSessionSource{}
	_ CredentialSource   = CachedTokenSource{}
	_ CredentialSource   = DelegateSource{}
	_ TokenCache         = (*MemoryTokenCache)(nil)
)
