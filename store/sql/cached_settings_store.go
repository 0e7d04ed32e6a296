package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-agentforce/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const settingsCacheKeyPrefix = "go-agentforce::settings::v1"

type cachedSettingValue struct {
	Value string
	Found bool
}

// CachedSettingsStore layers a read cache over a settings store. Writes go
// straight through and invalidate the cached entry.
type CachedSettingsStore struct {
	base      core.SettingsStore
	cache     repositorycache.CacheService
	namespace string
}

func NewCachedSettingsStore(
	base core.SettingsStore,
	cacheService repositorycache.CacheService,
	namespace string,
) (*CachedSettingsStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base settings store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: settings cache service is required")
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = core.DefaultSettingsNamespace
	}
	return &CachedSettingsStore{
		base:      base,
		cache:     cacheService,
		namespace: namespace,
	}, nil
}

// SettingsCacheKey returns the deterministic cache key contract for settings
// reads: go-agentforce::settings::v1::<namespace>::<key> with each segment
// URL-path escaped.
func SettingsCacheKey(namespace string, key string) (string, error) {
	namespace = strings.TrimSpace(namespace)
	key = strings.TrimSpace(key)
	if namespace == "" || key == "" {
		return "", fmt.Errorf("sqlstore: settings namespace and key are required")
	}
	segments := []string{url.PathEscape(namespace), url.PathEscape(key)}
	return strings.Join(append([]string{settingsCacheKeyPrefix}, segments...), "::"), nil
}

func (s *CachedSettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return "", false, fmt.Errorf("sqlstore: cached settings store is not configured")
	}
	cacheKey, err := SettingsCacheKey(s.namespace, key)
	if err != nil {
		return "", false, err
	}

	cached, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (cachedSettingValue, error) {
		value, found, fetchErr := s.base.Get(ctx, key)
		if fetchErr != nil {
			return cachedSettingValue{}, fetchErr
		}
		return cachedSettingValue{Value: value, Found: found}, nil
	})
	if err != nil {
		return "", false, err
	}
	return cached.Value, cached.Found, nil
}

func (s *CachedSettingsStore) Set(ctx context.Context, key string, value string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached settings store is not configured")
	}
	if err := s.base.Set(ctx, key, value); err != nil {
		return err
	}
	return s.invalidate(ctx, key)
}

func (s *CachedSettingsStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached settings store is not configured")
	}
	if err := s.base.Delete(ctx, key); err != nil {
		return err
	}
	return s.invalidate(ctx, key)
}

func (s *CachedSettingsStore) Reset(ctx context.Context) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached settings store is not configured")
	}
	if err := s.base.Reset(ctx); err != nil {
		return err
	}
	// The store only ever writes the fixed bridge keys, so a reset
	// invalidates each one rather than flushing the whole cache service.
	for _, key := range []string{
		core.SettingsKeyFeatureFlags,
		core.SettingsKeyEmployeeAgentID,
		core.SettingsKeyServiceConfig,
	} {
		if err := s.invalidate(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (s *CachedSettingsStore) invalidate(ctx context.Context, key string) error {
	cacheKey, err := SettingsCacheKey(s.namespace, key)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

var _ core.SettingsStore = (*CachedSettingsStore)(nil)
