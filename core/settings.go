package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-config/cfgx"
	opts "github.com/goliatone/go-options"
)

const (
	DefaultSettingsNamespace = "agentforce.bridge"

	SettingsKeyFeatureFlags    = "feature_flags"
	SettingsKeyEmployeeAgentID = "employee_agent_id"
	SettingsKeyServiceConfig   = "service_config"
)

// DefaultFeatureFlags is the fixed constant a missing feature-flag key
// defaults to.
func DefaultFeatureFlags() FeatureFlags {
	return FeatureFlags{}
}

// SettingsManager wraps a key-value SettingsStore with the bridge's fixed
// keys, JSON value encoding, and layered flag resolution.
type SettingsManager struct {
	store SettingsStore
}

func NewSettingsManager(store SettingsStore) *SettingsManager {
	if store == nil {
		store = NewMemorySettingsStore()
	}
	return &SettingsManager{store: store}
}

func (m *SettingsManager) Store() SettingsStore {
	if m == nil {
		return nil
	}
	return m.store
}

func (m *SettingsManager) FeatureFlags(ctx context.Context) (FeatureFlags, error) {
	if m == nil || m.store == nil {
		return DefaultFeatureFlags(), fmt.Errorf("core: settings store is not configured")
	}
	raw, ok, err := m.store.Get(ctx, SettingsKeyFeatureFlags)
	if err != nil {
		return DefaultFeatureFlags(), err
	}
	if !ok {
		return DefaultFeatureFlags(), nil
	}
	var flags FeatureFlags
	if err := json.Unmarshal([]byte(raw), &flags); err != nil {
		return DefaultFeatureFlags(), fmt.Errorf("core: decode stored feature flags: %w", err)
	}
	return flags, nil
}

func (m *SettingsManager) SetFeatureFlags(ctx context.Context, flags FeatureFlags) error {
	if m == nil || m.store == nil {
		return fmt.Errorf("core: settings store is not configured")
	}
	encoded, err := json.Marshal(flags)
	if err != nil {
		return fmt.Errorf("core: encode feature flags: %w", err)
	}
	return m.store.Set(ctx, SettingsKeyFeatureFlags, string(encoded))
}

// ResolveFeatureFlags merges fixed defaults, stored flags, and an optional
// per-call override through a layered stack; the explicit override wins.
func (m *SettingsManager) ResolveFeatureFlags(ctx context.Context, override *FeatureFlags) (FeatureFlags, error) {
	stored, err := m.FeatureFlags(ctx)
	if err != nil {
		return DefaultFeatureFlags(), err
	}

	overrideFlags := stored
	if override != nil {
		overrideFlags = *override
	}

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			flagsToLayerMap(DefaultFeatureFlags()),
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("stored", 10),
			flagsToLayerMap(stored),
			opts.WithSnapshotID[map[string]any]("stored"),
		),
		opts.NewLayer(
			opts.NewScope("override", 20),
			flagsToLayerMap(overrideFlags),
			opts.WithSnapshotID[map[string]any]("override"),
		),
	)
	if err != nil {
		return DefaultFeatureFlags(), fmt.Errorf("core: flag stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return DefaultFeatureFlags(), fmt.Errorf("core: flag merge failed: %w", err)
	}
	resolved, err := cfgx.Build[FeatureFlags](merged.Value)
	if err != nil {
		return DefaultFeatureFlags(), err
	}
	return resolved, nil
}

func (m *SettingsManager) EmployeeAgentID(ctx context.Context) (string, error) {
	if m == nil || m.store == nil {
		return "", fmt.Errorf("core: settings store is not configured")
	}
	value, ok, err := m.store.Get(ctx, SettingsKeyEmployeeAgentID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(value), nil
}

func (m *SettingsManager) SetEmployeeAgentID(ctx context.Context, agentID string) error {
	if m == nil || m.store == nil {
		return fmt.Errorf("core: settings store is not configured")
	}
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return m.store.Delete(ctx, SettingsKeyEmployeeAgentID)
	}
	return m.store.Set(ctx, SettingsKeyEmployeeAgentID, agentID)
}

// ServiceConfig loads the persisted legacy service-agent fields.
func (m *SettingsManager) ServiceConfig(ctx context.Context) (ServiceAgentConfig, bool, error) {
	if m == nil || m.store == nil {
		return ServiceAgentConfig{}, false, fmt.Errorf("core: settings store is not configured")
	}
	raw, ok, err := m.store.Get(ctx, SettingsKeyServiceConfig)
	if err != nil || !ok {
		return ServiceAgentConfig{}, false, err
	}
	var cfg ServiceAgentConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return ServiceAgentConfig{}, false, fmt.Errorf("core: decode stored service config: %w", err)
	}
	return cfg, true, nil
}

func (m *SettingsManager) SetServiceConfig(ctx context.Context, cfg ServiceAgentConfig) error {
	if m == nil || m.store == nil {
		return fmt.Errorf("core: settings store is not configured")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("core: encode service config: %w", err)
	}
	return m.store.Set(ctx, SettingsKeyServiceConfig, string(encoded))
}

func (m *SettingsManager) Reset(ctx context.Context) error {
	if m == nil || m.store == nil {
		return fmt.Errorf("core: settings store is not configured")
	}
	return m.store.Reset(ctx)
}

func flagsToLayerMap(flags FeatureFlags) map[string]any {
	return map[string]any{
		"enable_multi_agent":       flags.EnableMultiAgent,
		"enable_multi_modal_input": flags.EnableMultiModalInput,
		"enable_pdf_upload":        flags.EnablePDFUpload,
		"enable_voice":             flags.EnableVoice,
	}
}

// MemorySettingsStore is the default in-process settings store; hosts swap
// in the sql-backed store for durable preferences.
type MemorySettingsStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{values: map[string]string{}}
}

func (s *MemorySettingsStore) Get(_ context.Context, key string) (string, bool, error) {
	if s == nil {
		return "", false, fmt.Errorf("core: settings store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, fmt.Errorf("core: settings key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemorySettingsStore) Set(_ context.Context, key string, value string) error {
	if s == nil {
		return fmt.Errorf("core: settings store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("core: settings key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemorySettingsStore) Delete(_ context.Context, key string) error {
	if s == nil {
		return fmt.Errorf("core: settings store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("core: settings key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemorySettingsStore) Reset(context.Context) error {
	if s == nil {
		return fmt.Errorf("core: settings store is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = map[string]string{}
	return nil
}

var _ SettingsStore = (*MemorySettingsStore)(nil)
