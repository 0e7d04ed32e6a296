package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

const JobIDCredentialRefresh = "agentforce.credential.refresh"

// ConfigureResult mirrors the resolved shape of a configure call.
type ConfigureResult struct {
	Success bool
	Mode    AgentMode
}

// LaunchResult carries the conversation handle issued by the native SDK.
type LaunchResult struct {
	Success        bool
	Mode           AgentMode
	ConversationID string
}

// ConfigurationInfo is the safe-to-display summary of the active
// configuration; tokens never appear in it.
type ConfigurationInfo struct {
	Configured     bool
	Mode           AgentMode
	OrganizationID string
	AgentID        string
	FeatureFlags   FeatureFlags
}

// FreshnessResult reports a proactive credential freshness check.
type FreshnessResult struct {
	State           CredentialTokenState
	RefreshEnqueued bool
	Refreshed       bool
	Attempts        int
}

// Service is the bridge between the application layer and the opaque
// conversational SDK. It owns the active configuration, the native
// client/conversation pair, credential resolution, and the single-slot
// token-refresh continuation. Hosts construct one per shell; there is no
// package-level instance.
type Service struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	settings        *SettingsManager
	tokenCache      TokenCache
	hostSession     HostSessionProvider
	refreshDelegate RefreshDelegate
	backoff         RefreshBackoffScheduler
	nativeFactory   NativeClientFactory
	events          *EventBridge
	jobEnqueuer     JobEnqueuer
	refresh         *RefreshBroker

	mu             sync.Mutex
	agent          *AgentConfig
	resolvedFlags  FeatureFlags
	client         NativeClient
	conversation   NativeConversation
	tokenExpiresAt *time.Time
}

// ServiceDependencies exposes the wired collaborators for composition.
type ServiceDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorFactory    ErrorFactory
	ErrorMapper     ErrorMapper
	Settings        *SettingsManager
	TokenCache      TokenCache
	HostSession     HostSessionProvider
	RefreshDelegate RefreshDelegate
	NativeFactory   NativeClientFactory
	Events          *EventBridge
	JobEnqueuer     JobEnqueuer
	RefreshBroker   *RefreshBroker
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("agentforce", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("agentforce"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.settingsStore == nil && builder.storeProvider != nil {
		provider, buildErr := builder.storeProvider.BuildStores(builder.persistenceClient)
		if buildErr != nil {
			return nil, mapBuildError(builder.errorMapper, buildErr)
		}
		if provider != nil {
			builder.settingsStore = provider.SettingsStore()
		}
	}
	if builder.settingsStore == nil {
		builder.settingsStore = NewMemorySettingsStore()
	}
	if builder.tokenCache == nil {
		builder.tokenCache = NewMemoryTokenCache()
	}
	if builder.events == nil {
		builder.events = NewEventBridge()
	}
	if builder.backoffScheduler == nil {
		builder.backoffScheduler = ExponentialBackoffScheduler{
			Initial: defaultRefreshInitialBackoff,
			Max:     defaultRefreshMaxBackoff,
		}
	}
	refreshTimeout := builder.refreshTimeout
	if refreshTimeout <= 0 {
		refreshTimeout = finalConfig.Refresh.RequestTimeout
	}

	svc := &Service{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		settings:        NewSettingsManager(builder.settingsStore),
		tokenCache:      builder.tokenCache,
		hostSession:     builder.hostSession,
		refreshDelegate: builder.refreshDelegate,
		backoff:         builder.backoffScheduler,
		nativeFactory:   builder.nativeFactory,
		events:          builder.events,
		jobEnqueuer:     builder.jobEnqueuer,
	}
	svc.refresh = NewRefreshBroker(
		WithRefreshTimeout(refreshTimeout),
		WithRefreshNeededFunc(func(requestID string) {
			svc.events.EmitTokenRefresh(TokenRefreshEvent{RequestID: requestID})
		}),
	)
	return svc, nil
}

func Setup(cfg Config, options ...Option) (*Service, error) {
	return NewService(cfg, options...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Events() *EventBridge {
	if s == nil {
		return nil
	}
	return s.events
}

func (s *Service) Settings() *SettingsManager {
	if s == nil {
		return nil
	}
	return s.settings
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:          s.logger,
		LoggerProvider:  s.loggerProvider,
		MetricsRecorder: s.metricsRecorder,
		ErrorFactory:    s.errorFactory,
		ErrorMapper:     s.errorMapper,
		Settings:        s.settings,
		TokenCache:      s.tokenCache,
		HostSession:     s.hostSession,
		RefreshDelegate: s.refreshDelegate,
		NativeFactory:   s.nativeFactory,
		Events:          s.events,
		JobEnqueuer:     s.jobEnqueuer,
		RefreshBroker:   s.refresh,
	}
}

// ConfigurePayload normalizes a raw (tagged or legacy) payload and applies it.
func (s *Service) ConfigurePayload(ctx context.Context, payload map[string]any) (ConfigureResult, error) {
	if s == nil {
		return ConfigureResult{}, fmt.Errorf("core: service is nil")
	}
	cfg, err := NormalizeAgentConfig(payload)
	if err != nil {
		return ConfigureResult{}, s.mapError(err)
	}
	return s.Configure(ctx, cfg)
}

// Configure validates the tagged config, fully tears down any prior native
// client state, and initializes a fresh client for the requested mode. No
// conversation handle survives reconfiguration.
func (s *Service) Configure(ctx context.Context, cfg AgentConfig) (result ConfigureResult, err error) {
	if s == nil {
		return ConfigureResult{}, fmt.Errorf("core: service is nil")
	}
	startedAt := time.Now()
	defer func() {
		s.observeOperation(ctx, startedAt, "configure", err, map[string]any{
			"mode": string(cfg.Mode),
		})
	}()

	if err = cfg.Validate(); err != nil {
		err = s.mapError(goerrors.Wrap(err, goerrors.CategoryBadInput, "core: invalid agent config").
			WithTextCode(BridgeErrorInvalidConfig))
		return ConfigureResult{}, err
	}
	if s.nativeFactory == nil {
		err = s.mapError(goerrors.New("core: native client factory is not configured", goerrors.CategoryOperation).
			WithTextCode(BridgeErrorConfig))
		return ConfigureResult{}, err
	}

	flags, flagErr := s.settings.ResolveFeatureFlags(ctx, cfg.FeatureFlags)
	if flagErr != nil {
		err = s.mapError(flagErr)
		return ConfigureResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardownLocked(ctx)

	nativeCfg := s.nativeConfigurationLocked(cfg, flags)
	client, factoryErr := s.nativeFactory(ctx, nativeCfg)
	if factoryErr != nil {
		err = s.mapError(goerrors.Wrap(factoryErr, goerrors.CategoryOperation, "core: native client construction failed").
			WithTextCode(BridgeErrorConfig))
		return ConfigureResult{}, err
	}
	if initErr := client.Init(ctx, nativeCfg); initErr != nil {
		err = s.mapError(goerrors.Wrap(initErr, goerrors.CategoryOperation, "core: native client init failed").
			WithTextCode(BridgeErrorConfig))
		return ConfigureResult{}, err
	}

	if cfg.Mode == ModeEmployee && cfg.Employee != nil {
		if token := strings.TrimSpace(cfg.Employee.AccessToken); token != "" {
			s.tokenCache.SetToken(token)
		}
		if agentID := strings.TrimSpace(cfg.Employee.AgentID); agentID != "" {
			if storeErr := s.settings.SetEmployeeAgentID(ctx, agentID); storeErr != nil {
				s.logWarn(ctx, "persist employee agent id failed", map[string]any{"error": storeErr.Error()})
			}
		}
	}
	if cfg.Mode == ModeService && cfg.Service != nil {
		if storeErr := s.settings.SetServiceConfig(ctx, *cfg.Service); storeErr != nil {
			s.logWarn(ctx, "persist service config failed", map[string]any{"error": storeErr.Error()})
		}
	}

	applied := cfg.Clone()
	s.agent = &applied
	s.resolvedFlags = flags
	s.client = client

	return ConfigureResult{Success: true, Mode: cfg.Mode}, nil
}

// LaunchConversation surfaces the active conversation, starting one if none
// exists yet.
func (s *Service) LaunchConversation(ctx context.Context) (result LaunchResult, err error) {
	if s == nil {
		return LaunchResult{}, fmt.Errorf("core: service is nil")
	}
	startedAt := time.Now()
	defer func() {
		s.observeOperation(ctx, startedAt, "launch_conversation", err, nil)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.agent == nil || s.client == nil {
		err = s.notConfiguredError()
		return LaunchResult{}, err
	}
	if s.conversation != nil {
		return LaunchResult{Success: true, Mode: s.agent.Mode, ConversationID: s.conversation.ID()}, nil
	}

	conversation, startErr := s.client.StartConversation(ctx)
	if startErr != nil {
		err = s.mapError(goerrors.Wrap(startErr, goerrors.CategoryOperation, "core: conversation launch failed").
			WithTextCode(BridgeErrorLaunch))
		return LaunchResult{}, err
	}
	s.conversation = conversation
	return LaunchResult{Success: true, Mode: s.agent.Mode, ConversationID: conversation.ID()}, nil
}

// StartNewConversation discards the active conversation (best effort) and
// starts a fresh one.
func (s *Service) StartNewConversation(ctx context.Context) (result LaunchResult, err error) {
	if s == nil {
		return LaunchResult{}, fmt.Errorf("core: service is nil")
	}
	startedAt := time.Now()
	defer func() {
		s.observeOperation(ctx, startedAt, "start_new_conversation", err, nil)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.agent == nil || s.client == nil {
		err = s.notConfiguredError()
		return LaunchResult{}, err
	}
	if s.conversation != nil {
		if closeErr := s.conversation.Close(ctx); closeErr != nil {
			s.logWarn(ctx, "close previous conversation failed", map[string]any{"error": closeErr.Error()})
		}
		s.conversation = nil
	}

	conversation, startErr := s.client.StartConversation(ctx)
	if startErr != nil {
		err = s.mapError(goerrors.Wrap(startErr, goerrors.CategoryOperation, "core: start new conversation failed").
			WithTextCode(BridgeErrorStartNew))
		return LaunchResult{}, err
	}
	s.conversation = conversation
	return LaunchResult{Success: true, Mode: s.agent.Mode, ConversationID: conversation.ID()}, nil
}

// CloseConversation is best effort: a conversation that is already gone is
// not an error.
func (s *Service) CloseConversation(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("core: service is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conversation == nil {
		return nil
	}
	if err := s.conversation.Close(ctx); err != nil {
		s.logWarn(ctx, "close conversation failed", map[string]any{"error": err.Error()})
	}
	s.conversation = nil
	return nil
}

func (s *Service) IsConfigured() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agent != nil
}

func (s *Service) Configuration() (AgentConfig, error) {
	if s == nil {
		return AgentConfig{}, fmt.Errorf("core: service is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.agent == nil {
		return AgentConfig{}, s.notConfiguredError()
	}
	return s.agent.Clone(), nil
}

// ConfigurationInfo never fails; an unconfigured bridge reports zero values.
func (s *Service) ConfigurationInfo() ConfigurationInfo {
	if s == nil {
		return ConfigurationInfo{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.agent == nil {
		return ConfigurationInfo{}
	}
	info := ConfigurationInfo{
		Configured:     true,
		Mode:           s.agent.Mode,
		OrganizationID: s.agent.OrganizationID(),
		FeatureFlags:   s.resolvedFlags,
	}
	if s.agent.Employee != nil {
		info.AgentID = strings.TrimSpace(s.agent.Employee.AgentID)
	}
	return info
}

func (s *Service) FeatureFlags(ctx context.Context) (FeatureFlags, error) {
	if s == nil {
		return FeatureFlags{}, fmt.Errorf("core: service is nil")
	}
	flags, err := s.settings.FeatureFlags(ctx)
	if err != nil {
		return FeatureFlags{}, s.mapError(err)
	}
	return flags, nil
}

func (s *Service) SetFeatureFlags(ctx context.Context, flags FeatureFlags) error {
	if s == nil {
		return fmt.Errorf("core: service is nil")
	}
	if err := s.settings.SetFeatureFlags(ctx, flags); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *Service) EmployeeAgentID(ctx context.Context) (string, error) {
	if s == nil {
		return "", fmt.Errorf("core: service is nil")
	}
	agentID, err := s.settings.EmployeeAgentID(ctx)
	if err != nil {
		return "", s.mapError(err)
	}
	return agentID, nil
}

func (s *Service) SetEmployeeAgentID(ctx context.Context, agentID string) error {
	if s == nil {
		return fmt.Errorf("core: service is nil")
	}
	if err := s.settings.SetEmployeeAgentID(ctx, agentID); err != nil {
		return s.mapError(err)
	}
	return nil
}

// ResetSettings clears persisted settings and tears down the active client;
// IsConfigured reports false afterwards.
func (s *Service) ResetSettings(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("core: service is nil")
	}
	s.mu.Lock()
	s.teardownLocked(ctx)
	s.mu.Unlock()

	if err := s.settings.Reset(ctx); err != nil {
		return s.mapError(err)
	}
	return nil
}

// ResolveCredentials resolves credentials for the active mode. Guest mode is
// a constant; employee mode walks host session, cached token, then the
// refresh delegate.
func (s *Service) ResolveCredentials(ctx context.Context) (Credentials, error) {
	if s == nil {
		return Credentials{}, fmt.Errorf("core: service is nil")
	}
	resolver, err := s.credentialResolver()
	if err != nil {
		return Credentials{}, err
	}
	creds, err := resolver.Resolve(ctx)
	if err != nil {
		s.events.EmitAuthFailure(AuthFailureEvent{Error: err.Error()})
		return Credentials{}, s.mapError(err)
	}
	return creds, nil
}

func (s *Service) credentialResolver() (CredentialResolver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.agent == nil {
		return nil, s.notConfiguredError()
	}
	switch s.agent.Mode {
	case ModeService:
		return ServiceCredentialResolver{OrganizationID: s.agent.OrganizationID()}, nil
	case ModeEmployee:
		employee := s.agent.Employee
		return NewChainCredentialResolver(
			HostSessionSource{Provider: s.hostSession},
			CachedTokenSource{
				Cache:          s.tokenCache,
				OrganizationID: employee.OrganizationID,
				UserID:         employee.UserID,
			},
			DelegateSource{
				Delegate:       s.refreshDelegate,
				Cache:          s.tokenCache,
				OrganizationID: employee.OrganizationID,
				UserID:         employee.UserID,
			},
		), nil
	default:
		return nil, s.mapError(fmt.Errorf("core: unsupported agent mode %q", s.agent.Mode))
	}
}

// RequestTokenRefresh runs the native-initiated refresh round trip through
// the single-slot broker. The resulting token is cached.
func (s *Service) RequestTokenRefresh(ctx context.Context) (string, error) {
	if s == nil {
		return "", fmt.Errorf("core: service is nil")
	}
	if mode, ok := s.activeMode(); !ok || mode != ModeEmployee {
		return "", s.notConfiguredError()
	}
	token, err := s.refresh.Request(ctx)
	if err != nil {
		s.events.EmitAuthFailure(AuthFailureEvent{Error: err.Error()})
		return "", s.mapError(err)
	}
	s.tokenCache.SetToken(token)
	return token, nil
}

// ProvideRefreshedToken resumes the pending refresh continuation.
func (s *Service) ProvideRefreshedToken(token string) error {
	if s == nil {
		return fmt.Errorf("core: service is nil")
	}
	if err := s.refresh.Provide(token); err != nil {
		return s.mapError(err)
	}
	return nil
}

// FailRefresh resumes the pending refresh continuation with a failure.
func (s *Service) FailRefresh(reason string) error {
	if s == nil {
		return fmt.Errorf("core: service is nil")
	}
	if err := s.refresh.Fail(reason); err != nil {
		return s.mapError(err)
	}
	return nil
}

// RefreshPending reports whether a refresh continuation is in flight.
func (s *Service) RefreshPending() bool {
	if s == nil {
		return false
	}
	return s.refresh.Pending()
}

// CacheToken stores a directly supplied token with optional expiry metadata
// for freshness checks.
func (s *Service) CacheToken(token string, expiresAt *time.Time) {
	if s == nil {
		return
	}
	s.tokenCache.SetToken(token)
	s.mu.Lock()
	if expiresAt != nil {
		expiry := expiresAt.UTC()
		s.tokenExpiresAt = &expiry
	} else {
		s.tokenExpiresAt = nil
	}
	s.mu.Unlock()
}

// EnsureCredentialFresh evaluates the cached employee token and, when it is
// missing or inside the lead window, either enqueues an out-of-band refresh
// job or drives the delegate with bounded retries.
func (s *Service) EnsureCredentialFresh(ctx context.Context) (FreshnessResult, error) {
	if s == nil {
		return FreshnessResult{}, fmt.Errorf("core: service is nil")
	}
	mode, ok := s.activeMode()
	if !ok {
		return FreshnessResult{}, s.notConfiguredError()
	}
	if mode != ModeEmployee {
		return FreshnessResult{}, nil
	}

	token, _ := s.tokenCache.Token()
	s.mu.Lock()
	expiresAt := s.tokenExpiresAt
	s.mu.Unlock()

	now := time.Now().UTC()
	state := ResolveCredentialTokenState(
		now,
		token,
		expiresAt,
		s.refreshDelegate != nil || s.jobEnqueuer != nil,
		s.config.Refresh.ExpiringSoonWindow,
	)
	result := FreshnessResult{State: state}
	if !ShouldRequestRefresh(now, state, s.config.Refresh.LeadWindow) {
		return result, nil
	}

	if s.jobEnqueuer != nil {
		msg := &JobExecutionMessage{
			JobID:          JobIDCredentialRefresh,
			IdempotencyKey: JobIDCredentialRefresh + ":" + uuid.NewString(),
			Parameters: map[string]any{
				"mode": string(ModeEmployee),
			},
		}
		if err := s.jobEnqueuer.Enqueue(ctx, msg); err != nil {
			return result, s.mapError(err)
		}
		result.RefreshEnqueued = true
		return result, nil
	}

	attempts, err := s.refreshViaDelegate(ctx, 3)
	result.Attempts = attempts
	if err != nil {
		return result, s.mapError(err)
	}
	result.Refreshed = true
	return result, nil
}

func (s *Service) refreshViaDelegate(ctx context.Context, maxAttempts int) (int, error) {
	if s.refreshDelegate == nil {
		return 0, goerrors.New("core: refresh delegate is not configured", goerrors.CategoryAuth).
			WithTextCode(BridgeErrorNotAvailable)
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		token, err := s.refreshDelegate.RefreshToken(ctx)
		if err == nil && strings.TrimSpace(token) != "" {
			s.tokenCache.SetToken(token)
			return attempt, nil
		}
		if err == nil {
			err = goerrors.New("core: refresh delegate returned empty token", goerrors.CategoryAuth).
				WithTextCode(BridgeErrorRefreshFailed)
		}
		lastErr = err
		if attempt == maxAttempts {
			break
		}
		delay := defaultRefreshInitialBackoff
		if s.backoff != nil {
			delay = s.backoff.NextDelay(attempt)
		}
		if waitErr := waitWithContext(ctx, delay); waitErr != nil {
			return attempt, waitErr
		}
	}
	return maxAttempts, lastErr
}

// EmitNativeLog relays a native SDK log line to both the structured logger
// and the log event channel.
func (s *Service) EmitNativeLog(ctx context.Context, event LogEvent) {
	if s == nil {
		return
	}
	fields := map[string]any{"source": "native"}
	if strings.TrimSpace(event.Error) != "" {
		fields["error"] = event.Error
	}
	switch event.Level {
	case LogLevelError:
		s.logError(ctx, event.Message, fields)
	case LogLevelWarn:
		s.logWarn(ctx, event.Message, fields)
	default:
		s.logInfo(ctx, event.Message, fields)
	}
	s.events.EmitLog(event)
}

// EmitNavigation relays a native navigation request to the host listener.
func (s *Service) EmitNavigation(request NavigationRequest) {
	if s == nil {
		return
	}
	s.events.EmitNavigation(request)
}

// NotifyAuthFailure relays a native authentication failure.
func (s *Service) NotifyAuthFailure(reason string) {
	if s == nil {
		return
	}
	s.events.EmitAuthFailure(AuthFailureEvent{Error: strings.TrimSpace(reason)})
}

func (s *Service) activeMode() (AgentMode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.agent == nil {
		return "", false
	}
	return s.agent.Mode, true
}

// teardownLocked fully clears native client and configuration state before a
// reconfigure or reset. Close/shutdown failures are logged, not surfaced; the
// holder is cleared regardless, so a reconfigure that later fails leaves the
// bridge unconfigured rather than pointing at a destroyed client.
func (s *Service) teardownLocked(ctx context.Context) {
	if s.conversation != nil {
		if err := s.conversation.Close(ctx); err != nil {
			s.logWarn(ctx, "teardown: close conversation failed", map[string]any{"error": err.Error()})
		}
		s.conversation = nil
	}
	if s.client != nil {
		if err := s.client.Shutdown(ctx); err != nil {
			s.logWarn(ctx, "teardown: native client shutdown failed", map[string]any{"error": err.Error()})
		}
		s.client = nil
	}
	if s.agent != nil && s.agent.Mode == ModeEmployee {
		s.tokenCache.Clear()
		s.tokenExpiresAt = nil
	}
	s.agent = nil
	s.resolvedFlags = FeatureFlags{}
}

func (s *Service) nativeConfigurationLocked(cfg AgentConfig, flags FeatureFlags) NativeConfiguration {
	out := NativeConfiguration{
		Mode:         cfg.Mode,
		FeatureFlags: flags,
		CredentialProvider: func(ctx context.Context) (Credentials, error) {
			return s.ResolveCredentials(ctx)
		},
	}
	switch cfg.Mode {
	case ModeService:
		out.ServiceAPIURL = cfg.Service.ServiceAPIURL
		out.OrganizationID = cfg.Service.OrganizationID
		out.ESDeveloperName = cfg.Service.ESDeveloperName
	case ModeEmployee:
		out.InstanceURL = cfg.Employee.InstanceURL
		out.OrganizationID = cfg.Employee.OrganizationID
		out.UserID = cfg.Employee.UserID
		out.AgentID = cfg.Employee.AgentID
	}
	return out
}

func (s *Service) notConfiguredError() error {
	return s.mapError(goerrors.New("core: bridge is not configured", goerrors.CategoryConflict).
		WithTextCode(BridgeErrorNotConfigured))
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func waitWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
