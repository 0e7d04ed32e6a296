package agentforce

import "github.com/goliatone/go-agentforce/core"

type Config = core.Config

type SettingsConfig = core.SettingsConfig

type RefreshConfig = core.RefreshConfig

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies

type AgentMode = core.AgentMode

type AgentConfig = core.AgentConfig
type ServiceAgentConfig = core.ServiceAgentConfig
type EmployeeAgentConfig = core.EmployeeAgentConfig
type FeatureFlags = core.FeatureFlags

type Credentials = core.Credentials
type CredentialResolver = core.CredentialResolver
type HostSessionProvider = core.HostSessionProvider
type RefreshDelegate = core.RefreshDelegate
type TokenCache = core.TokenCache
type SettingsStore = core.SettingsStore
type RefreshBackoffScheduler = core.RefreshBackoffScheduler

type NativeClient = core.NativeClient
type NativeClientFactory = core.NativeClientFactory
type NativeConfiguration = core.NativeConfiguration
type NativeConversation = core.NativeConversation

type EventBridge = core.EventBridge
type LogEvent = core.LogEvent
type NavigationRequest = core.NavigationRequest
type TokenRefreshEvent = core.TokenRefreshEvent
type AuthFailureEvent = core.AuthFailureEvent

type ConfigureResult = core.ConfigureResult
type LaunchResult = core.LaunchResult
type ConfigurationInfo = core.ConfigurationInfo

const (
	ModeService  = core.ModeService
	ModeEmployee = core.ModeEmployee
)

var (
	WithLogger                  = core.WithLogger
	WithLoggerProvider          = core.WithLoggerProvider
	WithMetricsRecorder         = core.WithMetricsRecorder
	WithErrorFactory            = core.WithErrorFactory
	WithErrorMapper             = core.WithErrorMapper
	WithConfigProvider          = core.WithConfigProvider
	WithOptionsResolver         = core.WithOptionsResolver
	WithSettingsStore           = core.WithSettingsStore
	WithTokenCache              = core.WithTokenCache
	WithHostSessionProvider     = core.WithHostSessionProvider
	WithRefreshDelegate         = core.WithRefreshDelegate
	WithRefreshRequestTimeout   = core.WithRefreshRequestTimeout
	WithRefreshBackoffScheduler = core.WithRefreshBackoffScheduler
	WithNativeClientFactory     = core.WithNativeClientFactory
	WithEventBridge             = core.WithEventBridge
	WithJobEnqueuer             = core.WithJobEnqueuer
	WithPersistenceClient       = core.WithPersistenceClient
	WithStoreProvider           = core.WithStoreProvider
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return core.Setup(cfg, opts...)
}
