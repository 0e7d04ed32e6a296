package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type AgentMode string

const (
	ModeService  AgentMode = "service"
	ModeEmployee AgentMode = "employee"
)

func (m AgentMode) Validate() error {
	switch m {
	case ModeService, ModeEmployee:
		return nil
	default:
		return fmt.Errorf("core: unsupported agent mode %q", string(m))
	}
}

// ServiceAgentConfig configures the anonymous/guest conversational mode.
type ServiceAgentConfig struct {
	ServiceAPIURL   string `koanf:"service_api_url" mapstructure:"service_api_url"`
	OrganizationID  string `koanf:"organization_id" mapstructure:"organization_id"`
	ESDeveloperName string `koanf:"es_developer_name" mapstructure:"es_developer_name"`
}

func (c ServiceAgentConfig) Validate() error {
	if strings.TrimSpace(c.ServiceAPIURL) == "" {
		return fmt.Errorf("core: service api url is required")
	}
	if strings.TrimSpace(c.OrganizationID) == "" {
		return fmt.Errorf("core: organization id is required")
	}
	if strings.TrimSpace(c.ESDeveloperName) == "" {
		return fmt.Errorf("core: es developer name is required")
	}
	return nil
}

// EmployeeAgentConfig configures the OAuth-authenticated conversational mode.
// AccessToken seeds the cached-token credential source and is optional; the
// host session and refresh delegate remain the other sources.
type EmployeeAgentConfig struct {
	InstanceURL    string `koanf:"instance_url" mapstructure:"instance_url"`
	OrganizationID string `koanf:"organization_id" mapstructure:"organization_id"`
	UserID         string `koanf:"user_id" mapstructure:"user_id"`
	AgentID        string `koanf:"agent_id" mapstructure:"agent_id"`
	AgentLabel     string `koanf:"agent_label" mapstructure:"agent_label"`
	AccessToken    string `koanf:"access_token" mapstructure:"access_token"`
}

func (c EmployeeAgentConfig) Validate() error {
	if strings.TrimSpace(c.InstanceURL) == "" {
		return fmt.Errorf("core: instance url is required")
	}
	if strings.TrimSpace(c.OrganizationID) == "" {
		return fmt.Errorf("core: organization id is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("core: user id is required")
	}
	return nil
}

// FeatureFlags toggle optional chat-surface capabilities. Persisted defaults
// merge with per-call overrides; explicit config wins.
type FeatureFlags struct {
	EnableMultiAgent      bool `koanf:"enable_multi_agent" mapstructure:"enable_multi_agent" json:"enableMultiAgent"`
	EnableMultiModalInput bool `koanf:"enable_multi_modal_input" mapstructure:"enable_multi_modal_input" json:"enableMultiModalInput"`
	EnablePDFUpload       bool `koanf:"enable_pdf_upload" mapstructure:"enable_pdf_upload" json:"enablePDFUpload"`
	EnableVoice           bool `koanf:"enable_voice" mapstructure:"enable_voice" json:"enableVoice"`
}

// AgentConfig is the tagged configuration union. Exactly one variant matching
// Mode must be populated; Validate enforces the pairing.
type AgentConfig struct {
	Mode         AgentMode
	Service      *ServiceAgentConfig
	Employee     *EmployeeAgentConfig
	FeatureFlags *FeatureFlags
}

func (c AgentConfig) Validate() error {
	if err := c.Mode.Validate(); err != nil {
		return err
	}
	switch c.Mode {
	case ModeService:
		if c.Service == nil {
			return fmt.Errorf("core: service agent config is required for mode %q", ModeService)
		}
		if c.Employee != nil {
			return fmt.Errorf("core: employee agent config must be empty for mode %q", ModeService)
		}
		return c.Service.Validate()
	case ModeEmployee:
		if c.Employee == nil {
			return fmt.Errorf("core: employee agent config is required for mode %q", ModeEmployee)
		}
		if c.Service != nil {
			return fmt.Errorf("core: service agent config must be empty for mode %q", ModeEmployee)
		}
		return c.Employee.Validate()
	}
	return nil
}

func (c AgentConfig) Clone() AgentConfig {
	out := AgentConfig{Mode: c.Mode}
	if c.Service != nil {
		service := *c.Service
		out.Service = &service
	}
	if c.Employee != nil {
		employee := *c.Employee
		out.Employee = &employee
	}
	if c.FeatureFlags != nil {
		flags := *c.FeatureFlags
		out.FeatureFlags = &flags
	}
	return out
}

// OrganizationID returns the org of the active variant.
func (c AgentConfig) OrganizationID() string {
	switch c.Mode {
	case ModeService:
		if c.Service != nil {
			return strings.TrimSpace(c.Service.OrganizationID)
		}
	case ModeEmployee:
		if c.Employee != nil {
			return strings.TrimSpace(c.Employee.OrganizationID)
		}
	}
	return ""
}

// Credentials are resolved, ephemeral OAuth-shaped credentials. Guest mode
// carries empty token and user.
type Credentials struct {
	AuthToken string
	OrgID     string
	UserID    string
}

// CredentialSource is one leaf of the fallback chain. Resolve returns
// ok=false to pass to the next source without failing the chain.
type CredentialSource interface {
	Name() string
	Resolve(ctx context.Context) (Credentials, bool, error)
}

// CredentialResolver resolves credentials for the active mode.
type CredentialResolver interface {
	Resolve(ctx context.Context) (Credentials, error)
}

// HostSessionProvider is the host-app hook into the Mobile SDK session.
type HostSessionProvider interface {
	CurrentSession(ctx context.Context) (Credentials, bool, error)
}

// RefreshDelegate supplies a fresh token asynchronously, typically by asking
// the host application layer.
type RefreshDelegate interface {
	RefreshToken(ctx context.Context) (string, error)
}

// TokenCache holds the last known employee access token.
type TokenCache interface {
	Token() (string, bool)
	SetToken(token string)
	Clear()
}

// SettingsStore is pure key-value persistence under a fixed namespace.
// Missing keys are not errors; they default at the settings-manager layer.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Reset(ctx context.Context) error
}

// StoreProvider builds persistence-backed stores from an opaque client.
type StoreProvider interface {
	SettingsStore() SettingsStore
	BuildStores(persistenceClient any) (StoreProvider, error)
}

// NativeConfiguration is the flattened configuration handed to the opaque
// conversational SDK client on Init.
type NativeConfiguration struct {
	Mode            AgentMode
	ServiceAPIURL   string
	ESDeveloperName string
	InstanceURL     string
	OrganizationID  string
	UserID          string
	AgentID         string
	FeatureFlags    FeatureFlags

	// CredentialProvider is invoked by the native layer whenever it needs
	// credentials; guest mode yields empty token/user.
	CredentialProvider func(ctx context.Context) (Credentials, error)
}

// NativeConversation is an opaque conversation handle owned by the SDK.
type NativeConversation interface {
	ID() string
	Close(ctx context.Context) error
}

// NativeClient is the closed-source conversational SDK boundary. The bridge
// only constructs a configuration, initializes, starts conversations, and
// shuts the client down on reconfiguration.
type NativeClient interface {
	Init(ctx context.Context, cfg NativeConfiguration) error
	StartConversation(ctx context.Context) (NativeConversation, error)
	Shutdown(ctx context.Context) error
}

// NativeClientFactory constructs a client per configuration. Injected by the
// host shell; there is no process-wide client holder.
type NativeClientFactory func(ctx context.Context, cfg NativeConfiguration) (NativeClient, error)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type JobExecutionMessage struct {
	JobID          string
	ScriptPath     string
	Parameters     map[string]any
	IdempotencyKey string
	DedupPolicy    string
}

type JobNackOptions struct {
	Delay      time.Duration
	Requeue    bool
	DeadLetter bool
	Reason     string
}

type JobEnqueuer interface {
	Enqueue(ctx context.Context, msg *JobExecutionMessage) error
}

type JobDelivery interface {
	Message() *JobExecutionMessage
	Ack(ctx context.Context) error
	Nack(ctx context.Context, opts JobNackOptions) error
}

type JobDequeuer interface {
	Dequeue(ctx context.Context) (JobDelivery, error)
}

type JobWorkerHook interface {
	OnStart(ctx context.Context, event JobWorkerEvent)
	OnSuccess(ctx context.Context, event JobWorkerEvent)
	OnFailure(ctx context.Context, event JobWorkerEvent)
	OnRetry(ctx context.Context, event JobWorkerEvent)
}

type JobWorkerEvent struct {
	Message   *JobExecutionMessage
	Attempt   int
	Delay     time.Duration
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}
