package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-agentforce/core"
)

const (
	TypeConfigure             = "agentforce.command.configure"
	TypeConfigurePayload      = "agentforce.command.configure.payload"
	TypeLaunchConversation    = "agentforce.command.conversation.launch"
	TypeStartNewConversation  = "agentforce.command.conversation.start_new"
	TypeCloseConversation     = "agentforce.command.conversation.close"
	TypeSetFeatureFlags       = "agentforce.command.settings.feature_flags.set"
	TypeSetEmployeeAgentID    = "agentforce.command.settings.employee_agent_id.set"
	TypeResetSettings         = "agentforce.command.settings.reset"
	TypeProvideRefreshedToken = "agentforce.command.refresh.provide"
	TypeFailRefresh           = "agentforce.command.refresh.fail"
	TypeRequestTokenRefresh   = "agentforce.command.refresh.request"
)

type ConfigureMessage struct {
	Config core.AgentConfig
}

func (ConfigureMessage) Type() string { return TypeConfigure }

func (m ConfigureMessage) Validate() error {
	if err := m.Config.Validate(); err != nil {
		return fmt.Errorf("command: %w", err)
	}
	return nil
}

// ConfigurePayloadMessage carries an unvalidated host payload; normalization
// happens inside the service so legacy untagged payloads keep working.
type ConfigurePayloadMessage struct {
	Payload map[string]any
}

func (ConfigurePayloadMessage) Type() string { return TypeConfigurePayload }

func (m ConfigurePayloadMessage) Validate() error {
	if len(m.Payload) == 0 {
		return commandInvalidInputError("command: configuration payload is required")
	}
	return nil
}

type LaunchConversationMessage struct{}

func (LaunchConversationMessage) Type() string { return TypeLaunchConversation }

func (LaunchConversationMessage) Validate() error { return nil }

type StartNewConversationMessage struct{}

func (StartNewConversationMessage) Type() string { return TypeStartNewConversation }

func (StartNewConversationMessage) Validate() error { return nil }

type CloseConversationMessage struct{}

func (CloseConversationMessage) Type() string { return TypeCloseConversation }

func (CloseConversationMessage) Validate() error { return nil }

type SetFeatureFlagsMessage struct {
	Flags core.FeatureFlags
}

func (SetFeatureFlagsMessage) Type() string { return TypeSetFeatureFlags }

func (SetFeatureFlagsMessage) Validate() error { return nil }

type SetEmployeeAgentIDMessage struct {
	AgentID string
}

func (SetEmployeeAgentIDMessage) Type() string { return TypeSetEmployeeAgentID }

// Validate accepts a blank agent id: a blank value clears the stored key.
func (SetEmployeeAgentIDMessage) Validate() error { return nil }

type ResetSettingsMessage struct{}

func (ResetSettingsMessage) Type() string { return TypeResetSettings }

func (ResetSettingsMessage) Validate() error { return nil }

type ProvideRefreshedTokenMessage struct {
	Token string
}

func (ProvideRefreshedTokenMessage) Type() string { return TypeProvideRefreshedToken }

func (m ProvideRefreshedTokenMessage) Validate() error {
	if strings.TrimSpace(m.Token) == "" {
		return commandInvalidInputError("command: refreshed token is required")
	}
	return nil
}

type FailRefreshMessage struct {
	Reason string
}

func (FailRefreshMessage) Type() string { return TypeFailRefresh }

func (FailRefreshMessage) Validate() error { return nil }

type RequestTokenRefreshMessage struct{}

func (RequestTokenRefreshMessage) Type() string { return TypeRequestTokenRefresh }

func (RequestTokenRefreshMessage) Validate() error { return nil }
