package command

import (
	"context"

	"github.com/goliatone/go-agentforce/core"
	gocmd "github.com/goliatone/go-command"
)

// MutatingService is the write-side slice of the bridge service.
type MutatingService interface {
	Configure(ctx context.Context, cfg core.AgentConfig) (core.ConfigureResult, error)
	ConfigurePayload(ctx context.Context, payload map[string]any) (core.ConfigureResult, error)
	LaunchConversation(ctx context.Context) (core.LaunchResult, error)
	StartNewConversation(ctx context.Context) (core.LaunchResult, error)
	CloseConversation(ctx context.Context) error
	SetFeatureFlags(ctx context.Context, flags core.FeatureFlags) error
	SetEmployeeAgentID(ctx context.Context, agentID string) error
	ResetSettings(ctx context.Context) error
	RequestTokenRefresh(ctx context.Context) (string, error)
	ProvideRefreshedToken(token string) error
	FailRefresh(reason string) error
}

type ConfigureCommand struct {
	service MutatingService
}

func NewConfigureCommand(service MutatingService) *ConfigureCommand {
	return &ConfigureCommand{service: service}
}

func (c *ConfigureCommand) Execute(ctx context.Context, msg ConfigureMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: configure service is required")
	}
	out, err := c.service.Configure(ctx, msg.Config)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ConfigurePayloadCommand struct {
	service MutatingService
}

func NewConfigurePayloadCommand(service MutatingService) *ConfigurePayloadCommand {
	return &ConfigurePayloadCommand{service: service}
}

func (c *ConfigurePayloadCommand) Execute(ctx context.Context, msg ConfigurePayloadMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: configure service is required")
	}
	out, err := c.service.ConfigurePayload(ctx, msg.Payload)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type LaunchConversationCommand struct {
	service MutatingService
}

func NewLaunchConversationCommand(service MutatingService) *LaunchConversationCommand {
	return &LaunchConversationCommand{service: service}
}

func (c *LaunchConversationCommand) Execute(ctx context.Context, msg LaunchConversationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: conversation service is required")
	}
	out, err := c.service.LaunchConversation(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type StartNewConversationCommand struct {
	service MutatingService
}

func NewStartNewConversationCommand(service MutatingService) *StartNewConversationCommand {
	return &StartNewConversationCommand{service: service}
}

func (c *StartNewConversationCommand) Execute(ctx context.Context, msg StartNewConversationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: conversation service is required")
	}
	out, err := c.service.StartNewConversation(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CloseConversationCommand struct {
	service MutatingService
}

func NewCloseConversationCommand(service MutatingService) *CloseConversationCommand {
	return &CloseConversationCommand{service: service}
}

func (c *CloseConversationCommand) Execute(ctx context.Context, msg CloseConversationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: conversation service is required")
	}
	return c.service.CloseConversation(ctx)
}

type SetFeatureFlagsCommand struct {
	service MutatingService
}

func NewSetFeatureFlagsCommand(service MutatingService) *SetFeatureFlagsCommand {
	return &SetFeatureFlagsCommand{service: service}
}

func (c *SetFeatureFlagsCommand) Execute(ctx context.Context, msg SetFeatureFlagsMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: settings service is required")
	}
	return c.service.SetFeatureFlags(ctx, msg.Flags)
}

type SetEmployeeAgentIDCommand struct {
	service MutatingService
}

func NewSetEmployeeAgentIDCommand(service MutatingService) *SetEmployeeAgentIDCommand {
	return &SetEmployeeAgentIDCommand{service: service}
}

func (c *SetEmployeeAgentIDCommand) Execute(ctx context.Context, msg SetEmployeeAgentIDMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: settings service is required")
	}
	return c.service.SetEmployeeAgentID(ctx, msg.AgentID)
}

type ResetSettingsCommand struct {
	service MutatingService
}

func NewResetSettingsCommand(service MutatingService) *ResetSettingsCommand {
	return &ResetSettingsCommand{service: service}
}

func (c *ResetSettingsCommand) Execute(ctx context.Context, msg ResetSettingsMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: settings service is required")
	}
	return c.service.ResetSettings(ctx)
}

type RequestTokenRefreshCommand struct {
	service MutatingService
}

func NewRequestTokenRefreshCommand(service MutatingService) *RequestTokenRefreshCommand {
	return &RequestTokenRefreshCommand{service: service}
}

func (c *RequestTokenRefreshCommand) Execute(ctx context.Context, msg RequestTokenRefreshMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refresh service is required")
	}
	token, err := c.service.RequestTokenRefresh(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, token)
	return nil
}

type ProvideRefreshedTokenCommand struct {
	service MutatingService
}

func NewProvideRefreshedTokenCommand(service MutatingService) *ProvideRefreshedTokenCommand {
	return &ProvideRefreshedTokenCommand{service: service}
}

func (c *ProvideRefreshedTokenCommand) Execute(ctx context.Context, msg ProvideRefreshedTokenMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refresh service is required")
	}
	return c.service.ProvideRefreshedToken(msg.Token)
}

type FailRefreshCommand struct {
	service MutatingService
}

func NewFailRefreshCommand(service MutatingService) *FailRefreshCommand {
	return &FailRefreshCommand{service: service}
}

func (c *FailRefreshCommand) Execute(ctx context.Context, msg FailRefreshMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refresh service is required")
	}
	return c.service.FailRefresh(msg.Reason)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
