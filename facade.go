package agentforce

import (
	"fmt"

	agentforcecommand "github.com/goliatone/go-agentforce/command"
	agentforcequery "github.com/goliatone/go-agentforce/query"
)

// CommandQueryService is the full surface the facade dispatches against.
// *core.Service satisfies it.
type CommandQueryService interface {
	agentforcecommand.MutatingService
	agentforcequery.ConfigurationReader
	agentforcequery.SettingsReader
	agentforcequery.RefreshReader
}

type Commands struct {
	Configure             *agentforcecommand.ConfigureCommand
	ConfigurePayload      *agentforcecommand.ConfigurePayloadCommand
	LaunchConversation    *agentforcecommand.LaunchConversationCommand
	StartNewConversation  *agentforcecommand.StartNewConversationCommand
	CloseConversation     *agentforcecommand.CloseConversationCommand
	SetFeatureFlags       *agentforcecommand.SetFeatureFlagsCommand
	SetEmployeeAgentID    *agentforcecommand.SetEmployeeAgentIDCommand
	ResetSettings         *agentforcecommand.ResetSettingsCommand
	RequestTokenRefresh   *agentforcecommand.RequestTokenRefreshCommand
	ProvideRefreshedToken *agentforcecommand.ProvideRefreshedTokenCommand
	FailRefresh           *agentforcecommand.FailRefreshCommand
}

type Queries struct {
	IsConfigured         *agentforcequery.IsConfiguredQuery
	GetConfiguration     *agentforcequery.GetConfigurationQuery
	GetConfigurationInfo *agentforcequery.GetConfigurationInfoQuery
	GetFeatureFlags      *agentforcequery.GetFeatureFlagsQuery
	GetEmployeeAgentID   *agentforcequery.GetEmployeeAgentIDQuery
	RefreshPending       *agentforcequery.RefreshPendingQuery
}

// Facade bundles the command and query handlers around one bridge service so
// hosts wire a single value into their dispatcher.
type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("agentforce: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		Configure:             agentforcecommand.NewConfigureCommand(service),
		ConfigurePayload:      agentforcecommand.NewConfigurePayloadCommand(service),
		LaunchConversation:    agentforcecommand.NewLaunchConversationCommand(service),
		StartNewConversation:  agentforcecommand.NewStartNewConversationCommand(service),
		CloseConversation:     agentforcecommand.NewCloseConversationCommand(service),
		SetFeatureFlags:       agentforcecommand.NewSetFeatureFlagsCommand(service),
		SetEmployeeAgentID:    agentforcecommand.NewSetEmployeeAgentIDCommand(service),
		ResetSettings:         agentforcecommand.NewResetSettingsCommand(service),
		RequestTokenRefresh:   agentforcecommand.NewRequestTokenRefreshCommand(service),
		ProvideRefreshedToken: agentforcecommand.NewProvideRefreshedTokenCommand(service),
		FailRefresh:           agentforcecommand.NewFailRefreshCommand(service),
	}
	facade.queries = Queries{
		IsConfigured:         agentforcequery.NewIsConfiguredQuery(service),
		GetConfiguration:     agentforcequery.NewGetConfigurationQuery(service),
		GetConfigurationInfo: agentforcequery.NewGetConfigurationInfoQuery(service),
		GetFeatureFlags:      agentforcequery.NewGetFeatureFlagsQuery(service),
		GetEmployeeAgentID:   agentforcequery.NewGetEmployeeAgentIDQuery(service),
		RefreshPending:       agentforcequery.NewRefreshPendingQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
