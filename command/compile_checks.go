package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[ConfigureMessage]             = (*ConfigureCommand)(nil)
	_ gocmd.Commander[ConfigurePayloadMessage]      = (*ConfigurePayloadCommand)(nil)
	_ gocmd.Commander[LaunchConversationMessage]    = (*LaunchConversationCommand)(nil)
	_ gocmd.Commander[StartNewConversationMessage]  = (*StartNewConversationCommand)(nil)
	_ gocmd.Commander[CloseConversationMessage]     = (*CloseConversationCommand)(nil)
	_ gocmd.Commander[SetFeatureFlagsMessage]       = (*SetFeatureFlagsCommand)(nil)
	_ gocmd.Commander[SetEmployeeAgentIDMessage]    = (*SetEmployeeAgentIDCommand)(nil)
	_ gocmd.Commander[ResetSettingsMessage]         = (*ResetSettingsCommand)(nil)
	_ gocmd.Commander[RequestTokenRefreshMessage]   = (*RequestTokenRefreshCommand)(nil)
	_ gocmd.Commander[ProvideRefreshedTokenMessage] = (*ProvideRefreshedTokenCommand)(nil)
	_ gocmd.Commander[FailRefreshMessage]           = (*FailRefreshCommand)(nil)
)
