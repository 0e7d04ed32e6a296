package query

import (
	"github.com/goliatone/go-agentforce/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[IsConfiguredMessage, bool]                             = (*IsConfiguredQuery)(nil)
	_ gocmd.Querier[GetConfigurationMessage, core.AgentConfig]             = (*GetConfigurationQuery)(nil)
	_ gocmd.Querier[GetConfigurationInfoMessage, core.ConfigurationInfo]   = (*GetConfigurationInfoQuery)(nil)
	_ gocmd.Querier[GetFeatureFlagsMessage, core.FeatureFlags]             = (*GetFeatureFlagsQuery)(nil)
	_ gocmd.Querier[GetEmployeeAgentIDMessage, string]                     = (*GetEmployeeAgentIDQuery)(nil)
	_ gocmd.Querier[RefreshPendingMessage, bool]                           = (*RefreshPendingQuery)(nil)
)
