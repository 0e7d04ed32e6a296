package query

const (
	TypeIsConfigured         = "agentforce.query.configuration.is_configured"
	TypeGetConfiguration     = "agentforce.query.configuration.get"
	TypeGetConfigurationInfo = "agentforce.query.configuration.info"
	TypeGetFeatureFlags      = "agentforce.query.settings.feature_flags"
	TypeGetEmployeeAgentID   = "agentforce.query.settings.employee_agent_id"
	TypeRefreshPending       = "agentforce.query.refresh.pending"
)

type IsConfiguredMessage struct{}

func (IsConfiguredMessage) Type() string { return TypeIsConfigured }

func (IsConfiguredMessage) Validate() error { return nil }

type GetConfigurationMessage struct{}

func (GetConfigurationMessage) Type() string { return TypeGetConfiguration }

func (GetConfigurationMessage) Validate() error { return nil }

type GetConfigurationInfoMessage struct{}

func (GetConfigurationInfoMessage) Type() string { return TypeGetConfigurationInfo }

func (GetConfigurationInfoMessage) Validate() error { return nil }

type GetFeatureFlagsMessage struct{}

func (GetFeatureFlagsMessage) Type() string { return TypeGetFeatureFlags }

func (GetFeatureFlagsMessage) Validate() error { return nil }

type GetEmployeeAgentIDMessage struct{}

func (GetEmployeeAgentIDMessage) Type() string { return TypeGetEmployeeAgentID }

func (GetEmployeeAgentIDMessage) Validate() error { return nil }

type RefreshPendingMessage struct{}

func (RefreshPendingMessage) Type() string { return TypeRefreshPending }

func (RefreshPendingMessage) Validate() error { return nil }
