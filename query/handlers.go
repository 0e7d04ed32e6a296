package query

import (
	"context"

	"github.com/goliatone/go-agentforce/core"
)

// ConfigurationReader is the read-side slice of the bridge service.
type ConfigurationReader interface {
	IsConfigured() bool
	Configuration() (core.AgentConfig, error)
	ConfigurationInfo() core.ConfigurationInfo
}

type SettingsReader interface {
	FeatureFlags(ctx context.Context) (core.FeatureFlags, error)
	EmployeeAgentID(ctx context.Context) (string, error)
}

type RefreshReader interface {
	RefreshPending() bool
}

type IsConfiguredQuery struct {
	reader ConfigurationReader
}

func NewIsConfiguredQuery(reader ConfigurationReader) *IsConfiguredQuery {
	return &IsConfiguredQuery{reader: reader}
}

func (q *IsConfiguredQuery) Query(_ context.Context, _ IsConfiguredMessage) (bool, error) {
	if q == nil || q.reader == nil {
		return false, queryDependencyError("query: configuration reader is required")
	}
	return q.reader.IsConfigured(), nil
}

type GetConfigurationQuery struct {
	reader ConfigurationReader
}

func NewGetConfigurationQuery(reader ConfigurationReader) *GetConfigurationQuery {
	return &GetConfigurationQuery{reader: reader}
}

func (q *GetConfigurationQuery) Query(_ context.Context, _ GetConfigurationMessage) (core.AgentConfig, error) {
	if q == nil || q.reader == nil {
		return core.AgentConfig{}, queryDependencyError("query: configuration reader is required")
	}
	return q.reader.Configuration()
}

type GetConfigurationInfoQuery struct {
	reader ConfigurationReader
}

func NewGetConfigurationInfoQuery(reader ConfigurationReader) *GetConfigurationInfoQuery {
	return &GetConfigurationInfoQuery{reader: reader}
}

func (q *GetConfigurationInfoQuery) Query(
	_ context.Context,
	_ GetConfigurationInfoMessage,
) (core.ConfigurationInfo, error) {
	if q == nil || q.reader == nil {
		return core.ConfigurationInfo{}, queryDependencyError("query: configuration reader is required")
	}
	return q.reader.ConfigurationInfo(), nil
}

type GetFeatureFlagsQuery struct {
	reader SettingsReader
}

func NewGetFeatureFlagsQuery(reader SettingsReader) *GetFeatureFlagsQuery {
	return &GetFeatureFlagsQuery{reader: reader}
}

func (q *GetFeatureFlagsQuery) Query(ctx context.Context, _ GetFeatureFlagsMessage) (core.FeatureFlags, error) {
	if q == nil || q.reader == nil {
		return core.FeatureFlags{}, queryDependencyError("query: settings reader is required")
	}
	return q.reader.FeatureFlags(ctx)
}

type GetEmployeeAgentIDQuery struct {
	reader SettingsReader
}

func NewGetEmployeeAgentIDQuery(reader SettingsReader) *GetEmployeeAgentIDQuery {
	return &GetEmployeeAgentIDQuery{reader: reader}
}

func (q *GetEmployeeAgentIDQuery) Query(ctx context.Context, _ GetEmployeeAgentIDMessage) (string, error) {
	if q == nil || q.reader == nil {
		return "", queryDependencyError("query: settings reader is required")
	}
	return q.reader.EmployeeAgentID(ctx)
}

type RefreshPendingQuery struct {
	reader RefreshReader
}

func NewRefreshPendingQuery(reader RefreshReader) *RefreshPendingQuery {
	return &RefreshPendingQuery{reader: reader}
}

func (q *RefreshPendingQuery) Query(_ context.Context, _ RefreshPendingMessage) (bool, error) {
	if q == nil || q.reader == nil {
		return false, queryDependencyError("query: refresh reader is required")
	}
	return q.reader.RefreshPending(), nil
}
