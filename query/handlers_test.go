package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/goliatone/go-agentforce/core"
)

type stubReaders struct {
	configured    bool
	config        core.AgentConfig
	configErr     error
	info          core.ConfigurationInfo
	flags         core.FeatureFlags
	flagsErr      error
	agentID       string
	agentIDErr    error
	pending       bool
	flagCalls     int
	agentIDCalls  int
	configCalls   int
	pendingCalls  int
	infoCallCount int
}

func (s *stubReaders) IsConfigured() bool { return s.configured }

func (s *stubReaders) Configuration() (core.AgentConfig, error) {
	s.configCalls++
	return s.config, s.configErr
}

func (s *stubReaders) ConfigurationInfo() core.ConfigurationInfo {
	s.infoCallCount++
	return s.info
}

func (s *stubReaders) FeatureFlags(context.Context) (core.FeatureFlags, error) {
	s.flagCalls++
	return s.flags, s.flagsErr
}

func (s *stubReaders) EmployeeAgentID(context.Context) (string, error) {
	s.agentIDCalls++
	return s.agentID, s.agentIDErr
}

func (s *stubReaders) RefreshPending() bool {
	s.pendingCalls++
	return s.pending
}

func TestIsConfiguredQuery(t *testing.T) {
	reader := &stubReaders{configured: true}
	handler := NewIsConfiguredQuery(reader)

	got, err := handler.Query(context.Background(), IsConfiguredMessage{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !got {
		t.Fatalf("expected configured=true")
	}
}

func TestIsConfiguredQuery_NilReader(t *testing.T) {
	handler := NewIsConfiguredQuery(nil)
	if _, err := handler.Query(context.Background(), IsConfiguredMessage{}); err == nil {
		t.Fatalf("expected dependency error")
	}

	var nilHandler *IsConfiguredQuery
	if _, err := nilHandler.Query(context.Background(), IsConfiguredMessage{}); err == nil {
		t.Fatalf("expected dependency error on nil receiver")
	}
}

func TestGetConfigurationQuery(t *testing.T) {
	want := core.AgentConfig{
		Mode: core.ModeService,
		Service: &core.ServiceAgentConfig{
			ServiceAPIURL:   "https://example.my.salesforce-scrt.com",
			OrganizationID:  "00Dxx0000001",
			ESDeveloperName: "Test_Agent",
		},
	}
	reader := &stubReaders{config: want}
	handler := NewGetConfigurationQuery(reader)

	got, err := handler.Query(context.Background(), GetConfigurationMessage{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if got.Mode != core.ModeService || got.Service == nil || got.Service.ESDeveloperName != "Test_Agent" {
		t.Fatalf("unexpected configuration: %#v", got)
	}
}

func TestGetConfigurationQuery_PropagatesError(t *testing.T) {
	reader := &stubReaders{configErr: fmt.Errorf("not configured")}
	handler := NewGetConfigurationQuery(reader)

	if _, err := handler.Query(context.Background(), GetConfigurationMessage{}); err == nil {
		t.Fatalf("expected reader error")
	}
}

func TestGetConfigurationInfoQuery(t *testing.T) {
	reader := &stubReaders{info: core.ConfigurationInfo{
		Configured:     true,
		Mode:           core.ModeEmployee,
		OrganizationID: "00Dxx0000001",
		AgentID:        "0Xxxx0000001",
	}}
	handler := NewGetConfigurationInfoQuery(reader)

	got, err := handler.Query(context.Background(), GetConfigurationInfoMessage{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !got.Configured || got.Mode != core.ModeEmployee || got.AgentID != "0Xxxx0000001" {
		t.Fatalf("unexpected info: %#v", got)
	}
}

func TestGetFeatureFlagsQuery(t *testing.T) {
	reader := &stubReaders{flags: core.FeatureFlags{EnableVoice: true}}
	handler := NewGetFeatureFlagsQuery(reader)

	got, err := handler.Query(context.Background(), GetFeatureFlagsMessage{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !got.EnableVoice {
		t.Fatalf("unexpected flags: %#v", got)
	}
	if reader.flagCalls != 1 {
		t.Fatalf("expected one reader call, got %d", reader.flagCalls)
	}
}

func TestGetEmployeeAgentIDQuery(t *testing.T) {
	reader := &stubReaders{agentID: "0Xxagent"}
	handler := NewGetEmployeeAgentIDQuery(reader)

	got, err := handler.Query(context.Background(), GetEmployeeAgentIDMessage{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if got != "0Xxagent" {
		t.Fatalf("unexpected agent id %q", got)
	}
}

func TestGetEmployeeAgentIDQuery_PropagatesError(t *testing.T) {
	reader := &stubReaders{agentIDErr: fmt.Errorf("store unavailable")}
	handler := NewGetEmployeeAgentIDQuery(reader)

	if _, err := handler.Query(context.Background(), GetEmployeeAgentIDMessage{}); err == nil {
		t.Fatalf("expected reader error")
	}
}

func TestRefreshPendingQuery(t *testing.T) {
	reader := &stubReaders{pending: true}
	handler := NewRefreshPendingQuery(reader)

	got, err := handler.Query(context.Background(), RefreshPendingMessage{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !got {
		t.Fatalf("expected pending=true")
	}
}

func TestQueryMessageTypes(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{IsConfiguredMessage{}.Type(), TypeIsConfigured},
		{GetConfigurationMessage{}.Type(), TypeGetConfiguration},
		{GetConfigurationInfoMessage{}.Type(), TypeGetConfigurationInfo},
		{GetFeatureFlagsMessage{}.Type(), TypeGetFeatureFlags},
		{GetEmployeeAgentIDMessage{}.Type(), TypeGetEmployeeAgentID},
		{RefreshPendingMessage{}.Type(), TypeRefreshPending},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, tc.got)
		}
	}
}
