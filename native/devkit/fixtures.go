package devkit

import (
	"context"
	"sync"

	"github.com/goliatone/go-agentforce/core"
)

// ServiceAgentFixture is a valid guest-mode configuration for tests.
func ServiceAgentFixture() core.AgentConfig {
	return core.AgentConfig{
		Mode: core.ModeService,
		Service: &core.ServiceAgentConfig{
			ServiceAPIURL:   "https://example.my.salesforce-scrt.com",
			OrganizationID:  "00DFixture000001",
			ESDeveloperName: "Fixture_Agent",
		},
	}
}

// EmployeeAgentFixture is a valid employee-mode configuration for tests.
func EmployeeAgentFixture() core.AgentConfig {
	return core.AgentConfig{
		Mode: core.ModeEmployee,
		Employee: &core.EmployeeAgentConfig{
			InstanceURL:    "https://example.my.salesforce.com",
			OrganizationID: "00DFixture000001",
			UserID:         "005Fixture000001",
			AgentID:        "0XxFixture000001",
			AgentLabel:     "Fixture Copilot",
		},
	}
}

// StubHostSession scripts the host Mobile SDK session lookup.
type StubHostSession struct {
	mu          sync.Mutex
	Credentials core.Credentials
	Available   bool
	Err         error
	calls       int
}

func (s *StubHostSession) CurrentSession(context.Context) (core.Credentials, bool, error) {
	if s == nil {
		return core.Credentials{}, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.Credentials, s.Available, s.Err
}

func (s *StubHostSession) Calls() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// StubRefreshDelegate scripts the application-layer token refresh hook.
type StubRefreshDelegate struct {
	mu     sync.Mutex
	Tokens []string
	Err    error
	calls  int
}

func (d *StubRefreshDelegate) RefreshToken(context.Context) (string, error) {
	if d == nil {
		return "", nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	index := d.calls
	d.calls++
	if d.Err != nil {
		return "", d.Err
	}
	if index < len(d.Tokens) {
		return d.Tokens[index], nil
	}
	if len(d.Tokens) > 0 {
		return d.Tokens[len(d.Tokens)-1], nil
	}
	return "", nil
}

func (d *StubRefreshDelegate) Calls() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

var (
	_ core.HostSessionProvider = (*StubHostSession)(nil)
	_ core.RefreshDelegate     = (*StubRefreshDelegate)(nil)
)
