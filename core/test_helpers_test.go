package core

import (
	"context"
	"fmt"
	"sync"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) Logger {
	return s
}

type stubHostSession struct {
	mu    sync.Mutex
	creds Credentials
	ok    bool
	err   error
	calls int
}

func (s *stubHostSession) CurrentSession(context.Context) (Credentials, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.creds, s.ok, s.err
}

type stubRefreshDelegate struct {
	mu    sync.Mutex
	token string
	err   error
	calls int
}

func (d *stubRefreshDelegate) RefreshToken(context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return "", d.err
	}
	return d.token, nil
}

type stubJobEnqueuer struct {
	mu       sync.Mutex
	messages []*JobExecutionMessage
	err      error
}

func (e *stubJobEnqueuer) Enqueue(_ context.Context, msg *JobExecutionMessage) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.messages = append(e.messages, msg)
	return nil
}

type fakeConversation struct {
	mu       sync.Mutex
	id       string
	closed   bool
	closeErr error
}

func (f *fakeConversation) ID() string { return f.id }

func (f *fakeConversation) Close(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.closeErr
}

func (f *fakeConversation) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type fakeNativeClient struct {
	mu            sync.Mutex
	initConfigs   []NativeConfiguration
	initErr       error
	startErr      error
	startCalls    int
	shutdownCalls int
	conversations []*fakeConversation
}

func (c *fakeNativeClient) Init(_ context.Context, cfg NativeConfiguration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initConfigs = append(c.initConfigs, cfg)
	return c.initErr
}

func (c *fakeNativeClient) StartConversation(context.Context) (NativeConversation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startCalls++
	if c.startErr != nil {
		return nil, c.startErr
	}
	conversation := &fakeConversation{id: fmt.Sprintf("conv-%d", c.startCalls)}
	c.conversations = append(c.conversations, conversation)
	return conversation, nil
}

func (c *fakeNativeClient) Shutdown(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdownCalls++
	return nil
}

func (c *fakeNativeClient) lastInitConfig() (NativeConfiguration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.initConfigs) == 0 {
		return NativeConfiguration{}, false
	}
	return c.initConfigs[len(c.initConfigs)-1], true
}

func staticFactory(client NativeClient) NativeClientFactory {
	return func(context.Context, NativeConfiguration) (NativeClient, error) {
		return client, nil
	}
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	base := []Option{WithLogger(stubLogger{})}
	svc, err := NewService(DefaultConfig(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func serviceAgentConfig() AgentConfig {
	return AgentConfig{
		Mode: ModeService,
		Service: &ServiceAgentConfig{
			ServiceAPIURL:   "https://example.my.salesforce-scrt.com",
			OrganizationID:  "00Dxx0000001",
			ESDeveloperName: "Test_Agent",
		},
	}
}

func employeeAgentConfig() AgentConfig {
	return AgentConfig{
		Mode: ModeEmployee,
		Employee: &EmployeeAgentConfig{
			InstanceURL:    "https://example.my.salesforce.com",
			OrganizationID: "00Dxx0000001",
			UserID:         "005xx0000001",
			AgentID:        "0Xxxx0000001",
			AgentLabel:     "Test Copilot",
		},
	}
}

func metadataOf(t *testing.T, err error) map[string]any {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %T: %v", err, err)
	}
	return rich.Metadata
}

func textCodeOf(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %T: %v", err, err)
	}
	return rich.TextCode
}
