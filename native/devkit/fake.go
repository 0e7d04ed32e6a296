package devkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-agentforce/core"
	"github.com/google/uuid"
)

// ConversationScript drives one StartConversation call on the fake client.
type ConversationScript struct {
	ConversationID string
	Err            error
	CloseErr       error
}

// FakeClient is a scriptable in-process stand-in for the conversational SDK.
// Scripts are consumed in order; past the end the last script repeats, and an
// unscripted client succeeds with generated conversation ids.
type FakeClient struct {
	mu            sync.Mutex
	scripts       []ConversationScript
	initErr       error
	initCalls     []core.NativeConfiguration
	startCalls    int
	shutdownCalls int
	conversations []*FakeConversation
}

type FakeClientOption func(*FakeClient)

func WithInitError(err error) FakeClientOption {
	return func(c *FakeClient) {
		c.initErr = err
	}
}

func NewFakeClient(scripts ...ConversationScript) *FakeClient {
	return &FakeClient{scripts: append([]ConversationScript(nil), scripts...)}
}

// Factory returns a core.NativeClientFactory that always yields this client,
// so tests can inspect it after the service wires it in.
func (c *FakeClient) Factory(options ...FakeClientOption) core.NativeClientFactory {
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return func(context.Context, core.NativeConfiguration) (core.NativeClient, error) {
		return c, nil
	}
}

func (c *FakeClient) Init(_ context.Context, cfg core.NativeConfiguration) error {
	if c == nil {
		return fmt.Errorf("devkit: fake client is nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initCalls = append(c.initCalls, cfg)
	return c.initErr
}

func (c *FakeClient) StartConversation(context.Context) (core.NativeConversation, error) {
	if c == nil {
		return nil, fmt.Errorf("devkit: fake client is nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.startCalls
	c.startCalls++

	script := ConversationScript{}
	if index < len(c.scripts) {
		script = c.scripts[index]
	} else if len(c.scripts) > 0 {
		script = c.scripts[len(c.scripts)-1]
	}
	if script.Err != nil {
		return nil, script.Err
	}
	id := script.ConversationID
	if id == "" {
		id = uuid.NewString()
	}
	conversation := &FakeConversation{id: id, closeErr: script.CloseErr}
	c.conversations = append(c.conversations, conversation)
	return conversation, nil
}

func (c *FakeClient) Shutdown(context.Context) error {
	if c == nil {
		return fmt.Errorf("devkit: fake client is nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdownCalls++
	return nil
}

// InitCalls returns every configuration the client was initialized with.
func (c *FakeClient) InitCalls() []core.NativeConfiguration {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.NativeConfiguration(nil), c.initCalls...)
}

func (c *FakeClient) StartCalls() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startCalls
}

func (c *FakeClient) ShutdownCalls() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shutdownCalls
}

// Conversations returns every conversation the client handed out.
func (c *FakeClient) Conversations() []*FakeConversation {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*FakeConversation(nil), c.conversations...)
}

// FakeConversation is the conversation handle issued by FakeClient.
type FakeConversation struct {
	mu       sync.Mutex
	id       string
	closed   bool
	closeErr error
}

func (f *FakeConversation) ID() string {
	if f == nil {
		return ""
	}
	return f.id
}

func (f *FakeConversation) Close(context.Context) error {
	if f == nil {
		return fmt.Errorf("devkit: fake conversation is nil")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.closeErr
}

func (f *FakeConversation) Closed() bool {
	if f == nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

var (
	_ core.NativeClient       = (*FakeClient)(nil)
	_ core.NativeConversation = (*FakeConversation)(nil)
)
