package native

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-agentforce/core"
)

// UnsupportedClient stands in for the conversational SDK on platforms where
// the native binary is absent. Every operation fails with NOT_AVAILABLE
// semantics instead of panicking.
type UnsupportedClient struct {
	platform string
	reason   string
}

func NewUnsupportedClient(platform string, reason string) *UnsupportedClient {
	return &UnsupportedClient{
		platform: strings.TrimSpace(strings.ToLower(platform)),
		reason:   strings.TrimSpace(reason),
	}
}

// UnsupportedFactory is a ready-made factory for hosts that want configure to
// succeed on unsupported platforms and fail only at conversation time.
func UnsupportedFactory(platform string, reason string) core.NativeClientFactory {
	return func(context.Context, core.NativeConfiguration) (core.NativeClient, error) {
		return NewUnsupportedClient(platform, reason), nil
	}
}

func (c *UnsupportedClient) Platform() string {
	if c == nil {
		return ""
	}
	return c.platform
}

func (c *UnsupportedClient) Init(context.Context, core.NativeConfiguration) error {
	return nil
}

func (c *UnsupportedClient) StartConversation(context.Context) (core.NativeConversation, error) {
	if c == nil {
		return nil, fmt.Errorf("native: client is nil")
	}
	if c.reason != "" {
		return nil, fmt.Errorf(
			"native: conversational sdk is not available on %s: %s",
			c.platform,
			c.reason,
		)
	}
	return nil, fmt.Errorf("native: conversational sdk is not available on %s", c.platform)
}

func (c *UnsupportedClient) Shutdown(context.Context) error {
	return nil
}

var _ core.NativeClient = (*UnsupportedClient)(nil)
