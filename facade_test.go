package agentforce

import (
	"context"
	"testing"

	agentforcecommand "github.com/goliatone/go-agentforce/command"
	agentforcequery "github.com/goliatone/go-agentforce/query"
	"github.com/goliatone/go-agentforce/native/devkit"
	gocmd "github.com/goliatone/go-command"
)

func newFacadeService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(DefaultConfig(), WithNativeClientFactory(devkit.NewFakeClient().Factory()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewFacade_RequiresService(t *testing.T) {
	if _, err := NewFacade(nil); err == nil {
		t.Fatalf("expected error for nil service")
	}
}

func TestFacade_BuildsAllHandlers(t *testing.T) {
	svc := newFacadeService(t)
	facade, err := NewFacade(svc)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	commands := facade.Commands()
	if commands.Configure == nil || commands.ConfigurePayload == nil ||
		commands.LaunchConversation == nil || commands.StartNewConversation == nil ||
		commands.CloseConversation == nil || commands.SetFeatureFlags == nil ||
		commands.SetEmployeeAgentID == nil || commands.ResetSettings == nil ||
		commands.RequestTokenRefresh == nil || commands.ProvideRefreshedToken == nil ||
		commands.FailRefresh == nil {
		t.Fatalf("expected every command handler to be wired: %#v", commands)
	}

	queries := facade.Queries()
	if queries.IsConfigured == nil || queries.GetConfiguration == nil ||
		queries.GetConfigurationInfo == nil || queries.GetFeatureFlags == nil ||
		queries.GetEmployeeAgentID == nil || queries.RefreshPending == nil {
		t.Fatalf("expected every query handler to be wired: %#v", queries)
	}

	if facade.Service() == nil {
		t.Fatalf("expected facade to expose the service")
	}
}

func TestFacade_ConfigureThenQueryRoundTrip(t *testing.T) {
	svc := newFacadeService(t)
	facade, err := NewFacade(svc)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	collector := gocmd.NewResult[ConfigureResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)
	msg := agentforcecommand.ConfigureMessage{Config: AgentConfig{
		Mode: ModeService,
		Service: &ServiceAgentConfig{
			ServiceAPIURL:   "https://example.my.salesforce-scrt.com",
			OrganizationID:  "00Dxx0000001",
			ESDeveloperName: "Facade_Agent",
		},
	}}

	if err := facade.Commands().Configure.Execute(ctx, msg); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if result, ok := collector.Load(); !ok || !result.Success || result.Mode != ModeService {
		t.Fatalf("unexpected configure result: %#v ok=%v", result, ok)
	}

	configured, err := facade.Queries().IsConfigured.Query(context.Background(), agentforcequery.IsConfiguredMessage{})
	if err != nil {
		t.Fatalf("is configured: %v", err)
	}
	if !configured {
		t.Fatalf("expected configured=true after configure")
	}

	info, err := facade.Queries().GetConfigurationInfo.Query(context.Background(), agentforcequery.GetConfigurationInfoMessage{})
	if err != nil {
		t.Fatalf("configuration info: %v", err)
	}
	if info.OrganizationID != "00Dxx0000001" {
		t.Fatalf("unexpected info: %#v", info)
	}
}

func TestFacade_LaunchConversation(t *testing.T) {
	svc := newFacadeService(t)
	facade, err := NewFacade(svc)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	payload := map[string]any{
		"serviceAPIURL":   "https://example.my.salesforce-scrt.com",
		"organizationId":  "00Dxx0000001",
		"esDeveloperName": "Facade_Agent",
	}
	if err := facade.Commands().ConfigurePayload.Execute(
		context.Background(),
		agentforcecommand.ConfigurePayloadMessage{Payload: payload},
	); err != nil {
		t.Fatalf("configure payload: %v", err)
	}

	collector := gocmd.NewResult[LaunchResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)
	if err := facade.Commands().LaunchConversation.Execute(ctx, agentforcecommand.LaunchConversationMessage{}); err != nil {
		t.Fatalf("launch: %v", err)
	}
	result, ok := collector.Load()
	if !ok || !result.Success || result.ConversationID == "" {
		t.Fatalf("unexpected launch result: %#v ok=%v", result, ok)
	}
}
