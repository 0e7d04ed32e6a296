package core

import (
	"testing"
)

func TestNormalizeAgentConfig_TaggedService(t *testing.T) {
	cfg, err := NormalizeAgentConfig(map[string]any{
		"type":              "service",
		"service_api_url":   "https://example.my.salesforce-scrt.com",
		"organization_id":   "00Dxx0000001",
		"es_developer_name": "Tagged_Agent",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Mode != ModeService || cfg.Service == nil {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.Service.ESDeveloperName != "Tagged_Agent" {
		t.Fatalf("unexpected developer name %q", cfg.Service.ESDeveloperName)
	}
}

func TestNormalizeAgentConfig_TaggedEmployeeCamelCase(t *testing.T) {
	cfg, err := NormalizeAgentConfig(map[string]any{
		"type":           "employee",
		"instanceUrl":    "https://example.my.salesforce.com",
		"organizationId": "00Dxx0000001",
		"userId":         "005xx0000001",
		"agentId":        "0Xxxx0000001",
		"agentLabel":     "Copilot",
		"accessToken":    " seeded ",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Mode != ModeEmployee || cfg.Employee == nil {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.Employee.InstanceURL != "https://example.my.salesforce.com" {
		t.Fatalf("unexpected instance url %q", cfg.Employee.InstanceURL)
	}
	if cfg.Employee.AccessToken != "seeded" {
		t.Fatalf("access token must be trimmed, got %q", cfg.Employee.AccessToken)
	}
}

func TestNormalizeAgentConfig_MissingTypeImpliesService(t *testing.T) {
	cfg, err := NormalizeAgentConfig(map[string]any{
		"serviceAPIURL":   "https://example.my.salesforce-scrt.com",
		"organizationId":  "00Dxx0000001",
		"esDeveloperName": "Legacy_Agent",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Mode != ModeService {
		t.Fatalf("legacy payload must imply service mode, got %q", cfg.Mode)
	}
}

func TestNormalizeAgentConfig_FeatureFlags(t *testing.T) {
	cfg, err := NormalizeAgentConfig(map[string]any{
		"type":              "service",
		"service_api_url":   "https://example.my.salesforce-scrt.com",
		"organization_id":   "00Dxx0000001",
		"es_developer_name": "Flagged_Agent",
		"featureFlags": map[string]any{
			"enableMultiAgent": true,
			"enableVoice":      true,
		},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.FeatureFlags == nil {
		t.Fatalf("expected feature flags to survive normalization")
	}
	if !cfg.FeatureFlags.EnableMultiAgent || !cfg.FeatureFlags.EnableVoice {
		t.Fatalf("unexpected flags: %#v", cfg.FeatureFlags)
	}
	if cfg.FeatureFlags.EnablePDFUpload {
		t.Fatalf("unset flags must stay false")
	}
}

func TestNormalizeAgentConfig_UnknownModeRejected(t *testing.T) {
	_, err := NormalizeAgentConfig(map[string]any{
		"type":            "partner",
		"service_api_url": "https://example.my.salesforce-scrt.com",
	})
	if err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestNormalizeAgentConfig_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]any
	}{
		{
			name:    "empty payload",
			payload: map[string]any{},
		},
		{
			name: "service without org",
			payload: map[string]any{
				"type":              "service",
				"service_api_url":   "https://example.my.salesforce-scrt.com",
				"es_developer_name": "Agent",
			},
		},
		{
			name: "service with blank url",
			payload: map[string]any{
				"type":              "service",
				"service_api_url":   "   ",
				"organization_id":   "00Dxx0000001",
				"es_developer_name": "Agent",
			},
		},
		{
			name: "employee without user",
			payload: map[string]any{
				"type":            "employee",
				"instance_url":    "https://example.my.salesforce.com",
				"organization_id": "00Dxx0000001",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NormalizeAgentConfig(tc.payload); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNormalizeAgentConfig_IgnoresUnknownKeys(t *testing.T) {
	cfg, err := NormalizeAgentConfig(map[string]any{
		"type":              "service",
		"service_api_url":   "https://example.my.salesforce-scrt.com",
		"organization_id":   "00Dxx0000001",
		"es_developer_name": "Agent",
		"unexpected":        "ignored",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Mode != ModeService {
		t.Fatalf("unexpected mode %q", cfg.Mode)
	}
}

func TestAgentConfig_ValidateVariantPairing(t *testing.T) {
	valid := serviceAgentConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid service config: %v", err)
	}

	both := serviceAgentConfig()
	both.Employee = employeeAgentConfig().Employee
	if err := both.Validate(); err == nil {
		t.Fatalf("service mode with employee variant must fail")
	}

	crossed := employeeAgentConfig()
	crossed.Service = serviceAgentConfig().Service
	if err := crossed.Validate(); err == nil {
		t.Fatalf("employee mode with service variant must fail")
	}

	missing := AgentConfig{Mode: ModeEmployee}
	if err := missing.Validate(); err == nil {
		t.Fatalf("employee mode without variant must fail")
	}
}

func TestAgentConfig_CloneIsDeep(t *testing.T) {
	original := employeeAgentConfig()
	original.FeatureFlags = &FeatureFlags{EnableVoice: true}

	clone := original.Clone()
	clone.Employee.AgentID = "mutated"
	clone.FeatureFlags.EnableVoice = false

	if original.Employee.AgentID == "mutated" {
		t.Fatalf("clone must not share employee config")
	}
	if !original.FeatureFlags.EnableVoice {
		t.Fatalf("clone must not share feature flags")
	}
}

func TestAgentConfig_OrganizationID(t *testing.T) {
	if got := serviceAgentConfig().OrganizationID(); got != "00Dxx0000001" {
		t.Fatalf("unexpected service org %q", got)
	}
	if got := employeeAgentConfig().OrganizationID(); got != "00Dxx0000001" {
		t.Fatalf("unexpected employee org %q", got)
	}
	if got := (AgentConfig{Mode: ModeService}).OrganizationID(); got != "" {
		t.Fatalf("variant-less config must report empty org, got %q", got)
	}
}
