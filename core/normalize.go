package core

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
)

// rawAgentConfig is the wire shape accepted from the application layer. Both
// tagged and legacy untagged payloads decode into it; a missing type implies
// the legacy service shape.
type rawAgentConfig struct {
	Type            string `koanf:"type" mapstructure:"type"`
	ServiceAPIURL   string `koanf:"service_api_url" mapstructure:"service_api_url"`
	OrganizationID  string `koanf:"organization_id" mapstructure:"organization_id"`
	ESDeveloperName string `koanf:"es_developer_name" mapstructure:"es_developer_name"`
	InstanceURL     string `koanf:"instance_url" mapstructure:"instance_url"`
	UserID          string `koanf:"user_id" mapstructure:"user_id"`
	AgentID         string `koanf:"agent_id" mapstructure:"agent_id"`
	AgentLabel      string `koanf:"agent_label" mapstructure:"agent_label"`
	AccessToken     string `koanf:"access_token" mapstructure:"access_token"`

	FeatureFlags *FeatureFlags `koanf:"feature_flags" mapstructure:"feature_flags"`
}

// canonicalKeys maps flattened key spellings (camelCase from the JS layer,
// snake_case from Go callers) onto the koanf tags above.
var canonicalKeys = map[string]string{
	"type":            "type",
	"serviceapiurl":   "service_api_url",
	"organizationid":  "organization_id",
	"esdevelopername": "es_developer_name",
	"instanceurl":     "instance_url",
	"userid":          "user_id",
	"agentid":         "agent_id",
	"agentlabel":      "agent_label",
	"accesstoken":     "access_token",
	"featureflags":    "feature_flags",
}

var canonicalFlagKeys = map[string]string{
	"enablemultiagent":      "enable_multi_agent",
	"enablemultimodalinput": "enable_multi_modal_input",
	"enablepdfupload":       "enable_pdf_upload",
	"enablevoice":           "enable_voice",
}

// NormalizeAgentConfig maps a tagged or legacy untagged payload to a tagged
// AgentConfig. Absence of a type field implies "service"; no other inference
// is performed. Missing or blank required fields are rejected.
func NormalizeAgentConfig(payload map[string]any) (AgentConfig, error) {
	if len(payload) == 0 {
		return AgentConfig{}, fmt.Errorf("core: agent config payload is required")
	}

	raw, err := cfgx.Build[rawAgentConfig](canonicalizePayload(payload))
	if err != nil {
		return AgentConfig{}, fmt.Errorf("core: decode agent config: %w", err)
	}

	mode := AgentMode(strings.TrimSpace(strings.ToLower(raw.Type)))
	if mode == "" {
		mode = ModeService
	}
	if err := mode.Validate(); err != nil {
		return AgentConfig{}, err
	}

	out := AgentConfig{Mode: mode}
	if raw.FeatureFlags != nil {
		flags := *raw.FeatureFlags
		out.FeatureFlags = &flags
	}

	switch mode {
	case ModeService:
		out.Service = &ServiceAgentConfig{
			ServiceAPIURL:   strings.TrimSpace(raw.ServiceAPIURL),
			OrganizationID:  strings.TrimSpace(raw.OrganizationID),
			ESDeveloperName: strings.TrimSpace(raw.ESDeveloperName),
		}
	case ModeEmployee:
		out.Employee = &EmployeeAgentConfig{
			InstanceURL:    strings.TrimSpace(raw.InstanceURL),
			OrganizationID: strings.TrimSpace(raw.OrganizationID),
			UserID:         strings.TrimSpace(raw.UserID),
			AgentID:        strings.TrimSpace(raw.AgentID),
			AgentLabel:     strings.TrimSpace(raw.AgentLabel),
			AccessToken:    strings.TrimSpace(raw.AccessToken),
		}
	}

	if err := out.Validate(); err != nil {
		return AgentConfig{}, err
	}
	return out, nil
}

func canonicalizePayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		canonical, ok := canonicalKeys[flattenKey(key)]
		if !ok {
			continue
		}
		if canonical == "feature_flags" {
			if nested, isMap := value.(map[string]any); isMap {
				out[canonical] = canonicalizeFlagPayload(nested)
				continue
			}
		}
		out[canonical] = value
	}
	return out
}

func canonicalizeFlagPayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		canonical, ok := canonicalFlagKeys[flattenKey(key)]
		if !ok {
			continue
		}
		out[canonical] = value
	}
	return out
}

func flattenKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "")
}
