package core

import (
	"fmt"
	"strings"
	"time"
)

type SettingsConfig struct {
	Namespace string `koanf:"namespace" mapstructure:"namespace"`
}

type RefreshConfig struct {
	LeadWindow         time.Duration `koanf:"lead_window" mapstructure:"lead_window"`
	ExpiringSoonWindow time.Duration `koanf:"expiring_soon_window" mapstructure:"expiring_soon_window"`
	RequestTimeout     time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
}

type Config struct {
	BridgeName string         `koanf:"bridge_name" mapstructure:"bridge_name"`
	Settings   SettingsConfig `koanf:"settings" mapstructure:"settings"`
	Refresh    RefreshConfig  `koanf:"refresh" mapstructure:"refresh"`
}

func DefaultConfig() Config {
	return Config{
		BridgeName: "agentforce",
		Settings: SettingsConfig{
			Namespace: DefaultSettingsNamespace,
		},
		Refresh: RefreshConfig{
			LeadWindow:         DefaultRefreshLeadWindow,
			ExpiringSoonWindow: DefaultExpiringSoonWindow,
			RequestTimeout:     DefaultRefreshRequestTimeout,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BridgeName) == "" {
		return fmt.Errorf("core: bridge_name is required")
	}
	if strings.TrimSpace(c.Settings.Namespace) == "" {
		return fmt.Errorf("core: settings namespace is required")
	}
	return nil
}
