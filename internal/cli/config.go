package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sachk/pinvault"
)

// FileConfig is the optional YAML configuration for the CLI.
type FileConfig struct {
	StorePath       string  `yaml:"store_path"`
	PINLength       int     `yaml:"pin_length"`
	StartingBalance float64 `yaml:"starting_balance"`
	SessionTTL      string  `yaml:"session_ttl"`
	AuditLog        string  `yaml:"audit_log"`
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		StorePath:       "atm_users.db",
		PINLength:       4,
		StartingBalance: 1000.00,
		SessionTTL:      "5m",
	}
}

// LoadFileConfig reads the YAML file at path, applying defaults for absent
// fields. An empty path returns the defaults.
func LoadFileConfig(path string) (FileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, err := cfg.sessionTTL(); err != nil {
		return cfg, fmt.Errorf("parse %s: session_ttl: %w", path, err)
	}
	return cfg, nil
}

func (c FileConfig) sessionTTL() (time.Duration, error) {
	if c.SessionTTL == "" {
		return 5 * time.Minute, nil
	}
	return time.ParseDuration(c.SessionTTL)
}

// buildEngine assembles an engine from the file config plus flag overrides.
// The returned closer flushes the audit dispatcher and closes the audit log
// file, when one is configured.
func buildEngine(opts *RootOptions) (*pinvault.Engine, FileConfig, func(), error) {
	fileCfg, err := LoadFileConfig(opts.ConfigPath)
	if err != nil {
		return nil, fileCfg, nil, err
	}
	if opts.StorePath != "" {
		fileCfg.StorePath = opts.StorePath
	}

	ttl, err := fileCfg.sessionTTL()
	if err != nil {
		return nil, fileCfg, nil, err
	}

	engineCfg := pinvault.Config{
		Store: pinvault.StoreConfig{Path: fileCfg.StorePath},
		Pin:   pinvault.PinConfig{DefaultLength: fileCfg.PINLength},
		Account: pinvault.AccountConfig{
			MaxWrongAttempts:  3,
			UsernameMaxLength: 32,
		},
		Session: pinvault.SessionConfig{
			Enabled:    true,
			ReceiptTTL: ttl,
		},
		Audit: pinvault.AuditConfig{
			Enabled:    fileCfg.AuditLog != "",
			BufferSize: 1024,
			DropIfFull: true,
		},
	}

	builder := pinvault.New().WithConfig(engineCfg)

	cleanup := func() {}
	if fileCfg.AuditLog != "" {
		f, err := os.OpenFile(fileCfg.AuditLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fileCfg, nil, err
		}
		builder = builder.WithAuditSink(pinvault.NewJSONWriterSink(f))
		cleanup = func() { _ = f.Close() }
	}

	engine, err := builder.Build()
	if err != nil {
		cleanup()
		return nil, fileCfg, nil, err
	}

	closer := func() {
		engine.Close()
		cleanup()
	}
	return engine, fileCfg, closer, nil
}
