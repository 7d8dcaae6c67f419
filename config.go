package pinvault

import (
	"errors"
	"time"

	"github.com/sachk/pinvault/pin"
)

// Config defines engine-wide tuning. Configs are cloned at Build time and
// treated as immutable afterwards.
type Config struct {
	Store   StoreConfig
	Pin     PinConfig
	Account AccountConfig
	Session SessionConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig locates the flat-file store. Ignored when the Builder is given
// a Store directly.
type StoreConfig struct {
	Path string
}

/*
====================================
PIN CONFIG
====================================
*/

// PinConfig tunes PIN issuance.
type PinConfig struct {
	// DefaultLength is used when CreateAccountRequest.PINLength is zero.
	// Must be 4 or 6.
	DefaultLength int

	// MaxGenerateAttempts caps resampling per generated PIN. Zero selects
	// the pin package default.
	MaxGenerateAttempts int
}

/*
====================================
ACCOUNT CONFIG
====================================
*/

// AccountConfig tunes the lockout policy and username validation.
type AccountConfig struct {
	// MaxWrongAttempts is the lockout threshold. A record is locked when
	// its wrong-attempt counter reaches this value.
	MaxWrongAttempts int

	// UsernameMaxLength caps username length at creation. Zero disables
	// the cap.
	UsernameMaxLength int
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig tunes session receipts. When SigningKey is empty a random
// per-process key is generated at Build time, so receipts do not survive a
// restart.
type SessionConfig struct {
	Enabled    bool
	ReceiptTTL time.Duration
	SigningKey []byte
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig tunes the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig enables in-process counters.
type MetricsConfig struct {
	Enabled bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Pin: PinConfig{
			DefaultLength: pin.LengthStandard,
		},
		Account: AccountConfig{
			MaxWrongAttempts:  3,
			UsernameMaxLength: 32,
		},
		Session: SessionConfig{
			Enabled:    false,
			ReceiptTTL: 5 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Session.SigningKey = cloneBytes(cfg.Session.SigningKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Validate reports the first configuration defect found.
func (c *Config) Validate() error {
	if c.Pin.DefaultLength != pin.LengthStandard && c.Pin.DefaultLength != pin.LengthExtended {
		return errors.New("Pin DefaultLength must be 4 or 6")
	}
	if c.Pin.MaxGenerateAttempts < 0 {
		return errors.New("Pin MaxGenerateAttempts must not be negative")
	}
	if c.Account.MaxWrongAttempts < 1 {
		return errors.New("Account MaxWrongAttempts must be at least 1")
	}
	if c.Account.UsernameMaxLength < 0 {
		return errors.New("Account UsernameMaxLength must not be negative")
	}
	if c.Session.Enabled && c.Session.ReceiptTTL <= 0 {
		return errors.New("Session ReceiptTTL must be positive when receipts are enabled")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit BufferSize must not be negative")
	}
	return nil
}
