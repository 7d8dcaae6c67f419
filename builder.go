package pinvault

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"strconv"

	"github.com/sachk/pinvault/pin"
	"github.com/sachk/pinvault/token"
)

// Builder assembles an [Engine]. A Builder is single-use: Build fails on a
// second call.
type Builder struct {
	config     Config
	store      Store
	randSource io.Reader
	auditSink  AuditSink

	built bool
}

// New returns a Builder initialized with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the full configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStore supplies a pre-built store, bypassing Config.Store.Path.
func (b *Builder) WithStore(s Store) *Builder {
	b.store = s
	return b
}

// WithStorePath sets the flat-file path a [FileStore] is opened from at
// Build time.
func (b *Builder) WithStorePath(path string) *Builder {
	b.config.Store.Path = path
	return b
}

// WithRandSource injects the PIN generator's entropy source. Defaults to
// crypto/rand; tests pass a deterministic reader.
func (b *Builder) WithRandSource(r io.Reader) *Builder {
	b.randSource = r
	return b
}

// WithAuditSink sets the audit destination and enables auditing.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

// WithMetricsEnabled toggles the engine counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithSessionReceipts enables receipt minting with the given TTL.
func (b *Builder) WithSessionReceipts(cfg SessionConfig) *Builder {
	b.config.Session = cfg
	return b
}

// Build validates the configuration, opens the store if one was not
// supplied, and wires the engine. The store load happens here; a skipped
// malformed line never fails the build.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	var fileStore *FileStore
	if store == nil {
		if cfg.Store.Path == "" {
			return nil, errors.New("store or store path required")
		}
		fs, err := OpenFileStore(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		fileStore = fs
		store = fs
	}

	engine := &Engine{
		config: cfg,
		store:  store,
		generator: pin.NewGenerator(pin.Config{
			Rand:        b.randSource,
			MaxAttempts: cfg.Pin.MaxGenerateAttempts,
		}),
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	if cfg.Session.Enabled {
		key := cfg.Session.SigningKey
		if len(key) == 0 {
			key = make([]byte, 32)
			if _, err := io.ReadFull(rand.Reader, key); err != nil {
				return nil, err
			}
		}
		tm, err := token.NewManager(token.Config{
			TTL:        cfg.Session.ReceiptTTL,
			SigningKey: key,
			Issuer:     "pinvault",
		})
		if err != nil {
			return nil, err
		}
		engine.receipts = tm
	}

	if fileStore != nil {
		skipped := fileStore.Skipped()
		engine.emitAudit(context.Background(), auditEventStoreLoaded, true, "", nil, func() map[string]string {
			return map[string]string{
				"records": strconv.Itoa(len(fileStore.Accounts())),
				"skipped": strconv.Itoa(skipped),
			}
		})
	}

	b.built = true

	return engine, nil
}
