package pin

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// Supported PIN lengths.
const (
	LengthStandard = 4
	LengthExtended = 6
)

const defaultMaxAttempts = 10000

var (
	// ErrUnsupportedLength is returned by [Generator.Generate] for lengths
	// other than 4 or 6.
	ErrUnsupportedLength = errors.New("unsupported pin length")
	// ErrGeneratorExhausted is returned when the resampling cap is reached
	// without producing a non-weak PIN. With a uniform source this is
	// effectively unreachable and indicates a broken entropy source.
	ErrGeneratorExhausted = errors.New("pin generation attempts exhausted")
)

// Config tunes a [Generator].
type Config struct {
	// Rand is the entropy source digits are drawn from.
	// Defaults to crypto/rand.Reader.
	Rand io.Reader

	// MaxAttempts bounds resampling per Generate call.
	// Defaults to 10000. It is a safety cap only and does not change
	// which PINs are acceptable.
	MaxAttempts int
}

// Generator produces PINs that satisfy [IsWeak] == false. It holds no other
// state and is usable independently of any store or session.
type Generator struct {
	rand        io.Reader
	maxAttempts int
}

// NewGenerator creates a [Generator], applying defaults for zero fields.
func NewGenerator(cfg Config) *Generator {
	if cfg.Rand == nil {
		cfg.Rand = rand.Reader
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	return &Generator{
		rand:        cfg.Rand,
		maxAttempts: cfg.MaxAttempts,
	}
}

// Generate returns a PIN of the requested length (4 or 6) that passes the
// quality policy. Digits are independent and uniform; weak candidates are
// discarded and redrawn.
func (g *Generator) Generate(length int) (string, error) {
	if length != LengthStandard && length != LengthExtended {
		return "", ErrUnsupportedLength
	}

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		candidate, err := g.draw(length)
		if err != nil {
			return "", err
		}
		if !IsWeak(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w after %d attempts", ErrGeneratorExhausted, g.maxAttempts)
}

var digitRange = big.NewInt(10)

func (g *Generator) draw(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(g.rand, digitRange)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}

	return b.String(), nil
}
