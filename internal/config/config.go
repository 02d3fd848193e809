package config

import (
	"errors"
	"runtime"

	"github.com/nherb/hdifinder/internal/apperrors"
)

// Defaults for the search parameters.
const (
	DefaultStart     = 0
	DefaultEnd       = 10_000_000
	DefaultChunkSize = 2500

	// maxIndex is the BIP-32 non-hardened child ceiling; indexes at or
	// above it cannot be derived on the external chain.
	maxIndex = 1 << 31
)

// Errors
var (
	ErrNoMnemonic = errors.New("a mnemonic phrase is required")
	ErrNoAddress  = errors.New("a target address is required")
)

// Config holds the application configuration.
type Config struct {
	Mnemonic    string
	Address     string
	Passphrase  string
	Account     uint32
	Start       uint32
	End         uint32
	ChunkSize   uint32
	Workers     int
	Verbose     bool
	LogFile     string
	LogInterval int // seconds between progress log lines
}

// NewConfig creates a new configuration with default values.
func NewConfig() *Config {
	return &Config{
		Start:       DefaultStart,
		End:         DefaultEnd,
		ChunkSize:   DefaultChunkSize,
		Workers:     runtime.NumCPU(),
		LogInterval: 5,
	}
}

// Validate checks the configuration, failing fast on anything that would
// make the search invalid. Unlike the usual "fall back to a default"
// handling of bad values, out-of-range inputs are hard errors so an
// operator typo cannot silently search the wrong range.
func (c *Config) Validate() error {
	if c.Mnemonic == "" {
		return ErrNoMnemonic
	}
	if c.Address == "" {
		return ErrNoAddress
	}
	if c.ChunkSize == 0 {
		return apperrors.NewConfigError("chunk_size", "must be greater than zero")
	}
	if c.Start > c.End {
		return apperrors.NewConfigError("range", "start %d is beyond end %d", c.Start, c.End)
	}
	if c.End > maxIndex {
		return apperrors.NewConfigError("end", "must not exceed %d (BIP-32 non-hardened limit)", maxIndex)
	}
	if c.Workers <= 0 {
		return apperrors.NewConfigError("workers", "must be greater than zero")
	}
	return nil
}
