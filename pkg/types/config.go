package types

import (
	"errors"
	"strings"
)

// Config holds the CLI defaults loaded from config.yaml.
type Config struct {
	DataDir       string `json:"data_dir" yaml:"data_dir"`
	ProfileConfig string `json:"profile_config" yaml:"profile_config"`
	OutDir        string `json:"out_dir" yaml:"out_dir"`
	MaxMemory     string `json:"max_memory" yaml:"max_memory"`
	LogLevel      string `json:"log_level" yaml:"log_level"`
	Seed          uint64 `json:"seed" yaml:"seed"`
}

// Default configuration values.
const (
	DefaultDataDir       = "tests/data"
	DefaultProfileConfig = "conf/test.config"
	DefaultMaxMemory     = "4.GB"
	DefaultLogLevel      = "info"
	DefaultSeed          = 42
)

// Fixture errors.
var (
	ErrNoInstrumentFiles = errors.New("no instrument files found")
	ErrOddSampleCount    = errors.New("sample count must be even")
	ErrMissingInput      = errors.New("manifest references a missing file")
	ErrInvalidContrast   = errors.New("invalid contrast")
	ErrSchemaMismatch    = errors.New("table schema mismatch")
	ErrFlagNotFound      = errors.New("flag not found")
)

// Config validation errors.
var (
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrMaxMemoryInvalid = errors.New("max memory must look like <n>.<unit>, e.g. 4.GB")
)

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var knownMemoryUnits = map[string]bool{
	"B": true, "KB": true, "MB": true, "GB": true, "TB": true,
}

// Validate checks that the Config is well-formed. Empty fields are valid;
// callers fall back to the defaults above.
func (c Config) Validate() error {
	if c.LogLevel != "" && !knownLogLevels[strings.ToLower(c.LogLevel)] {
		return ErrLogLevelUnknown
	}
	if c.MaxMemory != "" {
		n, unit, ok := strings.Cut(c.MaxMemory, ".")
		if !ok || n == "" || strings.Trim(n, "0123456789") != "" || !knownMemoryUnits[unit] {
			return ErrMaxMemoryInvalid
		}
	}
	return nil
}
