package addressing

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/scale-snu/sudoku/decompose"
	"github.com/scale-snu/sudoku/pool"
)

// DDRType records the module's DDR generation. The pipeline does not
// read it: Decomposer picks its refresh oracle from Config.Platform
// (IntelDDR4 -> fine-grained paired refresh, any other platform ->
// coarse-grained).
type DDRType int

const (
	DDR4 DDRType = iota
	DDR5
)

func (d DDRType) String() string {
	if d == DDR5 {
		return "DDR5"
	}
	return "DDR4"
}

// Config is the full memory topology spec.md §3 enumerates, plus the
// pool and output-file settings needed to run the pipeline end to
// end.
type Config struct {
	DDRType  DDRType
	Platform decompose.Platform

	ModuleSizeBytes int
	NumRanks        int
	DQWidth         int // one of 8, 16, 32

	NumMemoryControllers int
	NumChannelsPerMC     int
	NumDIMMsPerChannel   int

	// Derived topology - callers supply these counts from prior
	// knowledge; nothing in this package computes them from the
	// fields above.
	NumSubChannelBits int
	NumRankBits       int
	NumBankGroupBits  int
	NumBankAddrBits   int
	NumRowBits        int
	NumColumnBits     int

	// PCIOffset is the low physical-address hole reserved for MMIO on
	// some platforms (0 on Intel, nonzero on AMD Zen). All function
	// masks and linear-algebra operations work in PCI-subtracted
	// space.
	PCIOffset uint64
	MaxBits   int

	Pool pool.Config

	// FilePrefix names every report.FileSink this run produces:
	// "<FilePrefix>.<op>.log".
	FilePrefix string
}

// NumBanks returns the total number of distinct banks the configured
// topology exposes.
func (c Config) NumBanks() int {
	return (1 << c.NumRankBits) * (1 << c.NumBankGroupBits) * (1 << c.NumBankAddrBits) * (1 << c.NumSubChannelBits)
}

// NumAddressingFunctionBits returns log2(NumBanks()) - the number of
// linearly independent addressing functions ReverseAddressingFunctions
// is expected to recover, per spec.md §4.7. It sums the topology bit
// counts directly rather than taking log2(NumBanks()) to avoid a
// float round-trip.
func (c Config) NumAddressingFunctionBits() int {
	return c.NumRankBits + c.NumBankGroupBits + c.NumBankAddrBits + c.NumSubChannelBits
}

func (c Config) validate() error {
	if c.DQWidth != 8 && c.DQWidth != 16 && c.DQWidth != 32 {
		return fmt.Errorf("DQWidth must be one of 8, 16, 32, got %d", c.DQWidth)
	}
	if c.MaxBits <= 0 {
		return fmt.Errorf("MaxBits must be positive")
	}
	if c.ModuleSizeBytes <= 0 {
		return fmt.Errorf("ModuleSizeBytes must be positive")
	}
	return nil
}

// LoadConfigFileOrExit calls LoadConfigFile and passes any error to
// DefaultExitFn.
func LoadConfigFileOrExit(path string) Config {
	cfg, err := LoadConfigFile(path)
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to load config file %q - %w", path, err))
	}
	return cfg
}

// LoadConfigFile reads a JSON-encoded Config from path.
func LoadConfigFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file - %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file - %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config - %w", err)
	}

	return cfg, nil
}
