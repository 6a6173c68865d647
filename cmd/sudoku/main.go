// Command sudoku drives the Addressing pipeline against a real pool of
// hugepages, writing every stage's diagnostics to a FileSink.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/scale-snu/sudoku/addressing"
	"github.com/scale-snu/sudoku/classify"
	"github.com/scale-snu/sudoku/decompose"
	"github.com/scale-snu/sudoku/oracle"
	"github.com/scale-snu/sudoku/pool"
	"github.com/scale-snu/sudoku/report"
	"github.com/scale-snu/sudoku/sbdr"
	"github.com/scale-snu/sudoku/scripting"
	"github.com/scale-snu/sudoku/solve"
	"github.com/scale-snu/sudoku/timing"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to a JSON addressing.Config file")
		numPages    = flag.Int("pages", 4, "number of 1 GiB hugepages to map")
		minBits     = flag.Int("min-bits", 1, "minimum number of address bits in each candidate addressing function SBDR tests")
		reverse     = flag.Bool("reverse", true, "recover addressing functions via SBDR instead of supplying them")
		interactive = flag.Int("pause-at-stage", 0, "block for enter at this pipeline stage number and every later one, 0 disables")
	)
	flag.Parse()

	logger := log.Default()
	logger.SetFlags(0)

	stage := scripting.StageCtl{Goto: *interactive, Logger: logger}

	if *configPath == "" {
		logger.Fatalln("fatal: -config is required")
	}

	cfg := addressing.LoadConfigFileOrExit(*configPath)
	cfg.Pool.PageSizeBytes = pool.OneGiB
	cfg.Pool.NumPages = *numPages

	p := pool.OpenOrExit(cfg.Pool)
	defer p.CloseOrExit()

	clock := timing.NewHardwareClockOrExit()

	ora := oracle.NewOracleOrExit(clock, oracle.Config{})

	sink := report.NewFileSinkOrExit(cfg.FilePrefix)
	defer sink.CloseOrExit()

	var a addressing.Addressing
	if err := a.Initialize(cfg, p, ora, sink); err != nil {
		logger.Fatalf("fatal: %v", err)
	}

	stage.Next("recover or set addressing functions")
	if *reverse {
		sbdrCfg := sbdr.Config{
			SBDRLowerBound: classify.DefaultSBDRLowerBound,
			SBDRUpperBound: classify.DefaultSBDRUpperBound,
			TargetClusters: cfg.NumBanks() / 2,
			MaxAttempts:    classify.DefaultMaxNumTrials,
		}
		if err := a.ReverseAddressingFunctions(sbdrCfg, *minBits, cfg.MaxBits); err != nil {
			logger.Fatalf("fatal: reverse addressing functions - %v", err)
		}
	} else {
		if err := a.SetAddressingFunctions(nil); err != nil {
			logger.Fatalf("fatal: set addressing functions - %v", err)
		}
	}

	stage.Next("classify row/column bits")
	votingCfg := classify.VotingConfig{PCIOffset: cfg.PCIOffset, MaxBits: cfg.MaxBits}
	if err := a.IdentifyBits(votingCfg); err != nil {
		logger.Fatalf("fatal: identify bits - %v", err)
	}

	stage.Next("validate injectivity")
	if err := a.ValidateAddressMapping(); err != nil {
		logger.Fatalf("fatal: validate address mapping - %v", err)
	}

	stage.Next("decompose rank, bank-group, and bank-address functions")
	solver := func(base pool.AddressTuple, c solve.Constraints) (pool.AddressTuple, bool) {
		t, ok, _ := solve.Solve(p, base, c, cfg.PCIOffset, cfg.MaxBits)
		return t, ok
	}

	refreshCfg := decompose.RefreshConfig{PCIOffset: cfg.PCIOffset, MaxBits: cfg.MaxBits}
	if err := a.DecomposeUsingRefreshes(solver, refreshCfg); err != nil {
		logger.Printf("warning: decompose using refreshes - %v", err)
	}

	consecutiveCfg := decompose.ConsecutiveConfig{PCIOffset: cfg.PCIOffset, MaxBits: cfg.MaxBits}
	if err := a.DecomposeUsingConsecutiveAccesses(solver, cfg.NumBankAddrBits, consecutiveCfg); err != nil {
		logger.Printf("warning: decompose using consecutive accesses - %v", err)
	}

	if err := a.Finalize(); err != nil {
		logger.Fatalf("fatal: %v", err)
	}

	fns, rowBits, colBits, rankFns, bankGroupFns, bankAddrFns := a.Results()

	fmt.Fprintf(os.Stdout, "addressing functions: %d\n", len(fns))
	for _, f := range fns {
		fmt.Fprintf(os.Stdout, "  %s\n", report.HexU64(f))
	}
	fmt.Fprintf(os.Stdout, "row bits:    %s\n", report.HexU64(rowBits))
	fmt.Fprintf(os.Stdout, "column bits: %s\n", report.HexU64(colBits))
	fmt.Fprintf(os.Stdout, "rank functions:       %d\n", len(rankFns))
	fmt.Fprintf(os.Stdout, "bank group functions: %d\n", len(bankGroupFns))
	fmt.Fprintf(os.Stdout, "bank address functions: %d\n", len(bankAddrFns))

	report.WriteSnapshotOrExit(cfg.FilePrefix+".snapshot", report.SnapshotOf(
		fns, rowBits, colBits, rankFns, bankGroupFns, bankAddrFns))
}
