package addressing

import (
	"fmt"

	"github.com/scale-snu/sudoku/classify"
	"github.com/scale-snu/sudoku/decompose"
	"github.com/scale-snu/sudoku/gf2"
	"github.com/scale-snu/sudoku/oracle"
	"github.com/scale-snu/sudoku/pool"
	"github.com/scale-snu/sudoku/report"
	"github.com/scale-snu/sudoku/sbdr"
	"github.com/scale-snu/sudoku/validate"
)

// Addressing drives the fixed pipeline spec.md's "State & transitions"
// describes:
//
//	Initialize -> (ReverseAddressingFunctions | SetAddressingFunctions)
//	           -> IdentifyBits -> ValidateAddressMapping
//	           -> [DecomposeUsingRefreshes, DecomposeUsingConsecutiveAccesses]
//	           -> Finalize
//
// Each method checks its predecessor ran and returns a *StateError
// (never a panic) if called out of order.
type Addressing struct {
	cfg    Config
	pool   *pool.Pool
	oracle *oracle.Oracle
	sink   report.Sink
	state  state

	base pool.AddressTuple

	addressingFns *FunctionSet
	rowBits       uint64
	columnBits    uint64
	validated     bool

	rankFns      []uint64
	bankGroupFns []uint64
	bankAddrFns  []uint64
}

// Initialize stores the pool, oracle, and report sink this Addressing
// instance will use for the rest of its pipeline and samples the base
// address every later stage measures relative to.
func (o *Addressing) Initialize(cfg Config, p *pool.Pool, ora *oracle.Oracle, sink report.Sink) error {
	if o.state != stateNew {
		return &StateError{Op: "Initialize", Current: o.state, Required: stateNew}
	}

	if sink == nil {
		sink = report.NopSink{}
	}

	base, err := p.SampleAddress()
	if err != nil {
		return fmt.Errorf("failed to sample base address - %w", err)
	}

	o.cfg = cfg
	o.pool = p
	o.oracle = ora
	o.sink = sink
	o.base = base
	o.addressingFns = NewFunctionSet()
	o.state = stateInitialized

	return nil
}

// ReverseAddressingFunctions runs sbdr.Discover and sbdr.DeriveFunctions
// to recover the addressing functions from timing measurements alone.
func (o *Addressing) ReverseAddressingFunctions(cfg sbdr.Config, minBits, maxBits int) error {
	if err := o.requireState("ReverseAddressingFunctions", stateInitialized); err != nil {
		return err
	}

	clusters, err := sbdr.Discover(o.pool, o.oracle, cfg)
	if err != nil && err != sbdr.ErrClusteringStalled {
		return fmt.Errorf("SBDR discovery failed - %w", err)
	}

	clusters = sbdr.DiscardUndersized(clusters, cfg.MinimumSetSize)
	clusters = sbdr.FilterOutliers(clusters, o.oracle, cfg.SBDRLowerBound, cfg.FilterScore)
	clusters = sbdr.SlidePCIOffset(clusters, o.cfg.PCIOffset)

	fns, err := sbdr.DeriveFunctions(clusters, minBits, maxBits, CachelineOffsetBits, o.cfg.MaxBits)
	if err != nil {
		o.logDiagnostic("reverse", "function count mismatch: %v", err)
	}

	if want := o.cfg.NumAddressingFunctionBits(); want > 0 && len(fns) < want {
		o.logDiagnostic("reverse", "%v", sbdr.CheckFunctionCount(fns, want))
	}

	for _, f := range fns {
		o.addressingFns.Add(gf2.FunctionMask(f))
	}

	o.state = stateFunctionsSet
	return nil
}

// SetAddressingFunctions lets a caller supply a user-provided function
// mask list (spec.md §6) instead of running ReverseAddressingFunctions.
func (o *Addressing) SetAddressingFunctions(masks []uint64) error {
	if err := o.requireState("SetAddressingFunctions", stateInitialized); err != nil {
		return err
	}

	for _, m := range masks {
		o.addressingFns.Add(gf2.FunctionMask(m))
	}

	o.state = stateFunctionsSet
	return nil
}

// IdentifyBits enumerates uncovered-bit and used-bit candidate masks
// and assigns each to row or column by voting, per spec.md §4.8.
func (o *Addressing) IdentifyBits(votingCfg classify.VotingConfig) error {
	if err := o.requireState("IdentifyBits", stateFunctionsSet); err != nil {
		return err
	}

	fns := o.addressingFns.Uint64Slice()

	uncovered := classify.UncoveredMask(fns, o.cfg.MaxBits, CachelineOffsetBits)

	var rowFns, colFns []uint64

	for _, m := range gf2.AllCombinations(uncovered) {
		vote, ok := classify.Classify(m, o.base, o.pool, o.oracle, votingCfg)
		if !ok {
			continue
		}
		if vote.Row == 1 {
			rowFns = append(rowFns, m)
		} else if vote.Column == 1 {
			colFns = append(colFns, m)
		}
	}

	for _, component := range classify.UsedBitCandidates(fns) {
		for _, m := range component {
			vote, ok := classify.Classify(m, o.base, o.pool, o.oracle, votingCfg)
			if !ok {
				continue
			}
			if vote.Row == 1 {
				rowFns = append(rowFns, m)
			} else if vote.Column == 1 {
				colFns = append(colFns, m)
			}
		}
	}

	o.rowBits, o.columnBits = classify.ReduceRowColumn(rowFns, colFns)
	o.state = stateBitsIdentified
	return nil
}

// ValidateAddressMapping runs the rank-nullity injectivity check and,
// if it fails, attempts a single repair pass before re-checking.
func (o *Addressing) ValidateAddressMapping() error {
	if err := o.requireState("ValidateAddressMapping", stateBitsIdentified); err != nil {
		return err
	}

	fns := o.addressingFns.Uint64Slice()
	sets := validate.DisjointSets(fns)

	if validate.CheckInjectivity(sets, fns, o.rowBits, o.columnBits) {
		o.validated = true
		o.state = stateValidated
		return nil
	}

	newRow, newCol, ok := validate.Repair(sets, o.rowBits, o.columnBits, o.cfg.NumRowBits, o.cfg.NumColumnBits)
	if ok {
		o.rowBits, o.columnBits = newRow, newCol
	}

	o.validated = ok
	o.state = stateValidated

	if !ok {
		o.logDiagnostic("validate", "injectivity check failed and could not be repaired")
	}

	return nil
}

// DecomposeUsingRefreshes splits the addressing functions not yet
// classified into rank and remaining components by refresh interval.
func (o *Addressing) DecomposeUsingRefreshes(solver decompose.Solver, cfg decompose.RefreshConfig) error {
	if err := o.requireState("DecomposeUsingRefreshes", stateValidated); err != nil {
		return err
	}

	d := decompose.NewDecomposer(o.cfg.Platform, o.pool, o.oracle, solver, cfg.RefreshIters, cfg.SpikeThreshold)

	fns := o.remainingFunctions()
	rankFns, _, err := d.DecomposeByRefresh(fns, o.base, cfg)
	if err != nil {
		return fmt.Errorf("refresh decomposition failed - %w", err)
	}

	o.rankFns = rankFns
	return nil
}

// DecomposeUsingConsecutiveAccesses splits the remaining functions (not
// classified as rank) into bank-address and bank-group components by
// read-read latency.
func (o *Addressing) DecomposeUsingConsecutiveAccesses(solver decompose.Solver, numBankAddrBits int, cfg decompose.ConsecutiveConfig) error {
	if err := o.requireState("DecomposeUsingConsecutiveAccesses", stateValidated); err != nil {
		return err
	}

	d := decompose.NewDecomposer(o.cfg.Platform, o.pool, o.oracle, solver, 0, 0)

	fns := o.remainingFunctions()
	cfg.ColumnBits = o.columnBits
	bankAddr, bankGroup, err := d.DecomposeByConsecutive(fns, o.addressingFns.Uint64Slice(), o.base, numBankAddrBits, cfg)
	if err != nil {
		return fmt.Errorf("consecutive-access decomposition failed - %w", err)
	}

	o.bankAddrFns = bankAddr
	o.bankGroupFns = bankGroup
	return nil
}

// remainingFunctions returns the addressing functions not already
// assigned to rankFns by a prior DecomposeUsingRefreshes call.
func (o *Addressing) remainingFunctions() []uint64 {
	rank := make(map[uint64]bool, len(o.rankFns))
	for _, f := range o.rankFns {
		rank[f] = true
	}

	var out []uint64
	for _, f := range o.addressingFns.Uint64Slice() {
		if !rank[f] {
			out = append(out, f)
		}
	}
	return out
}

// Finalize marks the pipeline complete. It does not close the pool or
// sink - those are owned by the caller.
func (o *Addressing) Finalize() error {
	if err := o.requireState("Finalize", stateValidated); err != nil {
		return err
	}

	o.state = stateFinalized
	return nil
}

// Results returns the accumulated addressing functions, row/column
// bits, and decomposed components. Valid only after Finalize.
func (o *Addressing) Results() (addressingFns []uint64, rowBits, columnBits uint64, rankFns, bankGroupFns, bankAddrFns []uint64) {
	return o.addressingFns.Uint64Slice(), o.rowBits, o.columnBits, o.rankFns, o.bankGroupFns, o.bankAddrFns
}

func (o *Addressing) logDiagnostic(op, format string, args ...any) {
	o.sink.WriteRow(op, fmt.Sprintf(format, args...))
}

// CachelineOffsetBits is spec.md's CACHELINE_OFFSET=6: physical
// address bits below this index never participate in any function,
// row, or column mask.
const CachelineOffsetBits = 6
