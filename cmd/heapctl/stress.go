package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/logger"
)

var (
	stressOps     int
	stressSeed    int64
	stressMaxSize int
	stressFreePct int
	stressCheck   bool
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVarP(&stressOps, "ops", "n", 100000, "Number of operations")
	cmd.Flags().Int64Var(&stressSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&stressMaxSize, "max-size", 4096, "Largest request in bytes")
	cmd.Flags().IntVar(&stressFreePct, "free-pct", 45, "Percentage of operations that free a live block")
	cmd.Flags().BoolVar(&stressCheck, "check", false, "Verify every heap invariant after each operation (slow)")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a randomized allocate/free workload",
		Long: `The stress command runs a seeded random mix of allocations and frees,
verifies that every payload kept its contents, frees everything that is left,
and checks that each arena coalesced back into a single free block.

Example:
  heapctl stress
  heapctl stress -n 20000 --seed 7 --check
  heapctl stress --max-size 65536 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
	return cmd
}

type stressReport struct {
	Ops      int           `json:"ops"`
	Seed     int64         `json:"seed"`
	PeakLive int           `json:"peak_live"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	Stats    heap.Stats    `json:"stats"`
}

type stressBlock struct {
	ref  heap.Ref
	buf  []byte
	fill byte
}

func runStress() error {
	if stressMaxSize <= 0 {
		return fmt.Errorf("--max-size must be positive, got %d", stressMaxSize)
	}
	if stressFreePct < 0 || stressFreePct > 100 {
		return fmt.Errorf("--free-pct must be within 0..100, got %d", stressFreePct)
	}

	h, err := newHeap()
	if err != nil {
		return err
	}
	defer h.Close()

	var a heap.Allocator = h
	if stressCheck {
		a = heap.NewChecked(h)
	}

	maxSize := min(stressMaxSize, h.Capacity())
	rng := rand.New(rand.NewSource(stressSeed))
	report := stressReport{Ops: stressOps, Seed: stressSeed}

	printVerbose("Running %s operations (seed %d, max size %d)\n", formatNumber(int64(stressOps)), stressSeed, maxSize)
	start := time.Now()

	var live []stressBlock
	for i := range stressOps {
		if len(live) > 0 && rng.Intn(100) < stressFreePct {
			j := rng.Intn(len(live))
			if err := freeStress(a, live[j]); err != nil {
				return fmt.Errorf("op %d: %w", i, err)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
			continue
		}

		size := rng.Intn(maxSize) + 1
		ref, b, err := a.Alloc(size)
		if err != nil {
			return fmt.Errorf("op %d: alloc(%d): %w", i, size, err)
		}
		fill := byte(rng.Intn(256))
		for k := range b {
			b[k] = fill
		}
		live = append(live, stressBlock{ref: ref, buf: b, fill: fill})
		report.PeakLive = max(report.PeakLive, len(live))
	}

	for _, blk := range live {
		if err := freeStress(a, blk); err != nil {
			return fmt.Errorf("drain: %w", err)
		}
	}
	report.Elapsed = time.Since(start)

	if err := h.Check(); err != nil {
		return fmt.Errorf("final check: %w", err)
	}
	report.Stats = h.Stats()
	if report.Stats.FreeBlocks != report.Stats.Arenas {
		return fmt.Errorf("heap did not coalesce: %d free blocks across %d arenas",
			report.Stats.FreeBlocks, report.Stats.Arenas)
	}
	logger.Info("stress complete", "ops", stressOps, "seed", stressSeed, "elapsed", report.Elapsed)

	if jsonOut {
		return printJSON(report)
	}
	printInfo("%s", heading("Stress Run"))
	printInfo("  Operations: %s\n", formatNumber(int64(report.Ops)))
	printInfo("  Seed: %d\n", report.Seed)
	printInfo("  Peak live blocks: %s\n", formatNumber(int64(report.PeakLive)))
	printInfo("  Elapsed: %s\n\n", report.Elapsed.Round(time.Microsecond))
	printStats(report.Stats)
	printInfo("\n%s\n", styled(freeStyle, "OK: all blocks returned, every arena coalesced"))
	return nil
}

func freeStress(a heap.Allocator, blk stressBlock) error {
	for k, v := range blk.buf {
		if v != blk.fill {
			return fmt.Errorf("block %v byte %d: got 0x%02X, want 0x%02X", blk.ref, k, v, blk.fill)
		}
	}
	if err := a.Free(blk.ref); err != nil {
		return fmt.Errorf("free(%v): %w", blk.ref, err)
	}
	return nil
}
