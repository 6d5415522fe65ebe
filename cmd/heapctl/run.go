package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
)

var (
	runFile  string
	runCheck bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().StringVarP(&runFile, "file", "f", "", "Read the script from a file (- for stdin)")
	cmd.Flags().BoolVar(&runCheck, "check", false, "Verify every heap invariant after each operation")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [script...]",
		Short: "Run a scripted allocate/free sequence",
		Long: `The run command executes a script of heap operations and prints the
result of each one, followed by allocator statistics.

Operations:
  a <size>   allocate size bytes into the next slot
  f <slot>   free the block in slot
  g          map another arena
  d          print the free list
  c          check every heap invariant

Example:
  heapctl run "a 100; a 200; f 0; d"
  heapctl run --check -f workload.txt
  heapctl run --json "a 64, a 64, f 1"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

type runReport struct {
	Ops   []opResult `json:"ops"`
	Stats heap.Stats `json:"stats"`
}

func runRun(args []string) error {
	src, err := readScript(args, runFile)
	if err != nil {
		return err
	}
	ops, err := parseScript(src)
	if err != nil {
		return err
	}
	printVerbose("Parsed %d operations\n", len(ops))

	h, err := newHeap()
	if err != nil {
		return err
	}
	defer h.Close()

	var out io.Writer = os.Stdout
	if jsonOut || quiet {
		out = io.Discard
	}
	e := newExecutor(h, runCheck, out)

	var report runReport
	for _, o := range ops {
		res, err := e.exec(o)
		if err != nil {
			return err
		}
		report.Ops = append(report.Ops, res)
		if !jsonOut {
			printResult(res)
		}
	}
	report.Stats = h.Stats()

	if jsonOut {
		return printJSON(report)
	}
	printInfo("\n")
	printStats(report.Stats)
	return nil
}

func printResult(res opResult) {
	switch res.kind {
	case opAlloc:
		if res.Ref == "" {
			printInfo("%-12s slot %d  nil\n", res.Op, res.Slot)
			return
		}
		printInfo("%-12s slot %d  ref %s  %s bytes\n", res.Op, res.Slot, res.Ref, formatNumber(int64(res.Size)))
	case opFree:
		printInfo("%-12s slot %d  freed\n", res.Op, res.Slot)
	default:
		printVerbose("%-12s ok\n", res.Op)
	}
}
