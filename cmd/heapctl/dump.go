package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
)

var dumpFile string

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVarP(&dumpFile, "file", "f", "", "Read the script from a file (- for stdin)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [script...]",
		Short: "Print the free list of the process-wide heap",
		Long: `The dump command runs an optional allocate/free script against the
process-wide heap and prints its free list, one line per block in list order.
Only the a (alloc) and f (free) operations are accepted. Running out of memory
terminates the process, as it does for any user of the process-wide heap.

Example:
  heapctl dump
  heapctl dump "a 100; a 200; a 300; f 1"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	src, err := readScript(args, dumpFile)
	if err != nil {
		return err
	}
	ops, err := parseScript(src)
	if err != nil {
		return err
	}

	var slots [][]byte
	for _, o := range ops {
		switch o.Kind {
		case opAlloc:
			b, err := heap.Allocate(o.Arg)
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", o.Line, o, err)
			}
			slots = append(slots, b)
		case opFree:
			if o.Arg >= len(slots) {
				return fmt.Errorf("line %d: %s: no slot %d (%d allocated): %w",
					o.Line, o, o.Arg, len(slots), errBadScript)
			}
			if err := heap.Deallocate(slots[o.Arg]); err != nil {
				return fmt.Errorf("line %d: %s: %w", o.Line, o, err)
			}
		default:
			return fmt.Errorf("line %d: %s not supported by dump: %w", o.Line, o, errBadScript)
		}
	}
	printVerbose("Ran %d operations\n", len(ops))

	if jsonOut {
		return printJSON(heap.Default().FreeBlocks())
	}
	if quiet {
		return nil
	}
	return heap.DumpFreeList(os.Stdout)
}
