package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/internal/format"
)

var layoutFile string

func init() {
	cmd := newLayoutCmd()
	cmd.Flags().StringVarP(&layoutFile, "file", "f", "", "Read the script from a file (- for stdin)")
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout [script...]",
		Short: "Show every block of every arena in address order",
		Long: `The layout command runs a script (see "heapctl run --help") and then
prints each arena's blocks in physical order with their offset, state and
payload size.

Example:
  heapctl layout --arena-size 4096 "a 100; a 200; f 0"
  heapctl layout --json "a 64; g"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(args)
		},
	}
	return cmd
}

type layoutBlock struct {
	Arena  int    `json:"arena"`
	Offset int    `json:"offset"`
	Ref    string `json:"ref"`
	Size   int    `json:"size"`
	Free   bool   `json:"free"`
}

func runLayout(args []string) error {
	src, err := readScript(args, layoutFile)
	if err != nil {
		return err
	}
	ops, err := parseScript(src)
	if err != nil {
		return err
	}

	h, err := newHeap()
	if err != nil {
		return err
	}
	defer h.Close()

	e := newExecutor(h, false, nil)
	for _, o := range ops {
		if o.Kind == opDump {
			continue
		}
		if _, err := e.exec(o); err != nil {
			return err
		}
	}
	if err := h.Check(); err != nil {
		printError("heap is inconsistent: %v\n", err)
	}

	var blocks []layoutBlock
	for s := range h.Blocks() {
		blocks = append(blocks, layoutBlock{
			Arena:  s.Ref.Arena(),
			Offset: s.Ref.Offset(),
			Ref:    s.Ref.String(),
			Size:   s.Size,
			Free:   s.Free,
		})
	}

	if jsonOut {
		return printJSON(blocks)
	}

	arenaIdx := -1
	for _, b := range blocks {
		if b.Arena != arenaIdx {
			arenaIdx = b.Arena
			printInfo("%s", heading(printer.Sprintf("Arena %d (%d bytes)", b.Arena, h.ArenaSize())))
		}
		state := styled(usedStyle, "USED")
		if b.Free {
			state = styled(freeStyle, "FREE")
		}
		printInfo("  0x%08X  %s  %14s  payload 0x%08X\n",
			b.Offset, state, formatNumber(int64(b.Size)), format.PayloadOffset(b.Offset))
	}
	if len(blocks) == 0 {
		printInfo("%s\n", styled(mutedStyle, "(no arenas mapped)"))
	}
	return nil
}
