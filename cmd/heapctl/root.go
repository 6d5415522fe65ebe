package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/arena"
	"github.com/joshuapare/heapkit/internal/logger"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	noColor  bool
	logAlloc bool

	// Heap flags
	arenaSize int
	maxArenas int
	goHeap    bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise and inspect a boundary-tag heap allocator",
	Long: `heapctl drives a heapkit allocator: it runs scripted allocate/free
sequences, randomized stress workloads with invariant checking, and prints the
free list and the physical block layout of every arena.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		BoolVar(&logAlloc, "log-alloc", false, "Log arena growth, splits and merges (also "+logger.EnvLogAlloc+")")

	// Heap flags
	rootCmd.PersistentFlags().
		IntVar(&arenaSize, "arena-size", heap.ArenaSize, "Arena size in bytes (multiple of 8)")
	rootCmd.PersistentFlags().
		IntVar(&maxArenas, "max-arenas", 0, "Refuse to map more than this many arenas (0 = unlimited)")
	rootCmd.PersistentFlags().
		BoolVar(&goHeap, "go-heap", false, "Carve arenas from the Go heap instead of mmap")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger wires the global logger to the verbosity flags.
func initLogger() {
	switch {
	case logAlloc || logger.AllocLoggingRequested():
		logger.Init(logger.Options{Enabled: true, Level: slog.LevelDebug, JSON: jsonOut})
	case verbose && !quiet:
		logger.Init(logger.Options{Enabled: true, Level: slog.LevelInfo, JSON: jsonOut})
	default:
		logger.Init(logger.Options{})
	}
}

// newHeap builds a heap from the heap flags.
func newHeap() (*heap.Heap, error) {
	var src arena.Source = arena.Mmap{}
	if goHeap {
		src = arena.GoHeap{}
	}
	if maxArenas > 0 {
		src = arena.NewLimited(src, maxArenas)
	}
	h, err := heap.New(
		heap.WithSource(src),
		heap.WithArenaSize(arenaSize),
		heap.WithLogger(logger.L),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create heap: %w", err)
	}
	logger.Info("heap created", "arena_size", arenaSize, "max_arenas", maxArenas, "go_heap", goHeap)
	return h, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
