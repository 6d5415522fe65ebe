package main

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/logger"
)

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name           string
		script         string
		json           bool
		quiet          bool
		check          bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:   "alloc free dump",
			script: "a 100; a 200; f 0; d",
			wantContain: []string{
				"alloc 100", "slot 0", "ref 0:0x0", "104 bytes",
				"free 0", "freed",
				"Free list block (1) has a data size of (104) bytes",
				"Heap Statistics", "Splits: 2",
			},
		},
		{
			name:        "zero size",
			script:      "a 0; f 0",
			wantContain: []string{"slot 0  nil", "Allocations: 0"},
		},
		{
			name:           "json",
			script:         "a 64, a 64, f 1",
			json:           true,
			wantContain:    []string{`"op": "alloc 64"`, `"ref": "0:0x70"`, `"FreeCalls": 1`},
			wantNotContain: []string{"Heap Statistics"},
		},
		{
			name:           "quiet",
			script:         "a 64; d",
			quiet:          true,
			wantNotContain: []string{"alloc", "Free list block"},
		},
		{
			name:        "checked",
			script:      "a 64; a 64; a 64; f 1; f 0; f 2; c",
			check:       true,
			wantContain: []string{"Merges: 1 backward, 2 forward"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			jsonOut, quiet, runCheck = tt.json, tt.quiet, tt.check

			output, err := captureOutput(t, func() error {
				return runRun([]string{tt.script})
			})
			if err != nil {
				t.Fatalf("runRun: %v", err)
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestRunCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   error
	}{
		{name: "double free", script: "a 8; f 0; f 0", want: heap.ErrDoubleFree},
		{name: "too large", script: "a 5000", want: heap.ErrTooLarge},
		{name: "bad slot", script: "f 9", want: errBadScript},
		{name: "parse error", script: "bogus", want: errBadScript},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			_, err := captureOutput(t, func() error {
				return runRun([]string{tt.script})
			})
			if !errors.Is(err, tt.want) {
				t.Errorf("runRun(%q) error = %v, want %v", tt.script, err, tt.want)
			}
		})
	}
}

func TestStressCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		resetFlags(t)
		output, err := captureOutput(t, runStress)
		if err != nil {
			t.Fatalf("runStress: %v", err)
		}
		assertContains(t, output, []string{"Stress Run", "Operations: 2,000", "OK: all blocks returned"})
	})

	t.Run("checked json", func(t *testing.T) {
		resetFlags(t)
		stressOps, stressCheck, jsonOut = 300, true, true
		output, err := captureOutput(t, runStress)
		if err != nil {
			t.Fatalf("runStress: %v", err)
		}
		assertJSON(t, output)
		assertContains(t, output, []string{`"ops": 300`, `"seed": 1`})
	})

	t.Run("exhausted", func(t *testing.T) {
		resetFlags(t)
		maxArenas, stressFreePct = 1, 0
		_, err := captureOutput(t, runStress)
		if !errors.Is(err, heap.ErrExhausted) {
			t.Errorf("runStress error = %v, want ErrExhausted", err)
		}
	})

	t.Run("invalid flags", func(t *testing.T) {
		resetFlags(t)
		stressMaxSize = 0
		if _, err := captureOutput(t, runStress); err == nil {
			t.Error("expected error for --max-size 0")
		}
		stressMaxSize, stressFreePct = 64, 101
		if _, err := captureOutput(t, runStress); err == nil {
			t.Error("expected error for --free-pct 101")
		}
	})
}

func TestDumpCommand(t *testing.T) {
	resetFlags(t)

	output, err := captureOutput(t, func() error {
		return runDump([]string{"a 100; a 200; a 300; f 1"})
	})
	if err != nil {
		t.Fatalf("runDump: %v", err)
	}
	assertContains(t, output, []string{"Free list block (1) has a data size of (200) bytes"})

	_, err = captureOutput(t, func() error {
		return runDump([]string{"g"})
	})
	if !errors.Is(err, errBadScript) {
		t.Errorf("runDump(g) error = %v, want errBadScript", err)
	}
}

func TestLayoutCommand(t *testing.T) {
	resetFlags(t)

	output, err := captureOutput(t, func() error {
		return runLayout([]string{"a 100; a 200; f 0; g"})
	})
	if err != nil {
		t.Fatalf("runLayout: %v", err)
	}
	assertContains(t, output, []string{
		"Arena 0 (4,096 bytes)",
		"Arena 1 (4,096 bytes)",
		"0x00000000  FREE",
		"0x00000098  USED",
		"payload 0x00000020",
	})

	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runLayout([]string{"a 64"})
	})
	if err != nil {
		t.Fatalf("runLayout json: %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"free": false`, `"size": 64`})
}

func TestInitLogger(t *testing.T) {
	resetFlags(t)
	t.Cleanup(func() { logger.Init(logger.Options{}) })

	initLogger()
	if logger.L.Enabled(t.Context(), slog.LevelError) {
		t.Error("logger should discard by default")
	}

	logAlloc = true
	initLogger()
	if !logger.L.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("--log-alloc should enable debug logging")
	}
}
