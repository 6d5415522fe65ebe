package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/heapkit/heap"
)

// resetFlags puts every global flag back to a small, deterministic heap
// configuration and restores the previous values when the test ends.
func resetFlags(t *testing.T) {
	t.Helper()
	saved := []any{verbose, quiet, jsonOut, noColor, logAlloc, arenaSize, maxArenas, goHeap,
		runFile, runCheck, dumpFile, layoutFile,
		stressOps, stressSeed, stressMaxSize, stressFreePct, stressCheck}
	t.Cleanup(func() {
		verbose, quiet, jsonOut, noColor, logAlloc = saved[0].(bool), saved[1].(bool), saved[2].(bool), saved[3].(bool), saved[4].(bool)
		arenaSize, maxArenas, goHeap = saved[5].(int), saved[6].(int), saved[7].(bool)
		runFile, runCheck, dumpFile, layoutFile = saved[8].(string), saved[9].(bool), saved[10].(string), saved[11].(string)
		stressOps, stressSeed, stressMaxSize = saved[12].(int), saved[13].(int64), saved[14].(int)
		stressFreePct, stressCheck = saved[15].(int), saved[16].(bool)
	})

	verbose, quiet, jsonOut, noColor, logAlloc = false, false, false, true, false
	arenaSize, maxArenas, goHeap = 4096, 0, true
	runFile, runCheck, dumpFile, layoutFile = "", false, "", ""
	stressOps, stressSeed, stressMaxSize, stressFreePct, stressCheck = 2000, 1, 512, 45, false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain concurrently so large outputs cannot fill the pipe
	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}

// newTestHeap returns a Go-heap backed heap with 4 KiB arenas.
func newTestHeap(t *testing.T) *heap.Heap {
	t.Helper()
	resetFlags(t)
	h, err := newHeap()
	if err != nil {
		t.Fatalf("newHeap: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}
