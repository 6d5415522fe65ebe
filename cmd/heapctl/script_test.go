package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/joshuapare/heapkit/heap"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    []op
		wantErr bool
	}{
		{
			name: "semicolons",
			src:  "a 100; a 200; f 0",
			want: []op{{opAlloc, 100, 1}, {opAlloc, 200, 1}, {opFree, 0, 1}},
		},
		{
			name: "lines, commas and comments",
			src:  "alloc 8, grow\n# comment only\n\nd # trailing\nCHECK",
			want: []op{{opAlloc, 8, 1}, {opGrow, 0, 1}, {opDump, 0, 4}, {opCheck, 0, 5}},
		},
		{
			name: "empty",
			src:  "  ;; \n",
			want: nil,
		},
		{name: "unknown op", src: "x 1", wantErr: true},
		{name: "missing argument", src: "a", wantErr: true},
		{name: "extra argument", src: "g 2", wantErr: true},
		{name: "negative", src: "a -4", wantErr: true},
		{name: "not a number", src: "f one", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScript(tt.src)
			if tt.wantErr {
				if !errors.Is(err, errBadScript) {
					t.Fatalf("parseScript(%q) error = %v, want errBadScript", tt.src, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseScript(%q): %v", tt.src, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseScript(%q) = %+v, want %+v", tt.src, got, tt.want)
			}
		})
	}
}

func TestReadScript(t *testing.T) {
	got, err := readScript([]string{"a 1", "f 0"}, "")
	if err != nil || got != "a 1\nf 0" {
		t.Fatalf("readScript inline = %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "script.txt")
	if err := os.WriteFile(path, []byte("a 64\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err = readScript(nil, path)
	if err != nil || got != "a 64\n" {
		t.Fatalf("readScript file = %q, %v", got, err)
	}

	if _, err := readScript([]string{"a 1"}, path); err == nil {
		t.Error("expected error when script is given twice")
	}
}

func TestExecutor(t *testing.T) {
	h := newTestHeap(t)
	var out bytes.Buffer
	e := newExecutor(h, true, &out)

	ops, err := parseScript("a 64; a 0; a 128; f 0; f 1; d; c; g")
	if err != nil {
		t.Fatal(err)
	}
	var results []opResult
	for _, o := range ops {
		res, err := e.exec(o)
		if err != nil {
			t.Fatalf("exec(%s): %v", o, err)
		}
		results = append(results, res)
	}

	if results[0].Ref != "0:0x0" || results[0].Size != 64 {
		t.Errorf("first alloc = %+v", results[0])
	}
	if results[1].Ref != "" || results[1].Slot != 1 {
		t.Errorf("zero alloc = %+v, want nil ref in slot 1", results[1])
	}
	if results[2].Slot != 2 || results[2].Size != 128 {
		t.Errorf("third alloc = %+v", results[2])
	}
	want := "Free list block (1) has a data size of (64) bytes\n" +
		"Free list block (2) has a data size of (3760) bytes\n"
	if out.String() != want {
		t.Errorf("dump output = %q, want %q", out.String(), want)
	}
	if h.Arenas() != 2 {
		t.Errorf("arenas = %d, want 2", h.Arenas())
	}
}

func TestExecutor_Errors(t *testing.T) {
	h := newTestHeap(t)
	e := newExecutor(h, false, &bytes.Buffer{})

	if _, err := e.exec(op{Kind: opFree, Arg: 3, Line: 1}); !errors.Is(err, errBadScript) {
		t.Errorf("free of unknown slot: %v", err)
	}
	if _, err := e.exec(op{Kind: opAlloc, Arg: 64, Line: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.exec(op{Kind: opFree, Arg: 0, Line: 3}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.exec(op{Kind: opFree, Arg: 0, Line: 4}); !errors.Is(err, heap.ErrDoubleFree) {
		t.Errorf("double free: %v", err)
	}
	if _, err := e.exec(op{Kind: opAlloc, Arg: 1 << 20, Line: 5}); !errors.Is(err, heap.ErrTooLarge) {
		t.Errorf("oversized alloc: %v", err)
	}
}
