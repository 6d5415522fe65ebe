package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joshuapare/heapkit/heap"
)

// A script is a sequence of heap operations, one per statement. Statements
// are separated by newlines, ';' or ','. '#' starts a comment.
//
//	a 100   allocate 100 bytes into the next slot
//	f 0     free the block held in slot 0
//	g       map another arena
//	d       print the free list
//	c       check every heap invariant
type opKind string

const (
	opAlloc opKind = "alloc"
	opFree  opKind = "free"
	opGrow  opKind = "grow"
	opDump  opKind = "dump"
	opCheck opKind = "check"
)

var opNames = map[string]opKind{
	"a": opAlloc, "alloc": opAlloc,
	"f": opFree, "free": opFree,
	"g": opGrow, "grow": opGrow,
	"d": opDump, "dump": opDump,
	"c": opCheck, "check": opCheck,
}

var errBadScript = errors.New("bad script")

type op struct {
	Kind opKind
	Arg  int
	Line int
}

func (o op) String() string {
	switch o.Kind {
	case opAlloc, opFree:
		return fmt.Sprintf("%s %d", o.Kind, o.Arg)
	default:
		return string(o.Kind)
	}
}

// parseScript splits src into operations.
func parseScript(src string) ([]op, error) {
	var ops []op
	for i, line := range strings.Split(src, "\n") {
		if j := strings.IndexByte(line, '#'); j >= 0 {
			line = line[:j]
		}
		stmts := strings.FieldsFunc(line, func(r rune) bool { return r == ';' || r == ',' })
		for _, stmt := range stmts {
			fields := strings.Fields(stmt)
			if len(fields) == 0 {
				continue
			}
			o, err := parseOp(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q: %w", i+1, strings.TrimSpace(stmt), err)
			}
			o.Line = i + 1
			ops = append(ops, o)
		}
	}
	return ops, nil
}

func parseOp(fields []string) (op, error) {
	kind, ok := opNames[strings.ToLower(fields[0])]
	if !ok {
		return op{}, fmt.Errorf("unknown operation %q: %w", fields[0], errBadScript)
	}
	o := op{Kind: kind}
	switch kind {
	case opAlloc, opFree:
		if len(fields) != 2 {
			return op{}, fmt.Errorf("%s takes one argument: %w", kind, errBadScript)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 {
			return op{}, fmt.Errorf("%s: invalid argument %q: %w", kind, fields[1], errBadScript)
		}
		o.Arg = n
	default:
		if len(fields) != 1 {
			return op{}, fmt.Errorf("%s takes no arguments: %w", kind, errBadScript)
		}
	}
	return o, nil
}

// readScript joins the positional arguments into a script, or reads it from
// path ("-" for stdin) when path is set.
func readScript(args []string, path string) (string, error) {
	if path == "" {
		return strings.Join(args, "\n"), nil
	}
	if len(args) > 0 {
		return "", fmt.Errorf("script given both inline and with --file")
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(data), nil
}

// opResult records the outcome of one operation.
type opResult struct {
	kind opKind

	Op   string `json:"op"`
	Slot int    `json:"slot"`
	Ref  string `json:"ref,omitempty"`
	Size int    `json:"size,omitempty"`
}

// executor runs script operations against a heap, remembering allocated
// blocks by slot number.
type executor struct {
	h     *heap.Heap
	alloc heap.Allocator
	slots []heap.Ref
	out   io.Writer
}

func newExecutor(h *heap.Heap, checked bool, out io.Writer) *executor {
	e := &executor{h: h, alloc: h, out: out}
	if checked {
		e.alloc = heap.NewChecked(h)
	}
	return e
}

func (e *executor) exec(o op) (opResult, error) {
	res := opResult{kind: o.Kind, Op: o.String()}
	switch o.Kind {
	case opAlloc:
		ref, b, err := e.alloc.Alloc(o.Arg)
		if err != nil {
			return res, fmt.Errorf("line %d: %s: %w", o.Line, o, err)
		}
		res.Slot = len(e.slots)
		if !ref.IsNil() {
			res.Ref = ref.String()
			res.Size = cap(b)
		}
		e.slots = append(e.slots, ref)
	case opFree:
		if o.Arg >= len(e.slots) {
			return res, fmt.Errorf("line %d: %s: no slot %d (%d allocated): %w",
				o.Line, o, o.Arg, len(e.slots), errBadScript)
		}
		ref := e.slots[o.Arg]
		if err := e.alloc.Free(ref); err != nil {
			return res, fmt.Errorf("line %d: %s: %w", o.Line, o, err)
		}
		res.Slot = o.Arg
		if !ref.IsNil() {
			res.Ref = ref.String()
		}
	case opGrow:
		if err := e.alloc.Grow(); err != nil {
			return res, fmt.Errorf("line %d: %s: %w", o.Line, o, err)
		}
	case opDump:
		if err := e.h.DumpFreeList(e.out); err != nil {
			return res, err
		}
	case opCheck:
		if err := e.h.Check(); err != nil {
			return res, fmt.Errorf("line %d: %s: %w", o.Line, o, err)
		}
	}
	return res, nil
}
