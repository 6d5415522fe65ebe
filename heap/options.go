package heap

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/heapkit/heap/arena"
)

// Option configures a Heap.
type Option func(*config)

type config struct {
	source    arena.Source
	arenaSize int
	logger    *slog.Logger
	preGrow   int
	fatal     func(error)
}

func defaultConfig() config {
	return config{
		source:    arena.Mmap{},
		arenaSize: ArenaSize,
	}
}

// WithSource sets where arenas come from. Default: arena.Mmap.
func WithSource(src arena.Source) Option {
	return func(c *config) { c.source = src }
}

// WithArenaSize overrides the 16 MiB arena size. The size must be word
// aligned, hold at least one MinBlockSize block, and fit a Ref offset.
func WithArenaSize(n int) Option {
	return func(c *config) { c.arenaSize = n }
}

// WithLogger sets the structured logger. Default: logger.L, or a stderr
// debug logger when HEAPKIT_LOG_ALLOC is set.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithArenas maps n arenas up front instead of on first use.
func WithArenas(n int) Option {
	return func(c *config) { c.preGrow = n }
}

// WithFatal installs a hook that runs when Alloc finds the arena source
// exhausted, before ErrExhausted is returned. The process-wide heap installs
// one that terminates the process.
func WithFatal(fn func(error)) Option {
	return func(c *config) { c.fatal = fn }
}

func (c *config) validate() error {
	switch {
	case c.source == nil:
		return fmt.Errorf("nil source: %w", ErrBadConfig)
	case c.arenaSize < MinBlockSize:
		return fmt.Errorf("arena size %d below %d: %w", c.arenaSize, MinBlockSize, ErrBadConfig)
	case c.arenaSize%WordSize != 0:
		return fmt.Errorf("arena size %d not word aligned: %w", c.arenaSize, ErrBadConfig)
	case uint64(c.arenaSize) > 1<<32:
		return fmt.Errorf("arena size %d exceeds Ref offset range: %w", c.arenaSize, ErrBadConfig)
	case c.preGrow < 0:
		return fmt.Errorf("negative arena count %d: %w", c.preGrow, ErrBadConfig)
	}
	return nil
}
