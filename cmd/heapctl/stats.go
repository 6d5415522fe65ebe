package main

import "github.com/joshuapare/heapkit/heap"

// printStats prints allocator counters and free-list totals.
func printStats(s heap.Stats) {
	printInfo("%s", heading("Heap Statistics"))

	printInfo("Arenas:\n")
	printInfo("  Mapped: %s (%s)\n", formatNumber(int64(s.Arenas)), formatBytes(s.ArenaBytes))
	printInfo("  In use: %s bytes\n", formatNumber(s.InUse()))
	printInfo("  Free: %s bytes in %s blocks (largest %s)\n\n",
		formatNumber(s.FreeBytes), formatNumber(int64(s.FreeBlocks)), formatNumber(int64(s.LargestFree)))

	printInfo("Operations:\n")
	printInfo("  Allocations: %s (%s from free list, %s after growing)\n",
		formatNumber(int64(s.AllocCalls)), formatNumber(int64(s.AllocFastPath)), formatNumber(int64(s.AllocSlowPath)))
	printInfo("  Frees: %s\n", formatNumber(int64(s.FreeCalls)))
	printInfo("  Splits: %s\n", formatNumber(int64(s.SplitCount)))
	printInfo("  Merges: %s backward, %s forward\n",
		formatNumber(int64(s.CoalesceBackward)), formatNumber(int64(s.CoalesceForward)))
	printInfo("  Arenas grown: %s\n", formatNumber(int64(s.GrowCalls)))
}
