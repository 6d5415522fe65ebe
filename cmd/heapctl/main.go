// Command heapctl drives a heapkit allocator from the command line: scripted
// allocate/free sequences, randomized stress runs, free-list dumps and
// physical layout views.
package main

func main() {
	execute()
}
