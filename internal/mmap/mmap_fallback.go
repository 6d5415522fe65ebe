//go:build !unix && !windows

// Package mmap provides platform-specific helpers for obtaining anonymous,
// private, read/write memory regions directly from the operating system.
package mmap

import "fmt"

// Map allocates from the Go heap when no OS mapping call is available.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmap: invalid size %d", size)
	}
	return make([]byte, size), nil
}

// Unmap is a no-op; the garbage collector reclaims the region.
func Unmap(data []byte) error {
	return nil
}
