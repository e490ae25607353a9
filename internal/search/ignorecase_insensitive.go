//go:build windows || darwin

package search

// Filesystems on these platforms are case-insensitive by convention.
const defaultIgnoreCase = true
