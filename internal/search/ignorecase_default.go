//go:build !windows && !darwin

package search

const defaultIgnoreCase = false
