//go:build gofuzz
// +build gofuzz

package fuzz

import "github.com/tdewolff/woff"

// Fuzz is a fuzz test.
func Fuzz(data []byte) int {
	_, _ = woff.Parse(data)
	return 1
}
