// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

// Package textnorm folds arbitrary Unicode strings for tolerant matching.
//
// # Usage
//
// Local title filtering should treat "Pérdida" and "perdida" as the same
// series. This package handles normalization, accent removal, and case
// folding so filter predicates can compare plain ASCII-ish text.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold converts s into a lowercase, accent-free form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, s)
	if err != nil {
		// Fall back to plain case folding on malformed input.
		result = s
	}
	return strings.ToLower(result)
}

// Contains reports whether haystack contains needle after both are folded.
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
