// Package textutil provides text processing utilities for word
// normalization, tokenization, and filename sanitization.
//
// The normalization rules are shared by every component that compares
// transcript words: lowercase, NFC-compose, and strip all runes that are
// not word characters or whitespace. Normalize is total and idempotent,
// which the matchers rely on.
package textutil
