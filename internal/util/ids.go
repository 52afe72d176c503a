package util

import gonanoid "github.com/matoous/go-nanoid/v2"

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns a short random id with the given prefix, e.g. "run_3k9x0q2m1a7b".
// It falls back to the prefix alone if the random source fails.
func NewID(prefix string) string {
	id, err := gonanoid.Generate(idAlphabet, 12)
	if err != nil {
		return prefix
	}
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
