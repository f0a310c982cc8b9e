// Package id generates opaque identifiers for users, conversations and messages.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a random version 4 UUID encoded as 26 lowercase base32 characters.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(u[:])), nil
}

// Prefixed returns a generator producing NewID values behind prefix, e.g. "conv_".
func Prefixed(prefix string) func() (string, error) {
	return func() (string, error) {
		value, err := NewID()
		if err != nil {
			return "", err
		}
		return prefix + value, nil
	}
}
