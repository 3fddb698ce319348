/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package util

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	idSuffixLength = 4
	idAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// TrackingID returns an identifier of the form PREFIX-yyyymmddhhmmss-XXXX,
// where the suffix is random and uppercased. The timestamp is UTC.
func TrackingID(prefix string) string {
	datePart := time.Now().UTC().Format("20060102150405")
	randomPart := randomSuffix(idSuffixLength)
	return fmt.Sprintf("%s-%s-%s", prefix, datePart, randomPart)
}

// randomSuffix draws n characters from the full A-Z0-9 alphabet.
func randomSuffix(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("util: reading random bytes: %v", err))
	}
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return string(b)
}

// BelowThreshold reports whether a quantity has reached its reorder level.
func BelowThreshold(quantity, threshold int) bool {
	return quantity <= threshold
}
