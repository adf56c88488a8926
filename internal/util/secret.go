// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SECURITY: API keys never appear in logs or output; only these forms do.

// Fingerprint returns a short stable identifier for a secret: the first
// 8 hex characters of its SHA-256 digest. Empty input yields "".
func Fingerprint(secret string) string {
	if secret == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])[:8]
}

// MaskSecret renders a secret for display without exposing any part of it.
func MaskSecret(secret string) string {
	if secret == "" {
		return "[not set]"
	}
	return fmt.Sprintf("[REDACTED, length=%d, fingerprint=%s]", len(secret), Fingerprint(secret))
}
