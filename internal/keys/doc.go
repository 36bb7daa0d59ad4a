// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keys loads the two server secrets from configuration and derives
// fixed-size key material from them.
//
// Two independent keys are produced:
//   - the symmetric encryption key consumed by the CBC cipher engine;
//   - the HMAC signing key consumed by the token service.
//
// Both are derived with HKDF-SHA256 using distinct info labels, so the same
// operator secret can never yield the same bytes for both purposes. Secrets
// shorter than the configured minimum are rejected at startup, and the key
// ring is immutable once built.
package keys
