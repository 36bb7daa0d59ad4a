// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line vault client.
//
// Each invocation runs one subcommand (register, login, add, list, get,
// update, delete, ...) against the server through [adapter.VaultClient].
// The token issued at login is kept in a file readable only by the
// current user and attached to every later request until it expires or
// "logout" removes it.
package client
