// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client application.
//
// Each invocation runs exactly one command (register, login, add, list, ...)
// against the server through an [adapter.ServerAdapter] and prints the result.
// The browse command opens the interactive browser from package tui instead.
package client
