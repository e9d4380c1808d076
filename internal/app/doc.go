// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the go-todo-keeper server process from its
// configuration: database, migrations, rate limiter, services, transport and
// background workers.
package app
