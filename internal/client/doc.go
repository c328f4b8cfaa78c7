// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive engine runtime.
//
// It wires the terminal UI, the sync and migration services, and the
// background workers into a single process lifecycle.
package client
