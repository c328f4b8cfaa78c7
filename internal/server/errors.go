// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned when the daemon is asked to run
// with an empty listener set.
var errNoServersAreCreated = errors.New("no servers are created")
