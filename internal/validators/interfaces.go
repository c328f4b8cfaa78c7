// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the validation contracts used by the migration
// pipeline to check exported snapshots before upload.
//
// Validator implementations encode domain rules and are injected into
// services, keeping validation independent of transport and storage.
package validators

import "context"

// Validator validates arbitrary input values. Implementations may perform
// structural validation, semantic checks, or cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
