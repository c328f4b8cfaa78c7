// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-keeper/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a
// subset of fields (field-level scoping).
const (
	// FieldUserID targets the owner identifier of a record or snapshot.
	FieldUserID = "user_id"

	// FieldCategory targets the data category of a record.
	FieldCategory = "category"

	// FieldCategoryID targets the within-category identifier of a record.
	FieldCategoryID = "category_id"

	// FieldPayload targets the typed JSON payload of a record.
	FieldPayload = "payload"

	// FieldTimestamp targets the last-modified timestamp of a record.
	FieldTimestamp = "timestamp"
)

// SnapshotValidator implements the Validator interface for the migration
// pipeline's inputs: models.LocalSnapshot and models.Record. Validation
// runs before any remote write, so a rejected snapshot costs nothing to
// undo.
type SnapshotValidator struct {
}

func NewSnapshotValidator() *SnapshotValidator {
	return &SnapshotValidator{}
}

// Validate dispatches on the value's type. Unknown types are rejected
// with ErrUnsupportedType.
func (v *SnapshotValidator) Validate(ctx context.Context, value any, fields ...string) error {
	switch typed := value.(type) {
	case models.LocalSnapshot:
		return v.validateSnapshot(typed, fields...)
	case *models.LocalSnapshot:
		return v.validateSnapshot(*typed, fields...)
	case models.Record:
		return v.validateRecord(typed, typed.UserID, fields...)
	case *models.Record:
		return v.validateRecord(*typed, typed.UserID, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
}

func (v *SnapshotValidator) validateSnapshot(snapshot models.LocalSnapshot, fields ...string) error {
	if snapshot.UserID == "" {
		return ErrInvalidUserID
	}
	if snapshot.Empty() {
		return ErrEmptySnapshot
	}

	for category, records := range snapshot.Records {
		if !category.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
		}
		for _, record := range records {
			if record.Category != category {
				return fmt.Errorf("record %s filed under %q: %w",
					record.Key(), category, ErrInvalidCategory)
			}
			if err := v.validateRecord(record, snapshot.UserID, fields...); err != nil {
				return fmt.Errorf("record %s: %w", record.Key(), err)
			}
		}
	}
	return nil
}

func (v *SnapshotValidator) validateRecord(record models.Record, ownerID string, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldCategory, FieldCategoryID, FieldPayload, FieldTimestamp}
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldUserID:
			err = v.validateOwner(record, ownerID)
		case FieldCategory:
			err = v.validateCategory(record)
		case FieldCategoryID:
			err = v.validateCategoryID(record)
		case FieldPayload:
			err = v.validatePayload(record)
		case FieldTimestamp:
			err = v.validateTimestamp(record)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (v *SnapshotValidator) validateOwner(record models.Record, ownerID string) error {
	if record.UserID == "" {
		return ErrInvalidUserID
	}
	if ownerID != "" && record.UserID != ownerID {
		return ErrForeignRecord
	}
	return nil
}

func (v *SnapshotValidator) validateCategory(record models.Record) error {
	if !record.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, record.Category)
	}
	return nil
}

func (v *SnapshotValidator) validateCategoryID(record models.Record) error {
	if record.CategoryID == "" {
		return ErrInvalidCategoryID
	}
	if record.Category.Singleton() && record.CategoryID != models.SingletonID {
		return fmt.Errorf("%w: singleton %s must use %q", ErrInvalidCategoryID,
			record.Category, models.SingletonID)
	}
	return nil
}

// validatePayload requires the payload to round-trip through its typed
// struct. Tombstones carry no payload and are exempt.
func (v *SnapshotValidator) validatePayload(record models.Record) error {
	if record.Deleted {
		return nil
	}
	if len(record.Payload) == 0 {
		return ErrEmptyPayload
	}
	if _, err := models.DecodePayload(record.Category, record.Payload); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return nil
}

func (v *SnapshotValidator) validateTimestamp(record models.Record) error {
	if record.Sync.LastModifiedAt.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}
