package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrInvalidCategory   = errors.New("invalid data category")
	ErrInvalidCategoryID = errors.New("invalid category id")
	ErrEmptyPayload      = errors.New("payload is required")
	ErrMalformedPayload  = errors.New("malformed payload")
	ErrMissingTimestamp  = errors.New("last modified timestamp is required")
	ErrForeignRecord     = errors.New("record belongs to a different user")
	ErrEmptySnapshot     = errors.New("snapshot contains no records")
)
