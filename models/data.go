package models

import "time"

// Record represents a single synchronized item in one of the data
// categories. It is the primary persistence model on both sides:
// the local database stores records verbatim, the remote store keeps
// one row per record keyed by (user_id, category_id).
type Record struct {
	// UserID is the owner of the record.
	UserID string `json:"user_id"`

	// Category defines which typed payload the record carries
	// and which remote table it maps to.
	Category DataCategory `json:"category"`

	// CategoryID identifies the record within its category.
	// Singleton categories (profile, preferences) use a fixed
	// identifier; collections use a generated UUID per entry.
	CategoryID string `json:"category_id"`

	// Payload is the category-typed content serialized as JSON.
	// The local database treats this field as an opaque blob;
	// DecodePayload turns it back into the typed struct.
	Payload []byte `json:"payload"`

	// Deleted marks a soft-deleted record. Deleted records keep
	// their row so the deletion can propagate to the other side.
	Deleted bool `json:"deleted"`

	// Sync carries the bookkeeping used to reconcile the record
	// between the local and remote stores.
	Sync SyncMetadata `json:"sync"`
}

// SyncMetadata is the reconciliation bookkeeping attached to every record.
type SyncMetadata struct {
	// LastModifiedAt is the moment the record content last changed,
	// set by the writer. It drives last-write-wins conflict resolution.
	LastModifiedAt time.Time `json:"last_modified_at"`

	// LastSyncedAt is the moment the record was last confirmed
	// identical on both sides. Zero for records never synchronized.
	LastSyncedAt time.Time `json:"last_synced_at,omitempty"`

	// SyncVersion counts local writes to the record. It increments on
	// every write from the same device and never decreases.
	SyncVersion int64 `json:"sync_version"`

	// DeviceID identifies the device that produced the last write.
	DeviceID string `json:"device_id,omitempty"`

	// Dirty marks records with local changes not yet pushed.
	Dirty bool `json:"dirty"`

	// UpdatedAt is the server-maintained row timestamp, populated only
	// on records fetched from the remote store. Delta watermarks must
	// advance on this clock, not on LastModifiedAt: updated-since
	// filters run against the server column, and a device clock ahead
	// of server time would push the cursor past rows other devices
	// write in the gap.
	UpdatedAt time.Time `json:"updated_at,omitempty"`

	// Checksum is a content fingerprint of the payload, used by the
	// delta tracker to detect remote changes without full comparison.
	Checksum string `json:"checksum,omitempty"`
}

// Touch stamps the record with refreshed sync metadata for a new local
// write: the version counter increments, the modification time moves to
// now, and the record becomes dirty until confirmed remotely.
func (r *Record) Touch(deviceID string, now time.Time) {
	r.Sync.SyncVersion++
	r.Sync.LastModifiedAt = now
	r.Sync.DeviceID = deviceID
	r.Sync.Dirty = true
}

// MarkSynced records a successful remote confirmation at now.
func (r *Record) MarkSynced(now time.Time) {
	r.Sync.LastSyncedAt = now
	r.Sync.Dirty = false
}

// Key returns the record identity within a user scope.
func (r Record) Key() RecordKey {
	return RecordKey{Category: r.Category, CategoryID: r.CategoryID}
}

// RecordKey identifies a record inside one user's data set.
type RecordKey struct {
	Category   DataCategory
	CategoryID string
}

// String renders the key in "category/id" form for logs and indexes.
func (k RecordKey) String() string {
	return string(k.Category) + "/" + k.CategoryID
}

// SingletonID is the fixed category identifier used by singleton
// categories, which hold exactly one record per user.
const SingletonID = "main"
