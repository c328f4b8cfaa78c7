package models

import "time"

// SyncedItems counts the records moved in each direction during one
// synchronization cycle.
type SyncedItems struct {
	// Uploaded is the number of local records confirmed remotely.
	Uploaded int `json:"uploaded"`

	// Downloaded is the number of remote records adopted locally.
	Downloaded int `json:"downloaded"`

	// Conflicts is the number of divergent records that required
	// resolution during the cycle.
	Conflicts int `json:"conflicts"`
}

// SyncResult summarizes one queue drain or full synchronization cycle.
// Permanent failures are collected here and returned, never thrown past
// the engine boundary: the caller decides what to surface to the user.
type SyncResult struct {
	// SyncedItems holds the per-direction counters.
	SyncedItems SyncedItems `json:"synced_items"`

	// Errors lists operations that exhausted their retry budget,
	// one entry per failed operation.
	Errors []string `json:"errors,omitempty"`

	// LastSyncTime is the moment the cycle finished.
	LastSyncTime time.Time `json:"last_sync_time"`
}

// Ok reports whether the cycle completed without permanent failures.
func (r SyncResult) Ok() bool {
	return len(r.Errors) == 0
}

// DeltaSyncInfo is the per-category watermark for delta synchronization.
// It is read before each remote fetch and advanced after a successful
// one, so repeated syncs only transfer rows changed since the last pass.
type DeltaSyncInfo struct {
	// LastSyncTimestamp is the high-water mark: the greatest remote
	// modification time ever observed for the category.
	LastSyncTimestamp time.Time `json:"last_sync_timestamp"`

	// SyncVersion counts completed delta passes for the category.
	SyncVersion int64 `json:"sync_version"`

	// Checksums maps category ids to payload fingerprints captured at
	// the last pass, used to skip rows whose content did not change.
	Checksums map[string]string `json:"checksums,omitempty"`
}

// Advance moves the watermark forward. The timestamp only ever grows:
// an older observed value never rewinds a newer watermark.
func (d *DeltaSyncInfo) Advance(observed time.Time, checksums map[string]string) {
	if observed.After(d.LastSyncTimestamp) {
		d.LastSyncTimestamp = observed
	}
	d.SyncVersion++

	if d.Checksums == nil && len(checksums) > 0 {
		d.Checksums = make(map[string]string, len(checksums))
	}
	for id, sum := range checksums {
		d.Checksums[id] = sum
	}
}
