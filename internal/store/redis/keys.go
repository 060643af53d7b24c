package redis

const (
	// KeySnapshot holds the JSON of the last directory loaded from the source
	KeySnapshot = "shelf:directory"
	// KeyUsage is the hash of entry ID -> click count
	KeyUsage = "shelf:usage"
)

// SnapshotKey returns the Redis key for the directory snapshot
func SnapshotKey() string {
	return KeySnapshot
}

// UsageKey returns the Redis key for the usage hash
func UsageKey() string {
	return KeyUsage
}
