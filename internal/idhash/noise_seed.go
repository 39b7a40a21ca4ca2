package idhash

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// ComputeNoiseSeed derives a deterministic 64-bit seed for one noise draw.
// Formula: SHA256(seed|field_id|yyyy-mm|stream), first 16 bytes as two uint64.
func ComputeNoiseSeed(seed uint64, fieldID int64, month time.Time, stream string) (uint64, uint64) {
	data := fmt.Sprintf("%d|%d|%s|%s",
		seed,
		fieldID,
		month.UTC().Format("2006-01"),
		stream,
	)

	hash := sha256.Sum256([]byte(data))
	return binary.BigEndian.Uint64(hash[0:8]), binary.BigEndian.Uint64(hash[8:16])
}

// ComputeSeriesSeed derives a deterministic PCG seed pair for a named series.
// Formula: SHA256(seed|name).
func ComputeSeriesSeed(seed uint64, name string) (uint64, uint64) {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%d|%s", seed, name)))
	return binary.BigEndian.Uint64(hash[0:8]), binary.BigEndian.Uint64(hash[8:16])
}
