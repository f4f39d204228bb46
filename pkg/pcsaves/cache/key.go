// Package cache provides read-through storage for the two expensive
// repeated computations in this tool: a path table's derived save rows
// (SaveRowCache, parquet-backed) and a percent run's result
// (PercentCache, sqlite-backed), both keyed by the geometry/build/leftover
// combination that produced them.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Key identifies a cached computation by the inputs that determine its
// result: the source path file's content hash plus the build/leftover/
// geometry the reader was configured with.
type Key struct {
	PathFileHash string
	Build        string
	Leftover     string
	Width        int
	Height       int
	Hold         int
}

// String renders the key as a single stable identifier, used as the
// parquet cache filename stem and the sqlite lookup key.
func (k Key) String() string {
	return fmt.Sprintf("%s_%s_%s_%dx%d_h%d", k.PathFileHash, k.Build, k.Leftover, k.Width, k.Height, k.Hold)
}

// HashPathFile summarizes a path file's bytes into the PathFileHash a Key
// needs, so a cache entry invalidates automatically if the source path
// table is regenerated.
func HashPathFile(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}
