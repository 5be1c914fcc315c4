// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI)
//   - [RedisCache]: shared cache for the HTTP API, backed by go-redis
//   - [NullCache]: never stores anything (--no-cache, tests)
//
// Every backend implements [Cache]. Wrap a backend with [Instrument] to
// report hits, misses and writes to the registered observability hooks.
//
// # Keys
//
// A [Keyer] derives keys from content hashes and options, so a key changes
// whenever the data, the target selection, the layout dimensions, or the
// render options change:
//
//	graphHash := cache.Hash(canonicalJSON)
//	key := keyer.LayoutKey(graphHash, cache.LayoutKeyOpts{Base: "CEO", Margin: 20, ...})
//
// [ScopedKeyer] prefixes every key, which keeps tenants or environments
// sharing one Redis instance apart.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLStored   = 30 * 24 * time.Hour
)

// Key types reported to cache hooks.
const (
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
	KeyTypeStored   = "stored"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a computed layout of the graph with the given hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered output of the layout with the given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// StoredKey identifies a layout stored by the HTTP API under id.
	StoredKey(id string) string
}

// LayoutKeyOpts holds everything besides the graph that affects a layout.
type LayoutKeyOpts struct {
	Base      string  `json:"base,omitempty"`
	Depth     int     `json:"depth,omitempty"`
	Filter    string  `json:"filter,omitempty"`
	Margin    float64 `json:"margin"`
	HSpacing  float64 `json:"h_spacing"`
	VSpacing  float64 `json:"v_spacing"`
	BoxWidth  float64 `json:"box_width"`
	BoxHeight float64 `json:"box_height"`
}

// ArtifactKeyOpts holds everything besides the layout that affects output.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Renderer string  `json:"renderer,omitempty"`
	Style    string  `json:"style,omitempty"`
	Titles   bool    `json:"titles,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:" followed by a hash of the inputs.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey returns "artifact:" followed by a hash of the inputs.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// StoredKey returns "stored:" followed by id.
func (DefaultKeyer) StoredKey(id string) string {
	return "stored:" + id
}
