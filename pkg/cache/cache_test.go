package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/orgchart/pkg/observability"
)

func init() {
	retryDelay = time.Millisecond
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get() = %q, %v, want miss", data, hit)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash() not deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Hash() collides for different inputs")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h1))
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v, want miss", hit, err)
	}

	if err := c.Set(ctx, "layout:abc", []byte(`{"nodes":[]}`), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit {
		t.Fatalf("Get() = hit %v, err %v, want hit", hit, err)
	}
	if string(data) != `{"nodes":[]}` {
		t.Errorf("Get() = %q, want %q", data, `{"nodes":[]}`)
	}

	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("Get() after Delete() = hit, want miss")
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "short", []byte("x"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("Get(short) = hit after expiry, want miss")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("Get(forever) = miss, want hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("Get(corrupt) = hit %v, err %v, want clean miss", hit, err)
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get() after Clear() = hit, want miss")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	opts := LayoutKeyOpts{Base: "CEO", Margin: 20, HSpacing: 150, VSpacing: 100, BoxWidth: 120, BoxHeight: 60}

	key := k.LayoutKey("g1", opts)
	if !strings.HasPrefix(key, "layout:") {
		t.Errorf("LayoutKey() = %q, want layout: prefix", key)
	}
	if key != k.LayoutKey("g1", opts) {
		t.Error("LayoutKey() not deterministic")
	}

	tests := []struct {
		name string
		key  string
	}{
		{"graph", k.LayoutKey("g2", opts)},
		{"base", k.LayoutKey("g1", LayoutKeyOpts{Base: "CTO", Margin: 20, HSpacing: 150, VSpacing: 100, BoxWidth: 120, BoxHeight: 60})},
		{"spacing", k.LayoutKey("g1", LayoutKeyOpts{Base: "CEO", Margin: 20, HSpacing: 200, VSpacing: 100, BoxWidth: 120, BoxHeight: 60})},
		{"margin", k.LayoutKey("g1", LayoutKeyOpts{Base: "CEO", Margin: 0, HSpacing: 150, VSpacing: 100, BoxWidth: 120, BoxHeight: 60})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key == key {
				t.Errorf("LayoutKey() unchanged when %s differs", tt.name)
			}
		})
	}

	svg := k.ArtifactKey("l1", ArtifactKeyOpts{Format: "svg", Style: "simple"})
	pdf := k.ArtifactKey("l1", ArtifactKeyOpts{Format: "pdf", Style: "simple"})
	if svg == pdf {
		t.Error("ArtifactKey() ignores format")
	}
	if !strings.HasPrefix(svg, "artifact:") {
		t.Errorf("ArtifactKey() = %q, want artifact: prefix", svg)
	}

	if got := k.StoredKey("abc"); got != "stored:abc" {
		t.Errorf("StoredKey() = %q, want %q", got, "stored:abc")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	k := NewScopedKeyer(inner, "tenant:")

	if got, want := k.StoredKey("x"), "tenant:stored:x"; got != want {
		t.Errorf("StoredKey() = %q, want %q", got, want)
	}
	opts := LayoutKeyOpts{Margin: 20}
	if got, want := k.LayoutKey("h", opts), "tenant:"+inner.LayoutKey("h", opts); got != want {
		t.Errorf("LayoutKey() = %q, want %q", got, want)
	}
	aopts := ArtifactKeyOpts{Format: "png", Scale: 2}
	if got, want := k.ArtifactKey("h", aopts), "tenant:"+inner.ArtifactKey("h", aopts); got != want {
		t.Errorf("ArtifactKey() = %q, want %q", got, want)
	}

	if got := NewScopedKeyer(nil, "p:").StoredKey("x"); got != "p:stored:x" {
		t.Errorf("NewScopedKeyer(nil) StoredKey() = %q, want %q", got, "p:stored:x")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"succeeds first", 0, nil, 1, false},
		{"retryable then ok", 2, Retryable(ErrNetwork), 3, false},
		{"retryable exhausted", 5, Retryable(ErrNetwork), 3, true},
		{"permanent", 5, boom, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("RetryWithBackoff() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrNetwork) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryWithBackoff() error = %v, want context.Canceled", err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false, want true")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("Retryable() hides the wrapped error")
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable(plain) = true, want false")
	}
}

type countingHooks struct {
	mu                 sync.Mutex
	hits, misses, sets map[string]int
}

func newCountingHooks() *countingHooks {
	return &countingHooks{hits: map[string]int{}, misses: map[string]int{}, sets: map[string]int{}}
}

func (h *countingHooks) OnCacheHit(_ context.Context, kt string) {
	h.mu.Lock()
	h.hits[kt]++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheMiss(_ context.Context, kt string) {
	h.mu.Lock()
	h.misses[kt]++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheSet(_ context.Context, kt string, _ int) {
	h.mu.Lock()
	h.sets[kt]++
	h.mu.Unlock()
}

func TestInstrument(t *testing.T) {
	hooks := newCountingHooks()
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := Instrument(fc, KeyTypeLayout)

	c.Get(ctx, "k")
	c.Set(ctx, "k", []byte("v"), 0)
	c.Get(ctx, "k")

	if hooks.misses[KeyTypeLayout] != 1 || hooks.hits[KeyTypeLayout] != 1 || hooks.sets[KeyTypeLayout] != 1 {
		t.Errorf("hooks = hits %v misses %v sets %v, want one each", hooks.hits, hooks.misses, hooks.sets)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("ORGCHART_TEST_REDIS")
	if addr == "" {
		t.Skip("ORGCHART_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisOptions{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer c.Close()

	key := NewScopedKeyer(nil, "orgchart-test:").StoredKey(t.Name())
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get() = hit %v, err %v, want miss", hit, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Errorf("Get() = %q, %v, %v, want payload hit", data, hit, err)
	}
}
