package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "token"); hit {
		t.Fatal("empty cache should miss")
	}

	if err := c.Set(ctx, "token", []byte("abc"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "token")
	if err != nil || !hit {
		t.Fatalf("Get = (%v, %v), want hit", hit, err)
	}
	if string(data) != "abc" {
		t.Errorf("Get data = %q, want %q", data, "abc")
	}

	if err := c.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "token"); hit {
		t.Error("deleted entry should miss")
	}

	// Deleting again is not an error
	if err := c.Delete(ctx, "token"); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero TTL entry should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, hit, err := c.Get(ctx, "bad")
	if err != nil || hit {
		t.Errorf("corrupt entry Get = (%v, %v), want miss without error", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}

	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty after Clear, has %d entries", len(entries))
	}
}

func TestEmptyKey(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "", []byte("x"), 0); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Set empty key error = %v, want ErrEmptyKey", err)
	}
	if err := NewScoped(c, "p:").Delete(ctx, ""); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Scoped Delete empty key error = %v, want ErrEmptyKey", err)
	}
}

func TestScoped(t *testing.T) {
	ctx := context.Background()
	inner, _ := NewFileCache(t.TempDir())

	a := NewScoped(inner, "a:")
	b := NewScoped(inner, "b:")

	if err := a.Set(ctx, "token", []byte("from-a"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := b.Get(ctx, "token"); hit {
		t.Error("scopes should not share keys")
	}

	data, hit, _ := inner.Get(ctx, "a:token")
	if !hit || string(data) != "from-a" {
		t.Errorf("inner key a:token = (%q, %v), want (from-a, true)", data, hit)
	}
}

func TestScopedNilInner(t *testing.T) {
	s := NewScoped(nil, "x:")
	if err := s.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Errorf("Set on nil inner: %v", err)
	}
	if _, hit, _ := s.Get(context.Background(), "k"); hit {
		t.Error("nil inner should behave like NullCache")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKey(t *testing.T) {
	k1 := Key("digikey", "client-1", "https://api.digikey.com")
	k2 := Key("digikey", "client-2", "https://api.digikey.com")
	if k1 == k2 {
		t.Error("different parts should produce different keys")
	}
	if k1[:8] != "digikey:" {
		t.Errorf("key should start with namespace, got %s", k1)
	}
	// Parts are joined with a separator so ("ab","c") != ("a","bc")
	if Key("n", "ab", "c") == Key("n", "a", "bc") {
		t.Error("part boundaries should affect the key")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, "")
	if err != nil {
		t.Fatalf("Open(\"\") error: %v", err)
	}
	if _, ok := c.(*NullCache); !ok {
		t.Errorf("Open(\"\") = %T, want *NullCache", c)
	}

	dir := filepath.Join(t.TempDir(), "tokens")
	c, err = Open(ctx, dir)
	if err != nil {
		t.Fatalf("Open(dir) error: %v", err)
	}
	if fc, ok := c.(*FileCache); !ok || fc.Dir() != dir {
		t.Errorf("Open(dir) = %T, want *FileCache in %s", c, dir)
	}

	if _, err := Open(ctx, "memcached://localhost"); !errors.Is(err, ErrUnsupportedURL) {
		t.Errorf("Open(memcached) error = %v, want ErrUnsupportedURL", err)
	}
}
