package driver

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"srcdep/internal/directive"
	"srcdep/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt failed: %v", err)
	}

	key := Digest(sha256.Sum256([]byte("content")))
	dirs := []directive.Directive{
		{
			Kind: directive.KindUseLibrary,
			Name: "GL",
			Span: source.Span{File: 0, Start: 4, End: 19},
		},
		{
			Kind:    directive.KindSwitchDecl,
			Name:    "OPENGL",
			Default: true,
			Span:    source.Span{File: 0, Start: 24, End: 41},
		},
	}
	if err := cache.Put(key, "///", dirs); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, hit, err := cache.Get(key, "///", source.FileID(7))
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v", hit, err)
	}
	if len(got) != len(dirs) {
		t.Fatalf("got %d directives, want %d", len(got), len(dirs))
	}
	for i, d := range got {
		want := dirs[i]
		if d.Kind != want.Kind || d.Name != want.Name || d.Default != want.Default {
			t.Errorf("directive %d = %+v, want %+v", i, d, want)
		}
		if d.Span.File != 7 {
			t.Errorf("directive %d not rebound to current file: %v", i, d.Span)
		}
		if d.Span.Start != want.Span.Start || d.Span.End != want.Span.End {
			t.Errorf("directive %d span offsets changed: %v", i, d.Span)
		}
	}
}

func TestDiskCacheMarkerMismatchMisses(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Digest(sha256.Sum256([]byte("x")))
	if err := cache.Put(key, "///", nil); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := cache.Get(key, "//!", 0); err != nil || hit {
		t.Errorf("Get with different marker = %v, %v, want miss", hit, err)
	}
}

func TestDiskCacheMissingKey(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, hit, err := cache.Get(Digest{}, "///", 0); err != nil || hit {
		t.Errorf("Get on empty cache = %v, %v", hit, err)
	}
}

func TestNilCacheIsInert(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(Digest{}, "///", nil); err != nil {
		t.Errorf("nil Put = %v", err)
	}
	if _, hit, err := cache.Get(Digest{}, "///", 0); err != nil || hit {
		t.Errorf("nil Get = %v, %v", hit, err)
	}
}

func TestScanUsesCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dir := writeTree(t, map[string]string{"probe.c": probeSrc})
	opts := Options{
		Include:        []string{"*.c"},
		MaxDiagnostics: 64,
		Cache:          cache,
	}

	_, first, err := Scan(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("first Scan failed: %v", err)
	}
	if first[0].FromCache {
		t.Error("first scan claims a cache hit")
	}

	_, second, err := Scan(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("second Scan failed: %v", err)
	}
	if !second[0].FromCache {
		t.Error("second scan did not hit the cache")
	}
	if len(second[0].Directives) != len(first[0].Directives) {
		t.Errorf("cached scan yields %d directives, want %d",
			len(second[0].Directives), len(first[0].Directives))
	}
}

func TestDirtyScanNotCached(t *testing.T) {
	cacheDir := t.TempDir()
	cache, err := OpenDiskCacheAt(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	dir := writeTree(t, map[string]string{"bad.c": "/// frobnicate\n"})
	opts := Options{
		Include:        []string{"*.c"},
		MaxDiagnostics: 64,
		Cache:          cache,
	}

	for run := 0; run < 2; run++ {
		_, results, err := Scan(context.Background(), dir, opts)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if results[0].FromCache {
			t.Fatalf("run %d: dirty scan served from cache", run)
		}
		if !results[0].Bag.HasErrors() {
			t.Fatalf("run %d: diagnostic lost", run)
		}
	}

	entries, err := os.ReadDir(filepath.Join(cacheDir, "scans"))
	if err == nil && len(entries) != 0 {
		t.Errorf("dirty scan left %d cache entries", len(entries))
	}
}
