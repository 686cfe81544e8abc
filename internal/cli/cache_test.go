package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheCommands(t *testing.T) {
	quiet(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	path, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(path) != filepath.Join(xdg, appName) {
		t.Errorf("cache path = %q", path)
	}

	// Clearing a cache that was never created is fine
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear (empty): %v", err)
	}

	albumPath := writeTestAlbum(t)
	if _, err := runCLI(t, "layout", albumPath); err != nil {
		t.Fatalf("layout: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(xdg, appName))
	if len(entries) == 0 {
		t.Fatal("layout did not populate the cache")
	}

	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ = os.ReadDir(filepath.Join(xdg, appName))
	if len(entries) != 0 {
		t.Errorf("cache still has %d entries after clear", len(entries))
	}
}
