package ml

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeArtifact(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "modelo.json")
	if err := testModel().Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoaderCachesHandle(t *testing.T) {
	path := writeArtifact(t, t.TempDir())
	loader := NewLoader(4)

	first, err := loader.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := loader.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same cached handle")
	}
	if loader.Loads() != 1 {
		t.Fatalf("expected 1 disk load, got %d", loader.Loads())
	}
}

func TestLoaderNotFound(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(4)

	_, err := loader.Load(filepath.Join(dir, "missing.json"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Kind != ErrKindNotFound {
		t.Fatalf("expected not_found, got %s", loadErr.Kind)
	}

	// 失败不污染缓存，之后加载有效路径仍然成功
	path := writeArtifact(t, dir)
	if _, err := loader.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoaderCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modelo.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0o600); err != nil {
		t.Fatal(err)
	}
	loader := NewLoader(4)

	_, err := loader.Load(path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Kind != ErrKindCorrupt {
		t.Fatalf("expected corrupt, got %s", loadErr.Kind)
	}
}

func TestLoaderIncompatibleSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modelo.json")
	model := testModel()
	model.columns = []string{"a", "b", "c"}
	if err := model.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loader := NewLoader(4)

	_, err := loader.Load(path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Kind != ErrKindIncompatible {
		t.Fatalf("expected incompatible, got %s", loadErr.Kind)
	}
}

func TestLoaderFailedLoadNotCached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modelo.json")
	loader := NewLoader(4)

	if _, err := loader.Load(path); err == nil {
		t.Fatalf("expected error for missing artifact")
	}
	if _, ok := loader.Cached(path); ok {
		t.Fatalf("failed load must not be cached")
	}

	// 文件出现后重试成功
	if err := testModel().Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := loader.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoaderSingleFlight(t *testing.T) {
	path := writeArtifact(t, t.TempDir())
	loader := NewLoader(4)

	const workers = 16
	handles := make([]*Handle, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i], errs[i] = loader.Load(path)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: unexpected error: %v", i, errs[i])
		}
		if handles[i] != handles[0] {
			t.Fatalf("worker %d got a different handle", i)
		}
	}
	if loader.Loads() != 1 {
		t.Fatalf("expected 1 disk load under concurrent access, got %d", loader.Loads())
	}
}
