package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()

	tmpDir := t.TempDir()

	// Write file
	testPath := filepath.Join(tmpDir, "boundaries.json")
	testData := []byte(`[0,4,9,12.4]`)

	err := fs.WriteFile(testPath, testData)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Read file
	data, err := fs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()

	tmpDir := t.TempDir()

	// Write to nested path
	testPath := filepath.Join(tmpDir, "debug", "video-1", "snapshot.jpg")
	err := fs.WriteFile(testPath, []byte("test"))
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Verify file exists
	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestFileSystem_MkdirAll(t *testing.T) {
	fs := New()

	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "a", "b", "c")
	err := fs.MkdirAll(testPath)
	if err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected directory to exist")
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fs := New()

	tmpDir := t.TempDir()

	// Test existing file
	testPath := filepath.Join(tmpDir, "test.txt")
	os.WriteFile(testPath, []byte("test"), 0644)

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}

	// Test non-existing file
	exists, err = fs.Exists(filepath.Join(tmpDir, "nonexistent.txt"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected file to not exist")
	}
}

func TestFileSystem_ReadDir(t *testing.T) {
	fs := New()

	tmpDir := t.TempDir()

	// Frame files plus a subdirectory that must be skipped
	os.WriteFile(filepath.Join(tmpDir, "frame-0002.png"), []byte("b"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "frame-0001.png"), []byte("a"), 0644)
	os.MkdirAll(filepath.Join(tmpDir, "nested"), 0755)

	names, err := fs.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	if len(names) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(names))
	}
	if names[0] != "frame-0001.png" || names[1] != "frame-0002.png" {
		t.Errorf("expected sorted frame names, got %v", names)
	}
}
