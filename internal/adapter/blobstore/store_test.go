package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "/receipts/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := store.Save(context.Background(), "abc123", "image/png", []byte("payload"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "/receipts/abc123.png" {
		t.Fatalf("unexpected url %q", url)
	}

	content, err := os.ReadFile(filepath.Join(dir, "abc123.png"))
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(content) != "payload" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "/receipts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"", "../escape", "a/b"} {
		if _, err := store.Save(context.Background(), name, "image/png", []byte("x")); err == nil {
			t.Fatalf("expected error for name %q", name)
		}
	}
}

func TestFileStoreKeepsUnknownContentType(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "/receipts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := store.Save(context.Background(), "blob", "application/octet-stream", []byte("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "/receipts/blob" {
		t.Fatalf("unexpected url %q", url)
	}
}
