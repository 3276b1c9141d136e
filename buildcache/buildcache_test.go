package buildcache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestNewBuildID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := NewBuildID()
		if len(id) != 36 {
			t.Fatalf("expected UUID length 36, got %d for %q", len(id), id)
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate build ID at iteration %d", i)
		}
		seen[id] = struct{}{}
	}
}

func TestLastFingerprintEmpty(t *testing.T) {
	s := OpenMemory(t)
	fp, err := s.LastFingerprint(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if fp != "" {
		t.Fatalf("empty cache fingerprint = %q, want \"\"", fp)
	}
}

func TestSaveAndLastFingerprint(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	if err := s.Save(ctx, Record{Fingerprint: "aaa", ItemCount: 3, ManifestPath: "dist/inline.json"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, Record{Fingerprint: "bbb", ItemCount: 4, ManifestPath: "dist/inline.json"}); err != nil {
		t.Fatal(err)
	}

	fp, err := s.LastFingerprint(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fp != "bbb" {
		t.Fatalf("last fingerprint = %q, want bbb", fp)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	rec := Record{
		Fingerprint:  "cafe",
		ItemCount:    12,
		ManifestPath: "dist/symbol.json",
		Annotation:   "IconManifest (symbol)",
		Duration:     370 * time.Millisecond,
	}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, Record{Fingerprint: "f00d", ItemCount: 1, ManifestPath: "dist/symbol.json"}); err != nil {
		t.Fatal(err)
	}

	recs, err := s.History(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	// Newest first.
	if recs[0].Fingerprint != "f00d" || recs[1].Fingerprint != "cafe" {
		t.Fatalf("order wrong: %q then %q", recs[0].Fingerprint, recs[1].Fingerprint)
	}

	got := recs[1]
	if got.ID == "" {
		t.Error("Save must assign an ID")
	}
	if got.ItemCount != 12 || got.ManifestPath != "dist/symbol.json" ||
		got.Annotation != "IconManifest (symbol)" || got.Duration != 370*time.Millisecond {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Save must assign CreatedAt")
	}

	limited, err := s.History(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Fingerprint != "f00d" {
		t.Fatalf("limit not applied: %+v", limited)
	}
}

func TestOpenPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "builds.db")
	ctx := context.Background()

	s, err := Open(path, WithMkdirAll())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, Record{Fingerprint: "persist"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	fp, err := s.LastFingerprint(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fp != "persist" {
		t.Fatalf("fingerprint after reopen = %q, want persist", fp)
	}
}
