package manifest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/iconpipe/assetpipe"
	"github.com/hazyhaar/iconpipe/svgdata"
)

func sampleItem() assetpipe.ViewerItem {
	w, h := 20.0, 20.0
	return assetpipe.ViewerItem{
		Svg: &svgdata.SVG{
			Content: `<path d="M0 0h20v20z"></path>`,
			Attrs: svgdata.Attrs{
				{Name: "width", Value: "20"},
				{Name: "height", Value: "20"},
				{Name: "viewBox", Value: "0 0 20 20"},
			},
		},
		OriginalSvg:       "<svg>big & original</svg>",
		Width:             &w,
		Height:            &h,
		FileName:          "alarm.svg",
		FileDir:           "/",
		FileSize:          "1.16 KB",
		OptimizedFileSize: "0.62 KB",
		BaseSize:          "20px",
		FullBaseSize:      "20x20px",
		Copypasta:         `{{svg-jar "alarm"}}`,
		Strategy:          "inline",
	}
}

func TestEncodeEmpty(t *testing.T) {
	for _, items := range [][]assetpipe.ViewerItem{nil, {}} {
		data, err := Encode(items)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "[]" {
			t.Fatalf("empty manifest = %q, want []", data)
		}
	}
}

func TestEncodeKeyOrderAndEscaping(t *testing.T) {
	data, err := Encode([]assetpipe.ViewerItem{sampleItem()})
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"svg":{"content":"<path d=\"M0 0h20v20z\"></path>","attrs":{"width":"20","height":"20","viewBox":"0 0 20 20"}},` +
		`"originalSvg":"<svg>big & original</svg>","width":20,"height":20,"fileName":"alarm.svg","fileDir":"/",` +
		`"fileSize":"1.16 KB","optimizedFileSize":"0.62 KB","baseSize":"20px","fullBaseSize":"20x20px",` +
		`"copypasta":"{{svg-jar \"alarm\"}}","strategy":"inline"}]`
	if string(data) != want {
		t.Fatalf("encode mismatch:\n got %s\nwant %s", data, want)
	}
}

func TestEncodeNullDimensions(t *testing.T) {
	item := sampleItem()
	item.Width, item.Height = nil, nil
	item.BaseSize, item.FullBaseSize = "unknown", "nullxnullpx"

	data, err := Encode([]assetpipe.ViewerItem{item})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"width":null,"height":null`) {
		t.Fatalf("missing null dimensions in: %s", data)
	}
}

func TestEncodeOmitsMissingOriginal(t *testing.T) {
	item := sampleItem()
	item.OriginalSvg = ""
	data, err := Encode([]assetpipe.ViewerItem{item})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "originalSvg") {
		t.Fatalf("originalSvg should be omitted when unset: %s", data)
	}
}

func TestFileWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "inline.json")

	w := &FileWriter{}
	items := []assetpipe.ViewerItem{sampleItem()}
	if err := w.WriteManifest(path, items); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Encode(items)
	if string(got) != string(want) {
		t.Fatalf("file content mismatch:\n got %s\nwant %s", got, want)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind")
	}
}

func TestFileWriterOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inline.json")

	w := &FileWriter{}
	if err := w.WriteManifest(path, []assetpipe.ViewerItem{sampleItem()}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteManifest(path, nil); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected overwrite with [], got %s", got)
	}
}

func TestManifestReproducible(t *testing.T) {
	dir := t.TempDir()
	icons := map[string]string{
		"alarm.svg":              `<svg width="20" height="20" viewBox="0 0 20 20"><path d="M0 0h20v20z"/></svg>`,
		"social/twitter.svg":     `<svg viewBox="0 0 32 24"><path d="M1 1"/></svg>`,
		"__original__/alarm.svg": `<svg width="20" height="20"><!-- verbose --><path d="M0 0h20v20z"/></svg>`,
	}
	for rel, content := range icons {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	encode := func() []byte {
		t.Helper()
		pipe := assetpipe.New(assetpipe.Config{
			InputDir: dir,
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		items, err := pipe.Build(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		data, err := Encode(items)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	first, second := encode(), encode()
	if string(first) != string(second) {
		t.Fatalf("manifests differ across identical builds:\n%s\n%s", first, second)
	}
}

func TestFileWriterCleansUpOnRenameFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inline.json")
	// A directory at the target path makes the rename fail.
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatal(err)
	}

	w := &FileWriter{}
	if err := w.WriteManifest(path, nil); err == nil {
		t.Fatal("expected rename failure")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file not cleaned up after failed rename")
	}
}
