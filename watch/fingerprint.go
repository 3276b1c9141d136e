package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// TreeFingerprint digests every regular file under root into one hex
// string: sha256 over the sorted (relative path, content digest) pairs.
// Any content or path-set change under root, including inside
// __original__, yields a different fingerprint.
func TreeFingerprint(ctx context.Context, root string) (string, error) {
	type entry struct {
		rel    string
		digest [sha256.Size]byte
	}
	var entries []entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		digest, err := fileDigest(path)
		if err != nil {
			return err
		}
		entries = append(entries, entry{rel: filepath.ToSlash(rel), digest: digest})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("watch: fingerprint %s: %w", root, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })

	h := sha256.New()
	for _, e := range entries {
		io.WriteString(h, e.rel)
		h.Write([]byte{0})
		h.Write(e.digest[:])
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func fileDigest(path string) ([sha256.Size]byte, error) {
	var out [sha256.Size]byte
	f, err := os.Open(path)
	if err != nil {
		return out, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return out, err
	}
	copy(out[:], h.Sum(nil))
	return out, nil
}

// TreeDetector adapts TreeFingerprint to the Detector shape a Watcher
// polls.
func TreeDetector(root string) Detector {
	return func(ctx context.Context) (string, error) {
		return TreeFingerprint(ctx, root)
	}
}
