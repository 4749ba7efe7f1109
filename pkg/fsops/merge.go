package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ConfirmFunc answers whether an existing destination entry should be
// replaced by the incoming one.
type ConfirmFunc func(name string) (bool, error)

// Merge copies the unpacked box from tmpDir into dest, creating dest
// if needed. Top-level entries new to dest copy unconditionally.
// Entries present on both sides are collisions: with force they are
// copied over in place (directories merge-overwrite, files replace);
// otherwise confirm decides each one, and an affirmative answer
// replaces the destination entry wholesale while a negative answer
// leaves it untouched. Collisions are visited in sorted name order.
func Merge(tmpDir, dest string, force bool, confirm ConfirmFunc) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create destination %s: %w", dest, err)
	}

	entries, err := os.ReadDir(tmpDir) // sorted by name
	if err != nil {
		return fmt.Errorf("read box contents: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		src := filepath.Join(tmpDir, name)
		dst := filepath.Join(dest, name)

		_, err := os.Lstat(dst)
		if errors.Is(err, fs.ErrNotExist) {
			if err := CopyEntry(src, dst); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("stat %s: %w", dst, err)
		}

		// Collision.
		if force {
			if err := CopyEntry(src, dst); err != nil {
				return err
			}
			continue
		}
		overwrite, err := confirm(name)
		if err != nil {
			return err
		}
		if !overwrite {
			continue
		}
		if err := os.RemoveAll(dst); err != nil {
			return fmt.Errorf("replace %s: %w", name, err)
		}
		if err := CopyEntry(src, dst); err != nil {
			return err
		}
	}
	return nil
}
