package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ormasoftchile/unbox/pkg/recipe"
)

// Reconcile makes dest match the manifest exactly, in three strictly
// ordered phases: prune files the manifest doesn't name, apply the
// manifest's moves, then drop directories left empty. Moves run after
// pruning so a move target is never pruned before it is placed, and
// before empty-dir cleanup so vacated directories are collected.
func Reconcile(dest string, m *recipe.Manifest) error {
	if err := pruneExtras(dest, m); err != nil {
		return err
	}
	if err := applyMoves(dest, m.Moves); err != nil {
		return err
	}
	return RemoveEmptyDirs(dest)
}

// pruneExtras deletes every file under dest whose relative path is not
// in the manifest. Directories are never evaluated against the
// manifest, only files.
func pruneExtras(dest string, m *recipe.Manifest) error {
	return filepath.WalkDir(dest, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dest, p)
		if err != nil {
			return err
		}
		slashed := filepath.ToSlash(rel)
		if m.Contains(slashed) || m.IsMoveTarget(slashed) {
			return nil
		}
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("prune %s: %w", rel, err)
		}
		return nil
	})
}

// applyMoves renames each manifest move inside dest, creating target
// parent directories as needed. A move whose source is gone but whose
// target is in place was applied by an earlier run and is skipped;
// a move with neither side present is a recipe configuration error
// and aborts the run. The skip cannot tell an applied move from a
// stale pre-existing file at the target path, so on a first run such
// a file is kept as-is rather than reported.
func applyMoves(dest string, moves []recipe.Move) error {
	for _, mv := range moves {
		from := filepath.Join(dest, filepath.FromSlash(mv.From))
		to := filepath.Join(dest, filepath.FromSlash(mv.To))

		if _, err := os.Lstat(from); err != nil {
			if _, statErr := os.Lstat(to); statErr == nil {
				continue // already applied
			}
			return fmt.Errorf("move %s: %w", mv.From, err)
		}
		if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
			return fmt.Errorf("move %s to %s: %w", mv.From, mv.To, err)
		}
		if err := os.Rename(from, to); err != nil {
			return fmt.Errorf("move %s to %s: %w", mv.From, mv.To, err)
		}
	}
	return nil
}

// RemoveEmptyDirs deletes directories under root that hold no entries,
// visiting children before parents so chains of empty directories
// collapse in one pass. The root itself is kept even when empty, and a
// missing or non-directory root is a no-op.
func RemoveEmptyDirs(root string) error {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil
	}
	_, err = pruneEmpty(root, true)
	return err
}

func pruneEmpty(dir string, isRoot bool) (removed bool, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("read dir %s: %w", dir, err)
	}

	remaining := len(entries)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		gone, err := pruneEmpty(filepath.Join(dir, e.Name()), false)
		if err != nil {
			return false, err
		}
		if gone {
			remaining--
		}
	}

	if isRoot || remaining > 0 {
		return false, nil
	}
	if err := os.Remove(dir); err != nil {
		return false, fmt.Errorf("remove dir %s: %w", dir, err)
	}
	return true, nil
}
