// Package fsops applies the unbox pipeline's filesystem phases: merging
// an unpacked box into the destination, then reconciling the
// destination against a variant manifest. Every phase is synchronous
// and its effects are durable; there is no rollback on partial failure.
package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyEntry copies src (a file, directory tree or symlink) to dst.
// Directories merge recursively, overwriting same-named files already
// present under dst; files are fully replaced.
func CopyEntry(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	switch {
	case info.IsDir():
		return copyDir(src, dst)
	case info.Mode()&os.ModeSymlink != 0:
		return copySymlink(src, dst)
	default:
		return copyFile(src, dst, info.Mode().Perm())
	}
}

func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dst, err)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", src, err)
	}
	for _, e := range entries {
		if err := CopyEntry(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("read link %s: %w", src, err)
	}
	// Replace any existing entry; symlinks cannot be overwritten in place.
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	if err := os.Symlink(target, dst); err != nil {
		return fmt.Errorf("link %s: %w", dst, err)
	}
	return nil
}
