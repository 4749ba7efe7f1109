// Package fetch materializes a box source into a local directory.
// Local directories are copied with .gitignore filtering; anything
// else is treated as a git remote and shallow-cloned in memory.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Fetch copies the box named by source into dir. The destination
// directory must already exist. No destination mutation happens when
// the source cannot be resolved.
func Fetch(source, dir string) error {
	if looksLocal(source) {
		info, err := os.Stat(source)
		if err != nil {
			return fmt.Errorf("box source %s: %w", source, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("box source %s is not a directory", source)
		}
		return fetchLocal(source, dir)
	}
	if info, err := os.Stat(source); err == nil && info.IsDir() {
		return fetchLocal(source, dir)
	}
	return fetchRemote(source, dir)
}

// isRepoNotFound matches the transport sentinel through any wrapping
// the clone layers add.
func isRepoNotFound(err error) bool {
	return errors.Is(err, transport.ErrRepositoryNotFound)
}

// looksLocal reports whether source can only name a filesystem path,
// so a resolution failure should read as a missing path rather than a
// failed clone.
func looksLocal(source string) bool {
	return filepath.IsAbs(source) ||
		source == "." || source == ".." ||
		strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../") ||
		strings.HasPrefix(source, ".\\") || strings.HasPrefix(source, "..\\")
}

// expandSource turns owner/repo shorthand into a GitHub HTTPS URL and
// leaves full URLs and SSH addresses alone.
func expandSource(source string) string {
	if strings.Contains(source, "://") || strings.Contains(source, "@") {
		return source
	}
	parts := strings.Split(source, "/")
	if len(parts) == 2 && parts[0] != "" && parts[1] != "" && !strings.HasPrefix(parts[0], ".") {
		return "https://github.com/" + source
	}
	return source
}

func fetchRemote(source, dir string) error {
	worktree := memfs.New()
	_, err := git.Clone(memory.NewStorage(), worktree, &git.CloneOptions{
		URL:   expandSource(source),
		Depth: 1,
	})
	if err != nil {
		if isRepoNotFound(err) {
			return fmt.Errorf("box %q not found: %w", source, err)
		}
		return fmt.Errorf("fetch %q: %w (check the source name and your network connection)", source, err)
	}
	return materialize(worktree, "/", dir)
}

// materialize writes a cloned worktree out to disk, skipping git
// metadata.
func materialize(worktree billy.Filesystem, from, to string) error {
	entries, err := worktree.ReadDir(from)
	if err != nil {
		return fmt.Errorf("read cloned dir %s: %w", from, err)
	}
	for _, e := range entries {
		if e.Name() == ".git" {
			continue
		}
		src := worktree.Join(from, e.Name())
		dst := filepath.Join(to, e.Name())
		if e.IsDir() {
			if err := os.MkdirAll(dst, 0o755); err != nil {
				return fmt.Errorf("create dir %s: %w", dst, err)
			}
			if err := materialize(worktree, src, dst); err != nil {
				return err
			}
			continue
		}
		if err := writeOut(worktree, src, dst, e.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

func writeOut(worktree billy.Filesystem, src, dst string, perm os.FileMode) error {
	in, err := worktree.Open(src)
	if err != nil {
		return fmt.Errorf("open cloned file %s: %w", src, err)
	}
	defer in.Close()

	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return out.Close()
}
