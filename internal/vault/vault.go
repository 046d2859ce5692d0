// Package vault gives notemend its view of the note directory: path
// confinement, note IO, and a single-writer lock.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath resolves a filename from a diff header against the vault root.
// Diff filenames are untrusted model output, so anything escaping the root
// (absolute paths, ".." traversal) is rejected.
func ResolvePath(root, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty note name")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("note name %q must be relative to the vault", name)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve vault root: %w", err)
	}
	absRoot = filepath.Clean(absRoot)

	full := filepath.Clean(filepath.Join(absRoot, name))
	if full != absRoot && !strings.HasPrefix(full, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("note name %q escapes the vault", name)
	}
	return full, nil
}

// ReadNote returns the text of the note at fullPath.
func ReadNote(fullPath string) (string, error) {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteNoteAtomic writes content via temp file + rename so a crash mid-write
// never leaves a half-written note. Permissions of an existing note are
// preserved.
func WriteNoteAtomic(fullPath, content string) error {
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(fullPath), ".notemend-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up temp file in case of error

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if info, statErr := os.Stat(fullPath); statErr == nil {
		_ = os.Chmod(tempPath, info.Mode())
	} else {
		_ = os.Chmod(tempPath, 0644)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		return fmt.Errorf("atomic rename failed: %w", err)
	}
	return nil
}

// BackupNote copies the note to <file>.orig unless a backup already exists,
// so repeated runs keep the pre-session original.
func BackupNote(fullPath string) error {
	backupPath := fullPath + ".orig"
	if _, err := os.Stat(backupPath); err == nil {
		return nil
	}
	content, err := ReadNote(fullPath)
	if err != nil {
		return fmt.Errorf("read note for backup: %w", err)
	}
	return WriteNoteAtomic(backupPath, content)
}
