// SPDX-License-Identifier: MPL-2.0

// Package jarfilter rewrites jar archives so that build-only metadata
// entries do not leak into the published repository.
//
// Entries under META-INF/ (manifests, signing files) differ between
// otherwise identical builds and would defeat the byte-level freshness
// check that makes publishing idempotent. Everything else is carried over
// verbatim: the filtered archive keeps each surviving entry's raw
// compressed bytes and its full header, so normalizing an
// already-normalized archive is a byte-for-byte no-op.
package jarfilter

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MetadataPrefix is the reserved entry prefix stripped from published jars.
const MetadataPrefix = "META-INF/"

// ErrReplaceFailed is returned when the filtered copy was written
// successfully but could not be moved over the original archive. The
// filtered temp file is left in place for manual recovery.
var ErrReplaceFailed = errors.New("could not replace original archive")

// Normalize rewrites the archive at path with every entry under
// MetadataPrefix removed. The filtered archive is written fully to a temp
// file in the same directory and then renamed over the original, so the
// original is never left half-written, even on a crash mid-rewrite.
func Normalize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat archive: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("archive %s is not a regular file", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".filtered-*")
	if err != nil {
		return fmt.Errorf("failed to create temp archive: %w", err)
	}
	tmpPath := tmp.Name()

	if err := filterArchive(path, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp archive: %w", err)
	}

	// The temp file deliberately survives a failed rename so the filtered
	// archive can be recovered by hand.
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: filtered copy left at %s: %v", ErrReplaceFailed, tmpPath, err)
	}

	return nil
}

// filterArchive copies all non-metadata entries from the archive at src
// into dst. Entries are copied raw: compressed bytes pass through
// untouched and the original header (timestamp, sizes, CRC, method,
// comment, extra fields) is reused, so this is a filter, not a
// re-compression.
func filterArchive(src string, dst io.Writer) (err error) {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	writer := zip.NewWriter(dst)
	if reader.Comment != "" {
		if err := writer.SetComment(reader.Comment); err != nil {
			return fmt.Errorf("failed to carry over archive comment: %w", err)
		}
	}

	for _, entry := range reader.File {
		if strings.HasPrefix(entry.Name, MetadataPrefix) {
			continue
		}

		raw, rawErr := entry.OpenRaw()
		if rawErr != nil {
			return fmt.Errorf("failed to read entry %s: %w", entry.Name, rawErr)
		}

		header := entry.FileHeader
		out, createErr := writer.CreateRaw(&header)
		if createErr != nil {
			return fmt.Errorf("failed to write entry %s: %w", entry.Name, createErr)
		}
		if _, copyErr := io.Copy(out, raw); copyErr != nil {
			return fmt.Errorf("failed to copy entry %s: %w", entry.Name, copyErr)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize filtered archive: %w", err)
	}

	return nil
}
