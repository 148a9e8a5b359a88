// Package ingest turns a Garmin Connect export archive into the
// normalized collections defined in the domain package. The pipeline
// is tolerant by design: one malformed entry never fails the batch.
package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// Entry exposes the minimal archive-entry surface needed by the
// aggregator. ReadText may fail for an unreadable entry; the
// aggregator catches that and skips the entry.
type Entry interface {
	Name() string
	IsDir() bool
	ReadText() (string, error)
}

// OpenZip enumerates the entries of an in-memory ZIP archive. A
// corrupt archive is the single fatal error class of the pipeline.
func OpenZip(data []byte) ([]Entry, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	entries := make([]Entry, 0, len(reader.File))
	for _, file := range reader.File {
		entries = append(entries, zipEntry{file: file})
	}
	return entries, nil
}

type zipEntry struct {
	file *zip.File
}

func (e zipEntry) Name() string { return e.file.Name }

func (e zipEntry) IsDir() bool { return e.file.FileInfo().IsDir() }

func (e zipEntry) ReadText() (string, error) {
	rc, err := e.file.Open()
	if err != nil {
		return "", fmt.Errorf("open entry %s: %w", e.file.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read entry %s: %w", e.file.Name, err)
	}
	return string(data), nil
}
