// Package archive stores generated specification documents. It offers
// one interface with two backends: a local directory for development
// and single-node deployments, and a MinIO bucket for anything shared.
//
// # Usage
//
// Applications depend on the Archive interface and select the backend
// via configuration:
//
//	var store archive.Archive
//	switch cfg.Type {
//	case archive.TypeLocal:
//	    store, err = archive.NewLocalArchive(cfg.Local, logger)
//	case archive.TypeMinio:
//	    store, err = archive.NewMinioArchive(ctx, cfg.Minio, logger)
//	}
//
// or let the fx module do the switch (NewArchiveWithDI).
//
// Document names are sanitized into storage keys: path separators and
// spaces become underscores and a .yaml suffix is ensured, so
// Put/Get/List agree on naming regardless of what the caller passes.
package archive

import (
	"context"
	"time"
)

// Entry describes one stored document.
type Entry struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Archive is the storage interface for generated specification
// documents.
//
// Implementations:
//   - LocalArchive stores documents as files in a directory
//   - MinioArchive stores documents as objects in a bucket
type Archive interface {
	// Put stores a document under the sanitized key derived from name
	// and returns that key. Existing documents are overwritten.
	Put(ctx context.Context, name string, data []byte) (string, error)

	// Get retrieves a document by name or storage key. A missing
	// document yields ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns all stored documents, most recent first.
	List(ctx context.Context) ([]Entry, error)
}

// Logger is the logging interface used across schemawarden packages.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}
