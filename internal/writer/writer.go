// Package writer persists a logical document tree as static JSON files.
package writer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Subdirectories fully owned by the builder; cleared before every write so
// documents from a prior run never survive a rebuild.
var generatedDirs = []string{"companies", "sectors", "stages", "statuses", "sources"}

// Writer persists logical trees under a root directory.
type Writer struct {
	dir string
}

// New creates a Writer rooted at dir.
func New(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteTree clears the generated subdirectories and writes every document in
// the tree. Keys are relative paths, values are JSON-serialized with
// two-space indent, a trailing newline, and HTML escaping off.
func (w *Writer) WriteTree(ctx context.Context, tree map[string]any) error {
	for _, sub := range generatedDirs {
		if err := os.RemoveAll(filepath.Join(w.dir, sub)); err != nil {
			return eris.Wrapf(err, "writer: clear %s", sub)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for relPath, doc := range tree {
		relPath, doc := relPath, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.writeDoc(relPath, doc)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	zap.L().Info("writer: tree written",
		zap.String("dir", w.dir),
		zap.Int("documents", len(tree)),
	)
	return nil
}

func (w *Writer) writeDoc(relPath string, doc any) error {
	path := filepath.Join(w.dir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "writer: mkdir for %s", relPath)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return eris.Wrapf(err, "writer: encode %s", relPath)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "writer: write %s", relPath)
	}
	return nil
}
