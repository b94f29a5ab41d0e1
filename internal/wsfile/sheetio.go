package wsfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/ctxlog"
	"github.com/specialistvlad/gridsheet/internal/sheet"
	"golang.org/x/text/encoding/charmap"
)

// Save writes the persistable cells of s and the cursor position.
func Save(w io.Writer, s *sheet.Sheet, cursor cellref.Coord) error {
	return Encode(w, Document{Cursor: cursor, Records: s.Records()})
}

// Load decodes a sheet file and replays its records into s as manual edits,
// in file order. It returns the stored cursor position.
func Load(ctx context.Context, r io.Reader, s *sheet.Sheet) (cellref.Coord, error) {
	logger := ctxlog.FromContext(ctx)

	doc, err := Decode(r)
	if err != nil {
		return cellref.Coord{}, err
	}
	for _, rec := range doc.Records {
		if !utf8.ValidString(rec.Formula) {
			// Files written by older builds carry Latin-2 bytes.
			decoded, err := charmap.ISO8859_2.NewDecoder().String(rec.Formula)
			if err != nil {
				return cellref.Coord{}, fmt.Errorf("cell %s: failed to decode formula: %w", rec.At, err)
			}
			logger.Warn("Formula decoded as ISO-8859-2.", "cell", rec.At)
			rec.Formula = decoded
		}
		if err := s.Restore(ctx, rec); err != nil {
			return cellref.Coord{}, fmt.Errorf("failed to restore cell %s: %w", rec.At, err)
		}
	}
	logger.Debug("Sheet loaded.", "records", len(doc.Records), "cursor", doc.Cursor)
	return doc.Cursor, nil
}

// SaveFile writes the sheet to path. The file is replaced atomically.
func SaveFile(path string, s *sheet.Sheet, cursor cellref.Coord) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := Save(tmp, s, cursor); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err := tmp.Chmod(fileMode(path)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// fileMode keeps the permissions of an existing sheet file. New files get
// 0644.
func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return 0o644
}

// LoadFile loads the sheet file at path into s.
func LoadFile(ctx context.Context, path string, s *sheet.Sheet) (cellref.Coord, error) {
	f, err := os.Open(path)
	if err != nil {
		return cellref.Coord{}, fmt.Errorf("failed to open sheet: %w", err)
	}
	defer f.Close()

	cursor, err := Load(ctx, f, s)
	if err != nil {
		return cellref.Coord{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cursor, nil
}
