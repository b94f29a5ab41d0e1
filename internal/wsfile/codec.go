package wsfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/sheet"
)

// Signature opens every sheet file.
const Signature = "WSSHEET\x01"

// ErrSignature is returned when the input is not a sheet file.
var ErrSignature = errors.New("not a sheet file")

// Document is the decoded content of a sheet file.
type Document struct {
	Cursor  cellref.Coord
	Records []sheet.Record
}

// Encode writes doc in the binary sheet format.
func Encode(w io.Writer, doc Document) error {
	if !doc.Cursor.Valid() {
		return fmt.Errorf("cursor %s is outside the grid", doc.Cursor)
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(Signature)
	bw.WriteByte(byte(doc.Cursor.Col))
	bw.WriteByte(byte(doc.Cursor.Row))

	for _, r := range doc.Records {
		if !r.At.Valid() {
			return fmt.Errorf("record for cell %s is outside the grid", r.At)
		}
		if !r.Override.Valid() {
			return fmt.Errorf("record for cell %s has invalid type %d", r.At, r.Override)
		}
		bw.WriteByte(byte(r.At.Col))
		bw.WriteByte(byte(r.At.Row))
		bw.WriteByte(byte(r.Tag))
		bw.WriteByte(byte(r.Override))
		bw.WriteString(strconv.Itoa(max(r.Scroll, 0)))
		bw.WriteByte(0)
		bw.WriteString(strconv.Itoa(len(r.Formula)))
		bw.WriteByte(0)
		bw.WriteString(r.Formula)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write sheet: %w", err)
	}
	return nil
}

// Decode parses a sheet file. Records are returned in file order.
func Decode(r io.Reader) (Document, error) {
	br := bufio.NewReader(r)

	header := make([]byte, len(Signature)+2)
	if _, err := io.ReadFull(br, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Document{}, ErrSignature
		}
		return Document{}, fmt.Errorf("failed to read header: %w", err)
	}
	if string(header[:len(Signature)]) != Signature {
		return Document{}, ErrSignature
	}

	doc := Document{Cursor: cellref.At(int(header[len(Signature)]), int(header[len(Signature)+1]))}
	if !doc.Cursor.Valid() {
		doc.Cursor = cellref.Coord{}
	}

	for index := 0; ; index++ {
		rec, err := decodeRecord(br)
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		if err != nil {
			return Document{}, fmt.Errorf("record %d: %w", index, err)
		}
		doc.Records = append(doc.Records, rec)
	}
}

// decodeRecord returns io.EOF only when the input ends cleanly between
// records.
func decodeRecord(br *bufio.Reader) (sheet.Record, error) {
	var fixed [4]byte
	n, err := io.ReadFull(br, fixed[:])
	if n == 0 && errors.Is(err, io.EOF) {
		return sheet.Record{}, io.EOF
	}
	if err != nil {
		return sheet.Record{}, fmt.Errorf("truncated record: %w", io.ErrUnexpectedEOF)
	}

	rec := sheet.Record{
		At:       cellref.At(int(fixed[0]), int(fixed[1])),
		Tag:      sheet.Tag(fixed[2]),
		Override: sheet.TypeOverride(fixed[3]),
	}
	if !rec.At.Valid() {
		return sheet.Record{}, fmt.Errorf("cell %s is outside the grid", rec.At)
	}
	if !rec.Tag.Valid() {
		return sheet.Record{}, fmt.Errorf("cell %s: unknown type tag %q", rec.At, fixed[2])
	}
	if !rec.Override.Valid() {
		return sheet.Record{}, fmt.Errorf("cell %s: invalid type %d", rec.At, fixed[3])
	}

	if rec.Scroll, err = readNumber(br); err != nil {
		return sheet.Record{}, fmt.Errorf("cell %s: scroll: %w", rec.At, err)
	}
	length, err := readNumber(br)
	if err != nil {
		return sheet.Record{}, fmt.Errorf("cell %s: length: %w", rec.At, err)
	}
	if length > maxFormulaBytes {
		return sheet.Record{}, fmt.Errorf("cell %s: formula of %d bytes is too long", rec.At, length)
	}
	formula := make([]byte, length)
	if _, err := io.ReadFull(br, formula); err != nil {
		return sheet.Record{}, fmt.Errorf("cell %s: formula: %w", rec.At, io.ErrUnexpectedEOF)
	}
	rec.Formula = string(formula)
	return rec, nil
}

const (
	// maxNumberDigits bounds the NUL-terminated decimal fields.
	maxNumberDigits = 19
	// maxFormulaBytes is far above sheet.FormulaLength; longer formulas are
	// clamped by the sheet on replay.
	maxFormulaBytes = 1 << 16
)

func readNumber(br *bufio.Reader) (int, error) {
	raw, err := br.ReadString(0)
	if err != nil {
		return 0, io.ErrUnexpectedEOF
	}
	digits := raw[:len(raw)-1]
	if digits == "" || len(digits) > maxNumberDigits {
		return 0, fmt.Errorf("malformed number %q", digits)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed number %q", digits)
	}
	return n, nil
}
