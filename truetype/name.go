package truetype

import (
	"bytes"
	"io"

	"github.com/mibigo/ttfont"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// nameRecordSize is the byte size of one naming-table record: platformID,
// encodingID, languageID, nameID, length, offset — six uint16 fields.
const nameRecordSize = 12

// NameID identifies a record in the naming table (name table). Only the
// handful of IDs a caller is likely to want are named here; the full list
// is documented at https://learn.microsoft.com/typography/opentype/spec/name.
type NameID uint16

const (
	NameIDFamily    NameID = 1
	NameIDSubfamily NameID = 2
	NameIDFullName  NameID = 4
	NameIDVersion   NameID = 5
)

// FamilyName returns the font's family name (name id 1) from its naming
// table, decoding Windows-platform UTF-16BE records the same way the
// teacher's runes.go decodes them. It is not part of the core glyph-decode
// path spec.md describes; the core only requires the name table to be
// present, never decoded. Returns "" if no usable record is found.
func (l *Loader) FamilyName(f *ttfont.Font) string {
	name, err := l.nameRecord(f.Reader(), NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// nameRecord scans the naming table for the first record matching id on
// any Windows platform (platform id 3), decodes its UTF-16BE bytes, and
// returns it as a UTF-8 string.
func (l *Loader) nameRecord(r *ttfont.Reader, id NameID) (string, error) {
	offset, ok := l.tableOffset("name")
	if !ok {
		return "", corrupted("missing name table")
	}

	r.Jump(int(offset))
	r.Skip(2) // format
	count := int(r.ReadU16())
	stringOffset := int(r.ReadU16())

	for i := 0; i < count; i++ {
		r.Jump(int(offset) + 6 + i*nameRecordSize)
		platformID := r.ReadU16()
		r.Skip(2) // encodingID
		r.Skip(2) // languageID
		nameID := NameID(r.ReadU16())
		length := int(r.ReadU16())
		recOffset := int(r.ReadU16())

		if nameID != id || platformID != 3 {
			continue
		}

		buf := make([]byte, length)
		r.Jump(int(offset) + stringOffset + recOffset)
		r.ReadBytes(buf)

		decoded, err := decodeUTF16BE(buf)
		if err != nil {
			return "", corrupted("bad name record %d: %v", id, err)
		}
		return decoded, nil
	}
	return "", corrupted("name record %d not found", id)
}

// decodeUTF16BE converts big-endian UTF-16 bytes (the encoding every
// Windows-platform name record uses) to a UTF-8 string.
func decodeUTF16BE(b []byte) (string, error) {
	r := bytes.NewReader(b)
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	tr := transform.NewReader(r, enc.NewDecoder())
	out, err := io.ReadAll(tr)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
