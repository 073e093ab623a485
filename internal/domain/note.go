package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NoteCode is the closed set of sale note categories produced upstream.
type NoteCode string

const (
	NoteNone          NoteCode = ""
	NoteBlocked       NoteCode = "BLOQ"
	NoteTakeover      NoteCode = "OPA"
	NoteRights        NoteCode = "DERECHOS"
	NoteExchange      NoteCode = "CANJE"
	NoteNoAcquisition NoteCode = "NO ADQ"
	NoteUnknown       NoteCode = "UNKNOWN"
)

// noteMarkers is checked in order; the first marker contained in the text wins.
var noteMarkers = []NoteCode{
	NoteBlocked,
	NoteTakeover,
	NoteRights,
	NoteExchange,
	NoteNoAcquisition,
}

const warningGlyph = "⚠️"

// Note is a sale note decoded once at ingestion. Text keeps the raw upstream
// string; Code is its category.
type Note struct {
	Code NoteCode `json:"code"`
	Text string   `json:"text"`
}

// ParseNote classifies a raw note. Blank text yields the zero Note and text
// carrying no known marker yields NoteUnknown.
func ParseNote(raw string) Note {
	if strings.TrimSpace(raw) == "" {
		return Note{}
	}
	for _, code := range noteMarkers {
		if strings.Contains(raw, string(code)) {
			return Note{Code: code, Text: raw}
		}
	}
	return Note{Code: NoteUnknown, Text: raw}
}

// IsZero reports whether the sale carried no note.
func (n Note) IsZero() bool {
	return n.Code == NoteNone
}

// Label is the text shown on the note badge. For missing-acquisition notes the
// warning glyph and the "NO ADQ" marker are stripped.
func (n Note) Label() string {
	if n.Code != NoteNoAcquisition {
		return n.Text
	}
	label := strings.TrimSpace(n.Text)
	label = strings.TrimSpace(strings.TrimPrefix(label, warningGlyph))
	label = strings.TrimSpace(strings.TrimPrefix(label, string(NoteNoAcquisition)))
	return label
}

// String returns the raw note text.
func (n Note) String() string {
	return n.Text
}

// MarshalJSON writes the raw note text, as upstream does.
func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Text)
}

// UnmarshalJSON decodes a raw note string (or null).
func (n *Note) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Note{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("note: %w", err)
	}
	*n = ParseNote(raw)
	return nil
}
