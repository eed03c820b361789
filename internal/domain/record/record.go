package record

import (
	"encoding/json"
	"fmt"
)

// Well-known field names. Any other string-valued field is carried through
// the pipeline untouched.
const (
	FieldTranscript  = "transcript"
	FieldTranslation = "translation"
)

// qualityKey is the engine-written score field in the JSON encoding.
const qualityKey = "quality"

// Record is a text-pair record (immutable value object). It holds the
// caller-owned string fields plus the engine-written quality score.
// A missing field reads as the empty string.
type Record struct {
	fields  map[string]string
	quality int
	scored  bool
}

// New creates a Record from caller fields. The map is cloned; nil is allowed.
func New(fields map[string]string) Record {
	return Record{fields: cloneStringMap(fields)}
}

// Reconstruct creates a Record with an already-assigned quality score
// (storage hydration, no clone).
func Reconstruct(fields map[string]string, quality int) Record {
	return Record{fields: fields, quality: quality, scored: true}
}

// Field returns the named field, or "" when absent.
func (r Record) Field(name string) string { return r.fields[name] }

// Transcript returns the source transcript text.
func (r Record) Transcript() string { return r.fields[FieldTranscript] }

// Translation returns the translated text.
func (r Record) Translation() string { return r.fields[FieldTranslation] }

// Content returns transcript and translation concatenated in that order.
// This is the unit of content identity for duplicate detection.
func (r Record) Content() string {
	return r.fields[FieldTranscript] + r.fields[FieldTranslation]
}

// Fields returns a copy of all string fields.
func (r Record) Fields() map[string]string {
	return cloneStringMap(r.fields)
}

// Quality returns the engine-assigned quality score (0 if not yet scored).
func (r Record) Quality() int { return r.quality }

// Scored reports whether a quality score has been assigned.
func (r Record) Scored() bool { return r.scored }

// WithQuality returns a copy with the quality score set.
func (r Record) WithQuality(q int) Record {
	return Record{fields: r.fields, quality: q, scored: true}
}

// WithText returns a copy with transcript and translation replaced.
// Other fields are carried over unchanged.
func (r Record) WithText(transcript, translation string) Record {
	fields := cloneStringMap(r.fields)
	if fields == nil {
		fields = make(map[string]string, 2)
	}
	fields[FieldTranscript] = transcript
	fields[FieldTranslation] = translation
	return Record{fields: fields, quality: r.quality, scored: r.scored}
}

// MarshalJSON encodes the record as a flat object: string fields inline,
// quality as an integer (only once scored). This matches the persisted
// dataset shape consumed by the surrounding tooling.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.fields)+1)
	for k, v := range r.fields {
		out[k] = v
	}
	if r.scored {
		out[qualityKey] = r.quality
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return data, nil
}

// UnmarshalJSON decodes a flat record object. String values become fields,
// a numeric "quality" becomes the score; values of other types are dropped
// (records are text-pair mappings).
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}

	fields := make(map[string]string, len(raw))
	quality := 0
	scored := false
	for k, v := range raw {
		if k == qualityKey {
			var q int
			if err := json.Unmarshal(v, &q); err == nil {
				quality = q
				scored = true
			}
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			fields[k] = s
		}
	}

	r.fields = fields
	r.quality = quality
	r.scored = scored
	return nil
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
