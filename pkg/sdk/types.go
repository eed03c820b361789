package winnow

import (
	"github.com/corpuskit/winnow/internal/cleaner"
	"github.com/corpuskit/winnow/internal/domain/record"
)

// Config holds the cleaning engine parameters. Zero fields fall back to
// the engine defaults (min quality 60, 5-word shingles, 128 hashes in
// 32 bands of 4 rows, similarity threshold 0.7).
type Config struct {
	MinQuality  int
	ShingleSize int
	NumHashes   int
	Bands       int
	Rows        int
	Threshold   float64
}

// Record is one transcript/translation text pair. Extra fields are
// carried through the pipeline untouched.
type Record struct {
	Transcript  string
	Translation string
	Fields      map[string]string

	// Quality is set by the engine; Scored reports whether it is valid.
	Quality int
	Scored  bool
}

// Stats counts records dropped at each pipeline stage.
type Stats struct {
	Input           int
	LowQuality      int
	ExactDuplicates int
	NearDuplicates  int
	Output          int
}

func (c Config) engine() cleaner.Config {
	cfg := cleaner.DefaultConfig()
	if c.MinQuality > 0 {
		cfg.MinQuality = c.MinQuality
	}
	if c.ShingleSize > 0 {
		cfg.ShingleSize = c.ShingleSize
	}
	if c.NumHashes > 0 {
		cfg.NumHashes = c.NumHashes
	}
	if c.Bands > 0 {
		cfg.Bands = c.Bands
	}
	if c.Rows > 0 {
		cfg.Rows = c.Rows
	}
	if c.Threshold > 0 {
		cfg.Threshold = c.Threshold
	}
	return cfg
}

func toDomain(r Record) record.Record {
	fields := make(map[string]string, len(r.Fields)+2)
	for k, v := range r.Fields {
		fields[k] = v
	}
	if r.Transcript != "" {
		fields[record.FieldTranscript] = r.Transcript
	}
	if r.Translation != "" {
		fields[record.FieldTranslation] = r.Translation
	}
	if r.Scored {
		return record.Reconstruct(fields, r.Quality)
	}
	return record.New(fields)
}

func fromDomain(rec record.Record) Record {
	fields := rec.Fields()
	delete(fields, record.FieldTranscript)
	delete(fields, record.FieldTranslation)
	if len(fields) == 0 {
		fields = nil
	}
	return Record{
		Transcript:  rec.Transcript(),
		Translation: rec.Translation(),
		Fields:      fields,
		Quality:     rec.Quality(),
		Scored:      rec.Scored(),
	}
}

func toDomainBatch(records []Record) []record.Record {
	out := make([]record.Record, len(records))
	for i, r := range records {
		out[i] = toDomain(r)
	}
	return out
}

func fromDomainBatch(records []record.Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = fromDomain(rec)
	}
	return out
}

func fromStats(s cleaner.Stats) Stats {
	return Stats{
		Input:           s.Input,
		LowQuality:      s.LowQuality,
		ExactDuplicates: s.ExactDuplicates,
		NearDuplicates:  s.NearDuplicates,
		Output:          s.Output,
	}
}
