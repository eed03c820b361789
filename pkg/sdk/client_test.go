package winnow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// goodText builds a distinct passage that clears the quality gate.
func goodText(prefix string) string {
	words := make([]string, 30)
	for i := range words {
		words[i] = fmt.Sprintf("%s%03d", prefix, i)
	}
	return strings.Join(words, " ") + "."
}

func goodRecord(prefix string) Record {
	return Record{
		Transcript:  goodText(prefix),
		Translation: goodText(prefix + "x"),
	}
}

func TestNew_InMemory(t *testing.T) {
	client, err := New(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(context.Background(), WithConfig(Config{Bands: 10, Rows: 3, NumHashes: 128}))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestClean_InMemory(t *testing.T) {
	client, err := New(context.Background())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer client.Close()

	rec := goodRecord("word")
	out, stats, err := client.Clean(context.Background(), []Record{rec, rec})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if stats.Input != 2 || stats.ExactDuplicates != 1 || stats.Output != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(out))
	}
	if !out[0].Scored {
		t.Error("survivor must carry a quality score")
	}
}

func TestClean_RespectsMaxBatchSize(t *testing.T) {
	client, err := New(context.Background(), WithMaxBatchSize(1))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer client.Close()

	_, _, err = client.Clean(context.Background(), []Record{goodRecord("a"), goodRecord("b")})
	if !errors.Is(err, ErrDatasetTooLarge) {
		t.Fatalf("expected ErrDatasetTooLarge, got %v", err)
	}
}

func TestClean_KeepsExtraFields(t *testing.T) {
	client, err := New(context.Background())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer client.Close()

	rec := goodRecord("word")
	rec.Fields = map[string]string{"source": "episode-3"}

	out, _, err := client.Clean(context.Background(), []Record{rec})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(out))
	}
	if out[0].Fields["source"] != "episode-3" {
		t.Errorf("extra field lost: %v", out[0].Fields)
	}
}

func TestPing_WithoutStore(t *testing.T) {
	client, err := New(context.Background())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestDatasets_WithoutStore(t *testing.T) {
	client, err := New(context.Background())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer client.Close()

	ds := client.Datasets()

	if err := ds.Put(context.Background(), "podcasts", []Record{goodRecord("a")}); !errors.Is(err, ErrNoStore) {
		t.Errorf("Put: expected ErrNoStore, got %v", err)
	}
	if _, err := ds.Get(context.Background(), "podcasts"); !errors.Is(err, ErrNoStore) {
		t.Errorf("Get: expected ErrNoStore, got %v", err)
	}
	if _, err := ds.List(context.Background()); !errors.Is(err, ErrNoStore) {
		t.Errorf("List: expected ErrNoStore, got %v", err)
	}
	if _, err := ds.Clean(context.Background(), "podcasts"); !errors.Is(err, ErrNoStore) {
		t.Errorf("Clean: expected ErrNoStore, got %v", err)
	}
}

func TestHealth_WithoutStore(t *testing.T) {
	client, err := New(context.Background())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer client.Close()

	hs := client.Health(context.Background())
	if hs.Status != "ok" {
		t.Errorf("expected status ok, got %q", hs.Status)
	}
	if _, ok := hs.Checks["database"]; ok {
		t.Error("database check should be absent without a store")
	}
}

func TestWithPrometheus_ReusableRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	c1, err := New(context.Background(), WithPrometheus(reg))
	if err != nil {
		t.Fatalf("first client: %v", err)
	}
	defer c1.Close()

	c2, err := New(context.Background(), WithPrometheus(reg))
	if err != nil {
		t.Fatalf("second client on same registry: %v", err)
	}
	defer c2.Close()
}

func TestConfig_EngineDefaults(t *testing.T) {
	cfg := Config{MinQuality: 75}.engine()
	if cfg.MinQuality != 75 {
		t.Errorf("override lost: %d", cfg.MinQuality)
	}
	if cfg.NumHashes != 128 || cfg.Bands != 32 || cfg.Rows != 4 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Threshold != 0.7 {
		t.Errorf("default threshold not applied: %g", cfg.Threshold)
	}
}

func TestRecordConversion_RoundTrip(t *testing.T) {
	in := Record{
		Transcript:  "hello there",
		Translation: "shalom",
		Fields:      map[string]string{"source": "a"},
		Quality:     80,
		Scored:      true,
	}

	out := fromDomain(toDomain(in))
	if out.Transcript != in.Transcript || out.Translation != in.Translation {
		t.Errorf("text mismatch: %+v", out)
	}
	if out.Fields["source"] != "a" {
		t.Errorf("extra field lost: %v", out.Fields)
	}
	if out.Quality != 80 || !out.Scored {
		t.Errorf("quality lost: %+v", out)
	}
}
