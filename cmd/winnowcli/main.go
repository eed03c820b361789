// winnowcli cleans a JSON dataset file in one shot: it reads an array of
// records, runs the cleaning pipeline and writes the survivors out.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/corpuskit/winnow/internal/cleaner"
	"github.com/corpuskit/winnow/internal/domain/record"
	"github.com/corpuskit/winnow/internal/version"
)

func main() {
	var (
		inPath      = flag.String("in", "-", "input JSON file (- for stdin)")
		outPath     = flag.String("out", "-", "output JSON file (- for stdout)")
		minQuality  = flag.Int("min-quality", cleaner.DefaultMinQuality, "minimum quality score to keep a record")
		shingleSize = flag.Int("shingle-size", cleaner.DefaultShingleSize, "words per shingle")
		numHashes   = flag.Int("num-hashes", cleaner.DefaultNumHashes, "MinHash signature length")
		bands       = flag.Int("bands", cleaner.DefaultBands, "LSH bands")
		rows        = flag.Int("rows", cleaner.DefaultRows, "LSH rows per band")
		threshold   = flag.Float64("threshold", cleaner.DefaultThreshold, "similarity threshold")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("winnowcli %s (%s)\n", version.Version, version.Commit)
		return
	}

	if err := run(*inPath, *outPath, cleaner.Config{
		MinQuality:  *minQuality,
		ShingleSize: *shingleSize,
		NumHashes:   *numHashes,
		Bands:       *bands,
		Rows:        *rows,
		Threshold:   *threshold,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "winnowcli:", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, cfg cleaner.Config) error {
	engine, err := cleaner.New(cfg)
	if err != nil {
		return err
	}

	records, err := readRecords(inPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleaned, stats, err := engine.Clean(ctx, records)
	if err != nil {
		return err
	}

	if err := writeRecords(outPath, cleaned); err != nil {
		return err
	}

	// Stats go to stderr so stdout stays a clean JSON stream.
	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}

func readRecords(path string) ([]record.Record, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var records []record.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return records, nil
}

func writeRecords(path string, records []record.Record) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
