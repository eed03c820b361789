package cleaner

import (
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// emptySlot is the sentinel value filling the signature of an empty shingle
// set. An empty signature never agrees with a non-empty one on any slot, so
// empty records only ever group with other empty records.
const emptySlot = math.MaxUint64

// signatureBuilder computes MinHash signatures. The i-th hash function is
// xxhash64 over a fixed per-slot salt prefix followed by the shingle bytes,
// so signatures are deterministic across runs and processes.
type signatureBuilder struct {
	salts [][]byte
}

func newSignatureBuilder(numHashes int) *signatureBuilder {
	salts := make([][]byte, numHashes)
	for i := range salts {
		salts[i] = []byte("minhash-" + strconv.Itoa(i) + ":")
	}
	return &signatureBuilder{salts: salts}
}

// Signature returns the slot-wise minimum hash over all shingles.
func (b *signatureBuilder) Signature(shingles map[string]struct{}) []uint64 {
	sig := make([]uint64, len(b.salts))
	for i := range sig {
		sig[i] = emptySlot
	}
	if len(shingles) == 0 {
		return sig
	}

	d := xxhash.New()
	for s := range shingles {
		for i, salt := range b.salts {
			d.Reset()
			_, _ = d.Write(salt)
			_, _ = d.WriteString(s)
			if h := d.Sum64(); h < sig[i] {
				sig[i] = h
			}
		}
	}
	return sig
}

// EstimateSimilarity returns the fraction of agreeing slots between two
// signatures, an estimator of the Jaccard similarity of the underlying
// shingle sets.
func EstimateSimilarity(a, b []uint64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	agree := 0
	for i := range a {
		if a[i] == b[i] {
			agree++
		}
	}
	return float64(agree) / float64(len(a))
}
