package cleaner

import (
	"strings"
	"unicode/utf8"

	"github.com/corpuskit/winnow/internal/domain/record"
)

// Scoring model: additive penalties from a base of 70, clamped to [0, 100].
// Records missing either text field short-circuit to 30. Lengths count
// runes, not bytes, so multi-byte scripts are judged by character count.
const (
	baseScore         = 70
	missingFieldScore = 30

	minFieldLength = 100
	maxFieldLength = 50000

	minLengthRatio = 0.3
	maxLengthRatio = 3.0

	minUniqueWordRatio = 0.3
	minAvgSentenceLen  = 5.0

	shortFieldPenalty    = 20
	longFieldPenalty     = 10
	lengthRatioPenalty   = 15
	lowDiversityPenalty  = 10
	shortSentencePenalty = 10
)

// Score computes a 0-100 quality heuristic for a record.
func Score(rec record.Record) int {
	transcript := rec.Transcript()
	translation := rec.Translation()

	if transcript == "" || translation == "" {
		return missingFieldScore
	}

	score := baseScore

	tLen := utf8.RuneCountInString(transcript)
	trLen := utf8.RuneCountInString(translation)

	if tLen < minFieldLength || trLen < minFieldLength {
		score -= shortFieldPenalty
	}
	if tLen > maxFieldLength || trLen > maxFieldLength {
		score -= longFieldPenalty
	}

	ratio := float64(trLen) / float64(max(1, tLen))
	if ratio < minLengthRatio || ratio > maxLengthRatio {
		score -= lengthRatioPenalty
	}

	if uniqueWordRatio(transcript) < minUniqueWordRatio {
		score -= lowDiversityPenalty
	}

	if avgSentenceLength(transcript, tLen) < minAvgSentenceLen {
		score -= shortSentencePenalty
	}

	return min(100, max(0, score))
}

// uniqueWordRatio is the fraction of distinct words in the text.
func uniqueWordRatio(text string) float64 {
	words := strings.Fields(text)
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	return float64(len(unique)) / float64(max(1, len(words)))
}

// avgSentenceLength divides the rune length by the count of sentence
// terminators ('.', '!', '?').
func avgSentenceLength(text string, runeLen int) float64 {
	terms := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
	return float64(runeLen) / float64(max(1, terms))
}
