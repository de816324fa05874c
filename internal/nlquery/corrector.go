package nlquery

import (
	"sort"
	"strings"
)

// defaultCutoff is the minimum similarity for a correction to be proposed.
const defaultCutoff = 0.6

// defaultVocabulary is every word the grammar recognizes, in priority order.
var defaultVocabulary = []string{
	"i", "want", "to", "know", "how", "many", "units", "of", "item", "items",
	"product", "products", "tvs", "tv", "phones", "phone", "mobiles", "mobile",
	"smartphone", "laptops", "laptop", "computers", "computer", "tablets", "tablet",
	"drives", "drive", "hard", "in", "the", "store", "stock", "show", "list", "all",
	"what", "is", "are", "available", "low", "out", "empty", "less", "than", "more",
	"greater", "we", "have", "do", "you", "can", "get", "tell", "me", "and", "also",
}

// Vocabulary is the ordered set of lowercase words used for fuzzy
// correction. It is built once at startup and read-only during query
// processing; Add and Remove exist for administrative use only.
type Vocabulary struct {
	words []string
	index map[string]struct{}
}

// NewVocabulary builds a vocabulary from the given words, lowercasing them
// and keeping first-occurrence order.
func NewVocabulary(words []string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]struct{}, len(words))}
	for _, word := range words {
		lower := strings.ToLower(word)
		if _, ok := v.index[lower]; ok {
			continue
		}
		v.index[lower] = struct{}{}
		v.words = append(v.words, lower)
	}
	return v
}

// DefaultVocabulary returns the vocabulary of the stock-question grammar.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(defaultVocabulary)
}

// Contains reports whether word is in the vocabulary (case-insensitive).
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.index[strings.ToLower(word)]
	return ok
}

// Words returns a copy of the vocabulary in order.
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// Add appends words not already present. Not safe to call concurrently with
// query processing.
func (v *Vocabulary) Add(words ...string) {
	for _, word := range words {
		lower := strings.ToLower(word)
		if _, ok := v.index[lower]; ok {
			continue
		}
		v.index[lower] = struct{}{}
		v.words = append(v.words, lower)
	}
}

// Remove deletes the given words if present. Not safe to call concurrently
// with query processing.
func (v *Vocabulary) Remove(words ...string) {
	for _, word := range words {
		lower := strings.ToLower(word)
		if _, ok := v.index[lower]; !ok {
			continue
		}
		delete(v.index, lower)
		for i, w := range v.words {
			if w == lower {
				v.words = append(v.words[:i], v.words[i+1:]...)
				break
			}
		}
	}
}

// VocabularyStats summarizes the vocabulary for the admin API.
type VocabularyStats struct {
	TotalWords    int     `json:"total_words"`
	AverageLength float64 `json:"average_length"`
	ShortestWord  int     `json:"shortest_word"`
	LongestWord   int     `json:"longest_word"`
}

// Stats returns summary statistics about the vocabulary.
func (v *Vocabulary) Stats() VocabularyStats {
	stats := VocabularyStats{TotalWords: len(v.words)}
	if len(v.words) == 0 {
		return stats
	}
	total := 0
	stats.ShortestWord = len(v.words[0])
	for _, word := range v.words {
		total += len(word)
		if len(word) < stats.ShortestWord {
			stats.ShortestWord = len(word)
		}
		if len(word) > stats.LongestWord {
			stats.LongestWord = len(word)
		}
	}
	stats.AverageLength = float64(total) / float64(len(v.words))
	return stats
}

// Corrector proposes spelling corrections against a fixed vocabulary.
type Corrector struct {
	vocab  *Vocabulary
	cutoff float64
}

// NewCorrector creates a corrector over the given vocabulary.
func NewCorrector(vocab *Vocabulary) *Corrector {
	return &Corrector{vocab: vocab, cutoff: defaultCutoff}
}

// Vocabulary returns the corrector's vocabulary.
func (c *Corrector) Vocabulary() *Vocabulary {
	return c.vocab
}

// Suggest computes the suggestion map for a query and, when any suggestion
// exists, the corrected query text. For each whitespace-separated word the
// single best vocabulary match with similarity >= cutoff is kept, unless it
// equals the word itself; flagged words are then replaced throughout the
// lowercased query. The corrected string is empty when nothing was flagged.
func (c *Corrector) Suggest(query string) (map[string]string, string) {
	suggestions := make(map[string]string)
	corrected := strings.ToLower(query)

	for _, word := range strings.Fields(query) {
		lower := strings.ToLower(word)
		best, score := c.closestMatch(lower)
		if score < c.cutoff || best == lower {
			continue
		}
		suggestions[word] = best
		corrected = strings.ReplaceAll(corrected, lower, best)
	}

	if len(suggestions) == 0 {
		return suggestions, ""
	}
	return suggestions, corrected
}

// closestMatch returns the vocabulary word most similar to the given word.
// Ties keep the earlier vocabulary entry.
func (c *Corrector) closestMatch(word string) (string, float64) {
	best := ""
	bestScore := -1.0
	for _, candidate := range c.vocab.words {
		score := Similarity(word, candidate)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best, bestScore
}

// WordSuggestions returns up to n vocabulary words similar to the given
// word, best first.
func (c *Corrector) WordSuggestions(word string, n int) []string {
	lower := strings.ToLower(word)
	type scored struct {
		word  string
		score float64
		order int
	}
	var candidates []scored
	for i, candidate := range c.vocab.words {
		if score := Similarity(lower, candidate); score >= c.cutoff {
			candidates = append(candidates, scored{candidate, score, i})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].order < candidates[j].order
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]string, len(candidates))
	for i, cand := range candidates {
		out[i] = cand.word
	}
	return out
}

// Similarity is a normalized edit-distance-style ratio between two words:
// twice the length of their longest common subsequence over the sum of
// their lengths. Identical words score 1, disjoint words 0.
func Similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	// LCS over two rows.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return 2 * float64(prev[len(b)]) / float64(len(a)+len(b))
}
