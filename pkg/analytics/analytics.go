package analytics

import (
	"regexp"
	"strings"
)

// wordPattern matches maximal runs of letters, digits and underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// FrequencyTable maps words to occurrence counts.
// It remembers the order in which each word was first added; Words returns
// keys in that order.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Add increases the count of word by n. Non-positive n is ignored.
func (t *FrequencyTable) Add(word string, n int) {
	if n <= 0 {
		return
	}
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, exists := t.counts[word]; !exists {
		t.order = append(t.order, word)
	}
	t.counts[word] += n
}

// Count returns the count of word, zero when absent.
func (t *FrequencyTable) Count(word string) int {
	if t == nil {
		return 0
	}
	return t.counts[word]
}

// Len returns the number of distinct words.
func (t *FrequencyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Total returns the sum of all counts.
func (t *FrequencyTable) Total() int {
	if t == nil {
		return 0
	}
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Words returns the distinct words in first-seen order.
func (t *FrequencyTable) Words() []string {
	if t == nil {
		return nil
	}
	words := make([]string, len(t.order))
	copy(words, t.order)
	return words
}

// Map returns a copy of the counts as a plain map.
func (t *FrequencyTable) Map() map[string]int {
	m := make(map[string]int, t.Len())
	if t == nil {
		return m
	}
	for w, c := range t.counts {
		m[w] = c
	}
	return m
}

// Merge returns a new table holding the key-wise sum of t and other.
// Neither input is modified. Words keep t's order, followed by words first
// seen in other.
func (t *FrequencyTable) Merge(other *FrequencyTable) *FrequencyTable {
	merged := NewFrequencyTable()
	for _, src := range []*FrequencyTable{t, other} {
		if src == nil {
			continue
		}
		for _, w := range src.order {
			merged.Add(w, src.counts[w])
		}
	}
	return merged
}

// Equal reports whether both tables hold the same counts. Order is ignored.
func (t *FrequencyTable) Equal(other *FrequencyTable) bool {
	if t.Len() != other.Len() {
		return false
	}
	for _, w := range t.Words() {
		if t.counts[w] != other.Count(w) {
			return false
		}
	}
	return true
}

// Tokenize lower-cases text and counts its word tokens.
func Tokenize(text string) *FrequencyTable {
	table := NewFrequencyTable()
	if text == "" {
		return table
	}
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		table.Add(word, 1)
	}
	return table
}
