package mapreduce

import (
	"fmt"
	"sort"

	"github.com/dtnitsch/wordfreq/pkg/analytics"
)

// WordCount is one entry of a top-N result.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// TopN returns the n most frequent words, highest count first.
// Equal counts keep the table's first-seen order.
func TopN(table *analytics.FrequencyTable, n int) []WordCount {
	if n <= 0 || table.Len() == 0 {
		return []WordCount{}
	}

	words := table.Words()
	ss := make([]WordCount, len(words))
	for i, w := range words {
		ss[i] = WordCount{Word: w, Count: table.Count(w)}
	}

	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].Count > ss[j].Count
	})

	if len(ss) > n {
		ss = ss[:n]
	}
	return ss
}

// FormatKeywords formats a top-N result as "word:count" (e.g., "elizabeth:635").
func FormatKeywords(top []WordCount) []string {
	keywords := make([]string, len(top))
	for i, wc := range top {
		keywords[i] = fmt.Sprintf("%s:%d", wc.Word, wc.Count)
	}
	return keywords
}
