package mapreduce

import "unicode/utf8"

// Partition splits text into contiguous chunks of len(text)/numChunks
// characters (at least one). The last chunk holds the remainder, so more than
// numChunks chunks are returned when the length is not an exact multiple.
// Lengths count runes, so a chunk never ends inside a UTF-8 sequence.
func Partition(text string, numChunks int) []string {
	if text == "" {
		return nil
	}
	if numChunks < 1 {
		numChunks = 1
	}

	total := utf8.RuneCountInString(text)
	size := max(total/numChunks, 1)

	chunks := make([]string, 0, (total+size-1)/size)
	start, runes := 0, 0
	for i := range text {
		if runes == size {
			chunks = append(chunks, text[start:i])
			start, runes = i, 0
		}
		runes++
	}
	return append(chunks, text[start:])
}
