package fuzzy

import "sort"

// Word is one search result.
type Word struct {
	Text      string
	Frequency uint32
	Distance  int
}

// Less orders words by ascending distance, then descending frequency, then
// ascending text.
func (w Word) Less(o Word) bool {
	if w.Distance != o.Distance {
		return w.Distance < o.Distance
	}
	if w.Frequency != o.Frequency {
		return w.Frequency > o.Frequency
	}
	return w.Text < o.Text
}

// SortWords sorts words into ranking order.
func SortWords(words []Word) {
	sort.Slice(words, func(i, j int) bool {
		return words[i].Less(words[j])
	})
}
