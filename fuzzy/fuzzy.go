// Package fuzzy is a small n-gram index used for typo-tolerant lookups.
// Queries and items are broken into overlapping rune n-grams; an item's
// score is the number of query grams it contains.
package fuzzy

import "strings"

type Index struct {
	gramLength int
	n          int
	data       map[string][]int
}

func NewIndex(gramLength int, items []string) *Index {
	if gramLength < 2 {
		gramLength = 2
	}
	ix := &Index{
		gramLength: gramLength,
		n:          len(items),
		data:       make(map[string][]int, len(items)),
	}

	for i, v := range items {
		for _, p := range ix.parts(v) {
			ix.data[p] = append(ix.data[p], i)
		}
	}

	return ix
}

type Include func(index int, score, low, high uint8)

const maxuint8 = 1<<8 - 1

func (index *Index) Search(q string, include Include) {
	scores := make([]uint8, index.n)
	for _, g := range index.parts(q) {
		for _, ix := range index.data[g] {
			if scores[ix] != maxuint8 {
				scores[ix]++
			}
		}
	}

	var min, max uint8 = maxuint8, 0
	for _, score := range scores {
		if score < min || min == maxuint8 {
			min = score
		}
		if score > max {
			max = score
		}
	}

	for i, score := range scores {
		include(i, score, min, max)
	}
}

// parts derives the gram list. English text is lowercased and split on
// spaces; Japanese text has no word boundaries, so each field is simply
// windowed whole.
func (index *Index) parts(q string) []string {
	qs := make([]string, 0, len(q))
	fields := strings.Fields(
		strings.Trim(strings.ToLower(q), "!@#$%^&*=./,、。・「」？！"),
	)
	for _, f := range fields {
		v := []rune(f)
		if len(v) < 2 {
			continue
		}
		if len(v) <= index.gramLength {
			qs = append(qs, f)
			continue
		}
		for j := 0; j < len(v)-index.gramLength+1; j++ {
			g := strings.TrimSpace(string(v[j : j+index.gramLength]))
			if g != "" {
				qs = append(qs, g)
			}
		}
	}

	return qs
}
