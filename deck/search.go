package deck

import (
	"sort"
	"strings"

	"github.com/jwaller/fuda/card"
	"github.com/jwaller/fuda/furigana"
)

const inverseScore = 1<<31 - 1

type Result struct {
	*card.Card
	Match string
	Score int
}

type Results []*Result

func (r Results) Len() int { return len(r) }
func (r Results) Less(i, j int) bool {
	if r[i].Score == r[j].Score {
		if r[i].Level == r[j].Level {
			return r[i].Expression < r[j].Expression
		}

		return r[i].Level < r[j].Level
	}

	return r[i].Score > r[j].Score
}

func (r Results) Swap(i, j int) { r[i], r[j] = r[j], r[i] }

// Levenshtein scores the result by edit distance between the query and
// the card's kana rendering.
func (r *Result) Levenshtein(qry string) {
	r.Score = inverseScore - Levenshtein([]rune(r.Kana), []rune(qry))
}

func results2cards(r []*Result, max int) []*card.Card {
	if max == 0 {
		max = 1000
	}
	if max > len(r) {
		max = len(r)
	}
	r = r[:max]
	c := make([]*card.Card, len(r))
	for i, res := range r {
		c[i] = res.Card
	}
	return c
}

// SearchMeaning finds cards listing qry among their definitions,
// earlier-listed definitions ranking higher.
func (d *Deck) SearchMeaning(qry string, max int) []*card.Card {
	qry = strings.ToLower(strings.TrimSpace(qry))
	results := make(Results, 0)
	for i := range d.cards {
		if found, ix := d.hasMeaning(i, qry); found {
			results = append(results, &Result{Card: &d.cards[i], Score: inverseScore - ix})
		}
	}

	sort.Sort(results)
	return results2cards(results, max)
}

// SearchJapanese finds cards whose expression or kana rendering contains
// qry, ranked by edit distance to the kana rendering.
func (d *Deck) SearchJapanese(qry string, max int) []*card.Card {
	results := make(Results, 0)

	for i := range d.cards {
		c := &d.cards[i]
		if !strings.Contains(c.Expression, qry) && !strings.Contains(c.Kana, qry) {
			continue
		}
		r := &Result{Card: c}
		r.Levenshtein(qry)
		results = append(results, r)
	}

	sort.Sort(results)
	return results2cards(results, max)
}

// Search dispatches on the script of the query: mostly Japanese runes
// search the expressions, anything else searches the definitions. The
// returned bool reports which was chosen.
func (d *Deck) Search(qry string, max int) ([]*card.Card, bool) {
	japanese := 0
	runes := []rune(qry)
	for _, c := range runes {
		if furigana.IsKana(c) || furigana.IsIdeograph(c) {
			japanese++
		}
	}

	if japanese < len(runes)/2 {
		return d.SearchMeaning(qry, max), false
	}

	return d.SearchJapanese(qry, max), true
}
