package deck

import (
	"sort"
	"strings"

	"github.com/jwaller/fuda/card"
	"github.com/jwaller/fuda/fuzzy"
)

func (d *Deck) InitJapaneseFuzzIndex() {
	if d.jfuzz.index != nil {
		return
	}
	d.jfuzz.l.Lock()
	defer d.jfuzz.l.Unlock()
	if d.jfuzz.index != nil {
		return
	}

	cards := make([]*card.Card, 0, len(d.cards))
	l := make([]string, 0, len(d.cards))
	for i := range d.cards {
		cards = append(cards, &d.cards[i])
		l = append(l, d.cards[i].Kana)
	}
	d.jfuzz.cards = cards
	d.jfuzz.index = fuzzy.NewIndex(2, l)
}

func (d *Deck) InitMeaningFuzzIndex() {
	if d.efuzz.index != nil {
		return
	}
	d.efuzz.l.Lock()
	defer d.efuzz.l.Unlock()
	if d.efuzz.index != nil {
		return
	}

	cards := make([]*card.Card, 0, len(d.cards))
	matches := make([]string, 0, len(d.cards))
	l := make([]string, 0, len(d.cards))
	for i := range d.cards {
		for kw := range d.meanings[i] {
			cards = append(cards, &d.cards[i])
			matches = append(matches, kw)
			l = append(l, kw)
		}
	}
	d.efuzz.cards = cards
	d.efuzz.matches = matches
	d.efuzz.index = fuzzy.NewIndex(2, l)
}

const levenshteinMax = 500

// SearchJapaneseFuzzy is the typo-tolerant variant of SearchJapanese.
func (d *Deck) SearchJapaneseFuzzy(qry string, max int) []*card.Card {
	d.InitJapaneseFuzzIndex()
	if len(qry) > 1<<8-1 {
		qry = qry[:1<<8-1]
	}
	lq := uint8(len([]rune(qry)) / 2)
	if lq == 0 {
		lq = 1
	}

	tmp := make(Results, 0, max)
	d.jfuzz.index.Search(qry, func(index int, score, low, high uint8) {
		if score >= lq {
			tmp = append(tmp, &Result{Card: d.jfuzz.cards[index], Score: int(score)})
		}
	})

	if len(tmp) > levenshteinMax {
		sort.Sort(tmp)
		tmp = tmp[:levenshteinMax]
	}

	results := make(Results, 0, len(tmp))
	for _, r := range tmp {
		r.Levenshtein(qry)
		results = append(results, r)
	}

	sort.Sort(results)
	return results2cards(results, max)
}

// SearchMeaningFuzzy is the typo-tolerant variant of SearchMeaning.
func (d *Deck) SearchMeaningFuzzy(qry string, max int) []*card.Card {
	d.InitMeaningFuzzIndex()
	if len(qry) > 1<<8-1 {
		qry = qry[:1<<8-1]
	}
	lq := uint8(len(qry) / 3)
	if lq == 0 {
		lq = 1
	}

	tmp := make(Results, 0, max)
	d.efuzz.index.Search(strings.ToLower(qry), func(index int, score, low, high uint8) {
		if score >= lq {
			tmp = append(
				tmp,
				&Result{
					Card:  d.efuzz.cards[index],
					Match: d.efuzz.matches[index],
					Score: int(score),
				},
			)
		}
	})

	if len(tmp) > levenshteinMax {
		sort.Sort(tmp)
		tmp = tmp[:levenshteinMax]
	}

	// a card indexed under several keywords shows up once, best keyword wins
	m := make(map[*card.Card]*Result, len(tmp))
	for _, r := range tmp {
		r.Score = inverseScore - Levenshtein([]rune(r.Match), []rune(strings.ToLower(qry)))
		if er, ok := m[r.Card]; ok {
			if r.Score > er.Score {
				m[r.Card] = r
			}
			continue
		}
		m[r.Card] = r
	}

	results := make(Results, 0, len(m))
	for _, r := range m {
		results = append(results, r)
	}

	sort.Sort(results)
	return results2cards(results, max)
}
