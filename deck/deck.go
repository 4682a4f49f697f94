// Package deck holds a generated card set in memory and answers lookups
// against it: exact sequence access for the preview server and meaning /
// reading searches for the query mode.
package deck

import (
	"strings"
	"sync"

	"github.com/jwaller/fuda/card"
	"github.com/jwaller/fuda/fuzzy"
	"github.com/jwaller/fuda/jmdict"
)

type fuzz struct {
	l       sync.Mutex
	cards   []*card.Card
	matches []string
	index   *fuzzy.Index
}

type Deck struct {
	cards []card.Card
	bySeq map[jmdict.Seq]*card.Card

	// comma-split meaning keywords per card, keyed lowercase to their
	// position in the definition
	meanings []map[string]int

	jfuzz fuzz
	efuzz fuzz
}

func New(cards []card.Card) *Deck {
	d := &Deck{
		cards:    cards,
		bySeq:    make(map[jmdict.Seq]*card.Card, len(cards)),
		meanings: make([]map[string]int, len(cards)),
	}
	for i := range cards {
		c := &d.cards[i]
		d.bySeq[c.Seq] = c

		m := make(map[string]int)
		n := 0
		for _, part := range strings.Split(c.Meaning, ",") {
			k := strings.ToLower(strings.TrimSpace(part))
			if k == "" {
				continue
			}
			if _, ok := m[k]; !ok {
				m[k] = n
			}
			n++
		}
		for _, part := range strings.Split(c.Additional, ",") {
			k := strings.ToLower(strings.TrimSpace(part))
			if k == "" {
				continue
			}
			if _, ok := m[k]; !ok {
				m[k] = n
			}
			n++
		}
		d.meanings[i] = m
	}
	return d
}

func (d *Deck) Cards() []card.Card { return d.cards }

func (d *Deck) Len() int { return len(d.cards) }

// Get returns the card for a dictionary sequence, nil when absent.
func (d *Deck) Get(seq jmdict.Seq) *card.Card { return d.bySeq[seq] }

// hasMeaning reports whether card i lists qry as one of its definitions
// and at which position, earlier positions being better matches.
func (d *Deck) hasMeaning(i int, qry string) (bool, int) {
	n, ok := d.meanings[i][qry]
	return ok, n
}
