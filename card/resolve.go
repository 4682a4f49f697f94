package card

import (
	"fmt"
	"sort"
)

// Resolve drops near-duplicate cards. Two dictionary entries can denote
// what a learner sees as the same word: one with a kanji form that is
// nonetheless usually written in kana, one with no kanji form at all.
// Both render identically on a card, so within each group of cards
// sharing a reading, every such pair keeps only the easier-tier card
// (equal tiers keep the earlier one). Kanji/kanji pairs with a shared
// reading are left alone: those are distinct enough homonyms.
//
// Cards are returned in their original relative order. A card with an
// unknown level is a data error and fails the whole batch.
func Resolve(cards []Card) ([]Card, error) {
	for _, c := range cards {
		if !c.Level.Known() {
			return nil, fmt.Errorf("card: %d (%s): unknown level %d", c.Seq, c.Expression, c.Level)
		}
	}

	groups := make(map[string][]int)
	for i, c := range cards {
		groups[c.Reading] = append(groups[c.Reading], i)
	}

	drop := make(map[int]struct{})
	for _, ixs := range groups {
		if len(ixs) < 2 {
			continue
		}

		for _, i1 := range ixs {
			if cards[i1].Kanji == "" || !cards[i1].HasTag(TagUsuallyKana) {
				continue
			}
			for _, i2 := range ixs {
				if cards[i2].Kanji != "" {
					continue
				}

				switch l1, l2 := cards[i1].Level, cards[i2].Level; {
				case l2.Easier(l1):
					drop[i1] = struct{}{}
				case l1.Easier(l2):
					drop[i2] = struct{}{}
				default:
					if i1 > i2 {
						drop[i1] = struct{}{}
					} else {
						drop[i2] = struct{}{}
					}
				}
			}
		}
	}

	if len(drop) == 0 {
		return cards, nil
	}

	out := make([]Card, 0, len(cards)-len(drop))
	for i, c := range cards {
		if _, ok := drop[i]; ok {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Shuffle orders cards deterministically within each level while keeping
// the level blocks in list order, so regenerated decks do not reshuffle
// on every run.
func Shuffle(cards []Card, seed int64) []Card {
	byLevel := make(map[uint8][]Card)
	var levels []uint8
	for _, c := range cards {
		l := uint8(c.Level)
		if _, ok := byLevel[l]; !ok {
			levels = append(levels, l)
		}
		byLevel[l] = append(byLevel[l], c)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	out := make([]Card, 0, len(cards))
	for _, l := range levels {
		group := byLevel[l]
		rnd := newRand(seed + int64(l))
		for i := len(group) - 1; i > 0; i-- {
			j := rnd.intn(i + 1)
			group[i], group[j] = group[j], group[i]
		}
		out = append(out, group...)
	}
	return out
}

// newRand is a tiny deterministic source so shuffles stay stable across
// Go releases, unlike math/rand's unspecified stream.
type lcg struct{ state uint64 }

func newRand(seed int64) *lcg {
	return &lcg{state: uint64(seed)*6364136223846793005 + 1442695040888963407}
}

func (r *lcg) intn(n int) int {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return int((r.state >> 33) % uint64(n))
}
