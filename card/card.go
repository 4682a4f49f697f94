// Package card turns dictionary entries into study-ready flashcard
// records: per-entry normalization (reading annotation, definition
// trimming, tag assembly) and a batch near-duplicate resolution pass.
package card

import (
	"strings"
	"unicode/utf8"

	"github.com/jwaller/fuda/furigana"
	"github.com/jwaller/fuda/jmdict"
	"github.com/jwaller/fuda/vocab"
)

// additionalBudget caps the combined length of the additional
// definitions shown on a card.
const additionalBudget = 200

const (
	TagUsuallyKana = "usually_kana"
	TagRare        = "rare_term"
)

// formalityTags are the misc markers mapped to formality tags, in the
// dictionary's own abbreviations.
var formalityTags = []string{"hon", "pol", "hum"}

// WordEntry is the pre-normalization view of one graded vocabulary word:
// the dictionary fields of its entry plus its proficiency grading.
type WordEntry struct {
	Seq       jmdict.Seq
	Kanji     string // "" for kana-only words
	Kana      string // never empty for a valid entry
	Level     vocab.Level
	Primary   jmdict.Sense
	Secondary []jmdict.Sense
}

// FromWord builds the WordEntry for a dictionary entry at a given level.
func FromWord(w *jmdict.Word, level vocab.Level) WordEntry {
	return WordEntry{
		Seq:       w.Seq,
		Kanji:     w.KanjiText(),
		Kana:      w.KanaText(),
		Level:     level,
		Primary:   w.PrimarySense(),
		Secondary: w.SecondarySenses(),
	}
}

// UsuallyKana reports whether the entry is conventionally written
// without kanji even though a kanji form exists.
func (e WordEntry) UsuallyKana() bool { return e.Primary.HasMisc("uk") }

// Card is the normalized, study-ready record. It is immutable once
// built; Resolve decides which cards to keep but never edits them.
type Card struct {
	Seq        jmdict.Seq
	Level      vocab.Level
	Expression string
	Meaning    string
	Reading    string
	Grammar    string
	Additional string
	Tags       []string

	// raw renderings kept for duplicate resolution and audio matching
	Kanji string
	Kana  string

	// filled by the audio merge, "" when no pronunciation file exists
	Audio string
}

func (c Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// filterAdditional picks the secondary definitions worth showing next to
// the primary ones. A sense is skipped wholesale when marked archaic or
// as a place name, or when its part of speech differs from the primary
// sense. Surviving glosses are deduplicated case-insensitively against
// the primary definitions and each other, then cut off once their
// combined length exceeds the budget: the overflowing gloss and
// everything after it are dropped.
func filterAdditional(secondary []jmdict.Sense, primary jmdict.Sense) []string {
	first := make(map[string]struct{}, len(primary.Gloss))
	for _, g := range primary.Gloss {
		first[strings.ToLower(g)] = struct{}{}
	}

	var defs []string
	seen := make(map[string]struct{})
	for _, s := range secondary {
		if s.HasMisc("arch") || s.HasMisc("place") {
			continue
		}
		if !s.SamePartOfSpeech(primary) {
			continue
		}
		for _, g := range s.Gloss {
			low := strings.ToLower(g)
			if _, ok := first[low]; ok {
				continue
			}
			if _, ok := seen[low]; ok {
				continue
			}
			seen[low] = struct{}{}
			defs = append(defs, g)
		}
	}

	letters := 0
	for i, d := range defs {
		letters += utf8.RuneCountInString(d)
		if letters > additionalBudget {
			defs = defs[:i]
			break
		}
	}

	return defs
}

// Normalize builds the Card for one WordEntry. It is pure: the same
// entry and tag mapping always produce an identical card.
//
// The reading is the kana rendering verbatim for usually-kana words and
// the furigana alignment otherwise; an unalignable pair yields an empty
// reading, which is passed through for the caller to treat as a data
// quality warning. An entry without any kana rendering is corrupt input
// and returns furigana.ErrNoReading.
func Normalize(entry WordEntry, tags jmdict.TagMap) (Card, error) {
	var reading string
	if entry.UsuallyKana() {
		if entry.Kana == "" {
			return Card{}, furigana.ErrNoReading
		}
		reading = entry.Kana
	} else {
		var err error
		reading, err = furigana.Align(entry.Kanji, entry.Kana)
		if err != nil {
			return Card{}, err
		}
	}

	expression := entry.Kanji
	if expression == "" {
		expression = entry.Kana
	}

	var cardTags []string
	for _, m := range entry.Primary.Misc {
		for _, f := range formalityTags {
			if m == f {
				cardTags = append(cardTags, tags.Expand(m))
			}
		}
	}
	if entry.UsuallyKana() {
		cardTags = append(cardTags, TagUsuallyKana)
	}
	if entry.Primary.HasMisc("rare") {
		cardTags = append(cardTags, TagRare)
	}

	return Card{
		Seq:        entry.Seq,
		Level:      entry.Level,
		Expression: expression,
		Meaning:    strings.Join(entry.Primary.Gloss, ", "),
		Reading:    reading,
		Grammar:    strings.Join(tags.ExpandAll(entry.Primary.PartOfSpeech), ", "),
		Additional: strings.Join(filterAdditional(entry.Secondary, entry.Primary), ", "),
		Tags:       cardTags,
		Kanji:      entry.Kanji,
		Kana:       entry.Kana,
	}, nil
}
