// Package anki assembles flashcards into an Anki .apkg: a nested deck
// tree (the root vocabulary deck containing JLPT N1 down to N5), one of
// two note models (core, or extended with a pronunciation field) and the
// collection database the desktop app imports.
package anki

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jwaller/fuda/card"
	"github.com/jwaller/fuda/data"
	"github.com/jwaller/fuda/jmdict"
	"github.com/jwaller/fuda/vocab"
)

const (
	coreModelID     = 2125329068
	extendedModelID = 1291263575

	coreName     = "Core Japanese Vocabulary"
	extendedName = "Core Japanese Vocabulary Extended"

	// deck ids are stable so re-imports update instead of duplicating
	baseDeckID = 1620000000000
)

// guidSpace namespaces the note guids; a note's guid is derived from its
// dictionary sequence so regenerating a deck keeps scheduling intact.
var guidSpace = uuid.MustParse("8f0fd4c6-2a3b-4b76-a2d1-63a3f0d55c11")

func noteGUID(seq jmdict.Seq) string {
	return uuid.NewSHA1(guidSpace, []byte(fmt.Sprintf("%d", seq))).String()
}

type Template struct {
	Name string
	Qfmt string
	Afmt string
}

type Model struct {
	ID        int64
	Name      string
	Fields    []string
	Templates []Template
	CSS       string
}

func CoreModel() *Model {
	return &Model{
		ID:     coreModelID,
		Name:   coreName,
		Fields: []string{"Expression", "English definition", "Reading", "Grammar", "Additional definitions"},
		Templates: []Template{
			{"Recognition", data.CardRecognitionFront, data.CardRecognitionBack},
			{"Recall", data.CardRecallFront, data.CardRecallBack},
		},
		CSS: data.CardCSS,
	}
}

func ExtendedModel() *Model {
	return &Model{
		ID:     extendedModelID,
		Name:   extendedName,
		Fields: []string{"Expression", "English definition", "Reading", "Grammar", "Additional definitions", "Sound"},
		Templates: []Template{
			{"Recognition", data.CardRecognitionFront, data.CardRecognitionBackSound},
			{"Recall", data.CardRecallFront, data.CardRecallBackSound},
		},
		CSS: data.CardCSS,
	}
}

type note struct {
	guid   string
	fields []string
	tags   []string
	due    int
}

type deck struct {
	id    int64
	name  string
	notes []note
}

// Package is an .apkg under construction.
type Package struct {
	model *Model
	decks []*deck
	seen  map[string]struct{}

	extended bool
	media    []string
}

// NewPackage starts an empty package. The extended variant carries a
// sound field and bundles the pronunciation files as media.
func NewPackage(extended bool) *Package {
	model := CoreModel()
	if extended {
		model = ExtendedModel()
	}

	p := &Package{
		model:    model,
		seen:     make(map[string]struct{}),
		extended: extended,
	}

	layers := []string{model.Name, "JLPT N1", "JLPT N2", "JLPT N3", "JLPT N4", "JLPT N5"}
	name := ""
	for i, l := range layers {
		if i == 0 {
			name = l
		} else {
			name += "::" + l
		}
		p.decks = append(p.decks, &deck{
			id:   baseDeckID + int64(i),
			name: name,
		})
	}

	return p
}

func (p *Package) Name() string { return p.model.Name }

// deckFor picks the deck a level's words belong in: the graded tiers go
// in their own subdeck, everything else in the root deck.
func (p *Package) deckFor(level vocab.Level) *deck {
	switch level {
	case vocab.N1:
		return p.decks[1]
	case vocab.N2:
		return p.decks[2]
	case vocab.N3:
		return p.decks[3]
	case vocab.N4:
		return p.decks[4]
	case vocab.N5:
		return p.decks[5]
	}
	return p.decks[0]
}

// Add appends a card as a note in its level's deck. A card whose
// expression was already added is silently skipped, and the note's due
// position follows insertion order within its deck.
func (p *Package) Add(c card.Card) {
	if _, ok := p.seen[c.Expression]; ok {
		return
	}
	p.seen[c.Expression] = struct{}{}

	d := p.deckFor(c.Level)
	n := note{
		guid: noteGUID(c.Seq),
		fields: []string{
			c.Expression,
			c.Meaning,
			c.Reading,
			c.Grammar,
			c.Additional,
		},
		tags: c.Tags,
		due:  len(d.notes),
	}

	if p.extended {
		sound := ""
		if c.Audio != "" {
			sound = fmt.Sprintf("[sound:%s]", filepath.Base(c.Audio))
			p.media = append(p.media, c.Audio)
		}
		n.fields = append(n.fields, sound)
	}

	d.notes = append(d.notes, n)
}

// Len returns the total note count across all decks.
func (p *Package) Len() int {
	n := 0
	for _, d := range p.decks {
		n += len(d.notes)
	}
	return n
}

// DeckSizes maps every deck name to its note count.
func (p *Package) DeckSizes() map[string]int {
	m := make(map[string]int, len(p.decks))
	for _, d := range p.decks {
		m[d.name] = len(d.notes)
	}
	return m
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ReplaceAll(strings.TrimSpace(t), " ", "_")
		if t != "" {
			clean = append(clean, t)
		}
	}
	return " " + strings.Join(clean, " ") + " "
}
