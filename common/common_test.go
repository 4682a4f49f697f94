package common

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwaller/fuda/card"
	"github.com/jwaller/fuda/deck"
	"github.com/jwaller/fuda/vocab"
)

var testCards = []*card.Card{
	{
		Seq:        1000225,
		Level:      vocab.N5,
		Expression: "取り引き",
		Meaning:    "transactions, dealings",
		Reading:    "取[と]り 引[ひ]き",
		Grammar:    "noun",
		Kanji:      "取り引き",
		Kana:       "とりひき",
	},
	{
		Seq:        1000320,
		Level:      vocab.N3,
		Expression: "ああ",
		Meaning:    "like that, that way",
		Reading:    "ああ",
		Grammar:    "adverb",
		Kana:       "ああ",
		Tags:       []string{"usually_kana"},
	},
}

func TestTpl(t *testing.T) {
	tpl, err := GetTpl()
	if err != nil {
		t.Fatal(err)
	}

	buf := bytes.NewBuffer(nil)
	if err := tpl.Execute(buf, testCards); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"取り引き", "[と]", "transactions", "N5", "ああ", "usually_kana"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// the kana-only word repeats its expression, no reading shown
	if strings.Contains(out, "ああ  ああ") {
		t.Errorf("redundant reading rendered for kana-only word:\n%s", out)
	}
}

func TestGetDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.gob")
	cards := make([]card.Card, 0, len(testCards))
	for _, c := range testCards {
		cards = append(cards, *c)
	}
	if err := deck.StoreGOB(path, cards); err != nil {
		t.Fatal(err)
	}

	d, err := GetDeck(path)
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != len(cards) {
		t.Errorf("expected %d cards, got %d", len(cards), d.Len())
	}

	d2, err := GetDeck(path)
	if err != nil {
		t.Fatal(err)
	}
	if d != d2 {
		t.Error("deck not memoized")
	}
}
