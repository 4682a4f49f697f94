package jmdict

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDump = `{
	"version": "3.6.1",
	"languages": ["eng"],
	"tags": {"n": "noun (common)", "uk": "word usually written using kana alone", "hon": "honorific"},
	"words": [
		{
			"id": "1000225",
			"kanji": [{"common": true, "text": "取り引き", "tags": []}],
			"kana": [{"common": true, "text": "とりひき", "tags": []}],
			"sense": [
				{
					"partOfSpeech": ["n"],
					"misc": [],
					"info": [],
					"gloss": [{"lang": "eng", "text": "transactions"}, {"lang": "eng", "text": "dealings"}]
				},
				{
					"partOfSpeech": ["n"],
					"misc": [],
					"info": [],
					"gloss": [{"lang": "eng", "text": "trade"}]
				}
			]
		},
		{
			"id": "1000320",
			"kanji": [],
			"kana": [{"common": true, "text": "ああ", "tags": []}],
			"sense": [
				{
					"partOfSpeech": ["adv"],
					"misc": ["uk"],
					"info": [],
					"gloss": [{"lang": "eng", "text": "like that"}]
				}
			]
		}
	]
}`

func TestDecode(t *testing.T) {
	words, tags, err := Decode(strings.NewReader(testDump))
	if err != nil {
		t.Fatal(err)
	}

	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}

	w := words[1000225]
	if w == nil {
		t.Fatal("missing entry 1000225")
	}
	if w.KanjiText() != "取り引き" || w.KanaText() != "とりひき" {
		t.Errorf("wrong renderings: %q %q", w.KanjiText(), w.KanaText())
	}
	if got := w.PrimarySense().Gloss; len(got) != 2 || got[0] != "transactions" {
		t.Errorf("wrong primary glosses: %v", got)
	}
	if got := w.SecondarySenses(); len(got) != 1 || got[0].Gloss[0] != "trade" {
		t.Errorf("wrong secondary senses: %v", got)
	}

	kanaOnly := words[1000320]
	if kanaOnly.KanjiText() != "" {
		t.Errorf("expected kana-only entry, got kanji %q", kanaOnly.KanjiText())
	}
	if !kanaOnly.PrimarySense().HasMisc("uk") {
		t.Error("uk misc tag lost")
	}

	// dump explanations survive, overrides win
	if tags.Expand("uk") != "word usually written using kana alone" {
		t.Errorf("tag expansion broken: %q", tags.Expand("uk"))
	}
	if tags.Expand("n") != "noun" {
		t.Errorf("n override not applied: %q", tags.Expand("n"))
	}
	if tags.Expand("hon") != "honorific/尊敬語" {
		t.Errorf("hon override not applied: %q", tags.Expand("hon"))
	}
	if tags.Expand("unknown-tag") != "unknown-tag" {
		t.Error("unknown tags should expand to themselves")
	}
}

func TestDecodeDuplicate(t *testing.T) {
	dump := `{"words": [
		{"id": "1", "kanji": [], "kana": [], "sense": []},
		{"id": "1", "kanji": [], "kana": [], "sense": []}
	]}`
	if _, _, err := Decode(strings.NewReader(dump)); err == nil {
		t.Fatal("expected duplicate entry error")
	}
}

func TestLoadZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "jmdict-eng-test.zip")

	buf := bytes.NewBuffer(nil)
	zw := zip.NewWriter(buf)
	f, err := zw.Create("jmdict-eng-test.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(testDump)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(zipPath, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	words, _, err := LoadZip(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}

	// the extracted json is kept next to the zip and reused
	if _, err := os.Stat(filepath.Join(dir, "jmdict-eng-test.json")); err != nil {
		t.Error("extracted json missing")
	}
	if _, _, err := LoadZip(zipPath); err != nil {
		t.Fatal(err)
	}
}

func TestGOBRoundtrip(t *testing.T) {
	words, tags, err := Decode(strings.NewReader(testDump))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "jmdict.gob")
	if err := StoreGOB(path, DB{Words: words, Tags: tags}); err != nil {
		t.Fatal(err)
	}

	db, err := LoadGOB(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(db.Words) != len(words) {
		t.Fatalf("expected %d words, got %d", len(words), len(db.Words))
	}
	if db.Words[1000225].KanaText() != "とりひき" {
		t.Error("word data lost in roundtrip")
	}
	if db.Tags.Expand("n") != "noun" {
		t.Error("tag data lost in roundtrip")
	}
}
