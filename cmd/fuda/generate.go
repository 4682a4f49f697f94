package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwaller/fuda/anki"
	"github.com/jwaller/fuda/audio"
	"github.com/jwaller/fuda/card"
	"github.com/jwaller/fuda/config"
	"github.com/jwaller/fuda/deck"
	"github.com/jwaller/fuda/jmdict"
	"github.com/jwaller/fuda/vocab"
)

// loadDict reads the dictionary, preferring the gob cache over
// re-parsing the json dump.
func loadDict(cfg *config.Config, log *slog.Logger) (jmdict.DB, error) {
	cache := filepath.Join(cfg.Data.CacheDir, "jmdict.gob")
	db, err := jmdict.LoadGOB(cache)
	if err == nil {
		log.Debug("dictionary loaded from cache", "path", cache, "words", len(db.Words))
		return db, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return db, err
	}

	log.Info("parsing dictionary", "path", cfg.Data.Dict)
	words, tags, err := jmdict.LoadZip(cfg.Data.Dict)
	if err != nil {
		return db, err
	}
	db = jmdict.DB{Words: words, Tags: tags}

	if err := os.MkdirAll(cfg.Data.CacheDir, 0700); err != nil {
		return db, err
	}
	if err := jmdict.StoreGOB(cache, db); err != nil {
		return db, err
	}

	return db, nil
}

func generate(cfg *config.Config, log *slog.Logger, withAudio, dryRun bool, seed int64) error {
	// extract
	entries, err := vocab.LoadDir(cfg.Data.Dir)
	if err != nil {
		return err
	}
	entries = entries.Clean()
	log.Info("vocabulary lists loaded", "words", len(entries))

	db, err := loadDict(cfg, log)
	if err != nil {
		return err
	}

	// transform
	cards := make([]card.Card, 0, len(entries))
	for _, e := range entries {
		w, ok := db.Words[e.Seq]
		if !ok {
			log.Warn("word not in dictionary", "seq", e.Seq, "kana", e.Kana)
			continue
		}

		c, err := card.Normalize(card.FromWord(w, e.Level), db.Tags)
		if err != nil {
			log.Warn("unusable dictionary entry", "seq", e.Seq, "err", err)
			continue
		}
		if c.Reading == "" && c.Kanji != "" {
			log.Warn("reading could not be annotated", "seq", e.Seq, "expression", c.Expression)
		}
		cards = append(cards, c)
	}

	cards, err = card.Resolve(cards)
	if err != nil {
		return err
	}
	cards = card.Shuffle(cards, seed)
	log.Info("cards built", "cards", len(cards))

	if withAudio {
		cl := &audio.Client{
			TokenPath: cfg.Audio.TokenPath,
			CachePath: cfg.Audio.CachePath,
			Dir:       cfg.Audio.Dir,
			Delay:     cfg.Audio.Delay,
			Log:       log,
		}
		if err := cl.Fill(context.Background(), cards); err != nil {
			return err
		}
		n := 0
		for i := range cards {
			if cards[i].Audio != "" {
				n++
			}
		}
		log.Info("pronunciations merged", "with_audio", n)
	}

	if dryRun {
		log.Info("dry run, skipping writes")
		return nil
	}

	// load
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return err
	}

	if err := writeCSV(filepath.Join(cfg.Output.Dir, "full.csv"), cards); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Data.CacheDir, 0700); err != nil {
		return err
	}
	if err := deck.StoreGOB(filepath.Join(cfg.Data.CacheDir, "cards.gob"), cards); err != nil {
		return err
	}

	pkgs := []*anki.Package{anki.NewPackage(false)}
	if withAudio {
		pkgs = append(pkgs, anki.NewPackage(true))
	}
	for _, p := range pkgs {
		for _, c := range cards {
			p.Add(c)
		}
		out := filepath.Join(cfg.Output.Dir, p.Name()+".apkg")
		if err := p.WriteFile(out); err != nil {
			return err
		}
		log.Info("deck written", "path", out, "notes", p.Len())
	}

	return nil
}

func writeCSV(path string, cards []card.Card) error {
	tmp := fmt.Sprintf("%s.tmp", path)
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	rows := [][]string{{
		"jlpt_level", "expression", "english_definition", "reading",
		"grammar", "additional", "tags", "audio",
	}}
	for _, c := range cards {
		rows = append(rows, []string{
			c.Level.String(),
			c.Expression,
			c.Meaning,
			c.Reading,
			c.Grammar,
			c.Additional,
			strings.Join(c.Tags, " "),
			c.Audio,
		})
	}

	if err := w.WriteAll(rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
