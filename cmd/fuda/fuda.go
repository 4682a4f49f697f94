package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwaller/fuda/common"
	"github.com/jwaller/fuda/config"
	"github.com/jwaller/fuda/deck"
)

func exit(err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	var maxResults uint
	var queryMode bool
	var withAudio bool
	var dryRun bool
	var seed int64
	flag.UintVar(&maxResults, "n", 3, "max amount of results in query mode")
	flag.BoolVar(&queryMode, "q", false, "query the generated deck instead of generating")
	flag.BoolVar(&withAudio, "audio", false, "also build the extended deck with pronunciations")
	flag.BoolVar(&dryRun, "dry-run", false, "run the pipeline without writing anything")
	flag.Int64Var(&seed, "seed", 42, "shuffle seed")
	flag.Parse()

	cfg, err := config.Load()
	exit(err)
	log := cfg.Logger()

	if queryMode {
		query := strings.TrimSpace(strings.Join(flag.Args(), " "))
		if query == "" {
			exit(errors.New("please provide a query"))
		}
		exit(runQuery(cfg, query, int(maxResults)))
		return
	}

	exit(generate(cfg, log, withAudio, dryRun, seed))
}

func runQuery(cfg *config.Config, query string, max int) error {
	d, err := common.GetDeck(filepath.Join(cfg.Data.CacheDir, "cards.gob"))
	if err != nil {
		return fmt.Errorf("no generated deck to query, run a generation first: %w", err)
	}

	res, japanese := d.Search(query, max)
	fuzzy := false
	if len(res) == 0 {
		fuzzy = true
		if japanese {
			res = d.SearchJapaneseFuzzy(query, max)
		} else {
			res = d.SearchMeaningFuzzy(query, max)
		}
	}

	tpl, err := common.GetTpl()
	if err != nil {
		return err
	}
	if err := tpl.Execute(os.Stdout, res); err != nil {
		return err
	}

	if fuzzy && japanese && len(res) != 0 {
		edits := deck.LevenshteinEdits([]rune(query), []rune(res[0].Kana))
		if edits.HasEdits() {
			fmt.Printf("close match: %s\n", edits.DiffString())
		}
	}

	return nil
}
