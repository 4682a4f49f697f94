// Command dictgob converts the dictionary json dump (optionally zipped)
// into the gob cache the generator loads.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwaller/fuda/jmdict"
)

func main() {
	var out string
	flag.StringVar(&out, "o", filepath.Join(".cache", "jmdict.gob"), "output file")
	flag.Parse()

	in := flag.Arg(0)
	if in == "" {
		fmt.Fprintln(os.Stderr, "usage: dictgob [-o out.gob] <jmdict json or zip>")
		os.Exit(1)
	}

	load := jmdict.Load
	if strings.HasSuffix(in, ".zip") {
		load = jmdict.LoadZip
	}

	words, tags, err := load(in)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0700); err != nil {
		panic(err)
	}
	if err := jmdict.StoreGOB(out, jmdict.DB{Words: words, Tags: tags}); err != nil {
		panic(err)
	}

	fmt.Printf("%s: %d words, %d tags\n", out, len(words), len(tags))
}
