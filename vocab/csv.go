package vocab

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jwaller/fuda/jmdict"
)

// listFiles is the load order: easiest first, so Clean keeps the easiest
// grading of a duplicated word.
var listFiles = []Level{N5, N4, N3, N2, N1, Common}

// DecodeList reads one graded csv (jmdict_seq,kana,kanji,definition
// columns, by header) and tags every row with level.
func DecodeList(r io.Reader, level Level) (Entries, error) {
	c := csv.NewReader(r)
	c.FieldsPerRecord = -1

	header, err := c.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(strings.ToLower(h))] = i
	}
	if _, ok := col["jmdict_seq"]; !ok {
		return nil, fmt.Errorf("vocab: %s list has no jmdict_seq column", level)
	}

	field := func(row []string, name string) string {
		ix, ok := col[name]
		if !ok || ix >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[ix])
	}

	entries := make(Entries, 0, 700)
	n := 1
	for {
		row, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		n++

		e := Entry{
			Kana:       field(row, "kana"),
			Kanji:      field(row, "kanji"),
			Definition: field(row, "waller_definition"),
			Level:      level,
		}

		// missing sequences happen in the hand-maintained lists; the row
		// is kept with Seq 0 and dropped by Clean
		if raw := field(row, "jmdict_seq"); raw != "" {
			// lists that went through a spreadsheet save sequences as floats
			seq, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("vocab: %s list line %d: jmdict_seq %q: %w", level, n, raw, err)
			}
			e.Seq = jmdict.Seq(seq)
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// LoadDir reads n5.csv..n1.csv and an optional common.csv from dir,
// easiest level first. At least one list must exist.
func LoadDir(dir string) (Entries, error) {
	var all Entries
	found := 0
	for _, level := range listFiles {
		path := filepath.Join(dir, strings.ToLower(level.String())+".csv")
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}

		entries, err := DecodeList(f, level)
		f.Close()
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
		found++
	}

	if found == 0 {
		return nil, fmt.Errorf("vocab: no list files in %s", dir)
	}
	return all, nil
}
