package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// fieldSep separates note fields inside the flds column.
const fieldSep = "\x1f"

const collectionSchema = `
CREATE TABLE col (
	id     integer primary key,
	crt    integer not null,
	mod    integer not null,
	scm    integer not null,
	ver    integer not null,
	dty    integer not null,
	usn    integer not null,
	ls     integer not null,
	conf   text not null,
	models text not null,
	decks  text not null,
	dconf  text not null,
	tags   text not null
);
CREATE TABLE notes (
	id    integer primary key,
	guid  text not null,
	mid   integer not null,
	mod   integer not null,
	usn   integer not null,
	tags  text not null,
	flds  text not null,
	sfld  integer not null,
	csum  integer not null,
	flags integer not null,
	data  text not null
);
CREATE TABLE cards (
	id     integer primary key,
	nid    integer not null,
	did    integer not null,
	ord    integer not null,
	mod    integer not null,
	usn    integer not null,
	type   integer not null,
	queue  integer not null,
	due    integer not null,
	ivl    integer not null,
	factor integer not null,
	reps   integer not null,
	lapses integer not null,
	left   integer not null,
	odue   integer not null,
	odid   integer not null,
	flags  integer not null,
	data   text not null
);
CREATE TABLE revlog (
	id      integer primary key,
	cid     integer not null,
	usn     integer not null,
	ease    integer not null,
	ivl     integer not null,
	lastIvl integer not null,
	factor  integer not null,
	time    integer not null,
	type    integer not null
);
CREATE TABLE graves (
	usn  integer not null,
	oid  integer not null,
	type integer not null
);
CREATE INDEX ix_notes_usn on notes (usn);
CREATE INDEX ix_cards_usn on cards (usn);
CREATE INDEX ix_revlog_usn on revlog (usn);
CREATE INDEX ix_cards_nid on cards (nid);
CREATE INDEX ix_cards_sched on cards (did, queue, due);
CREATE INDEX ix_revlog_cid on revlog (cid);
CREATE INDEX ix_notes_csum on notes (csum);
`

func (m *Model) json(now int64) map[string]interface{} {
	flds := make([]map[string]interface{}, len(m.Fields))
	for i, f := range m.Fields {
		flds[i] = map[string]interface{}{
			"name":   f,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Liberation Sans",
			"size":   20,
			"media":  []string{},
		}
	}

	tmpls := make([]map[string]interface{}, len(m.Templates))
	req := make([][]interface{}, len(m.Templates))
	for i, t := range m.Templates {
		tmpls[i] = map[string]interface{}{
			"name":  t.Name,
			"ord":   i,
			"qfmt":  t.Qfmt,
			"afmt":  t.Afmt,
			"bqfmt": "",
			"bafmt": "",
			"did":   nil,
		}

		// a card is generated when any field its question side uses is
		// non-empty
		used := make([]int, 0, len(m.Fields))
		for j, f := range m.Fields {
			if strings.Contains(t.Qfmt, "{{"+f+"}}") {
				used = append(used, j)
			}
		}
		req[i] = []interface{}{i, "any", used}
	}

	return map[string]interface{}{
		"id":        m.ID,
		"name":      m.Name,
		"type":      0,
		"mod":       now,
		"usn":       -1,
		"sortf":     0,
		"did":       1,
		"tmpls":     tmpls,
		"flds":      flds,
		"css":       m.CSS,
		"latexPre":  "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n",
		"latexPost": "\\end{document}",
		"tags":      []string{},
		"vers":      []string{},
		"req":       req,
	}
}

func (d *deck) json(now int64) map[string]interface{} {
	return map[string]interface{}{
		"id":               d.id,
		"name":             d.name,
		"desc":             "",
		"dyn":              0,
		"collapsed":        false,
		"conf":             1,
		"usn":              -1,
		"mod":              now,
		"extendNew":        0,
		"extendRev":        0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
	}
}

func defaultDeckJSON(now int64) map[string]interface{} {
	d := &deck{id: 1, name: "Default"}
	return d.json(now)
}

func confJSON(curModel int64) map[string]interface{} {
	return map[string]interface{}{
		"activeDecks":   []int{1},
		"addToCur":      true,
		"collapseTime":  1200,
		"curDeck":       1,
		"curModel":      strconv.FormatInt(curModel, 10),
		"dueCounts":     true,
		"estTimes":      true,
		"newBury":       true,
		"newSpread":     0,
		"nextPos":       1,
		"sortBackwards": false,
		"sortType":      "noteFld",
		"timeLim":       0,
	}
}

func dconfJSON(now int64) map[string]interface{} {
	return map[string]interface{}{
		"1": map[string]interface{}{
			"id":       1,
			"name":     "Default",
			"autoplay": true,
			"dyn":      false,
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"leechAction": 0,
				"leechFails":  8,
				"minInt":      1,
				"mult":        0,
			},
			"maxTaken": 60,
			"mod":      now,
			"new": map[string]interface{}{
				"bury":          true,
				"delays":        []int{1, 10},
				"initialFactor": 2500,
				"ints":          []int{1, 4, 7},
				"order":         1,
				"perDay":        20,
				"separate":      true,
			},
			"replayq": true,
			"rev": map[string]interface{}{
				"bury":     true,
				"ease4":    1.3,
				"fuzz":     0.05,
				"ivlFct":   1,
				"maxIvl":   36500,
				"minSpace": 1,
				"perDay":   100,
			},
			"timer": 0,
			"usn":   -1,
		},
	}
}

// fieldChecksum is the first 8 hex digits of the sha1 of the sort field,
// as an integer; the desktop app uses it for duplicate detection.
func fieldChecksum(sfld string) int64 {
	sum := sha1.Sum([]byte(sfld))
	n, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return n
}

func (p *Package) writeCollection(db *sql.DB) error {
	if _, err := db.Exec(collectionSchema); err != nil {
		return err
	}

	now := time.Now().Unix()
	nowMs := now * 1000

	models, err := json.Marshal(map[string]interface{}{
		strconv.FormatInt(p.model.ID, 10): p.model.json(now),
	})
	if err != nil {
		return err
	}

	deckMap := map[string]interface{}{"1": defaultDeckJSON(now)}
	for _, d := range p.decks {
		deckMap[strconv.FormatInt(d.id, 10)] = d.json(now)
	}
	decks, err := json.Marshal(deckMap)
	if err != nil {
		return err
	}

	conf, err := json.Marshal(confJSON(p.model.ID))
	if err != nil {
		return err
	}
	dconf, err := json.Marshal(dconfJSON(now))
	if err != nil {
		return err
	}

	_, err = db.Exec(
		`INSERT INTO col
		 (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now, nowMs, nowMs,
		string(conf), string(models), string(decks), string(dconf),
	)
	if err != nil {
		return err
	}

	noteStmt, err := db.Prepare(
		`INSERT INTO notes
		 (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		 VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')`,
	)
	if err != nil {
		return err
	}
	defer noteStmt.Close()

	cardStmt, err := db.Prepare(
		`INSERT INTO cards
		 (id, nid, did, ord, mod, usn, type, queue, due,
		  ivl, factor, reps, lapses, left, odue, odid, flags, data)
		 VALUES (?, ?, ?, ?, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
	)
	if err != nil {
		return err
	}
	defer cardStmt.Close()

	noteID := nowMs
	cardID := nowMs
	for _, d := range p.decks {
		for _, n := range d.notes {
			noteID++
			flds := strings.Join(n.fields, fieldSep)
			sfld := n.fields[0]
			_, err := noteStmt.Exec(
				noteID, n.guid, p.model.ID, now,
				joinTags(n.tags), flds, sfld, fieldChecksum(sfld),
			)
			if err != nil {
				return err
			}

			for ord := range p.model.Templates {
				cardID++
				if _, err := cardStmt.Exec(cardID, noteID, d.id, ord, now, n.due); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// WriteFile writes the package as an .apkg: a zip holding the sqlite
// collection, the media name map and the numbered media files.
func (p *Package) WriteFile(path string) error {
	tmpDir, err := os.MkdirTemp(filepath.Dir(path), "apkg")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	colPath := filepath.Join(tmpDir, "collection.anki2")
	db, err := sql.Open("sqlite3", colPath)
	if err != nil {
		return err
	}
	if err := p.writeCollection(db); err != nil {
		db.Close()
		return err
	}
	if err := db.Close(); err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.%d.tmp", path, time.Now().UnixNano())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := p.writeZip(f, colPath); err != nil {
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

func (p *Package) writeZip(w io.Writer, colPath string) error {
	z := zip.NewWriter(w)

	col, err := os.Open(colPath)
	if err != nil {
		return err
	}
	zf, err := z.Create("collection.anki2")
	if err != nil {
		col.Close()
		return err
	}
	if _, err := io.Copy(zf, col); err != nil {
		col.Close()
		return err
	}
	col.Close()

	mediaMap := make(map[string]string, len(p.media))
	for i, m := range p.media {
		name := strconv.Itoa(i)
		mediaMap[name] = filepath.Base(m)

		src, err := os.Open(m)
		if err != nil {
			return err
		}
		zf, err := z.Create(name)
		if err != nil {
			src.Close()
			return err
		}
		if _, err := io.Copy(zf, src); err != nil {
			src.Close()
			return err
		}
		src.Close()
	}

	zf, err = z.Create("media")
	if err != nil {
		return err
	}
	if err := json.NewEncoder(zf).Encode(mediaMap); err != nil {
		return err
	}

	return z.Close()
}
