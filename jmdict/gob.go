package jmdict

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"time"
)

// DB bundles what a generated deck needs from the dictionary so a single
// gob cache can replace re-parsing the json dump.
type DB struct {
	Words Words
	Tags  TagMap
}

func init() {
	gob.Register(DB{})
}

func EncodeGOB(w io.Writer, db DB) error {
	return gob.NewEncoder(w).Encode(db)
}

func DecodeGOB(r io.Reader) (DB, error) {
	db := DB{}
	return db, gob.NewDecoder(r).Decode(&db)
}

func StoreGOB(file string, db DB) error {
	tmp := fmt.Sprintf("%s.%d.tmp", file, time.Now().UnixNano())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := EncodeGOB(f, db); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	f.Close()
	return os.Rename(tmp, file)
}

func LoadGOB(file string) (DB, error) {
	f, err := os.Open(file)
	if err != nil {
		return DB{}, err
	}

	db, err := DecodeGOB(f)
	f.Close()
	return db, err
}
