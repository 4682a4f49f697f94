package deck

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jwaller/fuda/card"
)

func EncodeGOB(w io.Writer, cards []card.Card) error {
	return gob.NewEncoder(w).Encode(cards)
}

func DecodeGOB(r io.Reader) ([]card.Card, error) {
	var cards []card.Card
	return cards, gob.NewDecoder(r).Decode(&cards)
}

// StoreGOB caches a generated card set so later runs skip the
// dictionary walk entirely.
func StoreGOB(file string, cards []card.Card) error {
	tmp := fmt.Sprintf("%s.%d.tmp", file, time.Now().UnixNano())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := EncodeGOB(f, cards); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	f.Close()
	return os.Rename(tmp, file)
}

func LoadGOB(file string) ([]card.Card, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	cards, err := DecodeGOB(f)
	f.Close()
	return cards, err
}
