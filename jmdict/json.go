package jmdict

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type jsonForm struct {
	Common bool     `json:"common"`
	Text   string   `json:"text"`
	Tags   []string `json:"tags"`
}

type jsonGloss struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

type jsonSense struct {
	PartOfSpeech []string    `json:"partOfSpeech"`
	Misc         []string    `json:"misc"`
	Info         []string    `json:"info"`
	Gloss        []jsonGloss `json:"gloss"`
}

type jsonWord struct {
	ID     string      `json:"id"`
	Kanji  []jsonForm  `json:"kanji"`
	Kana   []jsonForm  `json:"kana"`
	Senses []jsonSense `json:"sense"`
}

func forms(l []jsonForm) []Form {
	if len(l) == 0 {
		return nil
	}
	r := make([]Form, len(l))
	for i, f := range l {
		r[i] = Form{Text: f.Text, Common: f.Common, Tags: f.Tags}
	}
	return r
}

func senses(l []jsonSense) []Sense {
	r := make([]Sense, len(l))
	for i, s := range l {
		g := make([]string, 0, len(s.Gloss))
		for _, gl := range s.Gloss {
			g = append(g, gl.Text)
		}
		r[i] = Sense{
			PartOfSpeech: s.PartOfSpeech,
			Misc:         s.Misc,
			Info:         s.Info,
			Gloss:        g,
		}
	}
	return r
}

// Decode reads a jmdict-simplified dump ({"words": [...], "tags": {...}})
// streaming word by word; the dump is far too large to unmarshal in one go.
func Decode(r io.Reader) (Words, TagMap, error) {
	dec := json.NewDecoder(r)
	words := make(Words, 200000)
	tags := make(TagMap)

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := tok.(string)

		switch key {
		case "tags":
			if err := dec.Decode(&tags); err != nil {
				return nil, nil, fmt.Errorf("jmdict: tags: %w", err)
			}
		case "words":
			if _, err := dec.Token(); err != nil {
				return nil, nil, err
			}
			for dec.More() {
				var jw jsonWord
				if err := dec.Decode(&jw); err != nil {
					return nil, nil, fmt.Errorf("jmdict: word: %w", err)
				}
				id, err := strconv.ParseUint(jw.ID, 10, 64)
				if err != nil {
					return nil, nil, fmt.Errorf("jmdict: word id %q: %w", jw.ID, err)
				}
				w := &Word{
					Seq:    Seq(id),
					Kanji:  forms(jw.Kanji),
					Kana:   forms(jw.Kana),
					Senses: senses(jw.Senses),
				}
				if _, ok := words[w.Seq]; ok {
					return nil, nil, fmt.Errorf("jmdict: duplicate entry: %d", w.Seq)
				}
				words[w.Seq] = w
			}
			if _, err := dec.Token(); err != nil {
				return nil, nil, err
			}
		default:
			// metadata fields (version, languages, dictDate, ...)
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, nil, err
			}
		}
	}

	tags.applyOverrides()
	return words, tags, nil
}

// Load parses the dictionary from a plain .json file.
func Load(file string) (Words, TagMap, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Unzip extracts the single-member dictionary zip next to itself and
// returns the path of the extracted .json. An already extracted file is
// reused as is.
func Unzip(zipFile string) (string, error) {
	out := strings.TrimSuffix(zipFile, filepath.Ext(zipFile)) + ".json"
	if _, err := os.Stat(out); err == nil {
		return out, nil
	}

	z, err := zip.OpenReader(zipFile)
	if err != nil {
		return "", err
	}
	defer z.Close()

	if len(z.File) != 1 {
		return "", fmt.Errorf("jmdict: expected exactly one file in %s, found %d", zipFile, len(z.File))
	}

	src, err := z.File[0].Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp := out + ".tmp"
	dst, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(tmp)
		return "", err
	}
	dst.Close()
	return out, os.Rename(tmp, out)
}

// LoadZip unzips (when needed) and parses the dictionary dump.
func LoadZip(zipFile string) (Words, TagMap, error) {
	file, err := Unzip(zipFile)
	if err != nil {
		return nil, nil, err
	}
	return Load(file)
}
