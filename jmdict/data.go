package jmdict

// Seq is a JMdict entry sequence number, the stable identifier shared
// with the graded vocabulary lists.
type Seq uint64

type Words map[Seq]*Word

// Word is one dictionary entry of the jmdict-simplified dump.
type Word struct {
	Seq    Seq
	Kanji  []Form
	Kana   []Form
	Senses []Sense
}

// Form is a single orthographic or phonetic rendering of an entry.
type Form struct {
	Text   string
	Common bool
	Tags   []string
}

// Sense is one meaning grouping: glosses sharing part-of-speech and
// misc markers.
type Sense struct {
	PartOfSpeech []string
	Misc         []string
	Info         []string
	Gloss        []string
}

// KanjiText returns the first kanji rendering, or "" for kana-only words.
func (w *Word) KanjiText() string {
	if len(w.Kanji) == 0 {
		return ""
	}
	return w.Kanji[0].Text
}

// KanaText returns the first kana rendering.
func (w *Word) KanaText() string {
	if len(w.Kana) == 0 {
		return ""
	}
	return w.Kana[0].Text
}

// PrimarySense returns the first-listed sense, the one whose glosses
// make up the main definition.
func (w *Word) PrimarySense() Sense {
	if len(w.Senses) == 0 {
		return Sense{}
	}
	return w.Senses[0]
}

// SecondarySenses returns every sense after the first.
func (w *Word) SecondarySenses() []Sense {
	if len(w.Senses) < 2 {
		return nil
	}
	return w.Senses[1:]
}

func (s Sense) HasMisc(tag string) bool {
	for _, m := range s.Misc {
		if m == tag {
			return true
		}
	}
	return false
}

// SamePartOfSpeech reports whether both senses carry the exact same
// ordered part-of-speech tag list.
func (s Sense) SamePartOfSpeech(o Sense) bool {
	if len(s.PartOfSpeech) != len(o.PartOfSpeech) {
		return false
	}
	for i := range s.PartOfSpeech {
		if s.PartOfSpeech[i] != o.PartOfSpeech[i] {
			return false
		}
	}
	return true
}

// TagMap expands the dictionary's abbreviated tags (pos, misc, ...) to
// human-readable text. It is loaded from the dump and passed around
// explicitly rather than kept as package state.
type TagMap map[string]string

// Expand returns the verbose form of tag, or tag itself when unknown.
func (t TagMap) Expand(tag string) string {
	if v, ok := t[tag]; ok {
		return v
	}
	return tag
}

// ExpandAll maps Expand over tags.
func (t TagMap) ExpandAll(tags []string) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = t.Expand(tag)
	}
	return out
}

// applyOverrides installs the handful of rewrites the deck generator
// wants on top of the dump's own tag explanations.
func (t TagMap) applyOverrides() {
	t["n"] = "noun"
	t["hon"] = "honorific/尊敬語"
	t["pol"] = "polite/丁寧語"
	t["hum"] = "humble/謙譲語"
}
