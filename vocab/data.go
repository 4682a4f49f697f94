package vocab

import (
	"strings"

	"github.com/jwaller/fuda/jmdict"
)

// Level is a JLPT proficiency grade, N5 being the easiest. Common marks
// frequent words outside the graded lists and sorts as the hardest tier.
type Level uint8

func (l Level) String() string { return allLevelsRev[l] }

const (
	N5 Level = 1 + iota
	N4
	N3
	N2
	N1
	Common
)

var allLevels = map[string]Level{
	"N5":     N5,
	"N4":     N4,
	"N3":     N3,
	"N2":     N2,
	"N1":     N1,
	"COMMON": Common,
}

var allLevelsRev = map[Level]string{
	N5:     "N5",
	N4:     "N4",
	N3:     "N3",
	N2:     "N2",
	N1:     "N1",
	Common: "common",
}

// ParseLevel maps "n5".."n1"/"common" (any case) to a Level, 0 when unknown.
func ParseLevel(s string) Level {
	return allLevels[strings.ToUpper(strings.TrimSpace(s))]
}

// Known reports whether l is one of the defined tiers.
func (l Level) Known() bool {
	_, ok := allLevelsRev[l]
	return ok
}

// Easier reports whether l is a strictly easier tier than o.
func (l Level) Easier(o Level) bool { return l < o }

// Entry is one row of a graded vocabulary list.
type Entry struct {
	Seq        jmdict.Seq
	Kana       string
	Kanji      string
	Definition string
	Level      Level
}

type Entries []Entry

// Clean drops rows without a dictionary sequence and later duplicates of
// the same sequence. Lists load easiest level first, so keeping the first
// occurrence keeps the easiest grading of a word.
func (l Entries) Clean() Entries {
	out := make(Entries, 0, len(l))
	seen := make(map[jmdict.Seq]struct{}, len(l))
	for _, e := range l {
		if e.Seq == 0 {
			continue
		}
		if _, ok := seen[e.Seq]; ok {
			continue
		}
		seen[e.Seq] = struct{}{}
		out = append(out, e)
	}
	return out
}
