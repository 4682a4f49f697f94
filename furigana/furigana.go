// Package furigana aligns a kanji-containing headword against its kana
// reading, producing a reading string with bracketed furigana segments,
// e.g. Align("取り引き", "とりひき") == "取り引き" annotated as
// "取[と]り 引[ひ]き".
package furigana

import (
	"errors"
	"strings"
)

var ErrNoReading = errors.New("furigana: no kana reading provided")

// IsIdeograph reports whether r belongs to the headword character class
// treated as "kanji": CJK ideographs, the iteration mark 々, and the
// wide-width digits and Latin capitals that appear in dictionary
// headwords such as ７日 or Ｔシャツ.
func IsIdeograph(r rune) bool {
	switch {
	case r >= '一' && r <= '龯':
		return true
	case r == '々':
		return true
	case r >= '０' && r <= '９':
		return true
	case r >= 'Ａ' && r <= 'Ｚ':
		return true
	}
	return false
}

// IsKana reports whether r is hiragana or katakana, including the
// prolonged sound mark and other glyphs of the ぁ-ん and ァ-ヿ blocks.
func IsKana(r rune) bool {
	return (r >= 'ぁ' && r <= 'ん') || (r >= 'ァ' && r <= 'ヿ')
}

// nextRun returns the first maximal run of runes satisfying class at or
// after from, as a [start, end) pair, or (-1, -1) when none remains.
func nextRun(s []rune, from int, class func(rune) bool) (int, int) {
	start := -1
	for i := from; i < len(s); i++ {
		if class(s[i]) {
			start = i
			break
		}
	}
	if start == -1 {
		return -1, -1
	}
	end := start
	for end < len(s) && class(s[end]) {
		end++
	}
	return start, end
}

// indexRunes returns the rune index of the first occurrence of sub in s
// at or after from, or -1.
func indexRunes(s, sub []rune, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(sub) <= len(s); i++ {
		ok := true
		for j := range sub {
			if s[i+j] != sub[j] {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

// Align assembles the annotated reading of a headword. kanji is the
// orthographic form (kanji possibly mixed with kana), kana the full
// phonetic reading. Each kanji run is emitted as " run[reading]" with any
// kana between runs kept verbatim, and the result is trimmed.
//
// An empty kana is a precondition violation and returns ErrNoReading. An
// empty kanji means a kana-only word; kana is returned unchanged. When
// the two strings cannot be aligned (the kana following a kanji run in
// the headword does not occur in the reading) Align returns "" with a
// nil error: messy dictionary data is expected and the caller decides
// how to degrade.
func Align(kanji, kana string) (string, error) {
	if kana == "" {
		return "", ErrNoReading
	}
	if kanji == "" {
		return kana, nil
	}

	kj := []rune(kanji)
	kn := []rune(kana)

	var out []rune
	// extra kana consumed by kanji runs so far, i.e. the offset between a
	// position in the headword and the matching position in the reading
	eaten := 0
	last := 0

	for pos := 0; ; {
		rs, re := nextRun(kj, pos, IsIdeograph)
		if rs == -1 {
			break
		}

		var consumed []rune
		ts, te := nextRun(kj, re, IsKana)
		if ts != -1 {
			// locate the trailing kana run inside the reading, searching
			// forward from the current alignment point
			at := indexRunes(kn, kj[ts:te], re+eaten)
			if at == -1 {
				return "", nil
			}
			consumed = kn[rs+eaten : at]
			eaten = at - re
		} else {
			if rs+eaten > len(kn) {
				// the reading ran out before the final kanji run
				return "", nil
			}
			consumed = kn[rs+eaten:]
		}

		out = append(out, kj[last:rs]...)
		out = append(out, ' ')
		out = append(out, kj[rs:re]...)
		out = append(out, '[')
		out = append(out, consumed...)
		out = append(out, ']')

		last = re
		pos = re
	}

	out = append(out, kj[last:]...)

	// trims the space introduced before a leading kanji run, and any
	// whitespace the inputs carried themselves
	return strings.TrimSpace(string(out)), nil
}
