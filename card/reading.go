package card

// Segment is one piece of a parsed reading: plain text, or a base with
// its furigana when Ruby is non-empty.
type Segment struct {
	Text string
	Ruby string
}

type Segments []Segment

// Plain returns the bare expression text, brackets and readings removed.
func (s Segments) Plain() string {
	var out []rune
	for _, seg := range s {
		out = append(out, []rune(seg.Text)...)
	}
	return string(out)
}

// Kana returns the full phonetic rendering, with every annotated base
// replaced by its reading.
func (s Segments) Kana() string {
	var out []rune
	for _, seg := range s {
		if seg.Ruby != "" {
			out = append(out, []rune(seg.Ruby)...)
			continue
		}
		out = append(out, []rune(seg.Text)...)
	}
	return string(out)
}

// ParseReading splits an annotated reading ("取[と]り 引[ひ]き") into
// segments. The space before each bracketed run is a separator, not
// content. A reading without brackets parses to a single plain segment.
func ParseReading(s string) Segments {
	runes := []rune(s)
	var segs Segments
	var plain []rune

	flush := func() {
		if len(plain) != 0 {
			segs = append(segs, Segment{Text: string(plain)})
			plain = plain[:0]
		}
	}

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case ' ':
			flush()
		case '[':
			j := i + 1
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			base := string(plain)
			plain = plain[:0]
			segs = append(segs, Segment{Text: base, Ruby: string(runes[i+1 : j])})
			i = j
		default:
			plain = append(plain, runes[i])
		}
	}
	flush()

	return segs
}
