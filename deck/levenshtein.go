package deck

import (
	"fmt"
	"strings"
)

func levenshteinMatrix(s, t []rune) []int {
	stride := len(t) + 1
	d := make([]int, (len(s)+1)*stride)

	for i := 1; i <= len(s); i++ {
		d[i*stride] = i
	}
	for j := 1; j <= len(t); j++ {
		d[j] = j
	}

	for j := 1; j <= len(t); j++ {
		for i := 1; i <= len(s); i++ {
			cost := 1
			if s[i-1] == t[j-1] {
				cost = 0
			}

			v := d[(i-1)*stride+j] + 1
			if w := d[i*stride+j-1] + 1; w < v {
				v = w
			}
			if w := d[(i-1)*stride+j-1] + cost; w < v {
				v = w
			}
			d[i*stride+j] = v
		}
	}

	return d
}

// Levenshtein returns the edit distance between two rune strings.
func Levenshtein(s, t []rune) int {
	d := levenshteinMatrix(s, t)
	return d[len(s)*(len(t)+1)+len(t)]
}

type EditType uint8

const (
	EditNone EditType = iota
	EditAdd
	EditDel
	EditChange
)

// Edit is one step turning a query into a matched string, used to show
// a learner where a close match differs from what they typed.
type Edit struct {
	Type EditType
	Rune rune
}

func (e Edit) String() string { return string(e.Rune) }

func (e Edit) DiffString() string {
	t := "="
	switch e.Type {
	case EditAdd:
		t = "+"
	case EditDel:
		t = "-"
	case EditChange:
		t = "~"
	}
	return fmt.Sprintf("%s%s", t, string(e.Rune))
}

type Edits []Edit

func (e Edits) String() string {
	l := make([]string, len(e))
	for i := range e {
		l[i] = e[i].String()
	}
	return strings.Join(l, " ")
}

func (e Edits) DiffString() string {
	l := make([]string, len(e))
	for i := range e {
		l[i] = e[i].DiffString()
	}
	return strings.Join(l, " ")
}

func (e Edits) HasEdits() bool {
	for i := range e {
		if e[i].Type != EditNone {
			return true
		}
	}
	return false
}

// LevenshteinEdits backtracks the distance matrix into the edit list
// turning s into t.
func LevenshteinEdits(s, t []rune) Edits {
	stride := len(t) + 1
	d := levenshteinMatrix(s, t)

	m := len(s)
	if len(t) > m {
		m = len(t)
	}
	r := make(Edits, 0, m)

	i, j := len(s), len(t)
	for i > 0 || j > 0 {
		switch {
		case i == 0:
			r = append(r, Edit{Type: EditAdd, Rune: t[j-1]})
			j--
		case j == 0:
			r = append(r, Edit{Type: EditDel, Rune: s[i-1]})
			i--
		case s[i-1] == t[j-1]:
			r = append(r, Edit{Type: EditNone, Rune: t[j-1]})
			i--
			j--
		default:
			n, w, nw := d[i*stride+j-1], d[(i-1)*stride+j], d[(i-1)*stride+j-1]
			if n < w && n <= nw {
				r = append(r, Edit{Type: EditAdd, Rune: t[j-1]})
				j--
			} else if w <= nw {
				r = append(r, Edit{Type: EditDel, Rune: s[i-1]})
				i--
			} else {
				r = append(r, Edit{Type: EditChange, Rune: t[j-1]})
				i--
				j--
			}
		}
	}

	for i := 0; i < len(r)/2; i++ {
		j := len(r) - i - 1
		r[i], r[j] = r[j], r[i]
	}

	return r
}
