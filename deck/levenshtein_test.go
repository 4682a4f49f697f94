package deck

import "testing"

func TestEdits(t *testing.T) {
	tests := []struct {
		a, b string
		e    string
	}{
		{
			"とりひき",
			"とりしき",
			"=と =り ~し =き",
		},
		{
			"たべもの",
			"たべもの",
			"=た =べ =も =の",
		},
		{
			"たべも",
			"たべもの",
			"=た =べ =も +の",
		},
		{
			"たべもの",
			"たべも",
			"=た =べ =も -の",
		},
	}

	for _, d := range tests {
		res := LevenshteinEdits([]rune(d.a), []rune(d.b))
		diff := res.DiffString()
		if diff != d.e {
			t.Errorf("edits incorrect for %s - %s\nexp: %s\ngot: %s", d.a, d.b, d.e, diff)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		d    int
	}{
		{"とりひき", "とりひき", 0},
		{"とりひき", "とりしき", 1},
		{"たべもの", "たべも", 1},
		{"", "たべ", 2},
	}

	for _, d := range tests {
		if got := Levenshtein([]rune(d.a), []rune(d.b)); got != d.d {
			t.Errorf("distance incorrect for %s - %s: exp %d got %d", d.a, d.b, d.d, got)
		}
	}
}

var benchS = []rune("ありがとうございます")
var benchT = []rune("ありがとございますす")

func BenchmarkLevenshtein(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Levenshtein(benchS, benchT)
	}
}

func BenchmarkLevenshteinEdits(b *testing.B) {
	for i := 0; i < b.N; i++ {
		LevenshteinEdits(benchS, benchT)
	}
}
