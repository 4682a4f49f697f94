package vocab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeList(t *testing.T) {
	csv := `jmdict_seq,kana,kanji,waller_definition
1000225,とりひき,取り引き,transactions
1578850.0,いく,行く,"to go, to move"
,ぬけ,抜け,missing sequence
`
	entries, err := DecodeList(strings.NewReader(csv), N5)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Seq != 1000225 || entries[0].Kana != "とりひき" || entries[0].Level != N5 {
		t.Errorf("first entry wrong: %+v", entries[0])
	}

	// spreadsheet float sequences parse to their integer value
	if entries[1].Seq != 1578850 {
		t.Errorf("float seq wrong: %d", entries[1].Seq)
	}
	if entries[1].Definition != "to go, to move" {
		t.Errorf("quoted definition wrong: %q", entries[1].Definition)
	}

	// rows without a sequence survive decode and die in Clean
	if entries[2].Seq != 0 {
		t.Errorf("missing seq should be 0, got %d", entries[2].Seq)
	}
}

func TestDecodeListColumnOrder(t *testing.T) {
	csv := `kanji,waller_definition,jmdict_seq,kana
取り引き,transactions,1000225,とりひき
`
	entries, err := DecodeList(strings.NewReader(csv), N3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Seq != 1000225 || entries[0].Kanji != "取り引き" {
		t.Errorf("header-based columns broken: %+v", entries)
	}
}

func TestDecodeListNoSeqColumn(t *testing.T) {
	if _, err := DecodeList(strings.NewReader("kana,kanji\nあ,亜\n"), N5); err == nil {
		t.Fatal("expected error for missing jmdict_seq column")
	}
}

func TestClean(t *testing.T) {
	entries := Entries{
		{Seq: 1, Kana: "あ", Level: N5},
		{Seq: 0, Kana: "ghost", Level: N5},
		{Seq: 1, Kana: "あ", Level: N3},
		{Seq: 2, Kana: "い", Level: N3},
	}

	clean := entries.Clean()
	if len(clean) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(clean))
	}
	// first occurrence is the easiest grading
	if clean[0].Seq != 1 || clean[0].Level != N5 {
		t.Errorf("wrong first entry: %+v", clean[0])
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("n5.csv", "jmdict_seq,kana,kanji,waller_definition\n1,あ,亜,a\n")
	write("n4.csv", "jmdict_seq,kana,kanji,waller_definition\n2,い,位,b\n")
	write("common.csv", "jmdict_seq,kana,kanji,waller_definition\n3,う,宇,c\n")

	entries, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// easiest first
	if entries[0].Level != N5 || entries[1].Level != N4 || entries[2].Level != Common {
		t.Errorf("load order wrong: %+v", entries)
	}
}

func TestLoadDirEmpty(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without lists")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"N5", N5},
		{"n1", N1},
		{" common ", Common},
		{"COMMON", Common},
		{"N6", 0},
		{"", 0},
	}
	for _, d := range tests {
		if got := ParseLevel(d.in); got != d.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", d.in, got, d.want)
		}
	}
}

func TestLevelOrdering(t *testing.T) {
	if !N5.Easier(N1) || N1.Easier(N5) {
		t.Error("N5 should be easier than N1")
	}
	if !N1.Easier(Common) {
		t.Error("graded levels are easier than common")
	}
	if Level(0).Known() || !Common.Known() {
		t.Error("Known broken")
	}
}
