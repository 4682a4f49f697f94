package furigana

import "testing"

func TestAlign(t *testing.T) {
	tests := []struct {
		kanji, kana string
		want        string
	}{
		{"", "ああ", "ああ"},
		{"７日", "なのか", "７日[なのか]"},
		{"事", "こと", "事[こと]"},
		{"食べ物", "たべもの", "食[た]べ 物[もの]"},
		{"取り引き", "とりひき", "取[と]り 引[ひ]き"},
		{"お茶", "おちゃ", "お 茶[ちゃ]"},
		{"皆さん", "みなさん", "皆[みな]さん"},
		{"飲み込む", "のみこむ", "飲[の]み 込[こ]む"},
		{"出会う", "であう", "出会[であ]う"},
		{"人々", "ひとびと", "人々[ひとびと]"},
		// trailing kana run absent from the reading: unalignable
		{"引く", "ひき", ""},
		// reading shorter than the kana preceding the final kanji run
		{"まあ引", "ひ", ""},
		// stray whitespace on the headword is trimmed away
		{"事\n", "こと", "事[こと]"},
	}

	for _, d := range tests {
		got, err := Align(d.kanji, d.kana)
		if err != nil {
			t.Fatalf("Align(%q, %q) unexpected error: %v", d.kanji, d.kana, err)
		}
		if got != d.want {
			t.Errorf("Align(%q, %q)\nexp: %q\ngot: %q", d.kanji, d.kana, d.want, got)
		}
	}
}

func TestAlignNoReading(t *testing.T) {
	for _, kanji := range []string{"", "七", "７日", "お茶"} {
		if _, err := Align(kanji, ""); err != ErrNoReading {
			t.Errorf("Align(%q, \"\") err = %v, want ErrNoReading", kanji, err)
		}
	}
}

func TestAlignDeterministic(t *testing.T) {
	a, _ := Align("取り引き", "とりひき")
	b, _ := Align("取り引き", "とりひき")
	if a != b {
		t.Errorf("alignment not deterministic: %q vs %q", a, b)
	}
}

func TestRuneClasses(t *testing.T) {
	for _, r := range "字引７Ａ々" {
		if !IsIdeograph(r) {
			t.Errorf("IsIdeograph(%c) = false", r)
		}
	}
	for _, r := range "あんァーヿ" {
		if !IsKana(r) {
			t.Errorf("IsKana(%c) = false", r)
		}
	}
	for _, r := range "aA1。、" {
		if IsIdeograph(r) || IsKana(r) {
			t.Errorf("%c misclassified", r)
		}
	}
}

var benchRes string

func BenchmarkAlign(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchRes, _ = Align("取り引き", "とりひき")
	}
}
