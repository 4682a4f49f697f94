package anki

import (
	"archive/zip"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwaller/fuda/card"
	"github.com/jwaller/fuda/jmdict"
	"github.com/jwaller/fuda/vocab"
)

func testCard(seq int, expr string, level vocab.Level) card.Card {
	return card.Card{
		Seq:        jmdict.Seq(seq),
		Level:      level,
		Expression: expr,
		Meaning:    "meaning",
		Reading:    "reading",
		Grammar:    "noun",
	}
}

func TestDeckNesting(t *testing.T) {
	p := NewPackage(false)
	sizes := p.DeckSizes()

	require.Len(t, sizes, 6)
	assert.Contains(t, sizes, "Core Japanese Vocabulary")
	assert.Contains(t, sizes, "Core Japanese Vocabulary::JLPT N1")
	assert.Contains(t, sizes, "Core Japanese Vocabulary::JLPT N1::JLPT N2::JLPT N3::JLPT N4::JLPT N5")
}

func TestExtendedNaming(t *testing.T) {
	p := NewPackage(true)
	assert.Equal(t, "Core Japanese Vocabulary Extended", p.Name())
	assert.Contains(t, p.DeckSizes(), "Core Japanese Vocabulary Extended::JLPT N1")
}

func TestAddDispatch(t *testing.T) {
	p := NewPackage(false)
	p.Add(testCard(1, "食べ物", vocab.N5))
	p.Add(testCard(2, "考え", vocab.N3))
	p.Add(testCard(3, "ともかく", vocab.Common))

	sizes := p.DeckSizes()
	assert.Equal(t, 1, sizes["Core Japanese Vocabulary::JLPT N1::JLPT N2::JLPT N3::JLPT N4::JLPT N5"])
	assert.Equal(t, 1, sizes["Core Japanese Vocabulary::JLPT N1::JLPT N2::JLPT N3"])
	assert.Equal(t, 1, sizes["Core Japanese Vocabulary"])
	assert.Equal(t, 3, p.Len())
}

func TestDuplicateExpressionSkipped(t *testing.T) {
	p := NewPackage(false)
	p.Add(testCard(1, "こと", vocab.N5))
	p.Add(testCard(2, "こと", vocab.N4))

	assert.Equal(t, 1, p.Len())
}

func TestNoteGUIDStable(t *testing.T) {
	a := noteGUID(1000225)
	b := noteGUID(1000225)
	c := noteGUID(1000310)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "core.apkg")

	p := NewPackage(false)
	p.Add(testCard(1, "食べ物", vocab.N5))
	p.Add(testCard(2, "考え", vocab.N3))
	require.NoError(t, p.WriteFile(out))

	z, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer z.Close()

	names := make(map[string]bool)
	for _, f := range z.File {
		names[f.Name] = true
	}
	assert.True(t, names["collection.anki2"])
	assert.True(t, names["media"])

	// unpack the collection and verify its contents
	src, err := z.Open("collection.anki2")
	require.NoError(t, err)
	colPath := filepath.Join(dir, "collection.anki2")
	dst, err := os.Create(colPath)
	require.NoError(t, err)
	_, err = dst.ReadFrom(src)
	require.NoError(t, err)
	require.NoError(t, dst.Close())
	require.NoError(t, src.Close())

	db, err := sql.Open("sqlite3", colPath)
	require.NoError(t, err)
	defer db.Close()

	var notes, cards int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&notes))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&cards))
	assert.Equal(t, 2, notes)
	// recognition and recall per note
	assert.Equal(t, 4, cards)

	var guid string
	require.NoError(t, db.QueryRow(
		"SELECT guid FROM notes WHERE flds LIKE ?", "食べ物%",
	).Scan(&guid))
	assert.Equal(t, noteGUID(1), guid)
}

func TestWriteFileMedia(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "1.mp3")
	require.NoError(t, os.WriteFile(audio, []byte("mp3data"), 0644))

	p := NewPackage(true)
	c := testCard(1, "食べ物", vocab.N5)
	c.Audio = audio
	p.Add(c)

	out := filepath.Join(dir, "extended.apkg")
	require.NoError(t, p.WriteFile(out))

	z, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer z.Close()

	names := make(map[string]bool)
	for _, f := range z.File {
		names[f.Name] = true
	}
	// media files are numbered from zero
	assert.True(t, names["0"])
	assert.True(t, names["media"])
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "", joinTags(nil))
	assert.Equal(t, " usually_kana rare_term ", joinTags([]string{"usually_kana", "rare_term"}))
	assert.Equal(t, " honorific/尊敬語 ", joinTags([]string{"honorific/尊敬語"}))
}
