package audio

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwaller/fuda/card"
)

func writeCache(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "wanikani_vocab.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestTokenMissing(t *testing.T) {
	c := &Client{TokenPath: filepath.Join(t.TempDir(), "nope")}
	_, ok := c.Token()
	assert.False(t, ok)
}

func TestTokenTrimmed(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "wanikani_token")
	require.NoError(t, os.WriteFile(p, []byte("abc123\n"), 0600))

	c := &Client{TokenPath: p}
	tok, ok := c.Token()
	require.True(t, ok)
	assert.Equal(t, "abc123", tok)
}

func TestSubjectsFromCache(t *testing.T) {
	dir := t.TempDir()
	cache := writeCache(t, dir, `[
		{"data":{"slug":"食べ物","characters":"食べ物",
			"readings":[{"reading":"たべもの"},{"reading":"くいもの"}],
			"pronunciation_audios":[{"url":"https://x/1.mp3"},{"url":"https://x/2.mp3"}]}},
		{"data":{"slug":"noaudio","characters":"何か",
			"readings":[{"reading":"なにか"}],
			"pronunciation_audios":[]}}
	]`)

	c := &Client{CachePath: cache}
	subjects, skip, err := c.Subjects(context.Background())
	require.NoError(t, err)
	assert.False(t, skip)

	// entries without a clip are dropped, first reading and clip win
	require.Len(t, subjects, 1)
	assert.Equal(t, "食べ物", subjects[0].Characters)
	assert.Equal(t, "たべもの", subjects[0].Reading)
	assert.Equal(t, "https://x/1.mp3", subjects[0].URL)
}

func TestSubjectsNoTokenSkips(t *testing.T) {
	dir := t.TempDir()
	c := &Client{
		TokenPath: filepath.Join(dir, "nope"),
		CachePath: filepath.Join(dir, "cache.json"),
	}

	subjects, skip, err := c.Subjects(context.Background())
	require.NoError(t, err)
	assert.True(t, skip)
	assert.Empty(t, subjects)
}

func TestSubjectsFetchAndCache(t *testing.T) {
	dir := t.TempDir()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		if r.URL.Query().Get("page") == "" {
			fmt.Fprintf(w, `{"pages":{"next_url":"%s/?page=2"},"data":[
				{"data":{"slug":"a","characters":"食べ物","readings":[{"reading":"たべもの"}],
					"pronunciation_audios":[{"url":"https://x/a.mp3"}]}}]}`, srv.URL)
			return
		}
		fmt.Fprint(w, `{"pages":{"next_url":null},"data":[
			{"data":{"slug":"b","characters":"考え","readings":[{"reading":"かんがえ"}],
				"pronunciation_audios":[{"url":"https://x/b.mp3"}]}}]}`)
	}))
	defer srv.Close()

	tokenPath := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(tokenPath, []byte("tok\n"), 0600))

	c := &Client{
		TokenPath: tokenPath,
		CachePath: filepath.Join(dir, "cache", "wanikani_vocab.json"),
		HTTP:      srv.Client(),
	}

	subjects, skip, err := c.subjectsFrom(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, skip)
	require.Len(t, subjects, 2)

	// second call hits only the cache
	srv.Close()
	subjects, skip, err = c.Subjects(context.Background())
	require.NoError(t, err)
	assert.False(t, skip)
	assert.Len(t, subjects, 2)
}

func TestFill(t *testing.T) {
	dir := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mp3data"))
	}))
	defer srv.Close()

	cache := writeCache(t, dir, fmt.Sprintf(`[
		{"data":{"slug":"食べ物","characters":"食べ物",
			"readings":[{"reading":"たべもの"}],
			"pronunciation_audios":[{"url":"%s/a.mp3"}]}}
	]`, srv.URL))

	c := &Client{
		CachePath: cache,
		Dir:       filepath.Join(dir, "audio"),
		Delay:     time.Millisecond,
		HTTP:      srv.Client(),
	}

	cards := []card.Card{
		{Seq: 1, Kanji: "食べ物", Kana: "たべもの"},
		{Seq: 2, Kanji: "考え", Kana: "かんがえ"},
	}
	require.NoError(t, c.Fill(context.Background(), cards))

	require.NotEmpty(t, cards[0].Audio)
	d, err := os.ReadFile(cards[0].Audio)
	require.NoError(t, err)
	assert.Equal(t, "mp3data", string(d))

	// no wanikani match leaves the card silent
	assert.Empty(t, cards[1].Audio)
}

func TestFillExistingFile(t *testing.T) {
	dir := t.TempDir()
	cache := writeCache(t, dir, `[]`)

	audioDir := filepath.Join(dir, "audio")
	require.NoError(t, os.MkdirAll(audioDir, 0700))
	existing := filepath.Join(audioDir, "1.mp3")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))

	c := &Client{CachePath: cache, Dir: audioDir, Delay: time.Millisecond}
	cards := []card.Card{{Seq: 1, Kanji: "食べ物", Kana: "たべもの"}}
	require.NoError(t, c.Fill(context.Background(), cards))
	assert.Equal(t, existing, cards[0].Audio)
}

func TestFillNoToken(t *testing.T) {
	dir := t.TempDir()
	c := &Client{
		TokenPath: filepath.Join(dir, "nope"),
		CachePath: filepath.Join(dir, "cache.json"),
		Dir:       filepath.Join(dir, "audio"),
	}

	cards := []card.Card{{Seq: 1, Kanji: "食べ物", Kana: "たべもの"}}
	require.NoError(t, c.Fill(context.Background(), cards))
	assert.Empty(t, cards[0].Audio)
}
