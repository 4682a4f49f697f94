// Package audio fetches word pronunciations from the WaniKani subjects
// api and stores them on disk for the extended deck.
package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jwaller/fuda/card"
)

const subjectsURL = "https://api.wanikani.com/v2/subjects?types=vocabulary"

// Subject is one WaniKani vocabulary entry: its kanji rendering, kana
// reading and the first available pronunciation clip.
type Subject struct {
	Slug       string
	Characters string
	Reading    string
	URL        string
}

type Client struct {
	TokenPath string
	CachePath string
	Dir       string

	// Delay between downloads, a polite second by default.
	Delay time.Duration

	HTTP *http.Client
	Log  *slog.Logger
}

func (c *Client) http() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: time.Minute}
}

func (c *Client) log() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}

func (c *Client) delay() time.Duration {
	if c.Delay != 0 {
		return c.Delay
	}
	return time.Second
}

// Token reads the api token file. A missing or empty file reports false:
// pronunciations are an optional enrichment, not a requirement.
func (c *Client) Token() (string, bool) {
	d, err := os.ReadFile(c.TokenPath)
	if err != nil {
		return "", false
	}
	t := strings.TrimSpace(string(d))
	return t, t != ""
}

type apiEntry struct {
	Data struct {
		Slug       string `json:"slug"`
		Characters string `json:"characters"`
		Readings   []struct {
			Reading string `json:"reading"`
		} `json:"readings"`
		PronunciationAudios []struct {
			URL string `json:"url"`
		} `json:"pronunciation_audios"`
	} `json:"data"`
}

type apiPage struct {
	Pages struct {
		NextURL string `json:"next_url"`
	} `json:"pages"`
	Data []apiEntry `json:"data"`
}

// Subjects returns the available vocabulary. An existing cache file is
// assumed current and read without touching the network; delete it to
// force a refresh. Without a token, (nil, true) is returned and audio is
// skipped entirely.
func (c *Client) Subjects(ctx context.Context) ([]Subject, bool, error) {
	return c.subjectsFrom(ctx, subjectsURL)
}

func (c *Client) subjectsFrom(ctx context.Context, uri string) ([]Subject, bool, error) {
	entries, err := c.cachedEntries()
	if err == nil {
		return parseSubjects(entries), false, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, err
	}

	token, ok := c.Token()
	if !ok {
		c.log().Info("no wanikani token, skipping audio", "path", c.TokenPath)
		return nil, true, nil
	}

	entries, err = c.fetchEntries(ctx, token, uri)
	if err != nil {
		return nil, false, err
	}

	if err := c.storeCache(entries); err != nil {
		return nil, false, err
	}

	return parseSubjects(entries), false, nil
}

func (c *Client) cachedEntries() ([]apiEntry, error) {
	f, err := os.Open(c.CachePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []apiEntry
	return entries, json.NewDecoder(f).Decode(&entries)
}

func (c *Client) storeCache(entries []apiEntry) error {
	if err := os.MkdirAll(filepath.Dir(c.CachePath), 0700); err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.%d.tmp", c.CachePath, time.Now().UnixNano())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(entries); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	f.Close()
	return os.Rename(tmp, c.CachePath)
}

func (c *Client) fetchEntries(ctx context.Context, token, uri string) ([]apiEntry, error) {
	var entries []apiEntry
	for uri != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)

		res, err := c.http().Do(req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("wanikani subjects: %s", res.Status)
		}

		var page apiPage
		err = json.NewDecoder(res.Body).Decode(&page)
		res.Body.Close()
		if err != nil {
			return nil, err
		}

		entries = append(entries, page.Data...)
		uri = page.Pages.NextURL
	}

	return entries, nil
}

// parseSubjects flattens the api entries, keeping the first
// pronunciation clip per slug.
func parseSubjects(entries []apiEntry) []Subject {
	subjects := make([]Subject, 0, len(entries))
	for _, e := range entries {
		if len(e.Data.Readings) == 0 || len(e.Data.PronunciationAudios) == 0 {
			continue
		}
		subjects = append(subjects, Subject{
			Slug:       e.Data.Slug,
			Characters: e.Data.Characters,
			Reading:    e.Data.Readings[0].Reading,
			URL:        e.Data.PronunciationAudios[0].URL,
		})
	}
	return subjects
}

// Fill sets each card's Audio to its pronunciation file under Dir,
// downloading what is missing. A word matches a subject when both its
// kanji rendering and kana reading agree. Cards without a match are left
// untouched, as is everything when no token is configured.
func (c *Client) Fill(ctx context.Context, cards []card.Card) error {
	subjects, skip, err := c.Subjects(ctx)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}

	byWord := make(map[[2]string]Subject, len(subjects))
	for _, s := range subjects {
		k := [2]string{s.Characters, s.Reading}
		if _, ok := byWord[k]; !ok {
			byWord[k] = s
		}
	}

	if err := os.MkdirAll(c.Dir, 0700); err != nil {
		return err
	}

	for i := range cards {
		fp := filepath.Join(c.Dir, fmt.Sprintf("%d.mp3", cards[i].Seq))
		if _, err := os.Stat(fp); err == nil {
			cards[i].Audio = fp
			continue
		}

		s, ok := byWord[[2]string{cards[i].Kanji, cards[i].Kana}]
		if !ok {
			continue
		}

		if err := c.download(ctx, s.URL, fp); err != nil {
			c.log().Warn("pronunciation download failed",
				"seq", cards[i].Seq, "url", s.URL, "err", err)
			continue
		}
		cards[i].Audio = fp

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.delay()):
		}
	}

	return nil
}

func (c *Client) download(ctx context.Context, uri, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return err
	}

	res, err := c.http().Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("audio download: %s", res.Status)
	}

	tmp := fmt.Sprintf("%s.%d.tmp", path, time.Now().UnixNano())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, res.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	f.Close()
	return os.Rename(tmp, path)
}
