package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"image/color"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/frizinak/gotls/simplehttp"
	"github.com/frizinak/gotls/tls"

	"github.com/jwaller/fuda/card"
	"github.com/jwaller/fuda/common"
	"github.com/jwaller/fuda/config"
	"github.com/jwaller/fuda/data"
	"github.com/jwaller/fuda/image"
	"github.com/jwaller/fuda/jmdict"
)

var (
	imgFG = color.NRGBA{255, 255, 255, 255}
	imgBG = color.NRGBA{0, 0, 0, 0}
)

type App struct {
	conf       *config.Config
	cardsGob   string
	imgCache   string
	renderer   *image.Renderer
	homeTpl    *template.Template
	wordsTpl   *template.Template
	resultsTpl *template.Template
}

func (app *App) route(r *http.Request, l *log.Logger) (simplehttp.HandleFunc, int) {
	p := strings.Trim(r.URL.Path, "/")
	r.URL.Path = p

	switch p {
	case "":
		return app.handleHome, 0
	}

	switch {
	case strings.HasPrefix(p, "w/") && strings.Count(p, "/") == 1:
		return app.handleWord, 0
	case strings.HasPrefix(p, "a/") && strings.Count(p, "/") == 2:
		return app.handleAudio, 0
	case strings.HasPrefix(p, "i/") && strings.Count(p, "/") == 1:
		return app.handleImg, 0
	case strings.HasPrefix(p, "asset/") && strings.Count(p, "/") == 1:
		return app.handleAsset, 0
	}

	return nil, 0
}

func absWord(c *card.Card) string  { return fmt.Sprintf("/w/%s", c.Expression) }
func absImg(c *card.Card) string   { return fmt.Sprintf("/i/%d.png", c.Seq) }
func absAudio(c *card.Card) string { return fmt.Sprintf("/a/%d/%s", c.Seq, c.Expression) }

func (app *App) cache(path string, w io.Writer, generate func(w io.Writer) (int64, error)) (int64, error) {
	f, err := os.Open(path)
	if err == nil {
		n, err := io.Copy(w, f)
		f.Close()
		return n, err
	}

	if os.IsNotExist(err) {
		tmp := fmt.Sprintf("%s.%d.tmp", path, time.Now().UnixNano())
		f, err := os.Create(tmp)
		if err != nil {
			return 0, err
		}
		rw := io.MultiWriter(f, w)
		n, err := generate(rw)
		f.Close()
		if err != nil {
			os.Remove(tmp)
			return n, err
		}
		os.Rename(tmp, path)
		return n, nil
	}

	return 0, err
}

func (app *App) img(c *card.Card, w io.Writer) (int64, error) {
	if c == nil {
		return 0, errors.New("nil card")
	}
	if app.renderer == nil {
		return 0, errors.New("no font configured")
	}

	fp := filepath.Join(app.imgCache, strconv.FormatUint(uint64(c.Seq), 10))
	return app.cache(fp, w, func(w io.Writer) (int64, error) {
		reading := card.ParseReading(c.Reading).Kana()
		if reading == c.Expression {
			reading = ""
		}
		img, err := app.renderer.Image(app.conf.Image.Height, c.Expression, reading, imgFG, imgBG)
		if err != nil {
			return 0, err
		}

		return -1, png.Encode(w, img)
	})
}

func (app *App) handleAsset(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
	p := strings.SplitN(r.URL.Path, "/", 2)
	h := w.Header()
	switch p[1] {
	case "app.js":
		h.Set("content-type", "application/javascript")
		h.Set("cache-control", "max-age=86400")
		w.Write([]byte(data.AppJS))
		return 0, nil
	}

	return http.StatusNotFound, nil
}

func (app *App) handleAudio(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
	p := strings.SplitN(r.URL.Path, "/", 3)
	seq, err := strconv.ParseUint(p[1], 10, 64)
	if err != nil {
		return http.StatusNotFound, nil
	}

	d, err := common.GetDeck(app.cardsGob)
	if err != nil {
		return 0, err
	}
	c := d.Get(jmdict.Seq(seq))
	if c == nil || c.Expression != p[2] || c.Audio == "" {
		return http.StatusNotFound, nil
	}

	f, err := os.Open(c.Audio)
	if err != nil {
		return http.StatusNotFound, nil
	}
	defer f.Close()

	h := w.Header()
	h.Set("content-type", "audio/mpeg")
	h.Set("cache-control", "max-age=86400")
	_, err = io.Copy(w, f)

	return 0, err
}

func (app *App) handleHome(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
	w.Header().Set("content-type", "text/html")
	return 0, app.homeTpl.Execute(w, "fuda")
}

func (app *App) handleImg(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
	p := strings.SplitN(r.URL.Path, "/", 2)
	if !strings.HasSuffix(p[1], ".png") {
		return http.StatusNotFound, nil
	}
	n, _ := strconv.ParseUint(strings.TrimSuffix(p[1], ".png"), 10, 64)
	if n == 0 {
		return http.StatusNotFound, nil
	}

	d, err := common.GetDeck(app.cardsGob)
	if err != nil {
		return 0, err
	}
	c := d.Get(jmdict.Seq(n))
	if c == nil {
		return http.StatusNotFound, nil
	}

	h := w.Header()
	h.Set("content-type", "image/png")
	h.Set("cache-control", "max-age=86400")
	_, err = app.img(c, w)

	return 0, err
}

func (app *App) handleWord(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
	p := strings.SplitN(r.URL.Path, "/", 2)
	d, err := common.GetDeck(app.cardsGob)
	if err != nil {
		return 0, err
	}

	res, japanese := d.Search(p[1], 30)
	if len(res) == 0 {
		if japanese {
			res = d.SearchJapaneseFuzzy(p[1], 30)
		} else {
			res = d.SearchMeaningFuzzy(p[1], 30)
		}
	}

	var audio string
	if len(res) != 0 && res[0].Audio != "" {
		audio = absAudio(res[0])
	}

	reqw := strings.ToLower(r.Header.Get("X-Requested-With"))
	xhr := reqw == "fetch" || reqw == "xmlhttprequest"

	pd := WordPage{Query: p[1], Audio: audio, Cards: res}

	w.Header().Set("content-type", "text/html")
	if xhr {
		return 0, app.resultsTpl.Execute(w, pd)
	}

	return 0, app.wordsTpl.Execute(w, pd)
}

type WordPage struct {
	Query string
	Audio string
	Cards []*card.Card
}

// ruby renders an annotated reading as html ruby markup.
func ruby(c *card.Card) template.HTML {
	segs := card.ParseReading(c.Reading)
	var b strings.Builder
	for _, s := range segs {
		if s.Ruby == "" {
			b.WriteString(template.HTMLEscapeString(s.Text))
			continue
		}
		b.WriteString("<ruby>")
		b.WriteString(template.HTMLEscapeString(s.Text))
		b.WriteString("<rt>")
		b.WriteString(template.HTMLEscapeString(s.Ruby))
		b.WriteString("</rt></ruby>")
	}
	return template.HTML(b.String())
}

func main() {
	var addr string
	flag.StringVar(&addr, "l", "", "address to bind to, overrides the config")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	cfg.Logger()
	if addr == "" {
		addr = cfg.Web.Addr
	}

	cacheDir := cfg.Web.CacheDir
	if cacheDir == "" {
		_cacheDir, err := os.UserCacheDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "please configure a web cache dir as we could not find a default directory: %s\n", err)
			os.Exit(1)
		}
		cacheDir = filepath.Join(_cacheDir, "fuda")
	}

	mtpl, err := common.GetHTMLTpl()
	if err != nil {
		panic(err)
	}

	tpl := template.Must(template.Must(mtpl.Clone()).Funcs(template.FuncMap{
		"absWord":  absWord,
		"absImg":   absImg,
		"absAudio": absAudio,
		"ruby":     ruby,
	}).Parse(
		`{{- define "card" -}}
<td class="smol">
<span class="expression">{{ ruby . }}</span>
<div class="scrape">
<a href="{{ absImg . }}">img</a>
{{ if .Audio }}<a href="{{ absAudio . }}">audio</a>{{ end }}
</div>
{{ if .Audio -}}
<a class="play" href="#">play</a>
<audio controls>
<source src="{{ absAudio . }}" type="audio/mpeg">
</audio>
{{- end }}
</td>
<td class="img-container"><a class="img" href="#"><img src="{{ absImg . }}"/></a></td>
<td class="smol level">{{ .Level }}</td>
<td class="smol">{{ .Grammar }}</td>
<td>
{{ .Meaning }}
{{- if .Additional }}<div class="additional">{{ .Additional }}</div>{{ end }}
{{- if .Tags }}<div class="tags">{{ range .Tags }}<span class="tag">{{ . }}</span> {{ end }}</div>{{ end }}
</td>
<td class="smollish">
<a class="copy" data-copy="{{ .Expression }}" href="#">copy</a>
{{- if ne .Expression .Kana }}
<a class="copy" data-copy="{{ .Kana }}" href="#">copy kana</a>
{{- end }}
</td>
{{- end -}}

{{- define "header" -}}
<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>{{ . }}</title>
	<style>
		*                { padding: 0; margin: 0; box-sizing: border-box; }
		html, body       { background-color: #151515; color: #fff; }
		main             { max-width: 1400px; width: 95%; margin: 0 auto 0 auto; margin-top: 20px; }
		.results table   { width: 100%; }
		.results         { margin-top: 40px; }
		td               { padding: 20px; width: 20%; }
		td.smol          { width: 10%; }
		td.smollish      { width: 10%; }
		td.img-container { text-align: center; }
		img              { height: 100px; width: auto; }
		audio            { display: none; }
		a                { color: #ccc; text-decoration: underline; }
		.scrape          { display: none; }
		.expression      { font-size: 1.6em; }
		ruby rt          { color: #fc5; }
		.level           { color: #5cf; }
		.additional      { color: #999; margin-top: 0.5em; }
		.tags .tag       { color: #9c9; font-size: 0.8em; margin-right: 0.5em; }
		.copy            { display: block; transition: color 500ms; }
		.copy.copied     { color: #afa; }
		.copy.error      { color: #faa; }
		form             { position: relative; }
		form input       { min-height: 2em; font-size: 2em; background-color: #333; color: #fff; outline: none; border: 1px solid #ccc; padding: 20px; width: 89%; }
		form .submit     { position: absolute; top: 0; right: 0; width: 10%; margin-left: 1%; }
	</style>
</head>
<body>
<main>
{{- end -}}

{{- define "footer" -}}
</main>
</body>
</html>
{{- end -}}

{{- define "results" -}}
{{ if .Cards -}}
<table>
{{- range .Cards }}
<tr>{{ template "card" . }}</tr>
{{ end -}}
</table>
{{ else -}}
No results
{{ end -}}
{{- end -}}

{{ template "header" "fuda" }}
<div class="input">
<form>
<input type="text"   class="val"    value="{{ .Query }}" />
<input type="submit" class="submit" value=">"            />
</form>
</div>
<div class="results">
{{ template "results" . }}
</div>
<script src="/asset/app.js"></script>
{{ template "footer" }}`,
	))

	homeTpl := template.Must(tpl.New("home").Parse(`
{{- template "header" . }}
<a href="/w/こんにちは"><h1>こんにちは</h1></a>
{{ template "footer" }}`))

	errTpl := template.Must(tpl.New("err").Parse(`
{{- template "header" "Error" }}
	{{ . }}
{{ template "footer" }}`))

	resultsTpl := template.Must(tpl.New("xhr").Parse(`
{{- template "results" . -}}
`))

	imgCacheDir := filepath.Join(cacheDir, "img")
	os.MkdirAll(imgCacheDir, 0700)

	var renderer *image.Renderer
	if cfg.Image.FontPath != "" {
		renderer, err = image.NewRenderer(cfg.Image.FontPath)
		if err != nil {
			panic(err)
		}
	}

	l := log.New(os.Stderr, "", log.Ldate|log.Ltime)
	app := &App{
		conf:       cfg,
		cardsGob:   filepath.Join(cfg.Data.CacheDir, "cards.gob"),
		imgCache:   imgCacheDir,
		renderer:   renderer,
		wordsTpl:   tpl,
		homeTpl:    homeTpl,
		resultsTpl: resultsTpl,
	}
	s := tls.New(app.route, l)

	buf := bytes.NewBuffer(nil)
	for i := 300; i <= 500; i++ {
		buf.Reset()
		errstr := http.StatusText(i)
		if errstr == "" {
			errstr = "Something went wrong"
		}
		if err := errTpl.Execute(buf, fmt.Sprintf("%d - %s", i, errstr)); err != nil {
			panic(err)
		}
		b := make([]byte, buf.Len())
		copy(b, buf.Bytes())
		s.SetHTTPErrorHandler(i, simplehttp.NewHTTPError("text/html", b))
	}

	l.Fatal(run(s, addr))
}
