// Package common holds what the cli and the web server share: the
// memoized deck and the card rendering templates.
package common

import (
	htmltpl "html/template"
	"text/template"

	"github.com/jwaller/fuda/card"
	"github.com/jwaller/fuda/deck"
)

const tplStr = `{{- define "expr" -}}
{{ clrGreen }} {{- .Expression -}} {{ clrPop }}
{{- with reading . }}  {{ . }}{{ end }}
{{- end -}}

{{- define "card" -}}
{{ template "expr" . }}  {{ clrGray }} {{- .Grammar -}} {{ clrPop }} [{{ .Level }}]
  {{ .Meaning }}
{{- if .Additional }}
  {{ clrGray }} {{- .Additional -}} {{ clrPop }}
{{- end }}
{{- if .Tags }}
  {{ clrCyan }} {{- range .Tags }}{{ . }} {{ end }}{{ clrPop }}
{{- end }}
{{- end -}}

{{- range . }}{{ template "card" . }}
{{ end }}`

var dck *deck.Deck
var dckPath string
var tpl *template.Template
var httpl *htmltpl.Template

// GetDeck loads the generated card set cached at path, memoized across
// calls.
func GetDeck(path string) (*deck.Deck, error) {
	if dck != nil && dckPath == path {
		return dck, nil
	}

	cards, err := deck.LoadGOB(path)
	if err != nil {
		return nil, err
	}

	dck = deck.New(cards)
	dckPath = path
	return dck, nil
}

func getTplFuncs() template.FuncMap {
	_clrs := make(clrs, 0)
	clrs := &_clrs
	clrRed := func() clr { return clrs.Get(31) }
	clrGreen := func() clr { return clrs.Get(32) }
	clrYellow := func() clr { return clrs.Get(33) }
	clrBlue := func() clr { return clrs.Get(34) }
	clrMagenta := func() clr { return clrs.Get(35) }
	clrCyan := func() clr { return clrs.Get(36) }
	clrGray := func() clr { return clrs.Get(37) }
	clrPop := func() clr { return clrs.Pop() }

	// reading renders "取[と]り 引[ひ]き" with the kana highlighted;
	// plain kana repeating the expression renders as nothing.
	reading := func(c *card.Card) stringer {
		segs := card.ParseReading(c.Reading)
		if len(segs) == 0 || segs.Plain() == segs.Kana() && c.Expression == c.Kana {
			return strStringer("")
		}

		list := make(stringList, 0, len(segs)*6)
		for _, s := range segs {
			list = append(list, strStringer(s.Text))
			if s.Ruby != "" {
				list = append(
					list,
					strStringer("["),
					clrYellow(),
					strStringer(s.Ruby),
					clrPop(),
					strStringer("]"),
				)
			}
		}
		return list
	}

	return template.FuncMap{
		"clrRed":     clrRed,
		"clrGreen":   clrGreen,
		"clrYellow":  clrYellow,
		"clrBlue":    clrBlue,
		"clrMagenta": clrMagenta,
		"clrCyan":    clrCyan,
		"clrGray":    clrGray,
		"clrPop":     clrPop,
		"reading":    reading,
	}
}

func GetHTMLTpl() (*htmltpl.Template, error) {
	if httpl != nil {
		return httpl, nil
	}

	var err error
	httpl, err = htmltpl.New("tpls").Funcs(htmltpl.FuncMap(getTplFuncs())).Parse(tplStr)

	return httpl, err
}

func GetTpl() (*template.Template, error) {
	if tpl != nil {
		return tpl, nil
	}

	var err error
	tpl, err = template.New("tpls").Funcs(getTplFuncs()).Parse(tplStr)

	return tpl, err
}
