// Package data holds the embedded assets: the Anki card templates and
// styling, and the javascript for the preview web ui.
package data

import _ "embed"

//go:embed card_style/recognition_front.html
var CardRecognitionFront string

//go:embed card_style/recognition_back.html
var CardRecognitionBack string

//go:embed card_style/recognition_back_sound.html
var CardRecognitionBackSound string

//go:embed card_style/recall_front.html
var CardRecallFront string

//go:embed card_style/recall_back.html
var CardRecallBack string

//go:embed card_style/recall_back_sound.html
var CardRecallBackSound string

//go:embed card_style/style.css
var CardCSS string

//go:embed web/app.js
var AppJS string
