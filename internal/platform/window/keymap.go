//go:build ebiten

package window

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// namedKeys maps keys whose name is not their character to the identifiers
// a browser would report through String.fromCharCode(keyCode).
var namedKeys = map[ebiten.Key]string{
	ebiten.KeySpace:        " ",
	ebiten.KeyEnter:        "\r",
	ebiten.KeyNumpadEnter:  "\r",
	ebiten.KeyTab:          "\t",
	ebiten.KeyBackspace:    "\b",
	ebiten.KeyEscape:       "\x1b",
	ebiten.KeyArrowUp:      "ArrowUp",
	ebiten.KeyArrowDown:    "ArrowDown",
	ebiten.KeyArrowLeft:    "ArrowLeft",
	ebiten.KeyArrowRight:   "ArrowRight",
	ebiten.KeyComma:        ",",
	ebiten.KeyPeriod:       ".",
	ebiten.KeyMinus:        "-",
	ebiten.KeyEqual:        "=",
	ebiten.KeySlash:        "/",
	ebiten.KeyBackslash:    "\\",
	ebiten.KeySemicolon:    ";",
	ebiten.KeyQuote:        "'",
	ebiten.KeyBracketLeft:  "[",
	ebiten.KeyBracketRight: "]",
	ebiten.KeyBackquote:    "`",
}

// KeyIdentifier returns the tracker identifier for a physical key, matching
// what the terminal frontend reports for the same keystroke. Letters are
// lower case unless shift is held.
func KeyIdentifier(k ebiten.Key, shift bool) (string, bool) {
	if id, ok := namedKeys[k]; ok {
		return id, true
	}

	name := k.String()
	if digit, ok := strings.CutPrefix(name, "Digit"); ok && len(digit) == 1 {
		return digit, true
	}
	if utf8.RuneCountInString(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		if shift {
			return name, true
		}
		return strings.ToLower(name), true
	}
	return "", false
}
