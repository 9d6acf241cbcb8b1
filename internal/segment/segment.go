// Package segment splits passages into typing units.
package segment

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Mode is the script mode of a passage.
type Mode int

const (
	// Narrow passages are typed word by word, separated by spaces.
	Narrow Mode = iota
	// Wide passages are typed one grapheme at a time with no separator.
	Wide
)

func (m Mode) String() string {
	if m == Wide {
		return "wide"
	}
	return "narrow"
}

// Separator returns the string placed between units in this mode.
func (m Mode) Separator() string {
	if m == Wide {
		return ""
	}
	return " "
}

// IsWide reports whether the first grapheme of text is East-Asian wide.
// Mixed-script text takes the mode of its first character.
func IsWide(text string) bool {
	if text == "" {
		return false
	}
	first, _, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	return runewidth.StringWidth(first) == 2
}

// ModeOf derives the script mode of text.
func ModeOf(text string) Mode {
	if IsWide(text) {
		return Wide
	}
	return Narrow
}

// ToUnits splits text into typing units for its mode.
func ToUnits(text string) []string {
	return ToUnitsFor(ModeOf(text), text)
}

// ToUnitsFor splits text using the rules of the given mode.
// Narrow mode collapses runs of whitespace and drops leading and trailing space.
func ToUnitsFor(mode Mode, text string) []string {
	if mode == Narrow {
		return strings.Fields(text)
	}
	units := make([]string, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		units = append(units, g.Str())
	}
	return units
}

// JoinUnits rebuilds passage text from units.
func JoinUnits(mode Mode, units []string) string {
	return strings.Join(units, mode.Separator())
}

// Normalize returns text in Unicode NFC form.
func Normalize(text string) string {
	return norm.NFC.String(text)
}
