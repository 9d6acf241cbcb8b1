package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuirace/internal/match"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes colors the joined passage: finished units are correct,
// the active unit is compared with the input and the rest is pending.
func buildStyledRunes(target []rune, view match.View) []styledRune {
	input := []rune(view.Input)
	start, end := view.Active.Start, view.Active.Start+view.Active.Length
	mismatch := firstMismatch(target, start, end, input)

	out := make([]styledRune, 0, len(target))
	for i, r := range target {
		var style lipgloss.Style
		switch {
		case view.Failed:
			style = incorrectStyle
		case view.Complete || i < start:
			style = correctStyle
		case i < end:
			k := i - start
			switch {
			case k < len(input) && k < mismatch:
				style = correctStyle
			case k < len(input):
				style = incorrectStyle
			default:
				style = currentWordStyle
			}
			if k == len(input) {
				style = style.Underline(true)
			}
		default:
			style = pendingStyle
		}
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

// firstMismatch returns the offset into the active unit of the first wrong
// input rune, or len(input) when the input is a clean prefix.
func firstMismatch(target []rune, start, end int, input []rune) int {
	for k, r := range input {
		i := start + k
		if i >= end || i >= len(target) || target[i] != r {
			return k
		}
	}
	return len(input)
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
