// Package match validates typed input against the passage being played.
package match

import (
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/tuirace/internal/segment"
)

// CheckLikeWord reports whether input is empty or a prefix of unit.
// e.g. apple, ap => true, apple, ppl => false.
func CheckLikeWord(unit, input string) bool {
	if input == "" {
		return true
	}
	if len(input) > len(unit) {
		return false
	}
	return strings.HasPrefix(unit, input)
}

// UnitCompleted reports whether the keystroke lastChar finishes unit.
// Narrow units finish on a space once input matches; wide units finish as soon
// as the appended character makes input equal to the unit.
func UnitCompleted(mode segment.Mode, lastChar rune, unit, input string) bool {
	if mode == segment.Narrow {
		return lastChar == ' ' && input == unit
	}
	return input+string(lastChar) == unit
}

// DecideRoundEnd reports whether the player has finished the passage.
// A passage without units is already complete.
func DecideRoundEnd(mode segment.Mode, unitIndex int, units []string, input string) bool {
	if len(units) == 0 {
		return true
	}
	if mode == segment.Narrow {
		if unitIndex >= len(units) {
			return true
		}
		return unitIndex+1 == len(units) && units[unitIndex] == input
	}
	return input == "" && unitIndex >= len(units)
}

// StartingOffset returns the rune offset of units[unitIndex] in the joined passage.
// For ["this", "is", "a", "vector"] and index 2 in narrow mode the offset is 8.
func StartingOffset(mode segment.Mode, units []string, unitIndex int) int {
	if unitIndex > len(units) {
		unitIndex = len(units)
	}
	sep := utf8.RuneCountInString(mode.Separator())
	offset := 0
	for _, unit := range units[:max(unitIndex, 0)] {
		offset += utf8.RuneCountInString(unit) + sep
	}
	return offset
}

// AttemptedSlot returns the offset of the character the player is attempting.
// Input is compared against the unit up to the first mismatch, never past the
// last typed character, so a retyped character maps back to the same slot.
func AttemptedSlot(mode segment.Mode, units []string, unitIndex int, input string) int {
	start := StartingOffset(mode, units, unitIndex)
	if input == "" || unitIndex < 0 || unitIndex >= len(units) {
		return start
	}
	typed := []rune(input)
	letter := 0
	for _, c := range units[unitIndex] {
		if letter == len(typed)-1 || typed[letter] != c {
			break
		}
		letter++
	}
	return start + letter
}

// TrimLastWord removes the last unit of input, readline C-w style.
// A trailing separator goes together with the word before it.
func TrimLastWord(input string) string {
	mode := segment.ModeOf(input)
	units := segment.ToUnitsFor(mode, input)
	if len(units) == 0 {
		return input
	}
	return segment.JoinUnits(mode, units[:len(units)-1])
}
