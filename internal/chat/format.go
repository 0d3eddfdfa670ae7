package chat

import (
	"strconv"
	"strings"

	"github.com/keepmind9/pingbot/pkg/constants"
)

// FormatMessage tags text as automated. Multi-line text puts the marker on
// its own line so the room renders the body as a block.
func FormatMessage(text string) string {
	if strings.Contains(text, "\n") {
		return constants.AutoMessageMarker + "\n" + text
	}
	return constants.AutoMessageMarker + " " + text
}

// codeQuote wraps s in inline code. Backticks inside s are dropped since
// they would end the quote early.
func codeQuote(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "") + "`"
}

func applyTemplate(template, value string) string {
	return strings.ReplaceAll(template, constants.FormatPlaceholder, value)
}

// formatPing renders one mention. Users with a pingable name get the ping
// template with spaces removed from the name, everyone else the superping
// template with their id.
func formatPing(pingFormat, superpingFormat string, userID int, names map[int]string) string {
	if name, ok := names[userID]; ok {
		return applyTemplate(pingFormat, strings.ReplaceAll(name, " ", ""))
	}
	return applyTemplate(superpingFormat, strconv.Itoa(userID))
}

// UserIDSet is a snapshot of user ids.
type UserIDSet map[int]struct{}

func newUserIDSet(ids []int) UserIDSet {
	set := make(UserIDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether id is in the set
func (s UserIDSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}
