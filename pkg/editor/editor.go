// Package editor implements the Markdown editor toolbar: wrapping the
// current selection in formatting markers.
//
// Offsets are in runes. Browser textareas report selections in UTF-16 code
// units over LF-only text; FromUTF16 and ToUTF16 convert at that boundary.
package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
)

// ErrUnknownAction is returned by Apply for an action it does not define.
var ErrUnknownAction = errors.New("unknown editor action")

// Selection is a half-open rune range [Start, End) within a document.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Normalize clamps s to a document of n runes and orders its bounds.
func (s Selection) Normalize(n int) Selection {
	start, end := clamp(s.Start, n), clamp(s.End, n)
	if start > end {
		start, end = end, start
	}
	return Selection{Start: start, End: end}
}

// Empty reports whether the selection is a caret.
func (s Selection) Empty() bool {
	return s.Start == s.End
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF, the form
// a textarea's selection offsets are counted against.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// FromUTF16 converts a selection counted in UTF-16 code units over text into
// rune offsets. An offset inside a surrogate pair rounds down to the start of
// that character.
func FromUTF16(text string, s Selection) Selection {
	return Selection{Start: utf16ToRunes(text, s.Start), End: utf16ToRunes(text, s.End)}
}

// ToUTF16 converts a rune selection over text into UTF-16 code units.
func ToUTF16(text string, s Selection) Selection {
	return Selection{Start: runesToUTF16(text, s.Start), End: runesToUTF16(text, s.End)}
}

func utf16ToRunes(text string, units int) int {
	if units <= 0 {
		return 0
	}
	n, pos := 0, 0
	for _, r := range text {
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		if pos+w > units {
			return n
		}
		pos += w
		n++
	}
	return n
}

func runesToUTF16(text string, runes int) int {
	units, n := 0, 0
	for _, r := range text {
		if n >= runes {
			break
		}
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		units += w
		n++
	}
	return units
}

func clamp(v, n int) int {
	return max(0, min(v, n))
}

// Insert wraps the selected text in before and after. The returned selection
// covers the originally selected text at its new position.
func Insert(text string, sel Selection, before, after string) (string, Selection) {
	runes := []rune(text)
	sel = sel.Normalize(len(runes))

	b, a := []rune(before), []rune(after)

	out := make([]rune, 0, len(runes)+len(b)+len(a))
	out = append(out, runes[:sel.Start]...)
	out = append(out, b...)
	out = append(out, runes[sel.Start:sel.End]...)
	out = append(out, a...)
	out = append(out, runes[sel.End:]...)

	return string(out), Selection{
		Start: sel.Start + len(b),
		End:   sel.End + len(b),
	}
}

// Action names a toolbar button.
type Action string

// Toolbar actions.
const (
	Bold   Action = "bold"
	Italic Action = "italic"
	Code   Action = "code"
	Link   Action = "link"
	Image  Action = "image"
)

type markers struct {
	before, after string
}

var actionMarkers = map[Action]markers{
	Bold:   {"**", "**"},
	Italic: {"_", "_"},
	Code:   {"`", "`"},
	Link:   {"[", "](url)"},
	Image:  {"![alt](", ")"},
}

// Actions returns every defined action in toolbar order.
func Actions() []Action {
	return []Action{Bold, Italic, Code, Link, Image}
}

// Valid reports whether a is a defined action.
func (a Action) Valid() bool {
	_, ok := actionMarkers[a]
	return ok
}

// ParseAction converts a form or JSON value to an Action.
func ParseAction(raw string) (Action, error) {
	a := Action(raw)
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
	return a, nil
}

// Apply runs action against text and sel.
func Apply(action Action, text string, sel Selection) (string, Selection, error) {
	m, ok := actionMarkers[action]
	if !ok {
		return "", Selection{}, fmt.Errorf("%w: %q", ErrUnknownAction, string(action))
	}
	out, next := Insert(text, sel, m.before, m.after)
	return out, next, nil
}

// ActionNames returns the string form of every action, for OpenAPI enums.
func ActionNames() []string {
	actions := Actions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return names
}
