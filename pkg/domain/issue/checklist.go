package issue

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/courtside/pkg/domain/tracker"
)

// The checklist micro-format embedded in issue bodies:
//
//	- [ ] 1.1: Title of the sub-item
//	- [x] 1.2: A completed sub-item
//
// It is a de facto wire format: tracker UIs and human editors toggle the
// checkboxes, so both sides of the codec must agree on the grammar exactly.
// Parsing is an explicit line tokenizer rather than a regex so that the id
// boundary rule (id "1.1" must never match "1.10") is structural.

// ChecklistItem is one decoded checkbox line.
type ChecklistItem struct {
	ID        string
	Title     string
	Completed bool
}

// EncodeChecklist renders sub-items as checkbox lines in list order.
// An empty or absent list contributes nothing at all, not even a blank line.
func EncodeChecklist(items []tracker.SubItem) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	for i, item := range items {
		marker := " "
		if item.Status == tracker.SubItemDone {
			marker = "x"
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- [%s] %s: %s", marker, item.ID, item.Title)
	}
	return b.String()
}

// DecodeChecklist scans a body for checkbox lines and returns them in scan
// order. Checklist lines need not be contiguous; all other text is ignored.
func DecodeChecklist(body string) []ChecklistItem {
	var items []ChecklistItem
	for _, line := range strings.Split(body, "\n") {
		if item, ok := parseChecklistLine(line); ok {
			items = append(items, item)
		}
	}
	return items
}

// SetCompletion rewrites the checkbox marker of the line(s) carrying the
// given sub-item id and preserves every other byte of the body. Applying the
// same completion twice is a no-op the second time.
func SetCompletion(body, id string, completed bool) string {
	marker := byte(' ')
	if completed {
		marker = 'x'
	}

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		item, ok := parseChecklistLine(line)
		if !ok || item.ID != id {
			continue
		}
		// parseChecklistLine guarantees the marker is the byte between
		// "- [" and "]".
		lines[i] = line[:3] + string(marker) + line[4:]
	}
	return strings.Join(lines, "\n")
}

// parseChecklistLine tokenizes one line against the checkbox grammar
// "- [<marker>] <id>: <title>" with <id> = <integer>.<integer>.
func parseChecklistLine(line string) (ChecklistItem, bool) {
	if len(line) < 6 || line[0] != '-' || line[1] != ' ' || line[2] != '[' || line[4] != ']' || line[5] != ' ' {
		return ChecklistItem{}, false
	}

	var completed bool
	switch line[3] {
	case ' ':
	case 'x', 'X':
		completed = true
	default:
		return ChecklistItem{}, false
	}

	id, rest, ok := scanSubItemID(line[6:])
	if !ok {
		return ChecklistItem{}, false
	}

	// The separator anchors the id boundary.
	title, ok := strings.CutPrefix(rest, ": ")
	if !ok {
		return ChecklistItem{}, false
	}

	return ChecklistItem{ID: id, Title: title, Completed: completed}, true
}

// scanSubItemID consumes a maximal <integer>.<integer> token from the front
// of s and returns it together with the unconsumed remainder.
func scanSubItemID(s string) (id, rest string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '.' {
		return "", "", false
	}
	i++

	fracStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == fracStart {
		return "", "", false
	}

	return s[:i], s[i:], true
}
