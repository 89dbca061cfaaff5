package model

import (
	"fmt"
	"html"
	"strings"
)

// Day is the menu served on one date.
type Day struct {
	// Date is the calendar date the items are served on
	Date Date `json:"date"`

	// Items are the item names in top-to-bottom order
	Items []string `json:"dishes"`
}

// Clone returns a copy of d that shares no memory with it.
func (d Day) Clone() Day {
	items := make([]string, len(d.Items))
	copy(items, d.Items)
	return Day{Date: d.Date, Items: items}
}

// HasItem reports whether any item contains query, ignoring case.
func (d Day) HasItem(query string) bool {
	query = strings.ToLower(query)
	for _, item := range d.Items {
		if strings.Contains(strings.ToLower(item), query) {
			return true
		}
	}
	return false
}

// PlainText renders the items either as a "- item" list, one per line, or,
// when human is set, as a French sentence such as
// "Au menu : Salade, Poulet et Riz."
func (d Day) PlainText(human bool) string {
	if !human {
		lines := make([]string, len(d.Items))
		for i, item := range d.Items {
			lines[i] = "- " + item
		}
		return strings.Join(lines, "\n")
	}

	if len(d.Items) >= 2 {
		last := len(d.Items) - 1
		return fmt.Sprintf("Au menu : %s et %s.", strings.Join(d.Items[:last], ", "), d.Items[last])
	}
	return fmt.Sprintf("Au menu : %s.", strings.Join(d.Items, ", "))
}

// HTML renders the items as an unordered list.
func (d Day) HTML() string {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, item := range d.Items {
		sb.WriteString("<li>")
		sb.WriteString(html.EscapeString(item))
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}
