// Package menutest builds menu documents for tests.
package menutest

import (
	"fmt"
	"html"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/cantine/model"
)

// Rows are the tops of the header and item rows, clear of the category
// bands of the a4-landscape profile.
var Rows = []int{125, 170, 200, 260, 290, 340, 370, 430}

var weekdays = [...]string{"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}

var months = [...]string{"", "janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre"}

// Header returns the worded column header of d, such as "Lundi 11 mars".
func Header(d model.Date) string {
	return fmt.Sprintf("%s %d %s", weekdays[d.Weekday()], d.Day, months[d.Month])
}

// Week returns the five days of the ISO week starting on monday, each with
// a few distinct items.
func Week(monday model.Date) []model.Day {
	days := make([]model.Day, 5)
	for i := range days {
		d := monday.AddDays(i)
		days[i] = model.Day{Date: d, Items: []string{
			fmt.Sprintf("Entrée du %d", d.Day),
			fmt.Sprintf("Plat du %d", d.Day),
			fmt.Sprintf("Dessert du %d", d.Day),
		}}
	}
	return days
}

// Fragments lays days out as one page, a column per day.
func Fragments(days []model.Day) []model.Fragment {
	var frags []model.Fragment
	for c, day := range days {
		left := 40 + c*160
		frags = append(frags, model.Fragment{Top: Rows[0], Left: left, Text: Header(day.Date), Ink: model.InkDefault})
		for i, item := range day.Items {
			frags = append(frags, model.Fragment{Top: Rows[i+1], Left: left, Text: item, Ink: model.InkDefault})
		}
	}
	return frags
}

// HTML renders pages of days as a positioned HTML dump on a4-landscape
// pages.
func HTML(pages ...[]model.Day) []byte {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html><body>\n")
	for _, days := range pages {
		sb.WriteString("<div style='width: 842px; height: 595px'>\n")
		// the week banner is outside the content band
		sb.WriteString("<div style='top: 60px; left: 300px; color: #1a1a1a'>Menu de la semaine</div>\n")
		for _, f := range Fragments(days) {
			fmt.Fprintf(&sb, "<div style='top: %dpx; left: %dpx'>%s</div>\n", f.Top, f.Left, html.EscapeString(f.Text))
		}
		sb.WriteString("</div>\n")
	}
	sb.WriteString("</body></html>\n")
	return []byte(sb.String())
}

// PDF renders days as a single a4-landscape page PDF whose text is shown
// with a WinAnsi encoded Helvetica.
func PDF(days []model.Day) []byte {
	var stream strings.Builder
	for _, f := range Fragments(days) {
		fmt.Fprintf(&stream, "BT /F1 10 Tf 1 0 0 1 %d %d Tm (%s) Tj ET\n", f.Left, 595-f.Top, pdfString(f.Text))
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 842 595] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", stream.Len(), stream.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return []byte(b.String())
}

// pdfString encodes s as the body of a literal string.
func pdfString(s string) string {
	encoded, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil {
		panic(fmt.Sprintf("menutest: %q is not WinAnsi: %v", s, err))
	}
	var sb strings.Builder
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		switch {
		case c == '(' || c == ')' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c >= 0x80:
			fmt.Fprintf(&sb, "\\%03o", c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Clock returns a clock stopped at t.
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
