// Package model provides the data types shared by every stage of menu
// reconstruction.
//
// Raw input arrives as [Fragment] values: a pixel position, a text piece and an
// [Ink] colour class, together with the page [Dimensions]. The final output is
// a list of [Day] values, each holding a calendar [Date] and the ordered item
// names served that day.
//
// # Dates
//
// [Date] is a calendar date without a time zone. It formats as YYYY-MM-DD and
// supports the arithmetic the catalogue needs:
//
//	d, err := model.ParseDate("2024-03-13")
//	monday := d.AddDays(-int(d.Weekday()-time.Monday))
//	year, week := d.ISOWeek()
//
// # Text forms
//
// [Day] renders itself as a bullet list, as a French sentence suited to voice
// assistants, or as an HTML fragment:
//
//	day.PlainText(false) // "- Salade\n- Poulet"
//	day.PlainText(true)  // "Au menu : Salade et Poulet."
package model
