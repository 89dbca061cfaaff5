// Package graphicsstate follows the parts of the PDF graphics state that
// decide where text lands on a page and in which colour.
//
// The state is reduced to what text placement needs:
//   - CTM (cm, q, Q)
//   - text and text line matrices (BT, Tm, Td, TD, T*, ', ")
//   - font, size, spacing, horizontal scaling, leading and rise
//   - fill colour (g, rg, k, sc, scn)
//
// A TextExtractor walks the operations of a content stream and reports every
// shown string as a Span in default user space:
//
//	ops, _ := contentstream.NewParser(data).Parse()
//	spans, err := graphicsstate.NewTextExtractor(decode).Extract(ops)
//
// Glyph widths are not read from the fonts. Advances are estimated from the
// number of characters, which is enough to keep consecutive Tj on one line in
// order.
package graphicsstate
