package graphicsstate

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/cantine/contentstream"
)

// Span is one shown string, positioned at its text origin in user space.
type Span struct {
	X, Y float64
	Text string
	Font string
	Fill color.Color
}

// Decoder turns the raw bytes of a shown string into text, given the font
// resource name selected by Tf.
type Decoder func(font string, raw []byte) string

// TextExtractor collects the text spans of a content stream.
type TextExtractor struct {
	gs     *GraphicsState
	decode Decoder
	spans  []Span
}

// NewTextExtractor creates an extractor. A nil decode reads bytes as Latin-1.
func NewTextExtractor(decode Decoder) *TextExtractor {
	if decode == nil {
		decode = latin1
	}
	return &TextExtractor{gs: NewGraphicsState(), decode: decode}
}

// State exposes the graphics state, mostly for tests.
func (te *TextExtractor) State() *GraphicsState {
	return te.gs
}

// Extract processes ops in order and returns the spans shown so far. An
// unbalanced Q is the only error; unknown operators and operators with
// unexpected operands are skipped.
func (te *TextExtractor) Extract(ops []contentstream.Operation) ([]Span, error) {
	for _, op := range ops {
		if err := te.process(op); err != nil {
			return te.spans, err
		}
	}
	return te.spans, nil
}

// ExtractBytes parses a content stream and extracts its spans.
func (te *TextExtractor) ExtractBytes(data []byte) ([]Span, error) {
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return nil, err
	}
	return te.Extract(ops)
}

func (te *TextExtractor) process(op contentstream.Operation) error {
	gs := te.gs
	nums, allNumbers := op.Numbers()

	switch op.Operator {
	case "q":
		gs.Save()
	case "Q":
		return gs.Restore()
	case "cm":
		if allNumbers && len(nums) == 6 {
			gs.Transform(toMatrix(nums))
		}

	case "g":
		if allNumbers && len(nums) == 1 {
			gs.SetFillGray(nums[0])
		}
	case "rg":
		if allNumbers && len(nums) == 3 {
			gs.SetFillRGB(nums[0], nums[1], nums[2])
		}
	case "k":
		if allNumbers && len(nums) == 4 {
			gs.SetFillCMYK(nums[0], nums[1], nums[2], nums[3])
		}
	case "sc", "scn":
		// scn may end with a pattern name; the leading components still count
		var comps []float64
		for i := range op.Operands {
			if n, ok := op.Number(i); ok {
				comps = append(comps, n)
			}
		}
		gs.SetFillComponents(comps)

	case "BT":
		gs.BeginText()
	case "Tf":
		if name, ok := op.Name(0); ok {
			gs.Text.Font = name
		}
		if size, ok := op.Number(1); ok {
			gs.Text.FontSize = size
		}
	case "Tc":
		if allNumbers && len(nums) == 1 {
			gs.Text.CharSpacing = nums[0]
		}
	case "Tw":
		if allNumbers && len(nums) == 1 {
			gs.Text.WordSpacing = nums[0]
		}
	case "Tz":
		if allNumbers && len(nums) == 1 {
			gs.Text.HorizontalScaling = nums[0]
		}
	case "TL":
		if allNumbers && len(nums) == 1 {
			gs.Text.Leading = nums[0]
		}
	case "Ts":
		if allNumbers && len(nums) == 1 {
			gs.Text.Rise = nums[0]
		}
	case "Tm":
		if allNumbers && len(nums) == 6 {
			gs.SetTextMatrix(toMatrix(nums))
		}
	case "Td":
		if allNumbers && len(nums) == 2 {
			gs.MoveText(nums[0], nums[1])
		}
	case "TD":
		if allNumbers && len(nums) == 2 {
			gs.Text.Leading = -nums[1]
			gs.MoveText(nums[0], nums[1])
		}
	case "T*":
		gs.NextLine()

	case "Tj":
		if raw, ok := op.String(0); ok {
			te.show(raw)
		}
	case "'":
		gs.NextLine()
		if raw, ok := op.String(0); ok {
			te.show(raw)
		}
	case `"`:
		if len(op.Operands) == 3 {
			if aw, ok := op.Number(0); ok {
				gs.Text.WordSpacing = aw
			}
			if ac, ok := op.Number(1); ok {
				gs.Text.CharSpacing = ac
			}
			gs.NextLine()
			if raw, ok := op.String(2); ok {
				te.show(raw)
			}
		}
	case "TJ":
		if arr, ok := op.Array(0); ok {
			te.showArray(arr)
		}
	}
	return nil
}

// showArray emits a TJ array as one span. Large negative adjustments are
// word gaps in practice and become a space.
func (te *TextExtractor) showArray(arr contentstream.Array) {
	const wordGap = -200

	var (
		sb    strings.Builder
		first = true
		x, y  float64
	)
	for _, el := range arr {
		switch v := el.(type) {
		case contentstream.String:
			if first {
				x, y = te.gs.Origin()
				first = false
			}
			text := te.decode(te.gs.Text.Font, v)
			sb.WriteString(text)
			te.gs.Advance(te.gs.Displacement(utf8.RuneCountInString(text), strings.Count(text, " ")))
		case contentstream.Number:
			if float64(v) <= wordGap && !first && !strings.HasSuffix(sb.String(), " ") {
				sb.WriteByte(' ')
			}
			te.gs.Kern(float64(v))
		}
	}
	if !first && sb.Len() > 0 {
		te.emit(x, y, sb.String())
	}
}

func (te *TextExtractor) show(raw []byte) {
	text := te.decode(te.gs.Text.Font, raw)
	x, y := te.gs.Origin()
	te.emit(x, y, text)
	te.gs.Advance(te.gs.Displacement(utf8.RuneCountInString(text), strings.Count(text, " ")))
}

func (te *TextExtractor) emit(x, y float64, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	te.spans = append(te.spans, Span{X: x, Y: y, Text: text, Font: te.gs.Text.Font, Fill: te.gs.Fill})
}

func toMatrix(v []float64) Matrix {
	var m Matrix
	copy(m[:], v)
	return m
}

func latin1(_ string, raw []byte) string {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}
