package graphicsstate

import (
	"errors"
	"image/color"
)

// ErrStackUnderflow is returned by Restore without a matching Save.
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// TextState holds the text parameters of the graphics state.
type TextState struct {
	Font              string
	FontSize          float64
	CharSpacing       float64
	WordSpacing       float64
	HorizontalScaling float64 // percent
	Leading           float64
	Rise              float64

	Matrix     Matrix
	LineMatrix Matrix
}

// GraphicsState is the current graphics state plus its save stack.
type GraphicsState struct {
	CTM  Matrix
	Text TextState
	Fill color.Color

	stack []snapshot
}

type snapshot struct {
	ctm  Matrix
	text TextState
	fill color.Color
}

// NewGraphicsState returns the state at the start of a page: identity CTM,
// black fill.
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM:  Identity(),
		Fill: color.Black,
		Text: TextState{
			FontSize:          1,
			HorizontalScaling: 100,
			Matrix:            Identity(),
			LineMatrix:        Identity(),
		},
	}
}

// Save pushes the state (q).
func (gs *GraphicsState) Save() {
	gs.stack = append(gs.stack, snapshot{ctm: gs.CTM, text: gs.Text, fill: gs.Fill})
}

// Restore pops the state saved last (Q).
func (gs *GraphicsState) Restore() error {
	if len(gs.stack) == 0 {
		return ErrStackUnderflow
	}
	s := gs.stack[len(gs.stack)-1]
	gs.stack = gs.stack[:len(gs.stack)-1]
	gs.CTM, gs.Text, gs.Fill = s.ctm, s.text, s.fill
	return nil
}

// Depth returns the number of saved states.
func (gs *GraphicsState) Depth() int {
	return len(gs.stack)
}

// Transform concatenates m to the CTM (cm).
func (gs *GraphicsState) Transform(m Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// SetFillGray sets a DeviceGray fill (g).
func (gs *GraphicsState) SetFillGray(g float64) {
	v := channel(g)
	gs.Fill = color.RGBA{R: v, G: v, B: v, A: 0xff}
}

// SetFillRGB sets a DeviceRGB fill (rg).
func (gs *GraphicsState) SetFillRGB(r, g, b float64) {
	gs.Fill = color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 0xff}
}

// SetFillCMYK sets a DeviceCMYK fill (k).
func (gs *GraphicsState) SetFillCMYK(c, m, y, k float64) {
	gs.Fill = color.CMYK{C: channel(c), M: channel(m), Y: channel(y), K: channel(k)}
}

// SetFillComponents sets the fill from sc or scn operands, guessing the
// colour space from the number of components.
func (gs *GraphicsState) SetFillComponents(v []float64) {
	switch len(v) {
	case 1:
		gs.SetFillGray(v[0])
	case 3:
		gs.SetFillRGB(v[0], v[1], v[2])
	case 4:
		gs.SetFillCMYK(v[0], v[1], v[2], v[3])
	}
}

// BeginText resets the text matrices (BT).
func (gs *GraphicsState) BeginText() {
	gs.Text.Matrix = Identity()
	gs.Text.LineMatrix = Identity()
}

// SetTextMatrix sets both text matrices (Tm).
func (gs *GraphicsState) SetTextMatrix(m Matrix) {
	gs.Text.Matrix = m
	gs.Text.LineMatrix = m
}

// MoveText starts a new line offset from the current one (Td).
func (gs *GraphicsState) MoveText(tx, ty float64) {
	gs.Text.LineMatrix = Translate(tx, ty).Multiply(gs.Text.LineMatrix)
	gs.Text.Matrix = gs.Text.LineMatrix
}

// NextLine moves down by the leading (T*).
func (gs *GraphicsState) NextLine() {
	gs.MoveText(0, -gs.Text.Leading)
}

// Advance moves the text matrix right by tx text space units.
func (gs *GraphicsState) Advance(tx float64) {
	gs.Text.Matrix = Translate(tx, 0).Multiply(gs.Text.Matrix)
}

// Origin returns the current text origin in user space.
func (gs *GraphicsState) Origin() (x, y float64) {
	return gs.Text.Matrix.Multiply(gs.CTM).Apply(0, gs.Text.Rise)
}

// Displacement estimates the horizontal advance of a string of n characters,
// spaces of which are word separators.
func (gs *GraphicsState) Displacement(n, spaces int) float64 {
	const glyphWidth = 0.5 // average glyph width, in em
	t := gs.Text
	w := float64(n)*(glyphWidth*t.FontSize+t.CharSpacing) + float64(spaces)*t.WordSpacing
	return w * t.HorizontalScaling / 100
}

// Kern applies a TJ adjustment, in thousandths of an em.
func (gs *GraphicsState) Kern(adjust float64) {
	gs.Advance(-adjust / 1000 * gs.Text.FontSize * gs.Text.HorizontalScaling / 100)
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}
