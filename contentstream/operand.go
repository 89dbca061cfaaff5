package contentstream

// Operand is a value pushed before an operator.
type Operand interface {
	operand()
}

// Number is an integer or real operand.
type Number float64

// String is a literal or hex string operand. The bytes are raw and still in
// the font encoding.
type String []byte

// Name is a /Name operand without its leading slash.
type Name string

// Array is a [...] operand.
type Array []Operand

// Dict is a <<...>> operand, found in marked content properties.
type Dict map[string]Operand

// Bool is true or false.
type Bool bool

// Null is the null object.
type Null struct{}

func (Number) operand() {}
func (String) operand() {}
func (Name) operand()   {}
func (Array) operand()  {}
func (Dict) operand()   {}
func (Bool) operand()   {}
func (Null) operand()   {}

// Operation is an operator with the operands that preceded it.
type Operation struct {
	Operator string
	Operands []Operand
}

// Number returns operand i as a float.
func (op Operation) Number(i int) (float64, bool) {
	if i < 0 || i >= len(op.Operands) {
		return 0, false
	}
	n, ok := op.Operands[i].(Number)
	return float64(n), ok
}

// Numbers returns all operands as floats, failing if any is not a number.
func (op Operation) Numbers() ([]float64, bool) {
	out := make([]float64, len(op.Operands))
	for i := range op.Operands {
		n, ok := op.Number(i)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// String returns operand i as raw string bytes.
func (op Operation) String(i int) ([]byte, bool) {
	if i < 0 || i >= len(op.Operands) {
		return nil, false
	}
	s, ok := op.Operands[i].(String)
	return []byte(s), ok
}

// Name returns operand i as a name.
func (op Operation) Name(i int) (string, bool) {
	if i < 0 || i >= len(op.Operands) {
		return "", false
	}
	n, ok := op.Operands[i].(Name)
	return string(n), ok
}

// Array returns operand i as an array.
func (op Operation) Array(i int) (Array, bool) {
	if i < 0 || i >= len(op.Operands) {
		return nil, false
	}
	a, ok := op.Operands[i].(Array)
	return a, ok
}
