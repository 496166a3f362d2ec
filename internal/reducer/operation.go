package reducer

import "fmt"

// Operation identifies the binary operator the fold applies.
type Operation int

const (
	Add Operation = iota
	Sub
	Mul
	Div
)

// ParseOperation maps a subcommand name to its Operation.
func ParseOperation(name string) (Operation, error) {
	switch name {
	case "add":
		return Add, nil
	case "sub":
		return Sub, nil
	case "mul":
		return Mul, nil
	case "div":
		return Div, nil
	}
	return 0, fmt.Errorf("unknown operation %q", name)
}

func (op Operation) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// Identity returns the operand that leaves op's result unchanged: 0 for
// addition and subtraction, 1 for multiplication and division.
func (op Operation) Identity() float64 {
	switch op {
	case Mul, Div:
		return 1
	default:
		return 0
	}
}

// Apply evaluates op over two operands in order. Division follows IEEE-754
// semantics, so dividing by zero yields an infinity or NaN rather than an
// error.
func (op Operation) Apply(a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Div:
		return a / b
	}
	return 0
}
