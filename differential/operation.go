package differential

import (
	"errors"
	"fmt"

	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
	"github.com/dolthub/swiss"
)

type OperationKind int

const (
	KindField = OperationKind(iota)
	KindPoint
)

func (k OperationKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindPoint:
		return "point"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Operation describes one law under test.
type Operation struct {
	Name  string
	Arity int
	Kind  OperationKind
	// Predicate operations produce a 0/1 result instead of an element.
	Predicate bool
	// Batch is the number of invocations per timed benchmark batch.
	Batch int
}

func (o Operation) String() string {
	return o.Kind.String() + "/" + o.Name
}

// FieldOperations lists field operations in comparison order. sqrt is always
// applied to a square, pow raises the first operand to the integer value of the second.
var FieldOperations = []Operation{
	{Name: "add", Arity: 2, Kind: KindField, Batch: 1000000},
	{Name: "mul", Arity: 2, Kind: KindField, Batch: 300000},
	{Name: "sub", Arity: 2, Kind: KindField, Batch: 1000000},
	{Name: "sq", Arity: 1, Kind: KindField, Batch: 300000},
	{Name: "dbl", Arity: 1, Kind: KindField, Batch: 1000000},
	{Name: "inv", Arity: 1, Kind: KindField, Batch: 1000},
	{Name: "sqrt", Arity: 1, Kind: KindField, Batch: 500},
	{Name: "pow", Arity: 2, Kind: KindField, Batch: 500},
	{Name: "neg", Arity: 1, Kind: KindField, Batch: 1000000},
	{Name: "is-odd", Arity: 1, Kind: KindField, Predicate: true, Batch: 1000000},
	{Name: "is-even", Arity: 1, Kind: KindField, Predicate: true, Batch: 1000000},
}

// PointOperations lists group operations in comparison order. mul multiplies the
// first operand by the scalar, mul-gen the generator, mul-base uses the fixed-base path.
var PointOperations = []Operation{
	{Name: "add", Arity: 2, Kind: KindPoint, Batch: 10000},
	{Name: "mul", Arity: 2, Kind: KindPoint, Batch: 50},
	{Name: "mul-gen", Arity: 1, Kind: KindPoint, Batch: 50},
	{Name: "mul-base", Arity: 1, Kind: KindPoint, Batch: 50},
	{Name: "sub", Arity: 2, Kind: KindPoint, Batch: 10000},
	{Name: "dbl", Arity: 1, Kind: KindPoint, Batch: 10000},
	{Name: "neg", Arity: 1, Kind: KindPoint, Batch: 100000},
}

var ErrUnknownOperation = errors.New("unknown operation")

type operationKey struct {
	kind OperationKind
	name string
}

var operations = func() *swiss.Map[operationKey, Operation] {
	m := swiss.NewMap[operationKey, Operation](uint32(len(FieldOperations) + len(PointOperations)))
	for _, op := range FieldOperations {
		m.Put(operationKey{op.Kind, op.Name}, op)
	}
	for _, op := range PointOperations {
		m.Put(operationKey{op.Kind, op.Name}, op)
	}
	return m
}()

// LookupOperation finds a descriptor by kind and name.
func LookupOperation(kind OperationKind, name string) (Operation, error) {
	if op, ok := operations.Get(operationKey{kind, name}); ok {
		return op, nil
	}
	return Operation{}, fmt.Errorf("%w: %s/%s", ErrUnknownOperation, kind, name)
}

// FieldKernel binds op to its operands. The kernel writes element results to out
// and predicate results to bit.
func FieldKernel[F any, VF curve.Field[F]](op Operation, out, a, b *F, bit *int) (func() error, error) {
	switch op.Name {
	case "add":
		return func() error { VF(out).Add(a, b); return nil }, nil
	case "mul":
		return func() error { VF(out).Multiply(a, b); return nil }, nil
	case "sub":
		return func() error { VF(out).Subtract(a, b); return nil }, nil
	case "sq":
		return func() error { VF(out).Square(a); return nil }, nil
	case "dbl":
		return func() error { VF(out).Double(a); return nil }, nil
	case "inv":
		return func() error {
			_, err := VF(out).Invert(a)
			return err
		}, nil
	case "sqrt":
		return func() error {
			_, err := VF(out).Sqrt(a)
			return err
		}, nil
	case "pow":
		return func() error { VF(out).Pow(a, b); return nil }, nil
	case "neg":
		return func() error { VF(out).Negate(a); return nil }, nil
	case "is-odd":
		return func() error { *bit = VF(a).IsOdd(); return nil }, nil
	case "is-even":
		return func() error { *bit = VF(a).IsEven(); return nil }, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
}

// PointKernel binds op to its operands, writing the result to out.
func PointKernel[P, S any, VP curve.CurvePoint[P, S]](op Operation, out, a, b *P, s *S) (func() error, error) {
	switch op.Name {
	case "add":
		return func() error { VP(out).Add(a, b); return nil }, nil
	case "mul":
		return func() error { VP(out).ScalarMult(s, a); return nil }, nil
	case "mul-gen":
		g := VP(new(P)).Generator()
		return func() error { VP(out).ScalarMult(s, g); return nil }, nil
	case "mul-base":
		return func() error { VP(out).ScalarBaseMult(s); return nil }, nil
	case "sub":
		return func() error { VP(out).Subtract(a, b); return nil }, nil
	case "dbl":
		return func() error { VP(out).Double(a); return nil }, nil
	case "neg":
		return func() error { VP(out).Negate(a); return nil }, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
}
