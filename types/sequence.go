package types

// SequenceType is the type of an ordered, possibly unbounded, stream of elements of the same type.
// It renders as the element type followed by "*", e.g. "int64*".
type SequenceType struct {
	Element Type
}

// Sequence returns the sequence type of the given element type.
func Sequence(element Type) *SequenceType {
	return &SequenceType{Element: element}
}

func (*SequenceType) isType() {}

// Kind implements Type.
func (t *SequenceType) Kind() Kind { return KindSequence }

// String implements Type.
func (t *SequenceType) String() string {
	return render(t.Element) + "*"
}
