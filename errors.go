package ttfont

import "fmt"

// Kind is a closed taxonomy of failure categories a Font operation can
// surface. There is no Kind for success: a nil error already means that.
type Kind int

const (
	// KindOpenFile means the underlying byte source could not be acquired.
	KindOpenFile Kind = iota + 1
	// KindOutOfMem means an allocation failed.
	KindOutOfMem
	// KindUnknownType means no registered loader claimed the stream.
	KindUnknownType
	// KindCorrupted means a required table is missing, a version field is
	// wrong, a point count exceeds the declared maximum, or compound-glyph
	// recursion failed.
	KindCorrupted
)

func (k Kind) String() string {
	switch k {
	case KindOpenFile:
		return "open file"
	case KindOutOfMem:
		return "out of memory"
	case KindUnknownType:
		return "unknown font type"
	case KindCorrupted:
		return "corrupted font"
	default:
		return "unknown error"
	}
}

// Error reports a font-loading failure. Every error this package returns
// can be type-asserted or matched with errors.Is against a Kind.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return "ttfont: " + e.Kind.String()
	}
	return fmt.Sprintf("ttfont: %s: %s", e.Kind, e.Reason)
}

// Is lets errors.Is(err, SomeKind) work by comparing against a bare Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

// Error satisfies the error interface for Kind itself, so callers can use
// a Kind directly as the target of errors.Is without constructing an Error.
func (k Kind) Error() string { return k.String() }

func corruptedf(format string, args ...any) error {
	return &Error{Kind: KindCorrupted, Reason: fmt.Sprintf(format, args...)}
}

func outOfMem(reason string) error {
	return &Error{Kind: KindOutOfMem, Reason: reason}
}
