package value

// ErrorCode identifies a formula error. The numeric values are persisted
// indirectly through the sheet file and must not be reordered.
type ErrorCode uint8

const (
	ErrGeneral        ErrorCode = 0 // malformed grammar or trailing garbage
	ErrTooManyArgs    ErrorCode = 1
	ErrTooFewArgs     ErrorCode = 2
	ErrBadArg         ErrorCode = 3 // type mismatch or malformed literal
	ErrEmpty          ErrorCode = 4 // internal: argument slot absent
	ErrDivZero        ErrorCode = 5
	ErrOutOfBounds    ErrorCode = 6
	ErrCycle          ErrorCode = 7
	ErrNoSuchFunction ErrorCode = 8
)

// NumErrorCodes is the number of defined error codes.
const NumErrorCodes = 9

var errorNames = [NumErrorCodes]string{
	"General",
	"TooManyArgs",
	"TooFewArgs",
	"BadArg",
	"Empty",
	"DivZero",
	"OutOfBounds",
	"Cycle",
	"NoSuchFunction",
}

// String returns the identifier of the code, not a user-facing message.
func (c ErrorCode) String() string {
	if int(c) < NumErrorCodes {
		return errorNames[c]
	}
	return "Unknown"
}

// Valid reports whether c is one of the defined codes.
func (c ErrorCode) Valid() bool {
	return int(c) < NumErrorCodes
}

// Surfaced maps the internal Empty sentinel to TooFewArgs. Every path that
// hands an error to a cell goes through it.
func (c ErrorCode) Surfaced() ErrorCode {
	if c == ErrEmpty {
		return ErrTooFewArgs
	}
	return c
}
