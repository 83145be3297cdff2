package sdp

// Error represents an SDP parsing error.
type Error string

func (e Error) Error() string { return string(e) }

// Grammar marks the error as a malformed-input condition.
func (Error) Grammar() bool { return true }

// Fatal parsing conditions. Any of these aborts the whole parse;
// they surface wrapped in a [ParseError].
const (
	// ErrIncompleteOrigin is returned when an o= line ends before all six
	// of its fields are read.
	ErrIncompleteOrigin Error = "incomplete originator and session identifier"
	// ErrBadOrigin is returned when an o= line carries more than six fields.
	ErrBadOrigin Error = "bad originator and session identifier"
	// ErrDuplicateVersion is returned when a v= value holds more than
	// one token.
	ErrDuplicateVersion Error = "duplicated protocol version"
	// ErrDuplicateName is returned when an s= value holds more than
	// one token.
	ErrDuplicateName Error = "duplicated session name"
	// ErrIncompleteConnection is returned when a c= line ends before all
	// three of its fields are read.
	ErrIncompleteConnection Error = "incomplete connection information"
	// ErrBadConnection is returned when a c= line carries more than
	// three fields.
	ErrBadConnection Error = "bad connection information"
	// ErrBadTime is returned when a t= line is missing a timestamp or
	// holds a non-numeric one.
	ErrBadTime Error = "bad time description format"
	// ErrBadMediaPort is returned when the port (or port/count) field of
	// an m= line does not parse.
	ErrBadMediaPort Error = "bad media connection information format"
	// ErrIncompleteSession is returned when the input ends without a
	// version, origin or session name.
	ErrIncompleteSession Error = "incomplete sdp"
)

// Structurally impossible operator/section combinations. Unreachable as
// long as the ordering rules are sound.
const (
	errUnknownMainField  Error = "unknown description in main section"
	errUnknownTimeField  Error = "unknown description in time section"
	errUnknownMediaField Error = "unknown description in media section"
)
