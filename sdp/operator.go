package sdp

// operator identifies an SDP field by the leading character of its line.
// The ordinal value is the field's position in the RFC 4566 description
// order; opNone (zero) stands for unrecognized characters and for the
// positional m= header line.
type operator int

const (
	opNone operator = iota

	opVersion     // v
	opOrigin      // o
	opSessionName // s
	opInfo        // i
	opURI         // u
	opEmail       // e
	opPhone       // p
	opConnection  // c
	opBandwidth   // b

	opTime   // t
	opRepeat // r

	opZone      // z
	opKey       // k
	opAttribute // a

	opMedia // m
)

// order returns the operator's position in the RFC field order.
func (o operator) order() int { return int(o) }

// operatorOf maps a line's leading character to its operator.
func operatorOf(b byte) operator {
	switch b {
	case 'v':
		return opVersion
	case 'o':
		return opOrigin
	case 's':
		return opSessionName
	case 'i':
		return opInfo
	case 'u':
		return opURI
	case 'e':
		return opEmail
	case 'p':
		return opPhone
	case 'c':
		return opConnection
	case 'b':
		return opBandwidth
	case 't':
		return opTime
	case 'r':
		return opRepeat
	case 'z':
		return opZone
	case 'k':
		return opKey
	case 'a':
		return opAttribute
	case 'm':
		return opMedia
	default:
		return opNone
	}
}

// mediaField reports whether the operator may open a line inside
// a media block.
func mediaField(o operator) bool {
	switch o {
	case opInfo, opConnection, opBandwidth, opKey, opAttribute, opMedia:
		return true
	default:
		return false
	}
}

// phase is the scanner position inside the current line.
type phase int

const (
	phaseBegin    phase = iota // expecting a field's leading character
	phaseSet                   // expecting '=' after the leading character
	phaseReading               // consuming the field value
	phaseSkipLine              // discarding the rest of a rejected line
)

// section is the coarse document region deciding which operators are
// legal next.
type section int

const (
	sectionMain  section = iota // session-level fields
	sectionTime                 // timing fields onward
	sectionMedia                // inside a media block
)
