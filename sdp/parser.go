package sdp

//go:generate errtrace -w .

import (
	"fmt"
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/errorutil"
	"github.com/ghettovoice/gosdp/internal/log"
)

// Parser is an interface for parsing SDP session descriptions.
type Parser interface {
	// ParseSession parses a single session description from the given buffer b.
	//
	// Any implementations must satisfy the following contract:
	// - byte-slice fields of the result alias b and must not outlive it;
	// - in success case, it returns a [Session] and nil error;
	// - on any fatal condition it returns a nil Session and non-nil error;
	// - out-of-order and unrecognized lines are skipped, not reported.
	ParseSession(b []byte) (*Session, error)
}

var defParser = &DefaultParser{}

// Parse parses a session description from the given buffer b using the
// default parser. See [DefaultParser.ParseSession] for details.
func Parse(b []byte) (*Session, error) { return defParser.ParseSession(b) }

// DefaultParser implements the [Parser] interface.
//
// It decodes a session description in one forward pass over the buffer
// without copying field content: every byte-slice field of the result is a
// sub-slice of the input. The pass is driven by a (phase, section, operator)
// automaton that enforces the RFC 4566 field order; a line that is out of
// order or starts with an unrecognized character is discarded up to its
// terminator and parsing resumes, while malformed values of retained fields
// abort the whole parse with a [ParseError].
//
// The zero value is ready to use. A DefaultParser holds no state between
// calls and is safe for concurrent use.
type DefaultParser struct {
	// Logger receives parse diagnostics: fatal conditions at warn level,
	// skipped lines at debug level. If nil, a default console logger is used.
	Logger *slog.Logger
}

func (p *DefaultParser) log() *slog.Logger {
	if p == nil || p.Logger == nil {
		return log.Def
	}
	return p.Logger
}

// ParseSession parses a single session description from the given buffer b.
//
// In success case, it returns a [Session] whose byte-slice fields alias b.
// On any fatal condition it returns a nil Session and a non-nil *[ParseError].
func (p *DefaultParser) ParseSession(b []byte) (*Session, error) {
	pr := parser{buf: b, log: p.log(), spanStart: -1}
	sess, err := pr.run()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return sess, nil
}

// ParseError represents a fatal condition found while parsing.
//
// It carries the sentinel condition (see [Error] constants), the byte offset
// at which parsing stopped and the offending line as far as it was read.
type ParseError struct {
	Err    error
	Offset int
	Data   []byte
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %v", err.Offset, err.Err)
}

func (err *ParseError) Unwrap() error { return err.Err }

// Grammar reports whether the error was caused by malformed input.
func (err *ParseError) Grammar() bool { return errorutil.IsGrammarErr(err.Err) }

// parser is the per-call automaton state. It is local to one ParseSession
// invocation; nothing is shared between calls.
type parser struct {
	buf []byte
	log *slog.Logger

	phase   phase
	section section
	op      operator

	// spanStart is the offset where the currently open token began,
	// -1 when no token is open.
	spanStart int
	// lineStart is the offset of the current line's leading character.
	lineStart int

	// per-line scratch, reset whenever a new operator is accepted
	oFields [5][]byte // user id .. address type; the sixth closes at line end
	oCount  int
	cFields [2][]byte // network type, address type
	cCount  int
	tStart  []byte

	version   []byte
	origin    *Origin
	name      []byte
	conn      *ConnectionData
	startTime uint64
	endTime   uint64
	attrs     [][]byte
	medias    []Media

	media mediaState
}

// mediaState accumulates the media block currently being read.
type mediaState struct {
	typ     []byte
	port    uint16
	portCnt int32
	portSet bool
	proto   []byte
	formats [][]byte
	conn    *ConnectionData
	attrs   [][]byte
}

func (p *parser) run() (*Session, error) {
	for i := 0; i < len(p.buf); i++ {
		b := p.buf[i]
		switch p.phase {
		case phaseBegin:
			p.begin(i, b)
		case phaseSet:
			p.set(b)
		case phaseReading:
			var err error
			switch b {
			case '\r', '\n':
				err = p.closeLine(i)
				p.spanStart = -1
				p.phase = phaseBegin
			case ' ':
				var freeform bool
				freeform, err = p.closeToken(i)
				if !freeform {
					p.spanStart = -1
				}
			default:
				if p.spanStart < 0 {
					p.spanStart = i
				}
			}
			if err != nil {
				return nil, errtrace.Wrap(p.fatal(err, i))
			}
		case phaseSkipLine:
			if b == '\r' || b == '\n' {
				p.phase = phaseBegin
			}
		}
	}

	p.finishMedia()

	if p.version == nil || p.origin == nil || p.name == nil {
		return nil, errtrace.Wrap(p.fatal(ErrIncompleteSession, len(p.buf)))
	}
	return &Session{
		Version:    p.version,
		Origin:     *p.origin,
		Name:       p.name,
		Connection: p.conn,
		StartTime:  p.startTime,
		EndTime:    p.endTime,
		Attributes: p.attrs,
		Medias:     p.medias,
	}, nil
}

// begin inspects a line's leading character and decides whether the field is
// legal at this point of the description. An illegal or unrecognized field
// discards the line; it does not abort the parse.
func (p *parser) begin(i int, b byte) {
	if b == '\r' || b == '\n' {
		return
	}
	p.lineStart = i
	next := operatorOf(b)

	switch p.section {
	case sectionMain:
		// strictly increasing field order; only a= repeats
		if p.op.order() < next.order() || (p.op == opAttribute && next == opAttribute) {
			p.accept(next)
			return
		}
	case sectionTime:
		// t, r, z, k, a, m interleave freely once timing started
		if next.order() >= opTime.order() {
			p.accept(next)
			return
		}
	case sectionMedia:
		if p.op.order() < next.order() && mediaField(next) {
			p.accept(next)
			return
		}
		if p.op == opAttribute && next == opAttribute {
			p.accept(next)
			return
		}
	}

	p.log.Debug("skip out-of-place line",
		slog.Int("offset", i),
		slog.String("field", string(b)),
	)
	p.phase = phaseSkipLine
}

func (p *parser) accept(next operator) {
	p.op = next
	p.phase = phaseSet
	p.oCount = 0
	p.cCount = 0
	p.tStart = nil
}

// set expects the '=' right after an accepted leading character. It is also
// the point where t=/r= enter the timing section and where m= finalizes the
// previous media block and opens a new one.
func (p *parser) set(b byte) {
	switch b {
	case '=':
		switch p.op {
		case opTime, opRepeat:
			p.section = sectionTime
		case opMedia:
			p.finishMedia()
			p.op = opNone
			p.section = sectionMedia
		}
		p.phase = phaseReading
	case '\r', '\n':
		p.phase = phaseBegin
	default:
		p.phase = phaseSkipLine
	}
}

// closeToken routes the token ending at i into the current field's next
// positional slot. It reports whether the field consumes the rest of the
// line as one freeform token (attribute values only).
func (p *parser) closeToken(i int) (bool, error) {
	tok := p.openSpan(i)
	switch p.section {
	case sectionMain:
		return errtrace.Wrap2(p.mainToken(tok))
	case sectionTime:
		return errtrace.Wrap2(p.timeToken(tok))
	default:
		return errtrace.Wrap2(p.mediaToken(tok))
	}
}

// closeLine finalizes the current field at the line terminator at i.
func (p *parser) closeLine(i int) error {
	tok := p.openSpan(i)
	switch p.section {
	case sectionMain:
		return errtrace.Wrap(p.mainLine(tok))
	case sectionTime:
		return errtrace.Wrap(p.timeLine(tok))
	default:
		return errtrace.Wrap(p.mediaLine(tok))
	}
}

// openSpan returns the currently open token ending at i, or nil when no
// token is open.
func (p *parser) openSpan(i int) []byte {
	if p.spanStart < 0 {
		return nil
	}
	return p.buf[p.spanStart:i]
}

// finishMedia appends the in-progress media block if it carries the full
// positional header, then resets the accumulator.
func (p *parser) finishMedia() {
	if p.section == sectionMedia &&
		p.media.typ != nil && p.media.portSet && p.media.proto != nil && len(p.media.formats) > 0 {
		p.medias = append(p.medias, Media{
			Type:       p.media.typ,
			Port:       p.media.port,
			PortCount:  p.media.portCnt,
			Proto:      p.media.proto,
			Formats:    p.media.formats,
			Connection: p.media.conn,
			Attributes: p.media.attrs,
		})
	}
	p.media = mediaState{}
}

// fatal wraps a sentinel condition into a ParseError and emits the
// diagnostic.
func (p *parser) fatal(err error, i int) error {
	perr := &ParseError{Err: err, Offset: i, Data: p.line(i)}
	p.log.Warn("discard session description",
		slog.Any("error", err),
		slog.Int("offset", perr.Offset),
		slog.Any("line", log.StringValue(perr.Data)),
	)
	return perr
}

// line returns the bytes of the current line read so far, up to i.
func (p *parser) line(i int) []byte {
	if i < p.lineStart || i > len(p.buf) {
		return nil
	}
	return p.buf[p.lineStart:i]
}
