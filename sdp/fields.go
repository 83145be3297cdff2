package sdp

import (
	"bytes"
	"math"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/bytesutil"
	"github.com/ghettovoice/gosdp/internal/errorutil"
)

// ntpEpochOffset is the number of seconds between the NTP epoch (1900) and
// the Unix epoch (1970), subtracted from t= values to produce Unix time.
const ntpEpochOffset = 2208988800

// mainToken handles a token boundary inside a session-level field value.
// tok is nil when the boundary closed no open token (consecutive spaces).
func (p *parser) mainToken(tok []byte) (bool, error) {
	switch p.op {
	case opVersion:
		return false, errtrace.Wrap(ErrDuplicateVersion)
	case opOrigin:
		if p.oCount == len(p.oFields) {
			return false, errtrace.Wrap(ErrBadOrigin)
		}
		if tok != nil {
			p.oFields[p.oCount] = tok
			p.oCount++
		}
	case opSessionName:
		return false, errtrace.Wrap(ErrDuplicateName)
	case opInfo, opURI, opEmail, opPhone, opBandwidth, opZone, opKey:
		// ordering-only fields, content discarded
	case opConnection:
		if p.cCount == len(p.cFields) {
			return false, errtrace.Wrap(ErrBadConnection)
		}
		if tok != nil {
			p.cFields[p.cCount] = tok
			p.cCount++
		}
	case opAttribute:
		return true, nil
	default:
		return false, errtrace.Wrap(errUnknownMainField)
	}
	return false, nil
}

// mainLine finalizes a session-level field at its line terminator.
func (p *parser) mainLine(tok []byte) error {
	switch p.op {
	case opVersion:
		if tok != nil {
			p.version = tok
		}
	case opOrigin:
		if p.oCount < len(p.oFields) {
			return errtrace.Wrap(ErrIncompleteOrigin)
		}
		if tok != nil {
			p.origin = &Origin{
				UserID:         p.oFields[0],
				SessionID:      p.oFields[1],
				SessionVersion: p.oFields[2],
				NetworkType:    p.oFields[3],
				AddressType:    p.oFields[4],
				UnicastAddress: tok,
			}
		}
	case opSessionName:
		if tok != nil {
			p.name = tok
		}
	case opInfo, opURI, opEmail, opPhone, opBandwidth, opZone, opKey:
	case opConnection:
		cd, err := p.closeConnection(tok)
		if err != nil {
			return errtrace.Wrap(err)
		}
		if cd != nil {
			p.conn = cd
		}
	case opAttribute:
		if tok != nil {
			p.attrs = append(p.attrs, tok)
		}
	default:
		return errtrace.Wrap(errUnknownMainField)
	}
	return nil
}

// timeToken handles a token boundary inside a timing-section field value.
func (p *parser) timeToken(tok []byte) (bool, error) {
	switch p.op {
	case opTime:
		if tok != nil {
			p.tStart = tok
		}
	case opRepeat, opZone, opKey:
		// ordering-only fields, content discarded
	case opAttribute:
		return true, nil
	default:
		return false, errtrace.Wrap(errUnknownTimeField)
	}
	return false, nil
}

// timeLine finalizes a timing-section field at its line terminator.
func (p *parser) timeLine(tok []byte) error {
	switch p.op {
	case opTime:
		if p.tStart == nil || tok == nil {
			return errtrace.Wrap(ErrBadTime)
		}
		start, err := decodeTime(p.tStart, 0)
		if err != nil {
			return errtrace.Wrap(err)
		}
		end, err := decodeTime(tok, math.MaxUint64)
		if err != nil {
			return errtrace.Wrap(err)
		}
		p.startTime, p.endTime = start, end
	case opRepeat, opZone, opKey:
	case opAttribute:
		if tok != nil {
			p.attrs = append(p.attrs, tok)
		}
	default:
		return errtrace.Wrap(errUnknownTimeField)
	}
	return nil
}

// mediaToken handles a token boundary inside a media-block field value.
// Under opNone the tokens are the positional m= header fields.
func (p *parser) mediaToken(tok []byte) (bool, error) {
	switch p.op {
	case opNone:
		if tok == nil {
			return false, nil
		}
		switch {
		case p.media.typ == nil:
			p.media.typ = tok
		case !p.media.portSet:
			if err := p.media.setPort(tok); err != nil {
				return false, errtrace.Wrap(err)
			}
		case p.media.proto == nil:
			p.media.proto = tok
		default:
			p.media.formats = append(p.media.formats, tok)
		}
	case opInfo, opBandwidth, opKey:
		// ordering-only fields, content discarded
	case opConnection:
		if p.cCount == len(p.cFields) {
			return false, errtrace.Wrap(ErrBadConnection)
		}
		if tok != nil {
			p.cFields[p.cCount] = tok
			p.cCount++
		}
	case opAttribute:
		return true, nil
	default:
		return false, errtrace.Wrap(errUnknownMediaField)
	}
	return false, nil
}

// mediaLine finalizes a media-block field at its line terminator.
func (p *parser) mediaLine(tok []byte) error {
	switch p.op {
	case opNone:
		if tok != nil {
			p.media.formats = append(p.media.formats, tok)
		}
	case opConnection:
		cd, err := p.closeConnection(tok)
		if err != nil {
			return errtrace.Wrap(err)
		}
		if cd != nil {
			p.media.conn = cd
		}
	case opAttribute:
		if tok != nil {
			p.media.attrs = append(p.media.attrs, tok)
		}
	default:
		// i=, b=, k= carry no retained content inside a media block
	}
	return nil
}

// closeConnection assembles a c= line at its terminator; tok is the final
// token or nil when the line ended with no open token.
func (p *parser) closeConnection(tok []byte) (*ConnectionData, error) {
	if p.cCount < len(p.cFields) {
		return nil, errtrace.Wrap(ErrIncompleteConnection)
	}
	if tok == nil {
		return nil, nil
	}
	return &ConnectionData{
		NetworkType: p.cFields[0],
		AddressType: p.cFields[1],
		Address:     tok,
	}, nil
}

// setPort splits an m= port token on the first '/' into port and port
// count; a bare port implies a count of one.
func (m *mediaState) setPort(tok []byte) error {
	if idx := bytes.IndexByte(tok, '/'); idx >= 0 {
		port, err := bytesutil.ToInt[uint16](tok[:idx])
		if err != nil {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrBadMediaPort, err))
		}
		cnt, err := bytesutil.ToInt[int32](tok[idx+1:])
		if err != nil {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrBadMediaPort, err))
		}
		m.port, m.portCnt = port, cnt
	} else {
		port, err := bytesutil.ToInt[uint16](tok)
		if err != nil {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrBadMediaPort, err))
		}
		m.port, m.portCnt = port, 1
	}
	m.portSet = true
	return nil
}

// decodeTime translates one t= timestamp: the literal "0" maps to the
// sentinel, anything else is an NTP timestamp shifted to the Unix epoch.
func decodeTime(tok []byte, sentinel uint64) (uint64, error) {
	if len(tok) == 1 && tok[0] == '0' {
		return sentinel, nil
	}
	v, err := bytesutil.ToInt[uint64](tok)
	if err != nil {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrBadTime, err))
	}
	return v - ntpEpochOffset, nil
}
