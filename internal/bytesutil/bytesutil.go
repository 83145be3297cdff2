// Package bytesutil provides conversions from raw byte spans to typed values.
package bytesutil

//go:generate errtrace -w .

import (
	"strconv"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/constraints"
	"github.com/ghettovoice/gosdp/internal/errorutil"
)

const (
	// ErrInvalidEncoding is returned when a span is not well-formed UTF-8 text.
	ErrInvalidEncoding errorutil.Error = "invalid text encoding"
	// ErrMalformedNumber is returned when a span is not a decimal number
	// representable in the target type.
	ErrMalformedNumber errorutil.Error = "malformed number"
)

// ToInt converts a byte span to the target integer type T.
//
// The span must be well-formed UTF-8 holding a decimal number that fits T.
// Encoding and parse failures are reported through distinct sentinels,
// [ErrInvalidEncoding] and [ErrMalformedNumber].
func ToInt[T constraints.Integer](b []byte) (T, error) {
	if !utf8.Valid(b) {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidEncoding, "%q", b))
	}
	var zero T
	if isSigned(zero) {
		i, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedNumber, err))
		}
		v := T(i)
		if int64(v) != i {
			return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedNumber, "%d overflows target type", i))
		}
		return v, nil
	}
	u, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedNumber, err))
	}
	v := T(u)
	if uint64(v) != u {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedNumber, "%d overflows target type", u))
	}
	return v, nil
}

func isSigned[T constraints.Integer](zero T) bool { return zero-1 < zero }
