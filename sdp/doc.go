// Package sdp implements a zero-copy decoder for SDP session descriptions
// (RFC 4566).
//
// The decoder makes a single forward pass over the input buffer, enforcing
// the RFC field order and extracting the operationally relevant fields
// (origin, session name, connection data, timing, media lines and
// attributes). Informational fields (i=, u=, e=, p=, b=, z=, k=, r=) are
// recognized for ordering purposes but their content is discarded.
//
// All byte-slice fields of the resulting [Session] alias the input buffer:
// no field content is copied, so the buffer must stay valid and unmodified
// for as long as the Session is used.
package sdp
