package sdp

import (
	"fmt"
	"log/slog"
	"strings"
)

var zeroSlogValue slog.Value

// Origin holds the six fields of an o= line.
type Origin struct {
	UserID         []byte
	SessionID      []byte
	SessionVersion []byte
	NetworkType    []byte
	AddressType    []byte
	UnicastAddress []byte
}

func (o *Origin) String() string {
	if o == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Origin{user_id: %s, session_id: %s, session_version: %s, network_type: %s, address_type: %s, unicast_address: %s}",
		o.UserID, o.SessionID, o.SessionVersion, o.NetworkType, o.AddressType, o.UnicastAddress)
}

func (o *Origin) LogValue() slog.Value {
	if o == nil {
		return zeroSlogValue
	}
	return slog.GroupValue(
		slog.String("user_id", string(o.UserID)),
		slog.String("session_id", string(o.SessionID)),
		slog.String("session_version", string(o.SessionVersion)),
		slog.String("network_type", string(o.NetworkType)),
		slog.String("address_type", string(o.AddressType)),
		slog.String("unicast_address", string(o.UnicastAddress)),
	)
}

// ConnectionData holds the three fields of a c= line.
type ConnectionData struct {
	NetworkType []byte
	AddressType []byte
	Address     []byte
}

func (c *ConnectionData) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("ConnectionData{network_type: %s, address_type: %s, connection_address: %s}",
		c.NetworkType, c.AddressType, c.Address)
}

func (c *ConnectionData) LogValue() slog.Value {
	if c == nil {
		return zeroSlogValue
	}
	return slog.GroupValue(
		slog.String("network_type", string(c.NetworkType)),
		slog.String("address_type", string(c.AddressType)),
		slog.String("connection_address", string(c.Address)),
	)
}

// Media is one media block of a session description, opened by an m= line.
type Media struct {
	Type []byte
	Port uint16
	// PortCount is the number of consecutive ports; 1 unless the m= line
	// carried a "port/count" pair.
	PortCount int32
	Proto     []byte
	// Formats holds the media format tokens in their textual order,
	// at least one.
	Formats [][]byte
	// Connection, if non-nil, overrides the session-level connection data
	// for this media block.
	Connection *ConnectionData
	// Attributes holds the a= values of the block in their textual order.
	Attributes [][]byte
}

func (m *Media) String() string {
	if m == nil {
		return "<nil>"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Media{media_type: %s, port: %d, number_of_ports: %d, protocol: %s",
		m.Type, m.Port, m.PortCount, m.Proto)
	for _, f := range m.Formats {
		fmt.Fprintf(&sb, ", format: %s", f)
	}
	if m.Connection != nil {
		fmt.Fprintf(&sb, ", connection: %s", m.Connection)
	}
	for _, a := range m.Attributes {
		fmt.Fprintf(&sb, ", attribute: %s", a)
	}
	sb.WriteByte('}')
	return sb.String()
}

func (m *Media) LogValue() slog.Value {
	if m == nil {
		return zeroSlogValue
	}
	attrs := []slog.Attr{
		slog.String("media_type", string(m.Type)),
		slog.Int("port", int(m.Port)),
		slog.Int("number_of_ports", int(m.PortCount)),
		slog.String("protocol", string(m.Proto)),
		slog.Any("formats", spanStrings(m.Formats)),
	}
	if m.Connection != nil {
		attrs = append(attrs, slog.Any("connection", m.Connection))
	}
	if len(m.Attributes) > 0 {
		attrs = append(attrs, slog.Any("attributes", spanStrings(m.Attributes)))
	}
	return slog.GroupValue(attrs...)
}

// Session is a parsed session description.
//
// Every byte-slice field is a sub-slice of the buffer given to [Parse];
// the buffer must stay valid and unmodified for as long as the Session
// is in use. A Session is immutable after it is returned.
type Session struct {
	Version []byte
	Origin  Origin
	Name    []byte
	// Connection is the session-level connection data, nil when the
	// description carried none.
	Connection *ConnectionData
	// StartTime and EndTime are Unix epoch seconds translated from the
	// NTP timestamps of the t= line. A literal "0" start maps to zero and
	// a literal "0" end maps to the maximum uint64, both meaning unbounded.
	StartTime uint64
	EndTime   uint64
	// Attributes holds session-level a= values in their textual order.
	Attributes [][]byte
	// Medias holds the media blocks in declaration order.
	Medias []Media
}

func (s *Session) String() string {
	if s == nil {
		return "<nil>"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Sdp{version: %s, origin: %s, session_name: %s", s.Version, &s.Origin, s.Name)
	if s.Connection != nil {
		fmt.Fprintf(&sb, ", connection: %s", s.Connection)
	}
	fmt.Fprintf(&sb, ", start_time: %d, end_time: %d", s.StartTime, s.EndTime)
	for _, a := range s.Attributes {
		fmt.Fprintf(&sb, ", attribute: %s", a)
	}
	for i := range s.Medias {
		fmt.Fprintf(&sb, ", media: %s", &s.Medias[i])
	}
	sb.WriteByte('}')
	return sb.String()
}

func (s *Session) LogValue() slog.Value {
	if s == nil {
		return zeroSlogValue
	}
	attrs := []slog.Attr{
		slog.String("version", string(s.Version)),
		slog.Any("origin", &s.Origin),
		slog.String("session_name", string(s.Name)),
		slog.Uint64("start_time", s.StartTime),
		slog.Uint64("end_time", s.EndTime),
	}
	if s.Connection != nil {
		attrs = append(attrs, slog.Any("connection", s.Connection))
	}
	if len(s.Attributes) > 0 {
		attrs = append(attrs, slog.Any("attributes", spanStrings(s.Attributes)))
	}
	if len(s.Medias) > 0 {
		medias := make([]slog.Value, len(s.Medias))
		for i := range s.Medias {
			medias[i] = s.Medias[i].LogValue()
		}
		attrs = append(attrs, slog.Any("medias", medias))
	}
	return slog.GroupValue(attrs...)
}

func spanStrings(spans [][]byte) []string {
	ss := make([]string, len(spans))
	for i, s := range spans {
		ss[i] = string(s)
	}
	return ss
}
