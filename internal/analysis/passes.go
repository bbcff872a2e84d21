package analysis

// Pass describes one extraction: a protocol layer and the field keys
// probed under it. Every field is probed independently.
type Pass struct {
	Name   string
	Layer  string
	Fields []string
}

// Pass names, in print order.
const (
	PassTCP  = "tcp"
	PassUDP  = "udp"
	PassIP   = "ip"
	PassMAC  = "mac"
	PassHTTP = "http"
)

// DefaultPasses returns the five passes in print order: TCP ports, UDP
// ports, IP addresses, MAC addresses, HTTP values.
func DefaultPasses() []Pass {
	return []Pass{
		{
			Name:   PassTCP,
			Layer:  "tcp",
			Fields: []string{"tcp.port"},
		},
		{
			Name:   PassUDP,
			Layer:  "udp",
			Fields: []string{"udp.port"},
		},
		{
			Name:   PassIP,
			Layer:  "ip",
			Fields: []string{"ip.src", "ip.dst"},
		},
		{
			Name:   PassMAC,
			Layer:  "eth",
			Fields: []string{"eth.src", "eth.dst"},
		},
		{
			Name:  PassHTTP,
			Layer: "http",
			Fields: []string{
				"http.host",
				"http.request.full_uri",
				"http.request.method",
				"http.user_agent",
			},
		},
	}
}
