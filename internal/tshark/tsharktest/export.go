// Package tsharktest builds packet exports from real frames for tests.
//
// Frames are serialized and decoded with gopacket, then rendered with the
// field names and nesting that `tshark -T json` uses, including the
// duplicated "tcp.port"/"udp.port" keys.
package tsharktest

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Transport selects what the frame carries above Ethernet.
type Transport int

const (
	TCP Transport = iota
	UDP
	ARP
)

// Frame describes one captured frame.
type Frame struct {
	SrcMAC    string
	DstMAC    string
	SrcIP     string
	DstIP     string
	Transport Transport
	SrcPort   uint16
	DstPort   uint16
	Payload   []byte
}

// HTTPRequest returns a minimal HTTP/1.1 request suitable as a TCP payload.
func HTTPRequest(method, host, uri, userAgent string) []byte {
	return []byte(fmt.Sprintf("%s %s HTTP/1.1\r\nHost: %s\r\nUser-Agent: %s\r\nAccept: */*\r\n\r\n",
		method, uri, host, userAgent))
}

// Export renders frames as a packet export document.
func Export(tb testing.TB, frames ...Frame) []byte {
	tb.Helper()

	b := &bytes.Buffer{}
	b.WriteByte('[')
	for idx, f := range frames {
		if idx > 0 {
			b.WriteByte(',')
		}
		pkt := gopacket.NewPacket(serialize(tb, f), layers.LayerTypeEthernet, gopacket.Default)
		if errLayer := pkt.ErrorLayer(); errLayer != nil {
			tb.Fatalf("failed to decode frame #%d: %v", idx, errLayer.Error())
		}
		writeObject(b, []field{
			{"_index", "packets-2026-10-17"},
			{"_type", "doc"},
			{"_score", nil},
			{"_source", []field{
				{"layers", render(tb, idx, pkt)},
			}},
		})
	}
	b.WriteByte(']')

	return b.Bytes()
}

func serialize(tb testing.TB, f Frame) []byte {
	tb.Helper()

	eth := &layers.Ethernet{
		SrcMAC:       mustMAC(tb, f.SrcMAC),
		DstMAC:       mustMAC(tb, f.DstMAC),
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version: 4,
		IHL:     5,
		TTL:     64,
		SrcIP:   net.ParseIP(f.SrcIP).To4(),
		DstIP:   net.ParseIP(f.DstIP).To4(),
	}

	var stack []gopacket.SerializableLayer
	switch f.Transport {
	case TCP:
		ip.Protocol = layers.IPProtocolTCP
		tcp := &layers.TCP{
			SrcPort: layers.TCPPort(f.SrcPort),
			DstPort: layers.TCPPort(f.DstPort),
			Seq:     1,
			ACK:     true,
			PSH:     len(f.Payload) > 0,
			Window:  65535,
		}
		if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
			tb.Fatalf("failed to set network layer: %v", err)
		}
		stack = []gopacket.SerializableLayer{eth, ip, tcp}
	case UDP:
		ip.Protocol = layers.IPProtocolUDP
		udp := &layers.UDP{
			SrcPort: layers.UDPPort(f.SrcPort),
			DstPort: layers.UDPPort(f.DstPort),
		}
		if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
			tb.Fatalf("failed to set network layer: %v", err)
		}
		stack = []gopacket.SerializableLayer{eth, ip, udp}
	case ARP:
		eth.EthernetType = layers.EthernetTypeARP
		stack = []gopacket.SerializableLayer{eth, &layers.ARP{
			AddrType:          layers.LinkTypeEthernet,
			Protocol:          layers.EthernetTypeIPv4,
			HwAddressSize:     6,
			ProtAddressSize:   4,
			Operation:         layers.ARPRequest,
			SourceHwAddress:   []byte(eth.SrcMAC),
			SourceProtAddress: []byte(ip.SrcIP),
			DstHwAddress:      []byte{0, 0, 0, 0, 0, 0},
			DstProtAddress:    []byte(ip.DstIP),
		}}
	}
	if len(f.Payload) > 0 {
		stack = append(stack, gopacket.Payload(f.Payload))
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, stack...); err != nil {
		tb.Fatalf("failed to serialize frame: %v", err)
	}
	return buf.Bytes()
}

func render(tb testing.TB, idx int, pkt gopacket.Packet) []field {
	tb.Helper()

	out := []field{
		{"frame", []field{
			{"frame.number", strconv.Itoa(idx + 1)},
			{"frame.len", strconv.Itoa(len(pkt.Data()))},
		}},
	}

	if l, ok := pkt.Layer(layers.LayerTypeEthernet).(*layers.Ethernet); ok {
		out = append(out, field{"eth", []field{
			{"eth.dst", l.DstMAC.String()},
			{"eth.src", l.SrcMAC.String()},
			{"eth.type", fmt.Sprintf("0x%04x", uint16(l.EthernetType))},
		}})
	}
	if l, ok := pkt.Layer(layers.LayerTypeARP).(*layers.ARP); ok {
		out = append(out, field{"arp", []field{
			{"arp.opcode", strconv.Itoa(int(l.Operation))},
			{"arp.src.hw_mac", net.HardwareAddr(l.SourceHwAddress).String()},
			{"arp.src.proto_ipv4", net.IP(l.SourceProtAddress).String()},
			{"arp.dst.proto_ipv4", net.IP(l.DstProtAddress).String()},
		}})
	}
	if l, ok := pkt.Layer(layers.LayerTypeIPv4).(*layers.IPv4); ok {
		out = append(out, field{"ip", []field{
			{"ip.version", strconv.Itoa(int(l.Version))},
			{"ip.len", strconv.Itoa(int(l.Length))},
			{"ip.ttl", strconv.Itoa(int(l.TTL))},
			{"ip.proto", strconv.Itoa(int(l.Protocol))},
			{"ip.src", l.SrcIP.String()},
			{"ip.addr", l.SrcIP.String()},
			{"ip.dst", l.DstIP.String()},
			{"ip.addr", l.DstIP.String()},
		}})
	}
	if l, ok := pkt.Layer(layers.LayerTypeTCP).(*layers.TCP); ok {
		src, dst := strconv.Itoa(int(l.SrcPort)), strconv.Itoa(int(l.DstPort))
		out = append(out, field{"tcp", []field{
			{"tcp.srcport", src},
			{"tcp.dstport", dst},
			{"tcp.port", src},
			{"tcp.port", dst},
			{"tcp.len", strconv.Itoa(len(l.Payload))},
		}})
		if len(l.Payload) > 0 {
			if f, ok := renderHTTP(l.Payload); ok {
				out = append(out, f)
			}
		}
	}
	if l, ok := pkt.Layer(layers.LayerTypeUDP).(*layers.UDP); ok {
		src, dst := strconv.Itoa(int(l.SrcPort)), strconv.Itoa(int(l.DstPort))
		out = append(out, field{"udp", []field{
			{"udp.srcport", src},
			{"udp.dstport", dst},
			{"udp.port", src},
			{"udp.port", dst},
			{"udp.length", strconv.Itoa(int(l.Length))},
		}})
	}

	return out
}

// renderHTTP mirrors tshark: the method lives inside the request line
// subtree, while host, user agent and full URI sit at the layer level.
func renderHTTP(payload []byte) (field, bool) {
	req, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(payload)))
	if err != nil {
		return field{}, false
	}

	requestLine := fmt.Sprintf("%s %s %s\r\n", req.Method, req.RequestURI, req.Proto)
	return field{"http", []field{
		{requestLine, []field{
			{"http.request.method", req.Method},
			{"http.request.uri", req.RequestURI},
			{"http.request.version", req.Proto},
		}},
		{"http.host", req.Host},
		{"http.user_agent", req.UserAgent()},
		{"http.request.full_uri", "http://" + req.Host + req.RequestURI},
	}}, true
}

type field struct {
	key   string
	value any
}

// writeObject keeps key order and duplicate keys, which a map cannot.
func writeObject(b *bytes.Buffer, fields []field) {
	b.WriteByte('{')
	for idx, f := range fields {
		if idx > 0 {
			b.WriteByte(',')
		}
		writeString(b, f.key)
		b.WriteByte(':')
		switch v := f.value.(type) {
		case []field:
			writeObject(b, v)
		case nil:
			b.WriteString("null")
		default:
			writeString(b, fmt.Sprint(v))
		}
	}
	b.WriteByte('}')
}

func writeString(b *bytes.Buffer, s string) {
	data, err := sonic.Marshal(s)
	if err != nil {
		panic(err)
	}
	b.Write(data)
}

func mustMAC(tb testing.TB, s string) net.HardwareAddr {
	tb.Helper()

	mac, err := net.ParseMAC(s)
	if err != nil {
		tb.Fatalf("invalid MAC %q: %v", s, err)
	}
	return mac
}
