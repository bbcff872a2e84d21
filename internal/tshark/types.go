package tshark

// Document is a parsed packet export: the top-level array written by
// `tshark -T json`. Packet order carries no meaning for extraction.
type Document []Packet

// Packet is one element of the export. Protocol layers live under
// "_source" -> "layers" and any level may be missing.
type Packet map[string]any

// Layer is the field map of one protocol, keyed by dotted field names
// such as "ip.src" or "tcp.port".
type Layer map[string]any

const (
	keySource = "_source"
	keyLayers = "layers"
)

// Layer returns the named protocol layer of the packet.
// It reports false when any step of "_source" -> "layers" -> name is
// missing or is not an object.
func (p Packet) Layer(name string) (Layer, bool) {
	source, ok := object(p[keySource])
	if !ok {
		return nil, false
	}
	layers, ok := object(source[keyLayers])
	if !ok {
		return nil, false
	}
	layer, ok := object(layers[name])
	if !ok {
		return nil, false
	}
	return Layer(layer), true
}

// Field returns the raw value stored under key. A present null value is
// reported as (nil, true).
func (l Layer) Field(key string) (any, bool) {
	v, ok := l[key]
	return v, ok
}

func object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
