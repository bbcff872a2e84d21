package tshark

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
)

var (
	ErrReadDocument     = errors.New("fail to read document")
	ErrParseDocument    = errors.New("fail to parse document")
	ErrDocumentShape    = errors.New("unexpected document shape")
	ErrDocumentTooLarge = errors.New("document exceeds size limit")
)

// DefaultFileName is the export file looked up in the working directory.
const DefaultFileName = "packets.json"

// UseNumber keeps numeric literals as json.Number so "443" and 443 both
// render as written in the export. JSON text must be UTF-8.
var api = sonic.Config{
	UseNumber:      true,
	SortMapKeys:    true,
	ValidateString: true,
}.Froze()

// LoadDocument reads and parses the export at path.
// A limit of zero disables the size check.
func LoadDocument(path string, limit datasize.ByteSize) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrReadDocument, "%v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(ErrReadDocument, "%v", err)
	}
	if limit > 0 && uint64(info.Size()) > limit.Bytes() {
		return nil, errors.Wrapf(ErrDocumentTooLarge, "%s is %s, limit %s",
			path, datasize.ByteSize(info.Size()).HR(), limit.HR())
	}

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, int64(limit.Bytes())+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(ErrReadDocument, "%s: %v", path, err)
	}
	// The file may grow after Stat, or be a pipe.
	if limit > 0 && uint64(len(data)) > limit.Bytes() {
		return nil, errors.Wrapf(ErrDocumentTooLarge, "%s exceeds limit %s", path, limit.HR())
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return doc, nil
}

// ParseDocument decodes an export. The top level must be an array whose
// elements are all objects.
func ParseDocument(data []byte) (Document, error) {
	if !utf8.Valid(data) {
		return nil, errors.Wrap(ErrParseDocument, "input is not valid UTF-8")
	}

	var root any
	if err := api.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrapf(ErrParseDocument, "%v", err)
	}

	items, ok := root.([]any)
	if !ok {
		return nil, errors.Wrapf(ErrDocumentShape, "top level is %s, want array", kind(root))
	}

	doc := make(Document, 0, len(items))
	for idx, item := range items {
		pkt, ok := object(item)
		if !ok {
			return nil, errors.Wrapf(ErrDocumentShape, "packet #%d is %s, want object", idx, kind(item))
		}
		doc = append(doc, Packet(pkt))
	}

	return doc, nil
}

// Render returns the textual form of a field value: strings as-is,
// numbers as their literal, null as "null" and nested values as compact
// JSON with sorted keys.
func Render(v any) string {
	switch tv := v.(type) {
	case nil:
		return "null"
	case string:
		return tv
	case json.Number:
		return tv.String()
	case bool:
		return strconv.FormatBool(tv)
	case float64:
		return strconv.FormatFloat(tv, 'g', -1, 64)
	}

	data, err := api.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
