package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packetfields/internal/tshark"
)

const sampleExport = `[
  {"_index": "packets-2026-10-17", "_type": "doc", "_score": null,
   "_source": {"layers": {
     "eth": {"eth.dst": "66:77:88:99:aa:bb", "eth.src": "00:11:22:33:44:55"},
     "ip": {"ip.src": "192.168.1.10", "ip.dst": "93.184.216.34"},
     "tcp": {"tcp.srcport": "51000", "tcp.dstport": "80", "tcp.port": "80"},
     "http": {"http.host": "example.com", "http.request.method": "GET",
              "http.request.full_uri": "http://example.com/", "http.user_agent": "curl/8.5.0"}
   }}},
  {"_source": {"layers": {
     "eth": {"eth.dst": "ff:ff:ff:ff:ff:ff", "eth.src": "00:11:22:33:44:55"},
     "ip": {"ip.src": "192.168.1.10", "ip.dst": "192.168.1.1"},
     "udp": {"udp.port": "53"}
   }}}
]`

func writeExport(t *testing.T, data string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, tshark.DefaultFileName), []byte(data), 0o644))
	return dir
}

func TestRun(t *testing.T) {
	dir := writeExport(t, sampleExport)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	require.NoError(t, run(context.Background(), Cmd{}, dir, out, errOut))
	// Default configuration logs nothing on success.
	assert.Empty(t, errOut.String())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Equal(t, []string{
		`["80"]`,
		`["53"]`,
		`["192.168.1.1", "192.168.1.10", "93.184.216.34"]`,
		`["00:11:22:33:44:55", "66:77:88:99:aa:bb", "ff:ff:ff:ff:ff:ff"]`,
		`["GET", "curl/8.5.0", "example.com", "http://example.com/"]`,
	}, lines)
}

func TestRunFailsWithoutOutput(t *testing.T) {
	cases := []struct {
		name string
		dir  func(t *testing.T) string
	}{
		{name: "missing file", dir: func(t *testing.T) string { return t.TempDir() }},
		{name: "invalid json", dir: func(t *testing.T) string { return writeExport(t, `[{"_source":`) }},
		{name: "not an array", dir: func(t *testing.T) string { return writeExport(t, `{"_source":{}}`) }},
		{name: "invalid utf8", dir: func(t *testing.T) string {
			return writeExport(t, "[{\"_source\":{\"layers\":{\"ip\":{\"ip.src\":\"\xff\xfe10.0.0.1\"}}}}]")
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			err := run(context.Background(), Cmd{}, c.dir(t), out, &bytes.Buffer{})
			require.Error(t, err)
			assert.Empty(t, out.String())
		})
	}
}

func TestRunConfig(t *testing.T) {
	dir := writeExport(t, sampleExport)
	cfgPath := filepath.Join(t.TempDir(), "packetfields.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: error\ninput:\n  max_size: 16B\n"), 0o644))

	out := &bytes.Buffer{}
	err := run(context.Background(), Cmd{ConfigPath: cfgPath}, dir, out, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size limit")
	assert.Empty(t, out.String())
}

func TestRunInvalidLogLevel(t *testing.T) {
	dir := writeExport(t, sampleExport)

	err := run(context.Background(), Cmd{LogLevel: "loud"}, dir, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestRunDebugLogsToStderr(t *testing.T) {
	dir := writeExport(t, sampleExport)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	require.NoError(t, run(context.Background(), Cmd{LogLevel: "debug"}, dir, out, errOut))

	assert.Contains(t, errOut.String(), "loaded packet export")
	assert.NotContains(t, out.String(), "loaded packet export")
	assert.Len(t, strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n"), 5)
}
