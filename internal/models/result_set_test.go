package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSetInsertDeduplicates(t *testing.T) {
	s := NewResultSet()
	s.Insert("443")
	s.Insert("443")
	s.Insert("80")

	require.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("443"))
	assert.True(t, s.Contains("80"))
	assert.False(t, s.Contains("8080"))
}

func TestResultSetCleaned(t *testing.T) {
	s := NewResultSet()
	s.Insert(`"192.168.1.1"`)
	s.Insert("192.168.1.1")
	s.Insert(`Mozilla\/5.0`)

	got := s.Cleaned()
	want := []string{"192.168.1.1", "Mozilla/5.0"}
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("Cleaned() mismatch (-want +got):\n%s", diff)
	}
}

func TestResultSetEmpty(t *testing.T) {
	s := NewResultSet()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Cleaned())
	assert.NotNil(t, s.Cleaned())
}

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "10.0.0.1", want: "10.0.0.1"},
		{name: "quoted", in: `"10.0.0.1"`, want: "10.0.0.1"},
		{name: "escaped quotes", in: `"\"192.168.1.1\""`, want: "192.168.1.1"},
		{name: "inner quotes", in: `a"b"c`, want: "abc"},
		{name: "backslashes", in: `C:\\path\\to`, want: "C:pathto"},
		{name: "unicode escape is lossy", in: `caf\u00e9`, want: "cafu00e9"},
		{name: "empty", in: "", want: ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Clean(c.in))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		`"\"x\""`,
		`\\\"`,
		"GET",
		`http:\/\/example.com\/index.html`,
	}

	for _, in := range inputs {
		once := Clean(in)
		require.Equal(t, once, Clean(once), "input %q", in)
		assert.NotContains(t, once, `"`)
		assert.NotContains(t, once, `\`)
	}
}
