package reporting

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"packetfields/internal/analysis"
)

// Print writes one line per result, in the order given.
//
// Each line is a bracketed, comma-separated list of quoted values. Values
// are sorted to keep runs comparable; the order carries no meaning.
func Print(w io.Writer, results []analysis.Result) error {
	out := bufio.NewWriter(w)

	for _, result := range results {
		if _, err := fmt.Fprintln(out, FormatList(result.Values)); err != nil {
			return err
		}
	}

	return out.Flush()
}

// FormatList renders values as `["a", "b"]`.
func FormatList(values []string) string {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)

	quoted := make([]string, len(sorted))
	for i, v := range sorted {
		quoted[i] = strconv.Quote(v)
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}
