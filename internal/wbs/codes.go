package wbs

import "fmt"

// CodeWidths maps the recognized entity-kind prefixes to their zero-pad
// width. Each (project, prefix) pair owns an independent counter.
var CodeWidths = map[string]int{
	"ISS": 3,
	"REQ": 3,
	"DIS": 4,
}

// CodeWidth returns the pad width for a recognized prefix, or
// ErrInvalidPrefix.
func CodeWidth(prefix string) (int, error) {
	w, ok := CodeWidths[prefix]
	if !ok {
		return 0, fmt.Errorf("prefix %q: %w", prefix, ErrInvalidPrefix)
	}
	return w, nil
}

// FormatCode renders one code, e.g. FormatCode("ISS", 3, 8) == "ISS-008".
// Numbers wider than the pad width keep all their digits.
func FormatCode(prefix string, width, n int) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, n)
}

// FormatCodeRange renders the contiguous codes [start, start+count).
func FormatCodeRange(prefix string, width, start, count int) []string {
	codes := make([]string, count)
	for i := 0; i < count; i++ {
		codes[i] = FormatCode(prefix, width, start+i)
	}
	return codes
}
