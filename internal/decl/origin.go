package decl

import (
	"cmp"
	"strconv"
	"strings"
)

// CompareOrigins orders origins by file name, then by line. Schema entries
// without a line ("file:unions[3]") order by their index. Anything else
// falls back to comparing the text after the file name.
func CompareOrigins(a, b string) int {
	fa, la, ta := splitOrigin(a)
	fb, lb, tb := splitOrigin(b)

	return cmp.Or(
		strings.Compare(fa, fb),
		cmp.Compare(la, lb),
		strings.Compare(ta, tb),
	)
}

// Compare orders declarations by origin.
func Compare(x, y Declaration) int {
	return CompareOrigins(x.Origin, y.Origin)
}

func splitOrigin(origin string) (file string, line int, rest string) {
	i := strings.LastIndexByte(origin, ':')
	if i < 0 {
		return origin, 0, ""
	}

	file, rest = origin[:i], origin[i+1:]

	num := rest
	if s, ok := strings.CutPrefix(rest, "unions["); ok {
		num = strings.TrimSuffix(s, "]")
	}

	if n, err := strconv.Atoi(num); err == nil {
		return file, n, ""
	}

	return file, 0, rest
}
