package finding

import (
	"fmt"
	"strconv"
	"strings"
)

// Number is the numeric form of a section index such as "3.2".
// Equality is exact on both parts, so "2.10" and "2.1" are different numbers.
type Number struct {
	Major int
	Minor int
}

// ParseNumber parses "<int>.<int>".
func ParseNumber(s string) (Number, error) {
	major, minor, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return Number{}, fmt.Errorf("section number %q is not <int>.<int>", s)
	}
	majorN, err := strconv.Atoi(major)
	if err != nil || majorN < 0 {
		return Number{}, fmt.Errorf("section number %q: invalid major part", s)
	}
	minorN, err := strconv.Atoi(minor)
	if err != nil || minorN < 0 {
		return Number{}, fmt.Errorf("section number %q: invalid minor part", s)
	}
	return Number{Major: majorN, Minor: minorN}, nil
}

// String returns the number as "major.minor".
func (n Number) String() string {
	return fmt.Sprintf("%d.%d", n.Major, n.Minor)
}

// Float returns the number as a decimal, e.g. 3.2. Use for display only;
// "2.10" and "2.1" map to the same float.
func (n Number) Float() float64 {
	f, _ := strconv.ParseFloat(n.String(), 64)
	return f
}

// Less orders numbers by major then minor part.
func (n Number) Less(o Number) bool {
	if n.Major != o.Major {
		return n.Major < o.Major
	}
	return n.Minor < o.Minor
}

// MarshalText implements encoding.TextMarshaler.
func (n Number) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Number) UnmarshalText(b []byte) error {
	parsed, err := ParseNumber(string(b))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
