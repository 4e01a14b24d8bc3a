package lisel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OpenEnd is the End of a Range without an upper bound.
const OpenEnd = math.MaxUint64

var (
	ErrMalformedRange = errors.New("malformed line number range")
	ErrRangeOrder     = errors.New("non-monotonic line number range")
)

// Range selects 1-based target line numbers. Start == 0 marks a range that is
// open at its lower end, i.e. it effectively starts at line 1. End == OpenEnd
// marks a range that extends to the end of the target.
type Range struct {
	Start, End uint64
}

// ParseRange parses one index line in line number mode. Valid forms are "N"
// for a single line, "N1,N2" for the lines N1 up to and including N2, "N," for
// line N to the end of the target and ",N" for the start of the target up to
// line N. Line numbers are naturals, i.e. >= 1. Anything else, including the
// empty string, fails with an error wrapping ErrMalformedRange.
func ParseRange(line string) (Range, error) {
	start, end, comma := strings.Cut(line, ",")
	if !comma {
		n, err := natural(start)
		if err != nil {
			return Range{}, err
		}
		return Range{Start: n, End: n}, nil
	}
	if start == "" && end == "" {
		return Range{}, fmt.Errorf("%w: no line number", ErrMalformedRange)
	}
	res := Range{End: OpenEnd}
	if start != "" {
		n, err := natural(start)
		if err != nil {
			return Range{}, err
		}
		res.Start = n
	}
	if end != "" {
		n, err := natural(end)
		if err != nil {
			return Range{}, err
		}
		res.End = n
	}
	return res, nil
}

func natural(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	switch {
	case err != nil:
		return 0, fmt.Errorf("%w: '%s' is no line number", ErrMalformedRange, s)
	case n == 0:
		return 0, fmt.Errorf("%w: line numbers start at 1", ErrMalformedRange)
	}
	return n, nil
}

// String formats r in the form ParseRange accepts.
func (r Range) String() string {
	switch {
	case r.Start == r.End:
		return strconv.FormatUint(r.Start, 10)
	case r.Start == 0:
		return "," + strconv.FormatUint(r.End, 10)
	case r.End == OpenEnd:
		return strconv.FormatUint(r.Start, 10) + ","
	}
	return strconv.FormatUint(r.Start, 10) + "," + strconv.FormatUint(r.End, 10)
}

// floor is the effective lower bound of r used to check range order.
func (r Range) floor() uint64 {
	if r.Start == 0 {
		return 1
	}
	return r.Start
}

// rangeOrder checks that successive ranges of an index are strictly
// increasing. The zero value accepts any first range.
type rangeOrder struct {
	floor uint64
}

func (o *rangeOrder) check(r Range) error {
	if r.Start > r.End {
		return fmt.Errorf("%w: start %d after end %d", ErrRangeOrder, r.Start, r.End)
	}
	if f := r.floor(); f <= o.floor {
		return fmt.Errorf("%w: floor %d does not exceed %d", ErrRangeOrder, f, o.floor)
	}
	if r.Start == 0 {
		// only the upper bound is known, later ranges must start above it
		o.floor = r.End
	} else {
		o.floor = r.Start
	}
	return nil
}
