package lisel

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
)

// MakeIndex derives a line number index from a target text: each run of
// consecutive target lines matching Pattern becomes one index line. The
// resulting ranges are strictly increasing, so Select with Numbers accepts
// the index back against the same target.
type MakeIndex struct {
	// Pattern selects the target lines to index. The empty Pattern indexes
	// any non-empty line.
	Pattern string
	// Single writes one index line per matching target line instead of
	// collapsing runs of lines into ranges.
	Single bool
}

func (mi MakeIndex) Text(index io.Writer, target io.Reader) error {
	pat := mi.Pattern
	if pat == "" {
		pat = matchAny
	}
	rgx, err := regexp.Compile(pat)
	if err != nil {
		return err
	}
	var run Range
	flush := func() (err error) {
		if run.Start > 0 {
			_, err = fmt.Fprintln(index, run)
			run = Range{}
		}
		return err
	}
	scn := bufio.NewScanner(target)
	for lno := uint64(1); scn.Scan(); lno++ {
		if !rgx.MatchString(scn.Text()) {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		switch {
		case run.Start == 0:
			run = Range{Start: lno, End: lno}
		case mi.Single:
			if err := flush(); err != nil {
				return err
			}
			run = Range{Start: lno, End: lno}
		default:
			run.End = lno
		}
	}
	if err := scn.Err(); err != nil {
		return err
	}
	return flush()
}
