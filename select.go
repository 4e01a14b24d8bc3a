package lisel

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// ErrInvertNumbers rejects the combination of Select.Invert with
// Select.Numbers. Inverting disjoint forward ranges into their gaps is not the
// complement of a pattern match and is not supported.
var ErrInvertNumbers = errors.New("invert match not supported with line number index")

// IndexError reports a fatal problem with one line of the index stream.
type IndexError struct {
	// 1-based line number in the index stream
	Line int
	// The raw index line, empty for stream read failures
	Text string
	err  error
}

func (e IndexError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("index %d: %s", e.Line, e.err)
	}
	return fmt.Sprintf("index %d: %s: '%s'", e.Line, e.err, e.Text)
}

func (e IndexError) Unwrap() error { return e.err }

// TargetError reports a read failure of the target stream.
type TargetError struct {
	Line int
	err  error
}

func (e TargetError) Error() string {
	return fmt.Sprintf("target %d: %s", e.Line, e.err)
}

func (e TargetError) Unwrap() error { return e.err }

// EmitFunc receives each selected line along with its 1-based line number in
// the target stream. Returning a non-nil error aborts the run.
type EmitFunc func(lineno int, line string) error

// Emit returns an EmitFunc that writes each selected line to w, followed by a
// line terminator.
func Emit(w io.Writer) EmitFunc {
	return func(_ int, line string) error {
		_, err := fmt.Fprintln(w, line)
		return err
	}
}

// matches any non-empty index line
const matchAny = `.+`

// Select emits lines of a target stream by their correspondence with the lines
// of an index stream. By default index line i decides whether target line i is
// emitted: it is iff the index line matches Pattern. With Numbers set the
// index lines instead hold strictly increasing line number ranges into the
// target (see ParseRange) and exactly the target lines covered by the ranges
// are emitted.
//
// Both streams are consumed in a single forward pass, so the target may as
// well be piped standard input. A zero value is valid for use and can be
// reused for more than one run. It must not be used concurrently.
type Select struct {
	// Pattern is the regular expression matched against each index line. The
	// empty Pattern matches any non-empty line. Ignored when Numbers is set.
	Pattern string
	// Invert emits the target lines whose index line does not match Pattern.
	// Must not be combined with Numbers.
	Invert bool
	// Numbers reads the index as line number ranges instead of matching
	// Pattern.
	Numbers bool
	// Debug receives per-line trace events. A nil Debug disables tracing.
	Debug *zap.Logger

	rgx *regexp.Regexp
	ino int
	tno int
}

// Readers selects lines of target by index and passes them to emit. It
// returns nil when either stream is exhausted, which is ordinary completion:
// an index shorter than the target just stops the selection and ranges
// reaching beyond the target are truncated to the lines that exist. Malformed
// or non-monotonic ranges abort the run with an IndexError; lines already
// passed to emit are not retracted. Invalid configuration, i.e. a Pattern that
// does not compile or Invert combined with Numbers, is reported before any
// line is read.
func (sel *Select) Readers(index, target io.Reader, emit EmitFunc) error {
	sel.ino, sel.tno = 0, 0
	if sel.Numbers {
		if sel.Invert {
			return ErrInvertNumbers
		}
		return sel.numbers(bufio.NewScanner(index), bufio.NewScanner(target), emit)
	}
	pat := sel.Pattern
	if pat == "" {
		pat = matchAny
	}
	var err error
	if sel.rgx, err = regexp.Compile(pat); err != nil {
		return err
	}
	return sel.match(bufio.NewScanner(index), bufio.NewScanner(target), emit)
}

// Strings calls Readers on in-memory index and target texts.
func (sel *Select) Strings(index, target string, emit EmitFunc) error {
	return sel.Readers(strings.NewReader(index), strings.NewReader(target), emit)
}

// Files calls Readers on the named index and target files.
func (sel *Select) Files(index, target string, emit EmitFunc) error {
	ird, err := os.Open(index)
	if err != nil {
		return err
	}
	defer ird.Close()
	trd, err := os.Open(target)
	if err != nil {
		return err
	}
	defer trd.Close()
	return sel.Readers(ird, trd, emit)
}

func (sel *Select) match(index, target *bufio.Scanner, emit EmitFunc) error {
	for target.Scan() {
		sel.tno++
		if !index.Scan() {
			if err := index.Err(); err != nil {
				return IndexError{Line: sel.ino, err: err}
			}
			return nil
		}
		sel.ino++
		matched := sel.rgx.MatchString(index.Text())
		if sel.Debug != nil {
			sel.Debug.Debug("matched index line",
				zap.Int("index", sel.ino),
				zap.Int("target", sel.tno),
				zap.Bool("matched", matched),
			)
		}
		if matched != sel.Invert {
			if err := emit(sel.tno, target.Text()); err != nil {
				return err
			}
		}
	}
	if err := target.Err(); err != nil {
		return TargetError{Line: sel.tno, err: err}
	}
	return nil
}

func (sel *Select) numbers(index, target *bufio.Scanner, emit EmitFunc) error {
	var ord rangeOrder
	drained := false
	for index.Scan() {
		sel.ino++
		line := index.Text()
		rng, err := ParseRange(line)
		if err != nil {
			return IndexError{Line: sel.ino, Text: line, err: err}
		}
		if err = ord.check(rng); err != nil {
			return IndexError{Line: sel.ino, Text: line, err: err}
		}
		if sel.Debug != nil {
			sel.Debug.Debug("parsed range",
				zap.Int("index", sel.ino),
				zap.Stringer("range", rng),
			)
		}
		if drained {
			// keep checking range order on the rest of the index
			continue
		}
		if uint64(sel.tno) >= rng.floor() {
			return IndexError{Line: sel.ino, Text: line, err: fmt.Errorf(
				"%w: target line %d already read",
				ErrRangeOrder, sel.tno,
			)}
		}
		for uint64(sel.tno)+1 < rng.floor() {
			if !target.Scan() {
				drained = true
				break
			}
			sel.tno++
		}
		for !drained && uint64(sel.tno) < rng.End {
			if !target.Scan() {
				drained = true
				break
			}
			sel.tno++
			if err := emit(sel.tno, target.Text()); err != nil {
				return err
			}
		}
		if drained {
			if err := target.Err(); err != nil {
				return TargetError{Line: sel.tno, err: err}
			}
		}
	}
	if err := index.Err(); err != nil {
		return IndexError{Line: sel.ino, err: err}
	}
	return nil
}
