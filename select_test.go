package lisel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
	"github.com/google/go-cmp/cmp"
)

func ExampleSelect() {
	sel := Select{Numbers: true}
	err := sel.Strings("2,3", "a\nb\nc\nd", func(lineno int, line string) error {
		fmt.Printf("%d: %s\n", lineno, line)
		return nil
	})
	if err != nil {
		fmt.Println(err)
	}
	// Output:
	// 2: b
	// 3: c
}

func collect(t *testing.T, sel *Select, index, target string) []string {
	t.Helper()
	got := []string{}
	testerr.Shall(sel.Strings(index, target, func(_ int, line string) error {
		got = append(got, line)
		return nil
	})).BeNil(t)
	return got
}

func TestSelect_match(t *testing.T) {
	check := func(t *testing.T, sel Select, index, target string, want ...string) {
		if want == nil {
			want = []string{}
		}
		if diff := cmp.Diff(want, collect(t, &sel, index, target)); diff != "" {
			t.Error(diff)
		}
	}
	t.Run("default pattern", func(t *testing.T) {
		check(t, Select{}, "\nx\n\n", "a\nb\nc", "b")
	})
	t.Run("invert", func(t *testing.T) {
		check(t, Select{Invert: true}, "x\n\nx", "a\nb\nc", "b")
	})
	t.Run("explicit pattern", func(t *testing.T) {
		check(t, Select{Pattern: `^#`}, "#yes\nno\n#yes", "a\nb\nc", "a", "c")
	})
	t.Run("index shorter than target", func(t *testing.T) {
		check(t, Select{}, "x", "a\nb\nc", "a")
	})
	t.Run("index shorter with invert", func(t *testing.T) {
		// a short index never emits beyond its own length
		check(t, Select{Invert: true}, "\n", "a\nb\nc", "a")
	})
	t.Run("target shorter than index", func(t *testing.T) {
		check(t, Select{}, "x\nx\nx\nx", "a\nb", "a", "b")
	})
	t.Run("empty index", func(t *testing.T) {
		check(t, Select{}, "", "a\nb\nc")
	})
	t.Run("empty target", func(t *testing.T) {
		check(t, Select{}, "x\nx", "")
	})
}

func TestSelect_numbers(t *testing.T) {
	check := func(t *testing.T, index, target string, want ...string) {
		if want == nil {
			want = []string{}
		}
		sel := Select{Numbers: true}
		if diff := cmp.Diff(want, collect(t, &sel, index, target)); diff != "" {
			t.Error(diff)
		}
	}
	t.Run("single lines", func(t *testing.T) {
		check(t, "1\n3", "a\nb\nc\nd", "a", "c")
	})
	t.Run("closed range", func(t *testing.T) {
		check(t, "2,3", "a\nb\nc\nd", "b", "c")
	})
	t.Run("open end", func(t *testing.T) {
		check(t, "3,", "a\nb\nc\nd", "c", "d")
	})
	t.Run("open start", func(t *testing.T) {
		check(t, ",2", "a\nb\nc", "a", "b")
	})
	t.Run("abutting ranges", func(t *testing.T) {
		check(t, "1,2\n3,4", "a\nb\nc\nd\ne", "a", "b", "c", "d")
	})
	t.Run("range beyond target", func(t *testing.T) {
		check(t, "2,9", "a\nb\nc", "b", "c")
	})
	t.Run("ranges after drained target", func(t *testing.T) {
		check(t, "3,\n10,20", "a\nb\nc\nd", "c", "d")
	})
	t.Run("empty target", func(t *testing.T) {
		check(t, "1,2", "")
	})
}

func TestSelect_numbersErrors(t *testing.T) {
	shallFail := func(
		t *testing.T, index, target string, kind error, atLine int,
	) (emitted []string) {
		sel := Select{Numbers: true}
		err := sel.Strings(index, target, func(_ int, line string) error {
			emitted = append(emitted, line)
			return nil
		})
		if !errors.Is(err, kind) {
			t.Fatalf("got error %v, want %v", err, kind)
		}
		var ierr IndexError
		if !errors.As(err, &ierr) {
			t.Fatalf("error %v carries no index position", err)
		}
		if ierr.Line != atLine {
			t.Errorf("error reported for index line %d, want %d", ierr.Line, atLine)
		}
		return emitted
	}
	t.Run("non-monotonic", func(t *testing.T) {
		emitted := shallFail(t, "3,4\n2,5", "a\nb\nc\nd\ne", ErrRangeOrder, 2)
		// the first range is emitted before the violation is seen
		if diff := cmp.Diff([]string{"c", "d"}, emitted); diff != "" {
			t.Error(diff)
		}
	})
	t.Run("overlap passes order check", func(t *testing.T) {
		// floors increase but the cursor already passed the second start
		shallFail(t, "3,5\n4,6", "a\nb\nc\nd\ne\nf", ErrRangeOrder, 2)
	})
	t.Run("start after end", func(t *testing.T) {
		shallFail(t, "4,3", "a\nb\nc\nd", ErrRangeOrder, 1)
	})
	t.Run("order checked after drained target", func(t *testing.T) {
		shallFail(t, "3,\n2,5", "a\nb\nc\nd", ErrRangeOrder, 2)
	})
	t.Run("malformed line", func(t *testing.T) {
		shallFail(t, "1\nx", "a\nb\nc", ErrMalformedRange, 2)
	})
	t.Run("empty index line", func(t *testing.T) {
		shallFail(t, "1\n\n3", "a\nb\nc", ErrMalformedRange, 2)
	})
	t.Run("error text", func(t *testing.T) {
		sel := Select{Numbers: true}
		err := sel.Strings("oops", "a", Emit(&strings.Builder{}))
		var ierr IndexError
		if !errors.As(err, &ierr) {
			t.Fatalf("unexpected error %v", err)
		}
		if ierr.Text != "oops" {
			t.Errorf("error carries text '%s', want 'oops'", ierr.Text)
		}
	})
}

func TestSelect_config(t *testing.T) {
	t.Run("invert with line numbers", func(t *testing.T) {
		sel := Select{Numbers: true, Invert: true}
		err := sel.Strings("1", "a", func(_ int, _ string) error {
			t.Error("emit called despite config error")
			return nil
		})
		if !errors.Is(err, ErrInvertNumbers) {
			t.Errorf("got error %v, want %v", err, ErrInvertNumbers)
		}
	})
	t.Run("broken pattern", func(t *testing.T) {
		sel := Select{Pattern: "("}
		err := sel.Strings("x", "a", func(_ int, _ string) error {
			t.Error("emit called despite config error")
			return nil
		})
		if err == nil {
			t.Error("broken pattern not rejected")
		}
	})
}

func TestSelect_reuse(t *testing.T) {
	var sel Select
	for i := 0; i < 2; i++ {
		got := collect(t, &sel, "x\n\nx", "a\nb\nc")
		if diff := cmp.Diff([]string{"a", "c"}, got); diff != "" {
			t.Errorf("run %d: %s", i+1, diff)
		}
	}
}

func TestSelect_files(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, "index")
	target := filepath.Join(dir, "target")
	testerr.Shall(os.WriteFile(index, []byte("2,3\n"), 0666)).BeNil(t)
	testerr.Shall(os.WriteFile(target, []byte("a\nb\nc\nd\n"), 0666)).BeNil(t)
	var out strings.Builder
	sel := Select{Numbers: true}
	testerr.Shall(sel.Files(index, target, Emit(&out))).BeNil(t)
	if out.String() != "b\nc\n" {
		t.Errorf("selected '%s', want 'b\\nc\\n'", out.String())
	}
}

func TestEmit_abort(t *testing.T) {
	abort := errors.New("stop here")
	sel := Select{}
	err := sel.Strings("x\nx", "a\nb", func(_ int, _ string) error {
		return abort
	})
	if !errors.Is(err, abort) {
		t.Errorf("emit error not passed through, got %v", err)
	}
}
