/*
Package lisel selects lines from a target text by correspondence with the
lines of an index text. Both texts are read in a single forward pass, so
either of them may come from a pipe.

In the default mode the two texts correspond line by line: target line i is
emitted iff index line i matches a regular expression. Without an explicit
expression any non-empty index line matches. The decision can be inverted to
emit the target lines whose index line does not match. When one text stops
the selection stops, a surplus of lines on either side is not an error.

	index:  2023-06-27 ERROR …      target:  detail for line 1
	        2023-06-27 INFO  …               detail for line 2

With (Select).Pattern "ERROR" the selection emits "detail for line 1".

In line number mode the index lines do not correspond to target lines at all.
Instead each index line holds a range of 1-based target line numbers, in one
of the forms

	7     target line 7
	7,9   target lines 7 up to and including 9
	7,    target line 7 to the end of the target
	,9    start of the target up to line 9

and exactly the target lines covered by the ranges are emitted. Because the
target is read forward-only, the ranges must be strictly increasing; an index
violating this order aborts the selection. Ranges reaching beyond the end of
the target are truncated silently.

The command line tool in cmd/lisel binds the two streams to files or standard
input and writes the selection to standard output. Its index subcommand
derives a line number index from a target text, see MakeIndex.
*/
package lisel
