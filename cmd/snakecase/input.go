package main

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// readLines decodes r from the named charset to UTF-8 and splits it into
// lines. Ill-formed sequences become U+FFFD, which both engines drop.
func readLines(r io.Reader, charset string) ([]string, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown encoding %q", charset)
	}

	decoded := transform.NewReader(r, transform.Chain(enc.NewDecoder(), runes.ReplaceIllFormed()))
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}

	return lines, errors.Wrap(scanner.Err(), "can't read input")
}
