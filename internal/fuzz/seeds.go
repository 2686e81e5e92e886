// Package fuzztests holds fuzz targets for the scanner. Seeds mix known-good
// inputs, known-bad inputs, and boundary shapes around multi-byte runes.
package fuzztests

import "testing"

func addCorpusSeeds(f *testing.F) {
	seeds := []string{
		"",
		" ",
		"+",
		"  +☃1234 abdk ☃",
		" * +abc ",
		"☃☃☃",
		"1234567890",
		"abc def ghi",
		"a1b2c3",
		"\n\t  \n",
		"\xff\xfe",      // invalid UTF-8
		"\xe2\x98",      // truncated snowman
		"+++",
		"☃ 1 a +",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}
