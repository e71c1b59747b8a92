package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/islandsomewhere/malan"
)

// LadderFlag parses a comma-separated list of "min:max" pairs, one per
// locus, into a malan.Ladder: --ladder=8:20,9:21.
type LadderFlag struct {
	ladder malan.Ladder
	set    bool
}

// String implements pflag.Value.
func (f *LadderFlag) String() string {
	if !f.set {
		return ""
	}
	parts := make([]string, len(f.ladder.Min))
	for i := range f.ladder.Min {
		parts[i] = fmt.Sprintf("%d:%d", f.ladder.Min[i], f.ladder.Max[i])
	}
	return strings.Join(parts, ",")
}

// Set implements pflag.Value.
func (f *LadderFlag) Set(s string) error {
	if s == "" {
		return nil
	}
	tokens := strings.Split(s, ",")
	min := make([]int, len(tokens))
	max := make([]int, len(tokens))
	for i, tok := range tokens {
		pair := strings.SplitN(tok, ":", 2)
		if len(pair) != 2 {
			return fmt.Errorf("ladder token %q must be min:max", tok)
		}
		lo, err := strconv.Atoi(pair[0])
		if err != nil {
			return fmt.Errorf("ladder token %q: invalid min: %w", tok, err)
		}
		hi, err := strconv.Atoi(pair[1])
		if err != nil {
			return fmt.Errorf("ladder token %q: invalid max: %w", tok, err)
		}
		if lo > hi {
			return fmt.Errorf("ladder token %q: min must be <= max", tok)
		}
		min[i], max[i] = lo, hi
	}
	f.ladder = malan.Ladder{Min: min, Max: max}
	f.set = true
	return nil
}

// Type implements pflag.Value.
func (f *LadderFlag) Type() string {
	return "ladder"
}

// Get returns the parsed Ladder, or nil if the flag was never set.
func (f *LadderFlag) Get() *malan.Ladder {
	if !f.set {
		return nil
	}
	return &f.ladder
}
