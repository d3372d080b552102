// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"write", "wrte", 1},
		{"version", "verison", 2},
		{"timeout", "timout", 1},
	}

	for _, test := range tests {
		t.Run(test.a+"→"+test.b, func(t *testing.T) {
			got := levenshtein(test.a, test.b)
			if got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "write"},
		{Name: "version"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"wrte", "write"},
		{"wirte", "write"},
		{"verison", "version"},
		{"completely-different", ""},
	}

	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		flags := pflag.NewFlagSet("write", pflag.ContinueOnError)
		flags.Duration("timeout", 0, "")
		flags.String("input", "", "")
		return flags
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--timout", "5s"}, "--timeout"},
		{[]string{"--inptu=/tmp/x"}, "--input"},
		{[]string{"--timeout", "5s"}, ""},
		{[]string{"positional"}, ""},
	}

	for _, test := range tests {
		if got := suggestFlag(test.args, newFlags()); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
