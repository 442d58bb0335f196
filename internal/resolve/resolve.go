// Package resolve provides the numeric-lexeme converters and default tag
// handle table the data model and the scalar grammar both depend on.
//
// It is adapted from the teacher's scalar tag-resolution table
// (internal/resolve in the go-yaml/yaml v3 port this module started from),
// trimmed down to what the spec actually calls for: the grammar itself
// decides whether a scalar is an Int, Float, Bool or Null lexeme, so this
// package no longer needs to sniff a plain scalar's type from its first
// byte. What survives is the int/float lexeme-to-native-value conversion
// (the data model's "documented numeric converters") and the tag handle
// expansion table (the default !, !! handles plus directive overrides).
package resolve

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const longTagPrefix = "tag:yaml.org,2002:"

// DefaultHandles returns a fresh copy of the two tag handles every document
// starts with, ready to be mutated by %TAG directives.
func DefaultHandles() map[string]string {
	return map[string]string{
		"!":  "",
		"!!": longTagPrefix,
	}
}

// ShortTag rewrites a long-form "tag:yaml.org,2002:foo" tag as "!!foo", and
// passes anything else through unchanged.
func ShortTag(tag string) string {
	if strings.HasPrefix(tag, longTagPrefix) {
		return "!!" + tag[len(longTagPrefix):]
	}
	return tag
}

// LongTag rewrites a short-form "!!foo" tag as "tag:yaml.org,2002:foo", and
// passes anything else through unchanged.
func LongTag(tag string) string {
	if strings.HasPrefix(tag, "!!") {
		return longTagPrefix + tag[2:]
	}
	return tag
}

// ParseInt parses an Int lexeme as preserved by the scalar grammar: an
// optional leading '-', then plain decimal digits, or one of the 0x/0o/0b
// base-prefixed forms, optionally with '_' digit separators.
func ParseInt(lexeme string) (int64, error) {
	neg := false
	s := lexeme
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	s = strings.ReplaceAll(s, "_", "")

	var v uint64
	var err error
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseUint(s[2:], 16, 64)
	case strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O"):
		v, err = strconv.ParseUint(s[2:], 8, 64)
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		v, err = strconv.ParseUint(s[2:], 2, 64)
	default:
		v, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve: invalid int lexeme %q: %w", lexeme, err)
	}
	if neg {
		return -int64(v), nil
	}
	return int64(v), nil
}

// ParseFloat parses a Float lexeme as preserved by the scalar grammar:
// decimal, scientific notation, or one of the .nan/.inf/-.inf spellings in
// any of the three cases the grammar accepts.
func ParseFloat(lexeme string) (float64, error) {
	switch lexeme {
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), nil
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), nil
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(lexeme, "_", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("resolve: invalid float lexeme %q: %w", lexeme, err)
	}
	return f, nil
}
