// Package cli provides CLI infrastructure for campus.
package cli

import (
	"fmt"
	"strings"
)

// Choice is one accepted value of an enumerated flag. Value is returned on a
// match against Value itself or any of its Aliases.
type Choice struct {
	Value   string
	Aliases []string
}

// MatchChoice resolves input against the accepted values of a flag. An exact
// match (case-insensitive) on a value or alias wins; otherwise input must be a
// prefix of the aliases of exactly one choice.
func MatchChoice(name, input string, choices []Choice) (string, error) {
	lower := strings.ToLower(input)

	for _, c := range choices {
		if c.Value == input || strings.ToLower(c.Value) == lower {
			return c.Value, nil
		}
		for _, a := range c.Aliases {
			if strings.ToLower(a) == lower {
				return c.Value, nil
			}
		}
	}

	var matches []string
	var names []string
	for _, c := range choices {
		for _, a := range c.Aliases {
			if lower != "" && strings.HasPrefix(strings.ToLower(a), lower) {
				matches = append(matches, c.Value)
				names = append(names, a)
				break
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", &ValidationError{Field: name, Message: fmt.Sprintf("unknown value %q (want one of: %s)", input, describe(choices))}
	case 1:
		return matches[0], nil
	default:
		return "", &ValidationError{Field: name, Message: fmt.Sprintf("ambiguous value %q matches: %s", input, strings.Join(names, ", "))}
	}
}

func describe(choices []Choice) string {
	var parts []string
	for _, c := range choices {
		if len(c.Aliases) > 0 {
			parts = append(parts, c.Aliases[0])
		} else {
			parts = append(parts, c.Value)
		}
	}
	return strings.Join(parts, ", ")
}
