// Package moderation censors configured words in outbound chat messages.
// Matching is resilient to casing, leet speak, and punctuation noise; the
// replacement preserves the original spacing of the censored span.
package moderation

import (
	"log/slog"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Moderator struct {
	matcher     *goahocorasick.Machine
	replacement rune
	log         *slog.Logger
}

// mapping ties each rune of the normalized text back to its index in the
// original, so matches on the normalized form censor the right spans.
type mapping struct {
	normalized []rune
	origIdx    []int
}

// NewModerator builds the Aho-Corasick automaton over the normalized word
// list. An empty list yields a nil Moderator, which disables the pass.
func NewModerator(words []string, replacement rune, log *slog.Logger) (*Moderator, error) {
	if len(words) == 0 {
		return nil, nil
	}

	patterns := make([][]rune, len(words))
	for i, word := range words {
		patterns[i] = normalize([]rune(word)).normalized
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: machine, replacement: replacement, log: log}, nil
}

// Censor replaces every matched span with the replacement rune. The
// returned string has the same length in runes as the input.
func (m *Moderator) Censor(original string) string {
	if m == nil {
		return original
	}

	text := normalize([]rune(original))
	if len(text.normalized) == 0 {
		return original
	}

	spans := m.matcher.MultiPatternSearch(text.normalized, false)
	if len(spans) == 0 {
		return original
	}

	runes := []rune(original)
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(text.origIdx) {
			continue
		}
		// Censor the whole original span, punctuation included.
		for i := text.origIdx[start]; i <= text.origIdx[end-1]; i++ {
			runes[i] = m.replacement
		}
	}

	m.log.Debug("censored message", "matches", len(spans))
	return string(runes)
}

func normalize(input []rune) mapping {
	out := mapping{
		normalized: make([]rune, 0, len(input)),
		origIdx:    make([]int, 0, len(input)),
	}
	for i, r := range input {
		plain := unleet(r)
		if unicode.IsPunct(plain) || unicode.IsSpace(plain) || unicode.IsSymbol(plain) {
			continue
		}
		out.normalized = append(out.normalized, unicode.ToLower(plain))
		out.origIdx = append(out.origIdx, i)
	}
	return out
}

// unleet maps common leet-speak substitutions back to letters.
func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}
