// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/primer-crawler/pkg/types"
)

// seqToken matches a nucleotide-sequence token: eight or more letters drawn
// from A/C/G/T/U/N, case-insensitive, on word boundaries.
var seqToken = regexp.MustCompile(`(?i)\b[ACGTUN]{8,}\b`)

// Labeling cues that mark the sequence following them as the forward or
// reverse primer ("forward primer", "F: ACGT...").
var (
	forwardCue = regexp.MustCompile(`(?i)\bforward\b|\bF\s*:`)
	reverseCue = regexp.MustCompile(`(?i)\breverse\b|\bR\s*:`)
)

// cueSpan is how far back from a sequence token a labeling cue may sit.
const cueSpan = 30

// FindPrimers scans windows around each target-gene mention for nucleotide
// sequences and returns up to one forward and one reverse primer. Sequences
// preceded by a labeling cue claim the matching slot; unlabeled sequences
// fill remaining slots in order of appearance. Absence of a match is a
// normal result, not an error.
func (e *Engine) FindPrimers(text string) types.PrimerPair {
	var pair types.PrimerPair
	if text == "" {
		return pair
	}

	seen := make(map[string]bool)
	for _, loc := range e.gene.FindAllStringIndex(text, -1) {
		start := loc[0] - e.windowRadius
		if start < 0 {
			start = 0
		}
		end := loc[1] + e.windowRadius
		if end > len(text) {
			end = len(text)
		}
		window := text[start:end]

		for _, m := range seqToken.FindAllStringIndex(window, -1) {
			seq := strings.ToUpper(window[m[0]:m[1]])
			if seen[seq] {
				continue
			}

			switch nearestCue(window, m[0]) {
			case cueForward:
				if pair.Forward == "" {
					pair.Forward = seq
					seen[seq] = true
				}
			case cueReverse:
				if pair.Reverse == "" {
					pair.Reverse = seq
					seen[seq] = true
				}
			default:
				if pair.Forward == "" {
					pair.Forward = seq
					seen[seq] = true
				} else if pair.Reverse == "" {
					pair.Reverse = seq
					seen[seq] = true
				}
			}

			if pair.Forward != "" && pair.Reverse != "" {
				return pair
			}
		}
	}
	return pair
}

type cue int

const (
	cueNone cue = iota
	cueForward
	cueReverse
)

// nearestCue inspects the text just before a sequence token and returns the
// labeling cue closest to it, if any. Looking only at the nearest cue keeps
// "forward: AAA reverse: BBB" from labeling BBB as forward.
func nearestCue(window string, tokenStart int) cue {
	from := tokenStart - cueSpan
	if from < 0 {
		from = 0
	}
	prefix := window[from:tokenStart]

	fwd := lastMatchEnd(forwardCue, prefix)
	rev := lastMatchEnd(reverseCue, prefix)
	switch {
	case fwd < 0 && rev < 0:
		return cueNone
	case fwd > rev:
		return cueForward
	default:
		return cueReverse
	}
}

// lastMatchEnd returns the end offset of the last match of re in s, or -1.
func lastMatchEnd(re *regexp.Regexp, s string) int {
	locs := re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return -1
	}
	return locs[len(locs)-1][1]
}
