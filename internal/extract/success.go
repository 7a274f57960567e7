// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "strings"

// defaultSuccessTerms is the built-in success/efficacy vocabulary scanned
// for near gene mentions. Expression-change language counts alongside
// direct amplification claims; the list is tunable via ExtractConfig.
var defaultSuccessTerms = []string{
	"successfully amplified",
	"confirmed expression",
	"validated",
	"efficient",
	"upregulated",
	"downregulated",
	"overexpressed",
	"overexpression",
	"suppressed",
	"suppression",
	"decreased",
	"increased",
	"elevated",
	"reduced",
	"knockdown",
	"silenced",
	"activation",
	"activated",
	"inhibited",
	"inhibition",
	"expression",
}

// DetectSuccess reports whether success vocabulary appears within the
// configured radius of any target-gene mention. The signal is binary: the
// first qualifying window decides, with no scoring.
func (e *Engine) DetectSuccess(text string) bool {
	if text == "" {
		return false
	}

	lower := strings.ToLower(text)
	for _, loc := range e.gene.FindAllStringIndex(lower, -1) {
		start := loc[0] - e.successRadius
		if start < 0 {
			start = 0
		}
		end := loc[1] + e.successRadius
		if end > len(lower) {
			end = len(lower)
		}
		window := lower[start:end]

		for _, term := range e.successTerms {
			if strings.Contains(window, term) {
				return true
			}
		}
	}
	return false
}
