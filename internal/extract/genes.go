// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/primer-crawler/pkg/types"
)

// synonyms maps a gene label (uppercase) to the surface forms accepted as
// a mention of that gene. IL11 is the single built-in entry: the biomedical
// literature writes it as IL11, IL-11, or spelled-out interleukin variants.
// Every other gene matches only its literal name.
var synonyms = map[string][]string{
	"IL11": {"IL11", "IL-11", "interleukin 11", "interleukin-11", "interleukin11"},
}

// SurfaceForms returns the accepted written forms for a gene. The slice is
// a copy; callers may modify it.
func SurfaceForms(gene string) []string {
	gene = strings.TrimSpace(gene)
	if gene == "" {
		gene = types.DefaultGene
	}
	if forms, ok := synonyms[strings.ToUpper(gene)]; ok {
		out := make([]string, len(forms))
		copy(out, forms)
		return out
	}
	return []string{gene}
}

// genePattern compiles a case-insensitive, word-bounded pattern matching
// any of the gene's surface forms.
func genePattern(gene string) *regexp.Regexp {
	forms := SurfaceForms(gene)
	quoted := make([]string, len(forms))
	for i, f := range forms {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
