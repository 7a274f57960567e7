// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xlsx

import (
	"bytes"
	"fmt"
)

// sharedStrings assigns integer indices to distinct cell values in
// first-seen order. Indices are stable for the lifetime of one encode
// operation; nothing persists across documents.
type sharedStrings struct {
	index map[string]int
	list  []string
	refs  int
}

func newSharedStrings() *sharedStrings {
	return &sharedStrings{index: make(map[string]int)}
}

// add registers one cell reference to value and returns its index. A value
// already in the table keeps its original index.
func (s *sharedStrings) add(value string) int {
	s.refs++
	if i, ok := s.index[value]; ok {
		return i
	}
	i := len(s.list)
	s.index[value] = i
	s.list = append(s.list, value)
	return i
}

// part renders the xl/sharedStrings.xml document part.
func (s *sharedStrings) part() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b,
		`<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">`,
		s.refs, len(s.list))
	for _, v := range s.list {
		b.WriteString("<si><t")
		// Leading or trailing whitespace must be declared as significant
		// or readers will trim it.
		if needsSpacePreserve(v) {
			b.WriteString(` xml:space="preserve"`)
		}
		b.WriteByte('>')
		b.Write(escapeXML(v))
		b.WriteString("</t></si>")
	}
	b.WriteString("</sst>")
	return b.Bytes()
}

func needsSpacePreserve(v string) bool {
	if v == "" {
		return false
	}
	first, last := v[0], v[len(v)-1]
	return first == ' ' || first == '\t' || first == '\n' ||
		last == ' ' || last == '\t' || last == '\n'
}
