package naming

import "strings"

// AliasTable maps nicknames to canonical display names. Keys are matched
// after lower-casing and trimming.
type AliasTable struct {
	aliases map[string]string
}

// NewAliasTable builds a table from raw name -> canonical name pairs
func NewAliasTable(aliases map[string]string) *AliasTable {
	t := &AliasTable{aliases: make(map[string]string, len(aliases))}
	for raw, canonical := range aliases {
		key := aliasKey(raw)
		if key == "" || strings.TrimSpace(canonical) == "" {
			continue
		}
		t.aliases[key] = strings.TrimSpace(canonical)
	}
	return t
}

// Lookup returns the canonical name for a nickname, if known
func (t *AliasTable) Lookup(input string) (string, bool) {
	if t == nil {
		return "", false
	}
	canonical, ok := t.aliases[aliasKey(input)]
	return canonical, ok
}

// Canonical returns the aliased name, or the capitalized input as a guess
func (t *AliasTable) Canonical(input string) string {
	if canonical, ok := t.Lookup(input); ok {
		return canonical
	}
	return Capitalize(strings.TrimSpace(input))
}

// Len returns the number of aliases
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.aliases)
}

func aliasKey(s string) string {
	return Lower(strings.TrimSpace(s))
}
