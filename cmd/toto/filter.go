package main

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/aledsdavies/toto/pkgs/errors"
	"github.com/aledsdavies/toto/pkgs/lexer"
)

// kindFilter decides which tokens are printed
type kindFilter struct {
	only     map[lexer.TokenKind]bool // nil keeps every kind
	noTrivia bool
}

func newKindFilter(names []string, noTrivia bool) (*kindFilter, error) {
	f := &kindFilter{noTrivia: noTrivia}
	if len(names) == 0 {
		return f, nil
	}

	f.only = make(map[lexer.TokenKind]bool, len(names))
	for _, name := range names {
		kind, err := parseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		f.only[kind] = true
	}
	return f, nil
}

func (f *kindFilter) keep(kind lexer.TokenKind) bool {
	if f.noTrivia && (kind == lexer.Whitespace || kind == lexer.Newline) {
		return false
	}
	return f.only == nil || f.only[kind]
}

// parseKind accepts a token kind name in any letter case
func parseKind(name string) (lexer.TokenKind, error) {
	if kind, ok := lexer.ParseTokenKind(name); ok {
		return kind, nil
	}

	names := kindNames()
	for i, candidate := range names {
		if strings.EqualFold(candidate, name) {
			return lexer.TokenKinds()[i], nil
		}
	}
	return 0, errors.NewUnknownTokenKindError(name, findClosestMatch(name, names))
}

func kindNames() []string {
	kinds := lexer.TokenKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// findClosestMatch finds the closest string match using fuzzy matching,
// falling back to edit distance for typos that are not subsequences
func findClosestMatch(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", len(target)/2+1
	lower := strings.ToLower(target)
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c)); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}
