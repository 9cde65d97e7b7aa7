// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich derives lightweight topic tags from paper text and upserts
// them into the enrichment table.
package enrich

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// tagRules maps derived tags to the phrases that trigger them. Phrases are
// matched on stemmed tokens, so surface variants ("diffusion models",
// "federated training") still hit.
var tagRules = []struct {
	tag     string
	phrases []string
}{
	{"llm", []string{"large language model", "llm", "gpt"}},
	{"reinforcement-learning", []string{"reinforcement learning", "rl"}},
	{"diffusion", []string{"diffusion"}},
	{"gnn", []string{"graph neural", "gnn"}},
	{"federated-learning", []string{"federated"}},
}

// codeTokens are the stem-matched signals for an available implementation;
// repository URLs are checked separately as substrings.
var codeTokens = []string{"code", "implementation"}

// Tags returns the set of derived tags for text, sorted for stable output.
// Tag order carries no meaning.
func Tags(text string) []string {
	tokens := stemTokens(text)

	seen := make(map[string]bool)
	for _, rule := range tagRules {
		for _, phrase := range rule.phrases {
			if containsSeq(tokens, stemTokens(phrase)) {
				seen[rule.tag] = true
				break
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// HasCode reports whether text suggests the paper ships an implementation.
func HasCode(text string) bool {
	if strings.Contains(strings.ToLower(text), "github.com") {
		return true
	}
	tokens := stemTokens(text)
	for _, t := range codeTokens {
		if containsSeq(tokens, stemTokens(t)) {
			return true
		}
	}
	return false
}

// stemTokens lowercases text, splits it on non-alphanumeric runes, and stems
// each token.
func stemTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = stem(f)
	}
	return tokens
}

func stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}

// containsSeq reports whether needle appears as a consecutive subsequence of
// haystack.
func containsSeq(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, n := range needle {
			if haystack[i+j] != n {
				continue outer
			}
		}
		return true
	}
	return false
}
