// Copyright © 2025 The Lantern authors

/*
Package filter parses the small query language used to narrow message
views.

	query := term*
	term  := key ':' value | flag
	key   := "severity" | "type" | "path" | "provider"
	flag  := "file" | "project" | "fix"

Terms are AND-combined. Severity, type, and provider match
case-insensitively; path matches by substring.
*/
package filter

import (
	"fmt"
	"strings"

	parsec "github.com/prataprc/goparsec"

	"github.com/lanternhq/lantern/diagnostics"
)

type term struct {
	key   string
	value string
}

// Query is a compiled filter expression.
type Query struct {
	terms []term
}

// Parse compiles a query string. An empty or all-whitespace query
// matches everything.
func Parse(input string) (*Query, error) {
	pair := parsec.Token(`[A-Za-z]+:[^\s]+`, "PAIR")
	flag := parsec.Token(`[A-Za-z]+`, "FLAG")
	termP := parsec.OrdChoice(firstNode, pair, flag)

	q := &Query{}
	s := parsec.NewScanner([]byte(input))
	var node parsec.ParsecNode
	for {
		node, s = termP(s)
		if node == nil {
			break
		}
		t, err := termFromNode(node)
		if err != nil {
			return nil, err
		}
		q.terms = append(q.terms, t)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		rest, _ := s.Match(`.{1,16}`)
		return nil, fmt.Errorf("filter: unexpected text starting: %s", rest)
	}
	return q, nil
}

// firstNode unwraps an OrdChoice match to the node that matched.
func firstNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func termFromNode(node parsec.ParsecNode) (term, error) {
	t, ok := node.(*parsec.Terminal)
	if !ok {
		return term{}, fmt.Errorf("filter: unexpected parse node %T", node)
	}
	key, value, found := strings.Cut(t.Value, ":")
	key = strings.ToLower(key)
	if !found {
		switch key {
		case "file", "project", "fix":
			return term{key: key}, nil
		}
		return term{}, fmt.Errorf("filter: unknown flag %q", t.Value)
	}
	switch key {
	case "severity", "type", "path", "provider":
		return term{key: key, value: value}, nil
	}
	return term{}, fmt.Errorf("filter: unknown key %q", key)
}

// Match reports whether a message satisfies every term of the query.
func (q *Query) Match(m *diagnostics.Message) bool {
	for _, t := range q.terms {
		if !matchTerm(t, m) {
			return false
		}
	}
	return true
}

// Filter returns the messages satisfying the query, preserving order.
func (q *Query) Filter(msgs []*diagnostics.Message) []*diagnostics.Message {
	if len(q.terms) == 0 {
		return msgs
	}
	var out []*diagnostics.Message
	for _, m := range msgs {
		if q.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

func matchTerm(t term, m *diagnostics.Message) bool {
	switch t.key {
	case "severity", "type":
		return strings.EqualFold(m.Type, t.value)
	case "path":
		return m.Scope == diagnostics.ScopeFile && strings.Contains(m.FilePath, t.value)
	case "provider":
		return strings.EqualFold(m.ProviderName, t.value)
	case "file":
		return m.Scope == diagnostics.ScopeFile
	case "project":
		return m.Scope == diagnostics.ScopeProject
	case "fix":
		return m.Fix != nil
	}
	return false
}
