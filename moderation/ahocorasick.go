package moderation

// Matcher is a compact Aho-Corasick automaton for multi-keyword search.
// Built once at startup from the banned-word list, then shared read-only
// across requests.
type Matcher struct {
	next []map[rune]int
	fail []int
	out  [][]string
}

// NewMatcher builds the automaton over the given patterns. Empty patterns
// are ignored.
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{
		next: []map[rune]int{{}},
		fail: []int{0},
		out:  [][]string{nil},
	}

	for _, p := range patterns {
		if p == "" {
			continue
		}
		state := 0
		for _, r := range p {
			child, ok := m.next[state][r]
			if !ok {
				child = len(m.next)
				m.next = append(m.next, map[rune]int{})
				m.fail = append(m.fail, 0)
				m.out = append(m.out, nil)
				m.next[state][r] = child
			}
			state = child
		}
		m.out[state] = append(m.out[state], p)
	}

	// BFS over the trie to wire the failure links.
	queue := make([]int, 0, len(m.next))
	for _, child := range m.next[0] {
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]
		for r, child := range m.next[state] {
			queue = append(queue, child)

			f := m.fail[state]
			for f != 0 {
				if _, ok := m.next[f][r]; ok {
					break
				}
				f = m.fail[f]
			}
			if to, ok := m.next[f][r]; ok && to != child {
				m.fail[child] = to
			} else {
				m.fail[child] = 0
			}
			m.out[child] = append(m.out[child], m.out[m.fail[child]]...)
		}
	}
	return m
}

// Find returns the first pattern match in text, or "" when none occurs.
func (m *Matcher) Find(text string) string {
	state := 0
	for _, r := range text {
		for state != 0 {
			if _, ok := m.next[state][r]; ok {
				break
			}
			state = m.fail[state]
		}
		if to, ok := m.next[state][r]; ok {
			state = to
		}
		if len(m.out[state]) > 0 {
			return m.out[state][0]
		}
	}
	return ""
}

// Match reports whether any pattern occurs in text.
func (m *Matcher) Match(text string) bool {
	return m.Find(text) != ""
}
