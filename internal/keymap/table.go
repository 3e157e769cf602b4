// Package keymap flattens and merges the parsed config into a
// decision structure keyed by modifier-set + trigger: the
// KeymapTable the match engine walks in declaration order.
package keymap

import (
	"fmt"
	"regexp"

	"github.com/Danondso/xremap-core/internal/keycode"
)

// StepKind tags one element of an action's chord list.
type StepKind int

const (
	StepChord StepKind = iota
	StepLaunch
)

// Step is one element of a matched rule's action list: either a
// literal key chord to press+release, or an opaque launch action the
// core passes through untouched.
type Step struct {
	Kind   StepKind
	Chord  Chord
	Launch []string
}

// SubmapTable is the rule set installed when a trigger resolves to a
// nested `remap:` block. It carries no predicates of its own. Once
// installed it is consulted for each following key press and stays
// active until a non-modifier key finds no rule in it.
type SubmapTable struct {
	Rules   []Rule
	AnyRule *Rule
}

// SplitAny pulls the ANY wildcard rule (if any) out of an ordered rule
// list, matching spec §4.3's "specific keys outrank ANY" tie-break.
func SplitAny(rules []Rule) (specific []Rule, any *Rule) {
	for _, r := range rules {
		if IsAny(r.Trigger.Key) {
			rule := r
			any = &rule
			continue
		}
		specific = append(specific, r)
	}
	return specific, any
}

// Action is what a matched Trigger resolves to: a (possibly empty)
// chord/launch sequence, optionally installing a sub-map as its final
// effect.
type Action struct {
	Steps      []Step
	Submap     *SubmapTable
	Suppressed bool // output was `[]` or `null`
}

// Rule pairs one trigger with the action it resolves to.
type Rule struct {
	Trigger Chord
	Action  Action
}

// Predicate evaluates an `only`/`not` regex list against a context
// field. A nil Predicate always matches (no constraint). A context
// field that could not be read at all (ClientUnavailable, spec §7) is
// treated as non-matching whenever the predicate isn't nil, so entries
// without predicates still fire.
type Predicate struct {
	only []*regexp.Regexp
	not  []*regexp.Regexp
}

// CompilePredicate compiles an only/not pattern list. A nil input
// compiles to a nil Predicate (always matches).
func CompilePredicate(only, not []string) (*Predicate, error) {
	if len(only) == 0 && len(not) == 0 {
		return nil, nil
	}
	p := &Predicate{}
	for _, pat := range only {
		re, err := regexp.Compile("^(?:" + pat + ")$")
		if err != nil {
			return nil, fmt.Errorf("only pattern %q: %w", pat, err)
		}
		p.only = append(p.only, re)
	}
	for _, pat := range not {
		re, err := regexp.Compile("^(?:" + pat + ")$")
		if err != nil {
			return nil, fmt.Errorf("not pattern %q: %w", pat, err)
		}
		p.not = append(p.not, re)
	}
	return p, nil
}

// Match reports whether value satisfies the predicate. available
// signals whether the underlying context field could be read at all
// (e.g. the window-manager client returned a value); when false, a
// non-nil predicate never matches (ClientUnavailable, spec §7).
func (p *Predicate) Match(value string, available bool) bool {
	if p == nil {
		return true
	}
	if !available {
		return false
	}
	if len(p.only) > 0 {
		matched := false
		for _, re := range p.only {
			if re.MatchString(value) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, re := range p.not {
		if re.MatchString(value) {
			return false
		}
	}
	return true
}

// Entry is one merged top-level keymap block: predicates plus an
// ordered rule list, with at most one ANY wildcard rule.
type Entry struct {
	Name        string
	ExactMatch  bool
	Application *Predicate
	Device      *Predicate
	Window      *Predicate
	Rules       []Rule
	AnyRule     *Rule
}

// Table is the fully merged, validated keymap plus the unconditional
// modmap rewrite table.
type Table struct {
	Modmap  map[uint16]uint16
	Entries []Entry
}

// ConfigError reports a problem in the rule tree, tagged with the
// offending rule's name when one was given (spec §7).
type ConfigError struct {
	RuleName string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.RuleName == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("rule %q: %v", e.RuleName, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func predicateKey(p *Predicate) string {
	if p == nil {
		return ""
	}
	s := "only:"
	for _, re := range p.only {
		s += re.String() + ","
	}
	s += "|not:"
	for _, re := range p.not {
		s += re.String() + ","
	}
	return s
}

func entryKey(e *Entry) string {
	return fmt.Sprintf("%v|%s|%s|%s", e.ExactMatch, predicateKey(e.Application), predicateKey(e.Device), predicateKey(e.Window))
}

func chordKey(c Chord) string {
	s := fmt.Sprintf("k%d", c.Key)
	for _, m := range c.Modifiers {
		s += fmt.Sprintf("|%d:%d", m.Class, m.Side)
	}
	return s
}

// mergeRules deep-merges src into dst: later values override earlier
// ones at conflicting leaves, and nested sub-maps merge recursively
// (spec §4.1).
func mergeRules(dst []Rule, src []Rule) []Rule {
	index := make(map[string]int, len(dst))
	for i, r := range dst {
		index[chordKey(r.Trigger)] = i
	}
	for _, r := range src {
		key := chordKey(r.Trigger)
		if i, ok := index[key]; ok {
			existing := dst[i].Action
			if existing.Submap != nil && r.Action.Submap != nil {
				merged := *existing.Submap
				merged.Rules = mergeRules(merged.Rules, r.Action.Submap.Rules)
				if r.Action.Submap.AnyRule != nil {
					merged.AnyRule = r.Action.Submap.AnyRule
				}
				r.Action.Submap = &merged
			}
			dst[i] = r
			continue
		}
		index[key] = len(dst)
		dst = append(dst, r)
	}
	return dst
}

// Merge folds e into t's entries, merging with an existing entry
// whose predicates and exact_match are all equal (spec §4.1), or
// appending a new one.
func (t *Table) Merge(e Entry) {
	for i := range t.Entries {
		if entryKey(&t.Entries[i]) == entryKey(&e) {
			t.Entries[i].Rules = mergeRules(t.Entries[i].Rules, e.Rules)
			if e.AnyRule != nil {
				t.Entries[i].AnyRule = e.AnyRule
			}
			return
		}
	}
	t.Entries = append(t.Entries, e)
}

// IsAny reports whether code is the ANY wildcard sentinel.
func IsAny(code uint16) bool {
	return code == keycode.AnyCode
}
