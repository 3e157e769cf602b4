package keymap

import "testing"

func chord(t *testing.T, s string) Chord {
	t.Helper()
	c, err := ParseChord(s)
	if err != nil {
		t.Fatalf("ParseChord(%q): %v", s, err)
	}
	return c
}

func TestCompilePredicateNilWhenEmpty(t *testing.T) {
	p, err := CompilePredicate(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Error("expected a nil predicate for empty only/not")
	}
}

func TestPredicateMatchOnly(t *testing.T) {
	p, err := CompilePredicate([]string{"^Alacritty$"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Match("Alacritty", true) {
		t.Error("expected Alacritty to match")
	}
	if p.Match("firefox", true) {
		t.Error("expected firefox to not match")
	}
}

func TestPredicateMatchNot(t *testing.T) {
	p, err := CompilePredicate(nil, []string{"^firefox$"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Match("Alacritty", true) {
		t.Error("expected Alacritty to match (not excluded)")
	}
	if p.Match("firefox", true) {
		t.Error("expected firefox to be excluded")
	}
}

func TestPredicateUnavailableNeverMatches(t *testing.T) {
	p, err := CompilePredicate([]string{".*"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Match("anything", false) {
		t.Error("expected an unavailable context field to never match a non-nil predicate")
	}
}

func TestSplitAnyPullsWildcard(t *testing.T) {
	rules := []Rule{
		{Trigger: chord(t, "a")},
		{Trigger: chord(t, "C-ANY")},
		{Trigger: chord(t, "b")},
	}
	specific, any := SplitAny(rules)
	if len(specific) != 2 {
		t.Fatalf("expected 2 specific rules, got %d", len(specific))
	}
	if any == nil {
		t.Fatal("expected an ANY rule")
	}
}

func TestMergeAppendsDistinctEntries(t *testing.T) {
	tbl := &Table{}
	tbl.Merge(Entry{Name: "one", Rules: []Rule{{Trigger: chord(t, "a")}}})
	tbl.Merge(Entry{Name: "two", ExactMatch: true, Rules: []Rule{{Trigger: chord(t, "b")}}})
	if len(tbl.Entries) != 2 {
		t.Fatalf("expected 2 distinct entries (different ExactMatch), got %d", len(tbl.Entries))
	}
}

func TestMergeCombinesMatchingEntries(t *testing.T) {
	tbl := &Table{}
	tbl.Merge(Entry{Rules: []Rule{{Trigger: chord(t, "a")}}})
	tbl.Merge(Entry{Rules: []Rule{{Trigger: chord(t, "b")}}})
	if len(tbl.Entries) != 1 {
		t.Fatalf("expected entries with identical predicates to merge, got %d", len(tbl.Entries))
	}
	if len(tbl.Entries[0].Rules) != 2 {
		t.Fatalf("expected 2 merged rules, got %d", len(tbl.Entries[0].Rules))
	}
}

func TestMergeOverridesConflictingTrigger(t *testing.T) {
	tbl := &Table{}
	tbl.Merge(Entry{Rules: []Rule{{Trigger: chord(t, "a"), Action: Action{Steps: []Step{{Kind: StepChord, Chord: chord(t, "b")}}}}}})
	tbl.Merge(Entry{Rules: []Rule{{Trigger: chord(t, "a"), Action: Action{Steps: []Step{{Kind: StepChord, Chord: chord(t, "c")}}}}}})
	if len(tbl.Entries[0].Rules) != 1 {
		t.Fatalf("expected the conflicting trigger to override in place, got %d rules", len(tbl.Entries[0].Rules))
	}
	if tbl.Entries[0].Rules[0].Action.Steps[0].Chord.Key != chord(t, "c").Key {
		t.Error("expected the later action to win")
	}
}

func TestMergeRecursesIntoSubmaps(t *testing.T) {
	inner1 := &SubmapTable{Rules: []Rule{{Trigger: chord(t, "h")}}}
	inner2 := &SubmapTable{Rules: []Rule{{Trigger: chord(t, "l")}}}

	tbl := &Table{}
	tbl.Merge(Entry{Rules: []Rule{{Trigger: chord(t, "c_l-a"), Action: Action{Submap: inner1}}}})
	tbl.Merge(Entry{Rules: []Rule{{Trigger: chord(t, "c_l-a"), Action: Action{Submap: inner2}}}})

	merged := tbl.Entries[0].Rules[0].Action.Submap
	if merged == nil {
		t.Fatal("expected a merged sub-map")
	}
	if len(merged.Rules) != 2 {
		t.Fatalf("expected the sub-map rule sets to merge, got %d rules", len(merged.Rules))
	}
}
