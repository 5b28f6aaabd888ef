package outline

import (
	"testing"

	"beatline-cli/internal/model"
)

func TestFlattenPreOrderDepths(t *testing.T) {
	t.Parallel()

	flat := Flatten(sampleTree())
	wantDepth := []int{0, 1, 2, 1, 0}
	wantID := []string{"n1", "n2", "n3", "n4", "n5"}
	if len(flat) != len(wantID) {
		t.Fatalf("expected %d rows; got %d", len(wantID), len(flat))
	}
	for i := range flat {
		if flat[i].ID != wantID[i] || flat[i].Depth != wantDepth[i] {
			t.Fatalf("row %d: expected %s@%d; got %s@%d", i, wantID[i], wantDepth[i], flat[i].ID, flat[i].Depth)
		}
	}
}

func TestFlattenSkipsCollapsedSubtrees(t *testing.T) {
	t.Parallel()

	tree := ToggleCollapse(sampleTree(), "n1")
	flat := Flatten(tree)
	if len(flat) != 2 {
		t.Fatalf("expected collapsed subtree omitted (2 rows); got %d", len(flat))
	}
	if flat[0].ID != "n1" || flat[1].ID != "n5" {
		t.Fatalf("expected n1, n5; got %s, %s", flat[0].ID, flat[1].ID)
	}
	if !flat[0].HasChildren || !flat[0].Collapsed {
		t.Fatal("expected collapsed row to still report its children")
	}
}

func TestFlattenAllIgnoresCollapse(t *testing.T) {
	t.Parallel()

	tree := ToggleCollapse(sampleTree(), "n1")
	flat := FlattenAll(tree)
	if len(flat) != 5 {
		t.Fatalf("expected all 5 rows regardless of collapse; got %d", len(flat))
	}
}

func TestFlattenRowMetadata(t *testing.T) {
	t.Parallel()

	flat := Flatten(sampleTree())
	byID := map[string]model.FlatNode{}
	for _, f := range flat {
		byID[f.ID] = f
	}

	n3 := byID["n3"]
	if len(n3.AncestorIDs) != 2 || n3.AncestorIDs[0] != "n1" || n3.AncestorIDs[1] != "n2" {
		t.Fatalf("expected ancestors [n1 n2]; got %v", n3.AncestorIDs)
	}
	if !n3.IsLastChild {
		t.Fatal("expected only child to be last child")
	}
	if n3.HasChildren {
		t.Fatal("expected leaf to report no children")
	}
	if byID["n2"].IsLastChild {
		t.Fatal("expected n2 (followed by n4) not to be last child")
	}
	if byID["n4"].OrderIndex != 1 {
		t.Fatalf("expected n4 at sibling index 1; got %d", byID["n4"].OrderIndex)
	}
}

func TestNumberIndexesCountersPerDepth(t *testing.T) {
	t.Parallel()

	tree := Normalize([]model.HierarchyNode{
		node("a", nil, "A"),
		node("b", nil, "B",
			node("b1", sp("b"), "B1"),
			node("b2", sp("b"), "B2"),
		),
		node("c", nil, "C"),
	})
	flat := Flatten(tree)
	got := NumberIndexes(flat)
	want := [][]int{{1}, {2}, {2, 1}, {2, 2}, {3}}
	assertIndexes(t, got, want)
}

func TestNumberIndexesRestartOnReentry(t *testing.T) {
	t.Parallel()

	// Leaving a depth level discards its counter: the second parent's
	// children start over at 1.
	tree := Normalize([]model.HierarchyNode{
		node("a", nil, "A",
			node("a1", sp("a"), "A1"),
			node("a2", sp("a"), "A2"),
		),
		node("b", nil, "B",
			node("b1", sp("b"), "B1"),
		),
	})
	got := NumberIndexes(Flatten(tree))
	want := [][]int{{1}, {1, 1}, {1, 2}, {2}, {2, 1}}
	assertIndexes(t, got, want)
}

func TestNumberIndexesBodyRowsInherit(t *testing.T) {
	t.Parallel()

	body := func(id string, parentID *string, label string) model.HierarchyNode {
		n := node(id, parentID, label)
		n.Type = model.NodeBody
		return n
	}
	tree := Normalize([]model.HierarchyNode{
		node("a", nil, "A",
			body("a-p", sp("a"), "paragraph"),
			node("a1", sp("a"), "A1"),
		),
		node("b", nil, "B"),
	})
	got := NumberIndexes(Flatten(tree))
	// The body paragraph copies the current counters without consuming an
	// increment, so the numbered sibling after it is still the first child.
	want := [][]int{{1}, {1}, {1, 1}, {2}}
	assertIndexes(t, got, want)
}

func TestNumberIndexesCollapsedNotCounted(t *testing.T) {
	t.Parallel()

	tree := ToggleCollapse(sampleTree(), "n2")
	flat := Flatten(tree)
	got := NumberIndexes(flat)
	// n3 is hidden; n4 is still the second child of n1.
	want := [][]int{{1}, {1, 1}, {1, 2}, {2}}
	assertIndexes(t, got, want)
}

func assertIndexes(t *testing.T, got, want [][]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d index paths; got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("row %d: expected %v; got %v", i, want[i], got[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("row %d: expected %v; got %v", i, want[i], got[i])
			}
		}
	}
}
