package content

import "testing"

func TestSortSections(t *testing.T) {
	input := []ContentSection{
		{Key: "zeta_custom"},
		{Key: "pricing"},
		{Key: "alpha_custom"},
		{Key: "hero"},
	}
	sorted := SortSections(input, nil)

	got := make([]string, len(sorted))
	for i, s := range sorted {
		got[i] = s.Key
	}
	want := []string{"hero", "pricing", "zeta_custom", "alpha_custom"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}

	// The input slice keeps its order.
	if input[0].Key != "zeta_custom" {
		t.Fatalf("input mutated: %v", input[0].Key)
	}
}

func TestSortSectionsCustomOrder(t *testing.T) {
	input := []ContentSection{{Key: "a"}, {Key: "b"}}
	sorted := SortSections(input, []string{"b", "a"})
	if sorted[0].Key != "b" || sorted[1].Key != "a" {
		t.Fatalf("custom order ignored: %v", sorted)
	}
}