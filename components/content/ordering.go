package content

// DefaultSectionOrder is the fixed preferred display order for known section
// keys. Keys outside this list sort after all known keys, preserving the
// store's relative order among themselves.
var DefaultSectionOrder = []string{
	"hero",
	"features",
	"how_it_works",
	"shopify_integration",
	"pricing",
	"testimonials",
	"cta_bottom",
	"seo",
}

// SortSections returns sections arranged in canonical order. The input slice
// is not modified.
func SortSections(sections []ContentSection, order []string) []ContentSection {
	if len(order) == 0 {
		order = DefaultSectionOrder
	}
	rank := make(map[string]int, len(order))
	for i, key := range order {
		rank[key] = i
	}
	known := make([]ContentSection, 0, len(sections))
	unknown := make([]ContentSection, 0)
	for _, s := range sections {
		if _, ok := rank[s.Key]; ok {
			known = append(known, s)
		} else {
			unknown = append(unknown, s)
		}
	}
	// Insertion sort keeps this stable for duplicate ranks without pulling
	// in sort for a list this small.
	for i := 1; i < len(known); i++ {
		for j := i; j > 0 && rank[known[j].Key] < rank[known[j-1].Key]; j-- {
			known[j], known[j-1] = known[j-1], known[j]
		}
	}
	return append(known, unknown...)
}
