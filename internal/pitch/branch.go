package pitch

// branch is one entry of a generator's decision tree. Branches are tested in
// order and the first whose predicate holds builds the output. A nil
// predicate always matches and must only appear last.
type branch[T any] struct {
	name  string
	when  func(f Features) bool
	build func(c Chooser, f Features) T
}

func always(Features) bool { return true }

// decide walks branches top to bottom and builds the first match. The final
// branch is used when nothing matches, so every tree needs a catch-all last.
func decide[T any](branches []branch[T], c Chooser, f Features) (string, T) {
	for _, b := range branches {
		if b.when == nil || b.when(f) {
			return b.name, b.build(c, f)
		}
	}
	last := branches[len(branches)-1]
	return last.name, last.build(c, f)
}

// variants returns a builder that picks one of the fixed texts.
func variants(texts ...string) func(c Chooser, f Features) string {
	return func(c Chooser, _ Features) string {
		return pick(c, texts)
	}
}

// branchNames lists the branch names of a tree in evaluation order.
func branchNames[T any](branches []branch[T]) []string {
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.name)
	}
	return names
}
