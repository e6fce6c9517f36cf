package repository

// diffIDs returns the ids to add to and remove from current so it equals desired.
// Duplicates in either slice are ignored.
func diffIDs(current, desired []string) (add, remove []string) {
	want := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}
	have := make(map[string]struct{}, len(current))
	for _, id := range current {
		if _, dup := have[id]; dup {
			continue
		}
		have[id] = struct{}{}
		if _, ok := want[id]; !ok {
			remove = append(remove, id)
		}
	}
	seen := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := have[id]; !ok {
			add = append(add, id)
		}
	}
	return add, remove
}

// namedRow is a row with identity and a name, such as a tag.
type namedRow struct {
	ID   string
	Name string
}

// diffNamed keeps one existing row per desired name. It returns the names that have no
// row yet and the row ids that are no longer wanted, including extra rows sharing a name.
func diffNamed(current []namedRow, desired []string) (create []string, drop []string) {
	want := make(map[string]bool, len(desired))
	for _, n := range desired {
		want[n] = true
	}
	kept := make(map[string]bool, len(current))
	for _, row := range current {
		if want[row.Name] && !kept[row.Name] {
			kept[row.Name] = true
			continue
		}
		drop = append(drop, row.ID)
	}
	queued := make(map[string]bool, len(desired))
	for _, n := range desired {
		if kept[n] || queued[n] {
			continue
		}
		queued[n] = true
		create = append(create, n)
	}
	return create, drop
}
