package migration

import "sort"

// LabelDiff is the symmetric difference between the labels an entity
// carries and the labels a row declares. Transient, recomputed every
// reconciliation.
type LabelDiff struct {
	Add     []string
	Remove  []string
	HasDiff bool
}

// DiffLabels computes what must change to move current to target.
// Applying the diff and re-diffing against the same target yields an
// empty diff.
func DiffLabels(current, target []string) LabelDiff {
	have := make(map[string]bool, len(current))
	for _, l := range current {
		have[l] = true
	}
	want := make(map[string]bool, len(target))
	for _, l := range target {
		want[l] = true
	}

	var diff LabelDiff
	for l := range want {
		if !have[l] {
			diff.Add = append(diff.Add, l)
		}
	}
	for l := range have {
		if !want[l] {
			diff.Remove = append(diff.Remove, l)
		}
	}
	sort.Strings(diff.Add)
	sort.Strings(diff.Remove)
	diff.HasDiff = len(diff.Add) > 0 || len(diff.Remove) > 0
	return diff
}

// unionLabel returns labels with name included, without duplicating it.
func unionLabel(labels []string, name string) []string {
	for _, l := range labels {
		if l == name {
			return labels
		}
	}
	out := make([]string, 0, len(labels)+1)
	out = append(out, labels...)
	return append(out, name)
}
