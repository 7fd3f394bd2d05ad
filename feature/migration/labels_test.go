package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffLabels(t *testing.T) {
	diff := DiffLabels([]string{"old", "shared"}, []string{"shared", "new"})

	assert.True(t, diff.HasDiff)
	assert.Equal(t, []string{"new"}, diff.Add)
	assert.Equal(t, []string{"old"}, diff.Remove)
}

func TestDiffLabels_EqualSetsHaveNoDiff(t *testing.T) {
	diff := DiffLabels([]string{"a", "b"}, []string{"b", "a"})

	assert.False(t, diff.HasDiff)
	assert.Empty(t, diff.Add)
	assert.Empty(t, diff.Remove)
}

// Applying the diff and re-diffing against the same target must yield an
// empty diff.
func TestDiffLabels_ApplyThenRediff(t *testing.T) {
	current := []string{"keep", "drop"}
	target := []string{"keep", "add"}

	diff := DiffLabels(current, target)
	applied := map[string]bool{}
	for _, l := range current {
		applied[l] = true
	}
	for _, l := range diff.Add {
		applied[l] = true
	}
	for _, l := range diff.Remove {
		delete(applied, l)
	}

	after := make([]string, 0, len(applied))
	for l := range applied {
		after = append(after, l)
	}
	assert.False(t, DiffLabels(after, target).HasDiff)
}

func TestUnionLabel(t *testing.T) {
	assert.Equal(t, []string{"a", "migrated"}, unionLabel([]string{"a"}, "migrated"))
	assert.Equal(t, []string{"a", "migrated"}, unionLabel([]string{"a", "migrated"}, "migrated"))
	assert.Equal(t, []string{"migrated"}, unionLabel(nil, "migrated"))
}
