package sheet

import (
	"context"
	"testing"
	"time"

	"sheet-sync/core/kvcache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// linkedFixture builds a sheet with five data rows where rows 2, 3 and 5
// (sheet indices) share the campaign name "A", plus a loaded bucket index.
func linkedFixture(t *testing.T) (*Sheet, *BucketIndex, *Linker) {
	t.Helper()

	rows := make([][]string, 5)
	names := []string{"A", "A", "X", "A", "Y"}
	for i := range rows {
		rows[i] = make([]string, len(testHeader))
		rows[i][0] = names[i] // campaignName is the first header column
	}
	sh, _ := openTestSheet(t, rows...)

	idx := NewBucketIndex(kvcache.NewMemoryCache(), "ads", time.Hour)
	require.NoError(t, sh.RebuildIndex(context.Background(), idx))

	return sh, idx, NewLinker(idx, testConfig(), zap.NewNop())
}

func TestLinker_PropagatesLinkedEdit(t *testing.T) {
	ctx := context.Background()
	sh, idx, linker := linkedFixture(t)

	// The edit event arrives after the cell already holds the new value.
	row3, err := sh.Row(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, row3.Set(ctx, FieldCampaignName, "B"))

	require.NoError(t, linker.ApplyEdit(ctx, sh, 3, FieldCampaignName, strptr("A"), "B"))

	for _, r := range []int{2, 5} {
		row, err := sh.Row(ctx, r)
		require.NoError(t, err)
		v, _ := row.Value(FieldCampaignName)
		assert.Equal(t, "B", v, "row %d", r)
	}
	// Unlinked rows untouched
	row4, _ := sh.Row(ctx, 4)
	v, _ := row4.Value(FieldCampaignName)
	assert.Equal(t, "X", v)

	// Membership moved to the new bucket
	assert.ElementsMatch(t, []int{2, 3, 5}, idx.Get("campaignName", "B"))
	assert.Empty(t, idx.Get("campaignName", "A"))
}

func TestLinker_ChainedEditsStayLinked(t *testing.T) {
	ctx := context.Background()
	sh, idx, linker := linkedFixture(t)

	row3, _ := sh.Row(ctx, 3)
	require.NoError(t, row3.Set(ctx, FieldCampaignName, "B"))
	require.NoError(t, linker.ApplyEdit(ctx, sh, 3, FieldCampaignName, strptr("A"), "B"))

	// A second edit on a different row of the same group still reaches
	// every previously linked row via the transferred bucket.
	row2, _ := sh.Row(ctx, 2)
	require.NoError(t, row2.Set(ctx, FieldCampaignName, "C"))
	require.NoError(t, linker.ApplyEdit(ctx, sh, 2, FieldCampaignName, strptr("B"), "C"))

	for _, r := range []int{2, 3, 5} {
		row, err := sh.Row(ctx, r)
		require.NoError(t, err)
		v, _ := row.Value(FieldCampaignName)
		assert.Equal(t, "C", v, "row %d", r)
	}
	assert.ElementsMatch(t, []int{2, 3, 5}, idx.Get("campaignName", "C"))
}

func TestLinker_SameValueEditIsNoop(t *testing.T) {
	ctx := context.Background()
	sh, idx, linker := linkedFixture(t)

	require.NoError(t, linker.ApplyEdit(ctx, sh, 3, FieldCampaignName, strptr("A"), "A"))

	for _, r := range []int{2, 3, 5} {
		row, _ := sh.Row(ctx, r)
		v, _ := row.Value(FieldCampaignName)
		assert.Equal(t, "A", v)
	}
	assert.ElementsMatch(t, []int{2, 3, 5}, idx.Get("campaignName", "A"))
}

func TestLinker_RejectsReadOnlyEdit(t *testing.T) {
	ctx := context.Background()
	sh, st := openTestSheet(t, make([]string, len(testHeader)))
	idx := NewBucketIndex(kvcache.NewMemoryCache(), "ads", time.Hour)
	linker := NewLinker(idx, testConfig(), zap.NewNop())

	adIDCol := cellFor(t, sh, FieldAdGroupID)

	// Simulate the rejected edit: cell already holds the new value
	row, err := sh.Row(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, row.Set(ctx, FieldAdGroupID, "999"))

	err = linker.ApplyEdit(ctx, sh, 2, FieldAdGroupID, strptr("111"), "999")
	var roErr *ReadOnlyError
	assert.ErrorAs(t, err, &roErr)
	assert.Equal(t, FieldAdGroupID, roErr.Field)

	// Prior value restored
	assert.Equal(t, "111", st.Value(2, adIDCol))
}

// A rejected edit without a prior value must leave the cell untouched:
// there is nothing to restore from, and wiping the cell would destroy
// the stored value.
func TestLinker_RejectedEditWithoutPriorKeepsCell(t *testing.T) {
	ctx := context.Background()
	row := make([]string, len(testHeader))
	sh, st := openTestSheet(t, row)
	idx := NewBucketIndex(kvcache.NewMemoryCache(), "ads", time.Hour)
	linker := NewLinker(idx, testConfig(), zap.NewNop())

	adIDCol := cellFor(t, sh, FieldAdGroupID)
	require.NoError(t, st.WriteCell(ctx, 2, adIDCol, "grp-42"))

	err := linker.ApplyEdit(ctx, sh, 2, FieldAdGroupID, nil, "grp-99")
	var roErr *ReadOnlyError
	assert.ErrorAs(t, err, &roErr)

	assert.Equal(t, "grp-42", st.Value(2, adIDCol))
}

func TestLinker_AcceptedEditOnErroringRowMarksStaged(t *testing.T) {
	ctx := context.Background()
	sh, st := openTestSheet(t, make([]string, len(testHeader)))
	idx := NewBucketIndex(kvcache.NewMemoryCache(), "ads", time.Hour)
	linker := NewLinker(idx, testConfig(), zap.NewNop())

	row, err := sh.Row(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, row.MarkError(ctx, []string{"missing headline2"}))

	require.NoError(t, row.Set(ctx, FieldHeadline2, "New headline"))
	require.NoError(t, linker.ApplyEdit(ctx, sh, 2, FieldHeadline2, strptr(""), "New headline"))

	// Softer staged highlight, error text kept
	assert.Equal(t, "#fff2cc", st.Background(2, 1))
	errCol := cellFor(t, sh, FieldErrorMessages)
	assert.Contains(t, st.Value(2, errCol), "missing headline2")
}
