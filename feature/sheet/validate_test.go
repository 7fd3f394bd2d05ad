package sheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestEditGate_StaticReadOnly(t *testing.T) {
	sh, _ := openTestSheet(t, make([]string, len(testHeader)))
	row, err := sh.Row(context.Background(), 2)
	require.NoError(t, err)

	gate := NewEditGate(testConfig())
	assert.Equal(t, FieldReadOnlyStatic, gate.State(row, FieldAdGroupID, strptr("1")))
	assert.Equal(t, FieldReadOnlyStatic, gate.State(row, FieldApprovalStatus, nil))
	assert.Equal(t, FieldEditable, gate.State(row, FieldCampaignName, strptr("A")))
}

func TestEditGate_StatusFieldDerivation(t *testing.T) {
	sh, _ := openTestSheet(t, make([]string, len(testHeader)))
	row, err := sh.Row(context.Background(), 2)
	require.NoError(t, err)

	gate := NewEditGate(testConfig())

	t.Run("PreviouslyDisabledStaysReadOnly", func(t *testing.T) {
		assert.Equal(t, FieldReadOnlyDerived, gate.State(row, FieldAdStatus, strptr(StatusDisabled)))
	})

	t.Run("UnknownPriorIsConservativelyReadOnly", func(t *testing.T) {
		// Multi-cell paste: the platform supplies no old value, so the
		// precondition cannot be evaluated.
		assert.Equal(t, FieldReadOnlyDerived, gate.State(row, FieldAdStatus, nil))
	})

	t.Run("EnabledPriorIsEditable", func(t *testing.T) {
		assert.Equal(t, FieldEditable, gate.State(row, FieldAdStatus, strptr("enabled")))
	})
}

func TestEditGate_DisabledEntityFreezesAllFields(t *testing.T) {
	ctx := context.Background()
	sh, st := openTestSheet(t, make([]string, len(testHeader)))
	require.NoError(t, st.WriteCell(ctx, 2, cellFor(t, sh, FieldExpandedAdStatus), StatusDisabled))
	row, err := sh.Row(ctx, 2)
	require.NoError(t, err)

	gate := NewEditGate(testConfig())
	assert.Equal(t, FieldReadOnlyDerived, gate.State(row, FieldHeadline1, strptr("x")))
	assert.Equal(t, FieldReadOnlyDerived, gate.State(row, FieldFinalURL, strptr("x")))
	// Non-entity fields remain editable
	assert.Equal(t, FieldEditable, gate.State(row, FieldCampaignName, strptr("A")))
}

func TestEditGate_CreatedEntityFreezesAllButStatus(t *testing.T) {
	ctx := context.Background()
	sh, st := openTestSheet(t, make([]string, len(testHeader)))
	require.NoError(t, st.WriteCell(ctx, 2, cellFor(t, sh, FieldExpandedAdID), "987"))
	row, err := sh.Row(ctx, 2)
	require.NoError(t, err)

	gate := NewEditGate(testConfig())
	assert.Equal(t, FieldReadOnlyDerived, gate.State(row, FieldHeadline1, strptr("x")))
	assert.Equal(t, FieldReadOnlyDerived, gate.State(row, FieldCreateExpandedAd, strptr("yes")))
	// The entity's own status stays editable while it is not disabled
	assert.Equal(t, FieldEditable, gate.State(row, FieldExpandedAdStatus, strptr("paused")))
}
