package sheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlighter_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("MatchingDomainsClear", func(t *testing.T) {
		sh, st := openTestSheet(t, make([]string, len(testHeader)))
		finalCol := cellFor(t, sh, FieldFinalURL)
		mobileCol := cellFor(t, sh, FieldMobileFinalURL)
		require.NoError(t, st.WriteCell(ctx, 2, finalCol, `["http://www.example.com/a"]`))
		require.NoError(t, st.WriteCell(ctx, 2, mobileCol, `["https://example.com/m"]`))
		// Pre-paint so the clear is observable
		require.NoError(t, st.SetBackground(ctx, 2, finalCol, "#fce5cd"))

		row, err := sh.Row(ctx, 2)
		require.NoError(t, err)

		match, err := NewHighlighter(testConfig()).Check(ctx, row)
		require.NoError(t, err)
		assert.True(t, match)
		assert.Empty(t, st.Background(2, finalCol))
		assert.Empty(t, st.Background(2, mobileCol))
	})

	t.Run("DisagreeingDomainsPaint", func(t *testing.T) {
		sh, st := openTestSheet(t, make([]string, len(testHeader)))
		finalCol := cellFor(t, sh, FieldFinalURL)
		mobileCol := cellFor(t, sh, FieldMobileFinalURL)
		require.NoError(t, st.WriteCell(ctx, 2, finalCol, "http://example.com"))
		require.NoError(t, st.WriteCell(ctx, 2, mobileCol, "http://other.org"))

		row, err := sh.Row(ctx, 2)
		require.NoError(t, err)

		match, err := NewHighlighter(testConfig()).Check(ctx, row)
		require.NoError(t, err)
		assert.False(t, match)
		assert.Equal(t, "#fce5cd", st.Background(2, finalCol))
		assert.Equal(t, "#fce5cd", st.Background(2, mobileCol))
	})

	t.Run("EmptyListFailsComparison", func(t *testing.T) {
		sh, st := openTestSheet(t, make([]string, len(testHeader)))
		finalCol := cellFor(t, sh, FieldFinalURL)
		require.NoError(t, st.WriteCell(ctx, 2, finalCol, "http://example.com"))
		// mobileFinalUrl left empty

		row, err := sh.Row(ctx, 2)
		require.NoError(t, err)

		match, err := NewHighlighter(testConfig()).Check(ctx, row)
		require.NoError(t, err)
		assert.False(t, match)
		assert.Equal(t, "#fce5cd", st.Background(2, finalCol))
	})

	t.Run("MalformedListPropagates", func(t *testing.T) {
		sh, st := openTestSheet(t, make([]string, len(testHeader)))
		require.NoError(t, st.WriteCell(ctx, 2, cellFor(t, sh, FieldFinalURL), `["broken`))

		row, err := sh.Row(ctx, 2)
		require.NoError(t, err)

		_, err = NewHighlighter(testConfig()).Check(ctx, row)
		assert.Error(t, err)
	})
}

func TestDomainOf(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"http://www.example.com/path", "example.com", true},
		{"https://Example.COM", "example.com", true},
		{"example.com/landing", "example.com", true},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := domainOf(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		if ok {
			assert.Equal(t, tc.want, got, tc.raw)
		}
	}
}
