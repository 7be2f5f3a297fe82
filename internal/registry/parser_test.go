package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Platform
	}{
		{
			name: "two platforms",
			raw:  "A:/ru\nB:/ru/msk",
			want: []Platform{
				{Name: "A", Locations: []string{"/ru"}},
				{Name: "B", Locations: []string{"/ru/msk"}},
			},
		},
		{
			name: "malformed line dropped",
			raw:  "A:/ru\nBadLine\nB:/ru/msk,/ru/spb",
			want: []Platform{
				{Name: "A", Locations: []string{"/ru"}},
				{Name: "B", Locations: []string{"/ru/msk", "/ru/spb"}},
			},
		},
		{
			name: "trims names and locations, skips empty tokens",
			raw:  "  Яндекс.Директ : /ru , , /ru/msk  \r\n\n\n",
			want: []Platform{
				{Name: "Яндекс.Директ", Locations: []string{"/ru", "/ru/msk"}},
			},
		},
		{
			name: "only first colon splits",
			raw:  "A:/ru:extra",
			want: []Platform{
				{Name: "A", Locations: []string{"/ru:extra"}},
			},
		},
		{
			name: "duplicate locations and names kept",
			raw:  "A:/ru,/ru\nA:/us",
			want: []Platform{
				{Name: "A", Locations: []string{"/ru", "/ru"}},
				{Name: "A", Locations: []string{"/us"}},
			},
		},
		{
			name: "empty name or locations dropped",
			raw:  ":/ru\nA:\nB: , ,\nC:/ru",
			want: []Platform{
				{Name: "C", Locations: []string{"/ru"}},
			},
		},
		{
			name: "root locations dropped",
			raw:  "Foo:/\nBar://, /ru\nBaz: / ",
			want: []Platform{
				{Name: "Bar", Locations: []string{"/ru"}},
			},
		},
		{
			name: "nothing valid",
			raw:  "garbage\nmore garbage",
			want: []Platform{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t\n"} {
		_, err := Parse(raw)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}
}

func TestParseReportSkipped(t *testing.T) {
	rep, err := ParseReport("A:/ru\nBadLine\n\n:/x\nB:")
	require.NoError(t, err)
	require.Len(t, rep.Platforms, 1)
	assert.Equal(t, []Skipped{
		{Line: 2, Reason: SkipNoSeparator, Text: "BadLine"},
		{Line: 4, Reason: SkipEmptyName, Text: ":/x"},
		{Line: 5, Reason: SkipNoLocations, Text: "B:"},
	}, rep.Skipped)
}
