package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideInput_Override(t *testing.T) {
	tests := []struct {
		name    string
		in      OverrideInput
		want    PlacementOverride
		wantErr bool
	}{
		{name: "existing", in: OverrideInput{Kind: OverrideExisting, FolderID: "f1"}, want: ExistingFolder{FolderID: "f1"}},
		{name: "existing without id", in: OverrideInput{Kind: OverrideExisting}, wantErr: true},
		{name: "root", in: OverrideInput{Kind: OverrideRoot, FolderID: "ignored"}, want: RootPlacement{}},
		{name: "create trims segments", in: OverrideInput{Kind: OverrideCreate, Path: []string{" Tax ", "", "2025"}}, want: CreatePath{Segments: []string{"Tax", "2025"}}},
		{name: "create empty", in: OverrideInput{Kind: OverrideCreate, Path: []string{" "}}, wantErr: true},
		{name: "unknown kind", in: OverrideInput{Kind: "elsewhere"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Override()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOverride)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustOverride(t, *InputOf(got)))
		})
	}

	assert.Nil(t, InputOf(nil))
}

func mustOverride(t *testing.T, s OverrideInput) PlacementOverride {
	t.Helper()
	o, err := s.Override()
	require.NoError(t, err)
	return o
}

func TestTypeFromContentType(t *testing.T) {
	assert.Equal(t, TypePDF, TypeFromContentType("application/pdf"))
	assert.Equal(t, TypeImage, TypeFromContentType("image/png"))
	assert.Equal(t, TypeDocument, TypeFromContentType("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.Equal(t, TypeSpreadsheet, TypeFromContentType("text/csv"))
	assert.Equal(t, TypeText, TypeFromContentType("text/plain; charset=utf-8"))
	assert.Equal(t, TypeOther, TypeFromContentType("application/octet-stream"))
}

func TestNormalizeLabels(t *testing.T) {
	assert.Equal(t, []string{"tax", "2024"}, NormalizeLabels([]string{" tax", "2024", "", "tax"}))
	assert.Empty(t, NormalizeLabels(nil))
}

func TestBulkBatchResult_Summary(t *testing.T) {
	r := BulkBatchResult{Total: 5, Succeeded: 3, Failed: 2}
	assert.Equal(t, "3 succeeded, 2 failed", r.Summary())
}
