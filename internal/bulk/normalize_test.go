package bulk

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		input     []string
		want      []string
		wantOrig  int
		wantDedup int
	}{
		{
			name:      "no duplicates",
			input:     []string{"1", "2", "3"},
			want:      []string{"1", "2", "3"},
			wantOrig:  3,
			wantDedup: 3,
		},
		{
			name:      "duplicates preserve first occurrence order",
			input:     []string{"a", "b", "a", "c", "b"},
			want:      []string{"a", "b", "c"},
			wantOrig:  5,
			wantDedup: 3,
		},
		{
			name:      "all duplicates",
			input:     []string{"x", "x", "x"},
			want:      []string{"x"},
			wantOrig:  3,
			wantDedup: 1,
		},
		{
			name:      "empty input",
			input:     []string{},
			want:      []string{},
			wantOrig:  0,
			wantDedup: 0,
		},
		{
			name:      "nil input",
			input:     nil,
			want:      []string{},
			wantOrig:  0,
			wantDedup: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Normalize(tt.input)

			if len(set.IDs) != len(tt.want) {
				t.Fatalf("len(IDs) = %d, want %d", len(set.IDs), len(tt.want))
			}
			for i := range tt.want {
				if set.IDs[i] != tt.want[i] {
					t.Errorf("IDs[%d] = %s, want %s", i, set.IDs[i], tt.want[i])
				}
			}
			if set.OriginalCount != tt.wantOrig {
				t.Errorf("OriginalCount = %d, want %d", set.OriginalCount, tt.wantOrig)
			}
			if set.DeduplicatedCount != tt.wantDedup {
				t.Errorf("DeduplicatedCount = %d, want %d", set.DeduplicatedCount, tt.wantDedup)
			}
			if set.DeduplicatedCount > set.OriginalCount {
				t.Errorf("DeduplicatedCount %d exceeds OriginalCount %d", set.DeduplicatedCount, set.OriginalCount)
			}
		})
	}
}
