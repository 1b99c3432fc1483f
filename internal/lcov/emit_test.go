package lcov

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_RoundTrip(t *testing.T) {
	inputs := map[string]string{
		"two records":     twoRecordInput,
		"empty report":    "",
		"duplicate paths": "SF:lib/a.dart\nLF:2\nLH:1\nend_of_record\nSF:lib/a.dart\nLF:3\nLH:3\nend_of_record\n",
		"all tags": "SF:lib/a.dart\nDA:1,5\nFNF:2\nFNH:1\nLF:1\nLH:1\nBRF:4\nBRH:3\nend_of_record\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			original := Parse(input)
			reparsed := Parse(original.Encode())
			assert.Equal(t, original, reparsed)
		})
	}
}

func TestEncode_EmitsAllModeledFields(t *testing.T) {
	report := NewReport([]File{{
		Path:  "lib/a.dart",
		Lines: []Line{{Number: 7, HitCount: 2}},
		Summary: Summary{
			LinesFound: 1, LinesHit: 1,
			FunctionsFound: 3, FunctionsHit: 2,
			BranchesFound: 4, BranchesHit: 1,
		},
	}})

	out := report.Encode()
	for _, want := range []string{"SF:lib/a.dart", "DA:7,2", "LF:1", "LH:1", "FNF:3", "FNH:2", "BRF:4", "BRH:1", "end_of_record"} {
		assert.Contains(t, out, want)
	}
}

func TestWriteFile(t *testing.T) {
	report := Parse(twoRecordInput)
	path := filepath.Join(t.TempDir(), "out.info")

	require.NoError(t, report.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, report, Parse(string(data)))
}
