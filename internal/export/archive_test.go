package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gravesdet "meteorscatter/gravesdet/src"
)

func testRecord() *gravesdet.ChirpRecord {
	return &gravesdet.ChirpRecord{
		StartSeconds:  1,
		StartFraction: 0.5,
		SampleRate:    8000,
		Ratio:         0.1667,
		Samples:       []complex128{complex(1, 0), complex(0, 1)},
		Q:             []float64{0.2, 0.3},
		PNarrow:       []float64{1, 1},
		SNR:           []float64{1, 2},
	}
}

func Test_Archiver_WritesOneLinePerChirp(t *testing.T) {
	var dir = t.TempDir()
	var a = NewArchiver(dir, "archive.jsonl", 143.050e6, nil)
	defer a.Close()

	var ok1 = a.OnChirp(testRecord())
	var ok2 = a.OnChirp(testRecord())

	assert.True(t, ok1)
	assert.True(t, ok2)

	var contents, err = os.ReadFile(filepath.Join(dir, "archive.jsonl"))
	require.NoError(t, err)

	var lines = strings.Split(strings.TrimSpace(string(contents)), "\n")
	assert.Len(t, lines, 2)
}

func Test_Archiver_MissingDir_SwallowsErrorAndReturnsTrue(t *testing.T) {
	var a = NewArchiver("/nonexistent/path/for/test", "archive.jsonl", 143.050e6, nil)

	var ok = a.OnChirp(testRecord())

	assert.True(t, ok)
}
