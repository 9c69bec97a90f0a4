package gravesdet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Ring_WindowedEnergy_SumsAllEntries(t *testing.T) {
	var r = newRing(4)

	r.write(complex(1, 0), 0.25, 0)
	r.write(complex(1, 0), 0.25, 0)
	r.write(complex(1, 0), 0.25, 0)
	r.write(complex(1, 0), 0.25, 0)

	assert.InDelta(t, 1.0, r.windowedEnergy(), 1e-9)
}

func Test_Ring_Overwrite_ReplacesOldest(t *testing.T) {
	var r = newRing(3)

	r.write(complex(0, 0), 1, 0)
	r.write(complex(0, 0), 1, 0)
	r.write(complex(0, 0), 1, 0)
	assert.InDelta(t, 3.0, r.windowedEnergy(), 1e-9)

	r.write(complex(0, 0), 0, 0) // overwrites the first 1

	assert.InDelta(t, 2.0, r.windowedEnergy(), 1e-9)
}

func Test_Ring_OldestFirst_ChronologicalOrder(t *testing.T) {
	var r = newRing(3)

	r.write(complex(1, 0), 0.1, 1)
	r.write(complex(2, 0), 0.2, 2)
	r.write(complex(3, 0), 0.3, 3)
	r.write(complex(4, 0), 0.4, 4) // overwrites sample 1; chronological order is now 2,3,4

	var samples, q, pNarrow = r.oldestFirst(nil, nil, nil)

	require.Len(t, samples, 3)
	assert.Equal(t, complex(2, 0), samples[0])
	assert.Equal(t, complex(3, 0), samples[1])
	assert.Equal(t, complex(4, 0), samples[2])
	assert.InDeltaSlice(t, []float64{0.2, 0.3, 0.4}, q, 1e-9)
	assert.InDeltaSlice(t, []float64{2, 3, 4}, pNarrow, 1e-9)
}

func Test_Ring_Len(t *testing.T) {
	var r = newRing(7)
	assert.Equal(t, 7, r.len())
}
