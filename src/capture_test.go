package gravesdet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CaptureBuffer_AppendRing_SeedsOldestFirst(t *testing.T) {
	var r = newRing(3)
	r.write(complex(1, 0), 0.1, 1)
	r.write(complex(2, 0), 0.2, 2)
	r.write(complex(3, 0), 0.3, 3)

	var c = newCaptureBuffer(10)
	var ok = c.appendRing(r)

	require.True(t, ok)
	assert.Equal(t, 3, c.len())
	assert.Equal(t, complex(1, 0), c.samples[0])
}

func Test_CaptureBuffer_Append_GrowsAmortized(t *testing.T) {
	var c = newCaptureBuffer(0)

	for i := 0; i < 1000; i++ {
		var ok = c.append(complex(float64(i), 0), 0.5, 1.0)
		require.True(t, ok)
	}

	assert.Equal(t, 1000, c.len())
}

func Test_CaptureBuffer_Reset_RetainsCapacity(t *testing.T) {
	var c = newCaptureBuffer(0)

	for i := 0; i < 100; i++ {
		c.append(complex(float64(i), 0), 0, 0)
	}
	var backingBefore = cap(c.samples)

	c.reset()

	assert.Equal(t, 0, c.len())
	assert.Equal(t, backingBefore, cap(c.samples))
}

func Test_CaptureBuffer_Append_RespectsMaxLen(t *testing.T) {
	var c = newCaptureBuffer(2)

	require.True(t, c.append(complex(1, 0), 0, 0))
	require.True(t, c.append(complex(2, 0), 0, 0))

	var ok = c.append(complex(3, 0), 0, 0)

	assert.False(t, ok)
	assert.Equal(t, 2, c.len())
}

func Test_CaptureBuffer_AppendRing_FailsWhenRingExceedsMaxLen(t *testing.T) {
	var r = newRing(5)
	var c = newCaptureBuffer(3)

	var ok = c.appendRing(r)

	assert.False(t, ok)
}
