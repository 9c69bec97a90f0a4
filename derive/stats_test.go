package derive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gravesdet "meteorscatter/gravesdet/src"
)

func sampleRecord() *gravesdet.ChirpRecord {
	return &gravesdet.ChirpRecord{
		StartSeconds:  3,
		StartFraction: 0.25,
		SampleRate:    8000,
		Ratio:         0.1667,
		Samples: []complex128{
			complex(1, 0), complex(0, 1), complex(-1, 0), complex(0, -1),
		},
		Q:       []float64{0.2, 0.3, 0.25, 0.28},
		PNarrow: []float64{1, 1, 1, 1},
		SNR:     []float64{1, 2, 3, 4},
	}
}

func Test_MeanSNR(t *testing.T) {
	var r = sampleRecord()
	assert.InDelta(t, 2.5, MeanSNR(r), 1e-9)
}

func Test_PeakSNR(t *testing.T) {
	var r = sampleRecord()
	assert.Equal(t, 4.0, PeakSNR(r))
}

func Test_Duration(t *testing.T) {
	var r = sampleRecord()
	assert.InDelta(t, 4.0/8000.0, Duration(r), 1e-9)
}

func Test_MeanDoppler_Empty(t *testing.T) {
	assert.Equal(t, 0.0, MeanDoppler(nil))
}

func Test_RMSDoppler(t *testing.T) {
	// sqrt((3*3 + 4*4) / 2) = sqrt(12.5)
	assert.InDelta(t, 3.5355339059327378, RMSDoppler([]float64{3, 4}), 1e-9)
}

func Test_Doppler_QuarterTurnPerSample_YieldsQuarterNyquistShift(t *testing.T) {
	var r = sampleRecord() // samples rotate by +90 degrees each step

	var d = Doppler(r, GravesCarrierHz, 0)

	require.Len(t, d, 4)
	// Expected frequency shift: (pi/2)*fs/(2*pi) = fs/4 = 2000 Hz.
	var expectedVelocity = 2000.0 * speedOfLight / (2 * GravesCarrierHz)
	assert.InDelta(t, expectedVelocity, d[1], 1e-6)
}

func Test_ToNamedArrays_SplitsComplexSamples(t *testing.T) {
	var r = sampleRecord()
	var doppler = []float64{0, 0, 0, 0}

	var arrays = ToNamedArrays(r, doppler)

	require.Len(t, arrays.XRe, 4)
	assert.Equal(t, 1.0, arrays.XRe[0])
	assert.Equal(t, 0.0, arrays.XIm[0])
	assert.Equal(t, int64(3), arrays.T0)
	assert.InDelta(t, 0.25, arrays.T0F, 1e-9)
}

func Test_WriteText_ProducesOneLinePerField(t *testing.T) {
	var r = sampleRecord()
	var arrays = ToNamedArrays(r, []float64{0, 0, 0, 0})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, arrays))

	var out = buf.String()
	assert.Contains(t, out, "t0 = 3")
	assert.Contains(t, out, "x_re =")
	assert.Contains(t, out, "doppler =")
}

func Test_WriteJSON_RoundTrips(t *testing.T) {
	var r = sampleRecord()
	var arrays = ToNamedArrays(r, []float64{0, 0, 0, 0})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, arrays))

	assert.Contains(t, buf.String(), `"t0":3`)
	assert.Contains(t, buf.String(), `"rbw":0.1667`)
}
