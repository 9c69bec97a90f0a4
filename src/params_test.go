package gravesdet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Params_Default_Valid(t *testing.T) {
	var p = DefaultParams(48_000, 1000)

	var _, _, _, _, err = p.validate()

	require.Nil(t, err)
}

func Test_Params_Rejects_NonPositiveSampleRate(t *testing.T) {
	var p = DefaultParams(0, 0)

	var _, _, _, _, err = p.validate()

	require.NotNil(t, err)
	assert.Equal(t, InvalidParameter, err.Kind)
}

func Test_Params_Rejects_TuningOffsetAboveNyquist(t *testing.T) {
	var p = DefaultParams(1_000_000, 600_000)

	var _, _, _, _, err = p.validate()

	require.NotNil(t, err)
	assert.Equal(t, InvalidParameter, err.Kind)
}

func Test_Params_Rejects_NarrowNotBelowWide(t *testing.T) {
	var p = DefaultParams(1_000_000, 0)
	p.NarrowCutoff = 300
	p.WideCutoff = 300

	var _, _, _, _, err = p.validate()

	require.NotNil(t, err)
}

func Test_Params_Rejects_NonPositiveThreshold(t *testing.T) {
	var p = DefaultParams(1_000_000, 0)
	p.Threshold = 0

	var _, _, _, _, err = p.validate()

	require.NotNil(t, err)
}

func Test_Params_Rejects_NonPositiveMinChirpDuration(t *testing.T) {
	var p = DefaultParams(1_000_000, 0)
	p.MinChirpDuration = -1

	var _, _, _, _, err = p.validate()

	require.NotNil(t, err)
}

func Test_Params_Rejects_CutoffBelowSafetyFloor(t *testing.T) {
	// Default narrow cutoff is 50 Hz; normalized against a 1 MHz sample
	// rate that falls to 0.00005, below the 0.00016 floor.
	var p = DefaultParams(1_000_000, 0)

	var _, _, _, _, err = p.validate()

	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "safety floor")
}

func Test_Params_DerivedQuantities(t *testing.T) {
	var p = DetectorParams{
		SampleRate:       1_000_000,
		TuningOffset:     0,
		WideCutoff:       400_000,
		NarrowCutoff:     100_000,
		Threshold:        2.0,
		MinChirpDuration: 0.0001,
	}

	var ratio, windowLen, alpha, energyThreshold, err = p.validate()

	require.Nil(t, err)
	assert.InDelta(t, 0.25, ratio, 1e-9)
	assert.Equal(t, 100, windowLen)
	assert.Greater(t, alpha, 0.0)
	assert.Less(t, alpha, 1.0)
	assert.InDelta(t, p.Threshold*ratio*float64(windowLen), energyThreshold, 1e-9)
}

func Test_Params_WindowLen_FloorsToOne(t *testing.T) {
	var p = DetectorParams{
		SampleRate:       1_000_000,
		TuningOffset:     0,
		WideCutoff:       400_000,
		NarrowCutoff:     100_000,
		Threshold:        2.0,
		MinChirpDuration: 1e-12,
	}

	var _, windowLen, _, _, err = p.validate()

	require.Nil(t, err)
	assert.Equal(t, 1, windowLen)
}
