package gravesdet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SinkFunc_AdaptsPlainFunction(t *testing.T) {
	var called bool
	var s Sink = SinkFunc(func(record *ChirpRecord) bool {
		called = true
		return true
	})

	var ok = s.OnChirp(&ChirpRecord{})

	assert.True(t, ok)
	assert.True(t, called)
}

func Test_SinkFunc_PropagatesFalse(t *testing.T) {
	var s Sink = SinkFunc(func(record *ChirpRecord) bool { return false })

	assert.False(t, s.OnChirp(&ChirpRecord{}))
}
