package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NetServer_Listen_ThenClose(t *testing.T) {
	var n = NewNetServer(143.050e6, nil)

	var listener, err = n.Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	assert.NotEmpty(t, listener.Addr().String())
}

func Test_NetServer_OnChirp_NoClients_ReturnsTrue(t *testing.T) {
	var n = NewNetServer(143.050e6, nil)

	var ok = n.OnChirp(testRecord())

	assert.True(t, ok)
}
