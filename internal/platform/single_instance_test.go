package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleInstanceLock(t *testing.T) {
	appID := "io.streamcountdown.test." + t.Name()

	guard, err := AcquireSingleInstance(appID)
	require.NoError(t, err)
	assert.NotEmpty(t, guard.Address())

	_, err = AcquireSingleInstance(appID)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())

	again, err := AcquireSingleInstance(appID)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestPortFromIDStaysInRange(t *testing.T) {
	for _, id := range []string{"", "a", "io.streamcountdown.app"} {
		port := portFromID(id)
		assert.GreaterOrEqual(t, port, 20000)
		assert.LessOrEqual(t, port, 39999)
	}
	assert.Equal(t, portFromID("same"), portFromID("same"))
}
