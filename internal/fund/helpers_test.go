package fund

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func intFromString(t *testing.T, s string) math.Int {
	t.Helper()
	n, ok := math.NewIntFromString(s)
	require.True(t, ok)
	return n
}
