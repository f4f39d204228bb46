package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pcsaves/pkg/pcsaves/cache"
)

func TestKeyStringDeterministic(t *testing.T) {
	k := cache.Key{PathFileHash: "abc123", Build: "T", Leftover: "TIL", Width: 4, Height: 4, Hold: 1}
	require.Equal(t, k.String(), k.String())
	require.Equal(t, "abc123_T_TIL_4x4_h1", k.String())
}

func TestKeyStringDiffersOnGeometry(t *testing.T) {
	a := cache.Key{PathFileHash: "abc123", Build: "T", Leftover: "TIL", Width: 4, Height: 4, Hold: 1}
	b := a
	b.Width = 6
	require.NotEqual(t, a.String(), b.String())
}

func TestHashPathFileStableAndSensitive(t *testing.T) {
	h1 := cache.HashPathFile([]byte("row-one\nrow-two\n"))
	h2 := cache.HashPathFile([]byte("row-one\nrow-two\n"))
	h3 := cache.HashPathFile([]byte("row-one\nrow-three\n"))

	require.Equal(t, h1, h2)
	require.NotEqual(t, h1, h3)
	require.Len(t, h1, 16)
}
