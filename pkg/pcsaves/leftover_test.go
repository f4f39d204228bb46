package pcsaves_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pcsaves/pkg/pcsaves"
)

func TestParseLeftoverBuildSimple(t *testing.T) {
	length := 1
	leftover, build, err := pcsaves.ParseLeftoverBuild("T", &length, nil, nil, 1)
	require.NoError(t, err)
	require.Equal(t, "T", leftover)
	require.Equal(t, "", build)
}

func TestParseLeftoverBuildFromPCNum(t *testing.T) {
	pcNum := 2
	leftover, _, err := pcsaves.ParseLeftoverBuild("TIL", nil, nil, &pcNum, 0)
	require.NoError(t, err)
	require.Equal(t, "TIL", leftover)
}

func TestParseLeftoverBuildPCNumLengthMismatch(t *testing.T) {
	pcNum := 2
	length := 4
	_, _, err := pcsaves.ParseLeftoverBuild("TIL", &length, nil, &pcNum, 0)
	require.Error(t, err)
	var verr *pcsaves.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestParseLeftoverBuildSplitForm(t *testing.T) {
	length := 3
	leftover, build, err := pcsaves.ParseLeftoverBuild("T-IO", &length, nil, nil, 1)
	require.NoError(t, err)
	require.Equal(t, "XXT", leftover)
	require.Equal(t, "XXIO", build)
}

func TestParseLeftoverBuildSplitFormExceedsHold(t *testing.T) {
	length := 3
	_, _, err := pcsaves.ParseLeftoverBuild("TI-O", &length, nil, nil, 1)
	require.Error(t, err)
}

func TestParseLeftoverBuildInvalidBuildPieces(t *testing.T) {
	build := "Q"
	_, _, err := pcsaves.ParseLeftoverBuild("T", nil, &build, nil, 1)
	require.Error(t, err)
}

func TestParseLeftoverBuildMissingLength(t *testing.T) {
	_, _, err := pcsaves.ParseLeftoverBuild("T", nil, nil, nil, 1)
	require.Error(t, err)
}

func TestParseLeftoverBuildOutOfRangeLength(t *testing.T) {
	length := 8
	_, _, err := pcsaves.ParseLeftoverBuild("TILJSZOT", &length, nil, nil, 1)
	require.Error(t, err)
}

func TestParseLeftoverBuildTooManyDashes(t *testing.T) {
	length := 2
	_, _, err := pcsaves.ParseLeftoverBuild("T-I-O", &length, nil, nil, 1)
	require.Error(t, err)
}

func TestParseLeftoverBuildImpossibleHold(t *testing.T) {
	length := 4
	build := "TS"
	_, _, err := pcsaves.ParseLeftoverBuild("TIOL", &length, &build, nil, 0)
	require.Error(t, err)
}
