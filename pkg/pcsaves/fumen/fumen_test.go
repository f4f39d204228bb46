package fumen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pcsaves/pkg/pcsaves/fumen"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pages := []fumen.Page{
		{Field: "field-one", Comment: "TILJSZO"},
		{Field: "field-two", Comment: ""},
	}

	code, err := fumen.Encode(pages)
	require.NoError(t, err)
	require.Contains(t, code, "v115@")

	got, err := fumen.Decode(code)
	require.NoError(t, err)
	require.Equal(t, pages, got)
}

func TestCombine(t *testing.T) {
	a, err := fumen.Encode([]fumen.Page{{Field: "a", Comment: "x"}})
	require.NoError(t, err)
	b, err := fumen.Encode([]fumen.Page{{Field: "b", Comment: "y"}})
	require.NoError(t, err)

	combined, err := fumen.Combine([]string{a, b})
	require.NoError(t, err)

	pages, err := fumen.Decode(combined)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	require.Equal(t, "a", pages[0].Field)
	require.Equal(t, "b", pages[1].Field)
}

func TestCombineComments(t *testing.T) {
	a, err := fumen.Encode([]fumen.Page{{Field: "a", Comment: "old"}})
	require.NoError(t, err)

	combined, err := fumen.CombineComments([]string{a}, []string{"50.00% (1/2)"})
	require.NoError(t, err)

	pages, err := fumen.Decode(combined)
	require.NoError(t, err)
	require.Equal(t, "50.00% (1/2)", pages[0].Comment)
}

func TestCombineCommentsLengthMismatch(t *testing.T) {
	_, err := fumen.CombineComments([]string{"v115@abc"}, nil)
	require.Error(t, err)
}

func TestComments(t *testing.T) {
	code, err := fumen.Encode([]fumen.Page{{Field: "a", Comment: "TIL"}, {Field: "b", Comment: "JSZ"}})
	require.NoError(t, err)

	comments, err := fumen.Comments(code)
	require.NoError(t, err)
	require.Equal(t, []string{"TIL", "JSZ"}, comments)
}

func TestDecodeMissingPrefix(t *testing.T) {
	_, err := fumen.Decode("not-a-fumen")
	require.Error(t, err)
}
