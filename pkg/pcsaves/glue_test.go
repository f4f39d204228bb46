package pcsaves_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pcsaves/pkg/pcsaves"
)

// MockURLShortener is a hand-written gomock-style mock of pcsaves.URLShortener,
// following the same shape go.uber.org/mock/mockgen would emit for a
// single-method interface (see the teacher's MockFileOperator in
// mrz1836-mage-x's pkg/common/fileops/mocks_test.go).
type MockURLShortener struct {
	ctrl     *gomock.Controller
	recorder *MockURLShortenerMockRecorder
}

type MockURLShortenerMockRecorder struct {
	mock *MockURLShortener
}

func NewMockURLShortener(ctrl *gomock.Controller) *MockURLShortener {
	m := &MockURLShortener{ctrl: ctrl}
	m.recorder = &MockURLShortenerMockRecorder{m}
	return m
}

func (m *MockURLShortener) EXPECT() *MockURLShortenerMockRecorder {
	return m.recorder
}

func (m *MockURLShortener) Shorten(longURL string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Shorten", longURL)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockURLShortenerMockRecorder) Shorten(longURL any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	methodType := reflect.TypeOf((*MockURLShortener)(nil).Shorten)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Shorten", methodType, longURL)
}

func TestFumenURL(t *testing.T) {
	assert.Equal(t, "https://fumen.zui.jp/?v115@abc", pcsaves.FumenURL("v115@abc"))
}

func TestShortenFumenURLSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := NewMockURLShortener(ctrl)
	mock.EXPECT().Shorten("https://fumen.zui.jp/?v115@abc").Return("https://tinyurl.com/xyz", nil)

	got := pcsaves.ShortenFumenURL(mock, "v115@abc")
	require.Equal(t, "https://tinyurl.com/xyz", got)
}

func TestShortenFumenURLFallsBackOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := NewMockURLShortener(ctrl)
	mock.EXPECT().Shorten(gomock.Any()).Return("", errors.New("shortener unavailable"))

	got := pcsaves.ShortenFumenURL(mock, "v115@abc")
	assert.Equal(t, "Tinyurl did not accept fumen due to url length", got)
}

func TestShortenFumenURLNilShortener(t *testing.T) {
	got := pcsaves.ShortenFumenURL(nil, "v115@abc")
	assert.Equal(t, "https://fumen.zui.jp/?v115@abc", got)
}
