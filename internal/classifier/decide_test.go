package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoresWith(n, idx int, top float32) []float32 {
	s := make([]float32, n)
	rest := (1 - top) / float32(n-1)
	for i := range s {
		s[i] = rest
	}
	s[idx] = top
	return s
}

func TestDecide_Boundary(t *testing.T) {
	cases := []struct {
		score    float32
		accepted bool
	}{
		{0.69, false},
		{0.6901, true},
		{0.5, false},
		{1.0, true},
	}
	for _, c := range cases {
		p, err := NewPrediction(DefaultLabels, scoresWith(len(DefaultLabels), 0, c.score))
		require.NoError(t, err)
		d, err := Decide(p, DefaultThresholdPercent)
		require.NoError(t, err)
		assert.Equal(t, c.accepted, d.Accepted, "score %v", c.score)
	}
}

func TestDecide_ResultFormat(t *testing.T) {
	p, err := NewPrediction(DefaultLabels, scoresWith(len(DefaultLabels), 3, 0.95))
	require.NoError(t, err)
	require.Equal(t, 3, p.Index)

	d, err := Decide(p, DefaultThresholdPercent)
	require.NoError(t, err)
	assert.True(t, d.Accepted)
	assert.Equal(t, DefaultLabels[3]+" (prob=95%)", d.Result())
}

func TestDecide_RejectedResult(t *testing.T) {
	d, err := Decide(Prediction{Label: "x", Index: 0, Scores: []float32{0.3, 0.7}}, DefaultThresholdPercent)
	require.NoError(t, err)
	assert.False(t, d.Accepted)
	assert.Equal(t, RejectedResult, d.Result())
}

func TestDecide_IndexOutOfRange(t *testing.T) {
	_, err := Decide(Prediction{Index: 2, Scores: []float32{0.1, 0.9}}, DefaultThresholdPercent)
	assert.Error(t, err)
}

func TestNewPrediction(t *testing.T) {
	p, err := NewPrediction([]string{"a", "b", "c"}, []float32{0.1, 0.7, 0.2})
	require.NoError(t, err)
	assert.Equal(t, "b", p.Label)
	assert.Equal(t, 1, p.Index)

	_, err = NewPrediction([]string{"a"}, []float32{0.5, 0.5})
	assert.Error(t, err)
	_, err = NewPrediction(nil, nil)
	assert.Error(t, err)
}

func TestSoftmax(t *testing.T) {
	v := []float32{1, 2, 3}
	softmax(v)
	var sum float32
	for _, x := range v {
		sum += x
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
	assert.Equal(t, 2, argmax(v))
	assert.InDelta(t, 0.6652, v[2], 1e-3)
}

func TestDefaultLabels(t *testing.T) {
	assert.Len(t, DefaultLabels, 29)
	assert.Equal(t, "KAFFEBÖNA Plant pot", DefaultLabels[8], "labels are trimmed")
	assert.Equal(t, "LACK Coffee table", DefaultLabels[10])
}

func TestNormalizeLabels_NFC(t *testing.T) {
	decomposed := "BESTA\u030a storage system"
	got := NormalizeLabels([]string{"  " + decomposed + " "})
	assert.Equal(t, "BEST\u00c5 storage system", got[0])
}
