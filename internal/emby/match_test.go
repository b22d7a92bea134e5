package emby

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Movies", "movies"},
		{"  TV  Shows ", "tv shows"},
		{"Películas", "peliculas"},
		{"Kids' Movies", "kids movies"},
		{"Anime (Dubbed)", "anime dubbed"},
		{"4K-Movies", "4kmovies"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeName(tt.in))
		})
	}
}

func TestBestNameMatch(t *testing.T) {
	libs := testLibraries()

	idx, score := bestNameMatch("Movies", libs)
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 1.0, score, 0.001)

	idx, score = bestNameMatch("tv show", libs)
	assert.Equal(t, 1, idx)
	assert.GreaterOrEqual(t, score, nameMatchThreshold)
}

func TestBestNameMatch_NoCandidates(t *testing.T) {
	idx, score := bestNameMatch("anything", nil)
	assert.Equal(t, -1, idx)
	assert.Zero(t, score)
}
