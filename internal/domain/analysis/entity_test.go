package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already in range", 8.5, 8.5},
		{"boundary ten stays", 10, 10},
		{"zero stays", 0, 0},
		{"percent scale rescaled", 85, 8.5},
		{"just above ten rescaled", 11, 1.1},
		{"percent above hundred clamps", 105, 10},
		{"negative clamps to zero", -1, 0},
		{"rounds to one decimal", 7.25, 7.3},
		{"rounds down", 8.44, 8.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeScore(tt.in))
		})
	}
}

func TestNormalizeScoreIdempotent(t *testing.T) {
	for _, s := range []float64{0, 3.3, 8.5, 10, 85, 105, -2} {
		once := NormalizeScore(s)
		assert.Equal(t, once, NormalizeScore(once), "score %v", s)
	}
}

func TestResultNormalize(t *testing.T) {
	r := Example()
	r.OverallScore = 82
	r.Creativity.Score = 85
	r.Lyricism.Score = -3
	feedback := r.Creativity.Feedback

	r.Normalize()

	assert.Equal(t, 8.2, r.OverallScore)
	assert.Equal(t, 8.5, r.Creativity.Score)
	assert.Equal(t, 0.0, r.Lyricism.Score)
	assert.Equal(t, feedback, r.Creativity.Feedback, "feedback must pass through untouched")
}

func TestRequestValidate(t *testing.T) {
	valid := Request{Title: "Echoes", Lyrics: "some lyrics"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  Request
	}{
		{"empty title", Request{Lyrics: "la la"}},
		{"whitespace title", Request{Title: "   ", Lyrics: "la la"}},
		{"title too long", Request{Title: strings.Repeat("x", MaxTitleLen+1), Lyrics: "la la"}},
		{"empty lyrics", Request{Title: "Echoes"}},
		{"lyrics too long", Request{Title: "Echoes", Lyrics: strings.Repeat("x", MaxLyricsLen+1)}},
		{"description too long", Request{Title: "Echoes", Lyrics: "la", MusicDescription: strings.Repeat("x", MaxDescriptionLen+1)}},
		{"genre too long", Request{Title: "Echoes", Lyrics: "la", Genre: strings.Repeat("x", MaxGenreLen+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestResultValidate(t *testing.T) {
	require.NoError(t, Example().Validate())

	t.Run("missing first impression", func(t *testing.T) {
		r := Example()
		r.FirstImpression = " "
		assert.ErrorIs(t, r.Validate(), ErrInvalidAnalysis)
	})
	t.Run("missing category feedback", func(t *testing.T) {
		r := Example()
		r.Craftsmanship.Feedback = ""
		assert.ErrorIs(t, r.Validate(), ErrInvalidAnalysis)
	})
	t.Run("missing strengths", func(t *testing.T) {
		r := Example()
		r.Strengths = nil
		assert.ErrorIs(t, r.Validate(), ErrInvalidAnalysis)
	})
	t.Run("missing artist comparisons", func(t *testing.T) {
		r := Example()
		r.ArtistComparisons = nil
		assert.ErrorIs(t, r.Validate(), ErrInvalidAnalysis)
	})
	t.Run("missing suggested genres", func(t *testing.T) {
		r := Example()
		r.SuggestedGenres = nil
		assert.ErrorIs(t, r.Validate(), ErrInvalidAnalysis)
	})
	t.Run("missing final verdict", func(t *testing.T) {
		r := Example()
		r.FinalVerdict = ""
		assert.ErrorIs(t, r.Validate(), ErrInvalidAnalysis)
	})
}

func TestExampleReturnsFreshCopy(t *testing.T) {
	a := Example()
	a.Title = "mutated"
	a.Strengths[0] = "mutated"

	b := Example()
	assert.Equal(t, "Echoes in the Rain", b.Title)
	assert.Equal(t, "Powerful and original central metaphor.", b.Strengths[0])
	assert.Equal(t, ExampleID, b.ID)
}
