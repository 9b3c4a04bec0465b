package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
)

func TestSystem(t *testing.T) {
	s := System()
	assert.Contains(t, s, "A&R executive")
	assert.Contains(t, s, "0.0 to 10.0")
	assert.Contains(t, s, "single JSON object")
}

func TestUserEmbedsSubmission(t *testing.T) {
	p := User(domain.Request{
		Title:            "Echoes in the Rain",
		Lyrics:           "Verse one\nChorus",
		MusicDescription: "slow piano ballad",
		Genre:            "Indie Folk",
	})
	assert.Contains(t, p, `"Echoes in the Rain"`)
	assert.Contains(t, p, "Verse one\nChorus")
	assert.Contains(t, p, "slow piano ballad")
	assert.Contains(t, p, "Indie Folk")
}

func TestUserOptionalFieldFallbacks(t *testing.T) {
	p := User(domain.Request{Title: "Song", Lyrics: "la"})
	assert.Contains(t, p, "Not provided")
	assert.Contains(t, p, "Not provided.")
}
