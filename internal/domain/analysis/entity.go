package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Input limits enforced before a request is ever sent to the model.
const (
	MaxTitleLen       = 100
	MaxLyricsLen      = 10000
	MaxDescriptionLen = 500
	MaxGenreLen       = 50
)

// Category is one scored evaluation axis plus its written feedback.
type Category struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

type ArtistComparison struct {
	Artist string `json:"artist"`
	Reason string `json:"reason"`
}

type SuggestedGenre struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Aggregate Root: Result is one complete critique of a song.
// ID and CreatedAt are set only once the record has been persisted; a
// transient result carries neither. A result is always replaced wholesale,
// never field-patched.
type Result struct {
	ID        string    `json:"id,omitempty"`
	OwnerID   string    `json:"ownerId,omitempty"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt,omitzero"`

	Creativity          Category `json:"creativity"`
	EmotionalImpact     Category `json:"emotionalImpact"`
	Lyricism            Category `json:"lyricism"`
	Craftsmanship       Category `json:"craftsmanship"`
	AudienceAppeal      Category `json:"audienceAppeal"`
	CommercialPotential Category `json:"commercialPotential"`

	OverallScore      float64            `json:"overallScore"`
	FirstImpression   string             `json:"firstImpression"`
	Strengths         []string           `json:"strengths"`
	Weaknesses        []string           `json:"weaknesses"`
	Suggestions       []string           `json:"suggestions"`
	ArtistComparisons []ArtistComparison `json:"artistComparisons"`
	SuggestedGenres   []SuggestedGenre   `json:"suggestedGenres"`
	FinalVerdict      string             `json:"finalVerdict"`
}

// NormalizeScore maps a model-reported score onto the 0.0-10.0 scale.
// Values above 10 are assumed to be on a 0-100 scale and divided by 10.
// The result is rounded to one decimal place and clamped to [0, 10].
func NormalizeScore(s float64) float64 {
	if s > 10 {
		s = s / 10
	}
	s = math.Round(s*10) / 10
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}

// Normalize rescales the overall score and all six category scores in place.
// Feedback text passes through untouched.
func (r *Result) Normalize() {
	r.OverallScore = NormalizeScore(r.OverallScore)
	for _, c := range []*Category{
		&r.Creativity, &r.EmotionalImpact, &r.Lyricism,
		&r.Craftsmanship, &r.AudienceAppeal, &r.CommercialPotential,
	} {
		c.Score = NormalizeScore(c.Score)
	}
}

// Validate checks that a decoded model reply carries every required field.
// A miss means the provider broke the output contract.
func (r *Result) Validate() error {
	if strings.TrimSpace(r.FirstImpression) == "" {
		return fmt.Errorf("%w: missing firstImpression", ErrInvalidAnalysis)
	}
	if strings.TrimSpace(r.FinalVerdict) == "" {
		return fmt.Errorf("%w: missing finalVerdict", ErrInvalidAnalysis)
	}
	for name, cat := range map[string]Category{
		"creativity":          r.Creativity,
		"emotionalImpact":     r.EmotionalImpact,
		"lyricism":            r.Lyricism,
		"craftsmanship":       r.Craftsmanship,
		"audienceAppeal":      r.AudienceAppeal,
		"commercialPotential": r.CommercialPotential,
	} {
		if strings.TrimSpace(cat.Feedback) == "" {
			return fmt.Errorf("%w: missing %s feedback", ErrInvalidAnalysis, name)
		}
	}
	if len(r.Strengths) == 0 || len(r.Weaknesses) == 0 || len(r.Suggestions) == 0 {
		return fmt.Errorf("%w: strengths, weaknesses and suggestions are required", ErrInvalidAnalysis)
	}
	if len(r.ArtistComparisons) == 0 {
		return fmt.Errorf("%w: missing artistComparisons", ErrInvalidAnalysis)
	}
	if len(r.SuggestedGenres) == 0 {
		return fmt.Errorf("%w: missing suggestedGenres", ErrInvalidAnalysis)
	}
	return nil
}

// Request is the user input for one analysis run. Title and lyrics are
// required; the music description and genre are optional context.
type Request struct {
	Title            string `json:"title"`
	Lyrics           string `json:"lyrics"`
	MusicDescription string `json:"music_description,omitempty"`
	Genre            string `json:"genre,omitempty"`
}

func (q Request) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(q.Title) > MaxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, MaxTitleLen)
	}
	if strings.TrimSpace(q.Lyrics) == "" {
		return fmt.Errorf("%w: lyrics are required", ErrInvalidInput)
	}
	if len(q.Lyrics) > MaxLyricsLen {
		return fmt.Errorf("%w: lyrics exceed %d characters", ErrInvalidInput, MaxLyricsLen)
	}
	if len(q.MusicDescription) > MaxDescriptionLen {
		return fmt.Errorf("%w: music description exceeds %d characters", ErrInvalidInput, MaxDescriptionLen)
	}
	if len(q.Genre) > MaxGenreLen {
		return fmt.Errorf("%w: genre exceeds %d characters", ErrInvalidInput, MaxGenreLen)
	}
	return nil
}
