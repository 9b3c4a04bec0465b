package export

import (
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
)

// Supported artifact formats. Rendering is a pure transform of an already
// final result; nothing feeds back into the analysis flow.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Render produces the artifact bytes plus content type and file extension.
func Render(format string, r *domain.Result) (data []byte, contentType, ext string, err error) {
	switch format {
	case FormatText:
		return Text(r), "text/plain; charset=utf-8", "txt", nil
	case FormatMarkdown:
		return Markdown(r), "text/markdown; charset=utf-8", "md", nil
	case FormatJSON:
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, "", "", err
		}
		return b, "application/json", "json", nil
	default:
		return nil, "", "", fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}
}

type scoredSection struct {
	Title string
	domain.Category
}

func sections(r *domain.Result) []scoredSection {
	return []scoredSection{
		{"Creativity", r.Creativity},
		{"Emotional Impact", r.EmotionalImpact},
		{"Lyricism", r.Lyricism},
		{"Craftsmanship", r.Craftsmanship},
		{"Audience Appeal", r.AudienceAppeal},
		{"Commercial Potential", r.CommercialPotential},
	}
}

// Text renders the report as plain text.
func Text(r *domain.Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "SONG ANALYSIS REPORT\n\n")
	fmt.Fprintf(&b, "Title: %s\n", r.Title)
	fmt.Fprintf(&b, "Overall Score: %.1f/10.0\n\n", r.OverallScore)
	fmt.Fprintf(&b, "First Impression\n%s\n\n", r.FirstImpression)

	fmt.Fprintf(&b, "Score Breakdown\n")
	for _, s := range sections(r) {
		fmt.Fprintf(&b, "%s: %.1f/10.0\n%s\n\n", s.Title, s.Score, s.Feedback)
	}

	writeList := func(title string, items []string) {
		fmt.Fprintf(&b, "%s\n", title)
		for _, it := range items {
			fmt.Fprintf(&b, "- %s\n", it)
		}
		b.WriteString("\n")
	}
	writeList("Strengths", r.Strengths)
	writeList("Weaknesses", r.Weaknesses)
	writeList("Suggestions", r.Suggestions)

	fmt.Fprintf(&b, "Artist Comparisons\n")
	for _, c := range r.ArtistComparisons {
		fmt.Fprintf(&b, "%s: %s\n", c.Artist, c.Reason)
	}
	fmt.Fprintf(&b, "\nSuggested Genres\n")
	for _, g := range r.SuggestedGenres {
		fmt.Fprintf(&b, "%s: %s\n", g.Name, g.Reason)
	}
	fmt.Fprintf(&b, "\nFinal Verdict\n%s\n", r.FinalVerdict)
	return []byte(b.String())
}

// Markdown renders the report with the same section layout as Text.
func Markdown(r *domain.Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# Song Analysis Report\n\n")
	fmt.Fprintf(&b, "## %s\n\n", r.Title)
	fmt.Fprintf(&b, "**Overall Score: %.1f/10.0**\n\n", r.OverallScore)
	fmt.Fprintf(&b, "*%s*\n\n", r.FirstImpression)

	fmt.Fprintf(&b, "## Score Breakdown\n\n")
	for _, s := range sections(r) {
		fmt.Fprintf(&b, "### %s: %.1f/10.0\n\n%s\n\n", s.Title, s.Score, s.Feedback)
	}

	writeList := func(title string, items []string) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, it := range items {
			fmt.Fprintf(&b, "- %s\n", it)
		}
		b.WriteString("\n")
	}
	writeList("Strengths", r.Strengths)
	writeList("Weaknesses", r.Weaknesses)
	writeList("Suggestions", r.Suggestions)

	fmt.Fprintf(&b, "## Artist Comparisons\n\n")
	for _, c := range r.ArtistComparisons {
		fmt.Fprintf(&b, "- **%s**: %s\n", c.Artist, c.Reason)
	}
	fmt.Fprintf(&b, "\n## Suggested Genres\n\n")
	for _, g := range r.SuggestedGenres {
		fmt.Fprintf(&b, "- **%s**: %s\n", g.Name, g.Reason)
	}
	fmt.Fprintf(&b, "\n## Final Verdict\n\n%s\n", r.FinalVerdict)
	return []byte(b.String())
}

// FileName mirrors the download naming convention: lowercase title with every
// non-alphanumeric run replaced by underscores.
func FileName(title, ext string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, title)
	return "song_analysis_" + safe + "." + ext
}
