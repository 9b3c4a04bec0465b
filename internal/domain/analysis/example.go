package analysis

// ExampleID marks the canned demo report.
const ExampleID = "example-001"

// Example returns the fixed demo critique shown without any model call.
// A fresh copy every time so callers can't mutate the shared data.
func Example() *Result {
	return &Result{
		ID:    ExampleID,
		Title: "Echoes in the Rain",
		Creativity: Category{
			Score:    8.5,
			Feedback: "The central metaphor of 'echoes in the rain' is compelling and original, creating a strong, moody atmosphere. The imagery used is vivid and consistently supports the song's theme of lingering memories.",
		},
		EmotionalImpact: Category{
			Score:    9.0,
			Feedback: "The song excels at creating a poignant sense of nostalgia and loss. The listener can genuinely feel the weight of the past, particularly in the chorus and bridge, which are emotionally resonant.",
		},
		Lyricism: Category{
			Score:    8.2,
			Feedback: "The lyricism is strong, with good use of alliteration and assonance. The rhyme scheme is effective without feeling forced. Some phrases are exceptionally poetic, though a few lines in the second verse are slightly clichéd.",
		},
		Craftsmanship: Category{
			Score:    7.8,
			Feedback: "The song follows a classic verse-chorus structure that is well-executed and easy to follow. The transition into the bridge is particularly smooth and builds tension effectively before the final chorus.",
		},
		AudienceAppeal: Category{
			Score:    8.0,
			Feedback: "The themes of love and memory are universally relatable, giving the song broad appeal. It would likely resonate well with fans of indie pop, folk, and singer-songwriter genres.",
		},
		CommercialPotential: Category{
			Score:    7.5,
			Feedback: "The song has a memorable chorus and a strong emotional core, which gives it commercial potential. It would be well-suited for placement in a film or TV show's emotional scene to enhance its reach.",
		},
		OverallScore:    8.2,
		FirstImpression: "A beautifully melancholic and atmospheric track that uses a powerful central metaphor to explore themes of memory and loss.",
		Strengths: []string{
			"Powerful and original central metaphor.",
			"Strong emotional resonance and atmosphere.",
			"Memorable and well-structured chorus.",
		},
		Weaknesses: []string{
			"Some lyrical clichés in the second verse.",
			"The melody, as described, might feel slightly repetitive without a dynamic arrangement.",
			"Could benefit from a more impactful and surprising bridge.",
		},
		Suggestions: []string{
			"Revisit the second verse to replace phrases like 'ghost of a smile' with more unique imagery.",
			"Consider adding a dynamic instrumental swell or a change in rhythm during the bridge to build more tension.",
			"Experiment with a slightly more varied vocal delivery between the verses and chorus to enhance the emotional arc.",
		},
		ArtistComparisons: []ArtistComparison{
			{Artist: "Bon Iver", Reason: "For its atmospheric production and emotionally raw, poetic lyrics."},
			{Artist: "The National", Reason: "Shares a similar melancholic tone and explores complex emotional landscapes."},
			{Artist: "Phoebe Bridgers", Reason: "Due to the intimate storytelling and poignant, specific lyrical details."},
		},
		SuggestedGenres: []SuggestedGenre{
			{Name: "Indie Folk", Reason: "The song's lyrical depth and atmospheric quality fit well within this genre."},
			{Name: "Singer-Songwriter", Reason: "The personal and introspective nature of the lyrics is a hallmark of this genre."},
			{Name: "Ambient Pop", Reason: "With the right production, the song could lean into a more atmospheric, pop-oriented sound."},
		},
		FinalVerdict: "Overall, 'Echoes in the Rain' is a powerful and well-crafted song with significant artistic merit. Its greatest strength lies in its ability to create a deeply affecting mood and tell a relatable story through a unique and memorable metaphor. With a few minor lyrical refinements and a focus on dynamic arrangement, this song has the potential to be truly exceptional and connect with a wide audience.",
	}
}
