package gemini

import (
	"google.golang.org/genai"
)

// resultSchema is the structured-output contract sent as responseSchema.
// Same shape as the OpenAI json_schema variant.
func resultSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":               {Type: genai.TypeString, Description: "The title of the song being analyzed."},
			"creativity":          categorySchema("Evaluation of the song's originality and uniqueness."),
			"emotionalImpact":     categorySchema("Evaluation of the song's ability to evoke emotion."),
			"lyricism":            categorySchema("Evaluation of the quality and artistry of the lyrics."),
			"craftsmanship":       categorySchema("Evaluation of the song's structure, flow, and technical construction."),
			"audienceAppeal":      categorySchema("Evaluation of the song's potential to connect with a target audience."),
			"commercialPotential": categorySchema("Evaluation of the song's viability for mainstream success and radio play."),
			"overallScore":        {Type: genai.TypeNumber, Description: "The overall weighted average score for the song, from 0.0 to 10.0."},
			"firstImpression":     {Type: genai.TypeString, Description: "A concise, one-sentence initial reaction to the song."},
			"strengths":           stringListSchema("A list of 3-4 key strengths of the song, as bullet points."),
			"weaknesses":          stringListSchema("A list of 3-4 key weaknesses or areas for improvement, as bullet points."),
			"suggestions":         stringListSchema("A list of 3-4 concrete suggestions for improving the song, as bullet points."),
			"artistComparisons":   reasonListSchema("artist", "The name of a comparable artist.", "A list of 2-3 artists that the song is similar to."),
			"suggestedGenres":     reasonListSchema("name", "The name of a suitable genre.", "A list of 2-3 genres that fit the song."),
			"finalVerdict":        {Type: genai.TypeString, Description: "A final summary paragraph (3-5 sentences) providing a holistic verdict balancing artistic merit, commercial potential, and niche appeal."},
		},
		Required: []string{
			"title", "creativity", "emotionalImpact", "lyricism", "craftsmanship",
			"audienceAppeal", "commercialPotential", "overallScore", "firstImpression",
			"strengths", "weaknesses", "suggestions", "artistComparisons",
			"suggestedGenres", "finalVerdict",
		},
	}
}

func categorySchema(desc string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: desc,
		Properties: map[string]*genai.Schema{
			"score":    {Type: genai.TypeNumber, Description: "A score from 0.0 to 10.0, one decimal place."},
			"feedback": {Type: genai.TypeString, Description: "Detailed feedback for this category (2-3 sentences)."},
		},
		Required: []string{"score", "feedback"},
	}
}

func stringListSchema(desc string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: desc,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

func reasonListSchema(key, keyDesc, desc string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: desc,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				key:      {Type: genai.TypeString, Description: keyDesc},
				"reason": {Type: genai.TypeString, Description: "A brief explanation for the suggestion."},
			},
			Required: []string{key, "reason"},
		},
	}
}
