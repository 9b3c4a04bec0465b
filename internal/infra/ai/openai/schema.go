package openai

import (
	"github.com/sashabaranov/go-openai/jsonschema"
)

// resultSchema is the strict output contract for the critique. It mirrors the
// domain Result minus id/ownerId/createdAt, which only exist after persistence.
func resultSchema() *jsonschema.Definition {
	required := []string{
		"title", "creativity", "emotionalImpact", "lyricism", "craftsmanship",
		"audienceAppeal", "commercialPotential", "overallScore", "firstImpression",
		"strengths", "weaknesses", "suggestions", "artistComparisons",
		"suggestedGenres", "finalVerdict",
	}
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title":               {Type: jsonschema.String, Description: "The title of the song being analyzed."},
			"creativity":          categorySchema("Evaluation of the song's originality and uniqueness."),
			"emotionalImpact":     categorySchema("Evaluation of the song's ability to evoke emotion."),
			"lyricism":            categorySchema("Evaluation of the quality and artistry of the lyrics."),
			"craftsmanship":       categorySchema("Evaluation of the song's structure, flow, and technical construction."),
			"audienceAppeal":      categorySchema("Evaluation of the song's potential to connect with a target audience."),
			"commercialPotential": categorySchema("Evaluation of the song's viability for mainstream success and radio play."),
			"overallScore":        {Type: jsonschema.Number, Description: "The overall weighted average score for the song, from 0.0 to 10.0."},
			"firstImpression":     {Type: jsonschema.String, Description: "A concise, one-sentence initial reaction to the song."},
			"strengths":           stringListSchema("A list of 3-4 key strengths of the song, as bullet points."),
			"weaknesses":          stringListSchema("A list of 3-4 key weaknesses or areas for improvement, as bullet points."),
			"suggestions":         stringListSchema("A list of 3-4 concrete suggestions for improving the song, as bullet points."),
			"artistComparisons":   reasonListSchema("artist", "The name of a comparable artist.", "A list of 2-3 artists that the song is similar to."),
			"suggestedGenres":     reasonListSchema("name", "The name of a suitable genre.", "A list of 2-3 genres that fit the song."),
			"finalVerdict":        {Type: jsonschema.String, Description: "A final summary paragraph (3-5 sentences) providing a holistic verdict balancing artistic merit, commercial potential, and niche appeal."},
		},
		Required:             required,
		AdditionalProperties: false,
	}
}

func categorySchema(desc string) jsonschema.Definition {
	return jsonschema.Definition{
		Type:        jsonschema.Object,
		Description: desc,
		Properties: map[string]jsonschema.Definition{
			"score":    {Type: jsonschema.Number, Description: "A score from 0.0 to 10.0, one decimal place."},
			"feedback": {Type: jsonschema.String, Description: "Detailed feedback for this category (2-3 sentences)."},
		},
		Required:             []string{"score", "feedback"},
		AdditionalProperties: false,
	}
}

func stringListSchema(desc string) jsonschema.Definition {
	return jsonschema.Definition{
		Type:        jsonschema.Array,
		Description: desc,
		Items:       &jsonschema.Definition{Type: jsonschema.String},
	}
}

func reasonListSchema(key, keyDesc, desc string) jsonschema.Definition {
	return jsonschema.Definition{
		Type:        jsonschema.Array,
		Description: desc,
		Items: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				key:      {Type: jsonschema.String, Description: keyDesc},
				"reason": {Type: jsonschema.String, Description: "A brief explanation for the suggestion."},
			},
			Required:             []string{key, "reason"},
			AdditionalProperties: false,
		},
	}
}
