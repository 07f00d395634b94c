package gemini

import "google.golang.org/genai"

// worksheetSchema is the strict output contract for worksheet generation.
// It mirrors the structural rules the prompt builder states in prose; the
// validator in internal/service enforces the answer/options invariant on top.
func worksheetSchema() *genai.Schema {
	question := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questionText": {
				Type:        genai.TypeString,
				Description: "The question shown (or narrated) to the student.",
			},
			"imageDescription": {
				Type:        genai.TypeString,
				Description: "Short scene description for listening questions, narrated but never displayed.",
			},
			"options": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Exactly 4 answer options, or an empty array for speaking exercises.",
			},
			"correctAnswer": {
				Type:        genai.TypeString,
				Description: "Must be textually identical to one of the options.",
			},
			"explanation": {Type: genai.TypeString},
			"targetPhrase": {
				Type:        genai.TypeString,
				Description: "Speaking only: the phrase the student should say aloud.",
			},
			"pronunciationTips": {Type: genai.TypeString},
		},
		Required: []string{"questionText", "correctAnswer", "explanation"},
	}

	section := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"type": {
				Type: genai.TypeString,
				Enum: []string{"grammar", "vocabulary", "reading", "listening", "speaking"},
			},
			"title":       {Type: genai.TypeString},
			"instruction": {Type: genai.TypeString},
			"contextText": {
				Type:        genai.TypeString,
				Description: "Reading passage. Only for reading sections, never for listening.",
			},
			"questions": {Type: genai.TypeArray, Items: question},
		},
		Required: []string{"type", "title", "instruction", "questions"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"sections": {Type: genai.TypeArray, Items: section},
		},
		Required: []string{"sections"},
	}
}

// pronunciationSchema constrains the multimodal evaluation response.
func pronunciationSchema() *genai.Schema {
	word := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"word": {Type: genai.TypeString},
			"status": {
				Type: genai.TypeString,
				Enum: []string{"correct", "partial", "incorrect"},
			},
			"score": {Type: genai.TypeInteger},
		},
		Required: []string{"word", "status", "score"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overallScore":      {Type: genai.TypeInteger},
			"accuracyScore":     {Type: genai.TypeInteger},
			"fluencyScore":      {Type: genai.TypeInteger},
			"completenessScore": {Type: genai.TypeInteger},
			"feedback":          {Type: genai.TypeString},
			"wordFeedback":      {Type: genai.TypeArray, Items: word},
		},
		Required: []string{"overallScore", "accuracyScore", "fluencyScore", "completenessScore", "feedback", "wordFeedback"},
	}
}
