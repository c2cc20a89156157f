package ai

// Output schemas for the structured document operations. These are the
// wire contract: the model is constrained to return JSON of exactly
// this shape, and the manager rejects anything that does not conform.

func analysisSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"ocrText":       {Type: TypeString, Description: "The full raw text extracted from the document."},
			"summaryShort":  {Type: TypeString, Description: "A one-sentence summary."},
			"summaryMedium": {Type: TypeString, Description: "A paragraph summary."},
			"summaryLong":   {Type: TypeString, Description: "A detailed multi-paragraph summary."},
			"documentType": {
				Type:        TypeString,
				Enum:        []string{"Resume", "Invoice", "Legal Document", "Medical Report", "Research Paper", "Receipt", "Other"},
				Description: "The classification of the document.",
			},
			"confidenceScore": {Type: TypeNumber, Description: "Confidence in classification (0-1)."},
			"fraudDetection": {
				Type: TypeObject,
				Properties: map[string]*Schema{
					"isSuspicious": {Type: TypeBoolean},
					"score":        {Type: TypeNumber, Description: "0-100 likelihood of being fake."},
					"reasoning":    {Type: TypeString, Description: "Why it might be fake (fonts, layout, etc)."},
				},
				Required: []string{"isSuspicious", "score", "reasoning"},
			},
			"entities": {
				Type: TypeArray,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"text":     {Type: TypeString},
						"category": {Type: TypeString, Description: "e.g., Name, Date, Price, Disease, Organization"},
					},
				},
			},
		},
		Required: []string{"ocrText", "summaryShort", "summaryMedium", "summaryLong", "documentType", "confidenceScore", "fraudDetection", "entities"},
	}
}

func similaritySchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"similarityScore": {Type: TypeNumber, Description: "0-100 percentage similarity."},
			"explanation":     {Type: TypeString},
			"differences":     {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"similarities":    {Type: TypeArray, Items: &Schema{Type: TypeString}},
		},
		Required: []string{"similarityScore", "explanation", "differences", "similarities"},
	}
}
