package model

// DefaultQuestions is the built-in Latvian question set. It serves the survey
// when no custom questions have been saved yet and can be merged into an
// existing set through the admin seed operation.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:   "demo_gender",
			Text: "Tavs dzimums:",
			Type: QuestionTypeSingle,
			Options: []Option{
				{ID: "m", Text: "Vīrietis", Value: "male"},
				{ID: "f", Text: "Sieviete", Value: "female"},
			},
			Order: 1,
		},
		{
			ID:   "demo_age",
			Text: "Tavs vecums:",
			Type: QuestionTypeSingle,
			Options: []Option{
				{ID: "a1", Text: "Līdz 18", Value: "under_18"},
				{ID: "a2", Text: "19–30", Value: "19_30"},
				{ID: "a3", Text: "31–45", Value: "31_45"},
				{ID: "a4", Text: "46–60", Value: "46_60"},
				{ID: "a5", Text: "Virs 60", Value: "over_60"},
			},
			Order: 2,
		},
		{
			ID:   "demo_flu_vaccine",
			Text: "Vai pēdējā gada laikā esi vakcinējies pret gripu?",
			Type: QuestionTypeSingle,
			Options: []Option{
				{ID: "yes", Text: "Jā", Value: "yes"},
				{ID: "no", Text: "Nē", Value: "no"},
			},
			Order: 3,
		},
		{
			ID:       "demo_immunity",
			Text:     "Kā Tu novērtē savu imunitāti?",
			Type:     QuestionTypeScale,
			Min:      1,
			Max:      10,
			MinLabel: "Ļoti vāja",
			MaxLabel: "Ļoti spēcīga",
			Order:    4,
		},
		{
			ID:   "demo_supplements",
			Text: "Ko Tu lieto imunitātes stiprināšanai?",
			Type: QuestionTypeMultiple,
			Options: []Option{
				{ID: "s1", Text: "C vitamīnu", Value: "vitamin_c"},
				{ID: "s2", Text: "D vitamīnu", Value: "vitamin_d"},
				{ID: "s3", Text: "Cinku", Value: "zinc"},
				{ID: "s4", Text: "Neko nelietoju", Value: "none"},
			},
			Order: 5,
		},
		{
			ID:    "demo_comments",
			Text:  "Tavi komentāri vai ieteikumi:",
			Type:  QuestionTypeText,
			Order: 6,
		},
	}
}
