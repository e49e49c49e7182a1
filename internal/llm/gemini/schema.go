package gemini

import "google.golang.org/genai"

// analysisSchema constrains the structured-output response. Field names
// must stay in lockstep with papers.AnalysisRecord JSON tags.
func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title_original": {
				Type:        genai.TypeString,
				Description: "The original English title.",
			},
			"title_translated": {
				Type:        genai.TypeString,
				Description: "Japanese translation of the title.",
			},
			"source_info": {
				Type:        genai.TypeString,
				Description: "Journal name and author list.",
			},
			"publication_year": {
				Type:        genai.TypeString,
				Description: "Year of publication.",
			},
			"background": {
				Type:        genai.TypeString,
				Description: "Research background and objective in Japanese.",
			},
			"results_summary": {
				Type:        genai.TypeString,
				Description: "Comprehensive summary of results and discussion in Japanese.",
			},
			"figures": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"label": {
							Type:        genai.TypeString,
							Description: "e.g. Figure 1, Table 2, Scheme 1",
						},
						"explanation": {
							Type:        genai.TypeString,
							Description: "Detailed explanation in Japanese, covering sub-labels and numeric data.",
						},
						"page_number": {
							Type:        genai.TypeInteger,
							Description: "1-based page number.",
						},
						"bbox": {
							Type:        genai.TypeArray,
							Items:       &genai.Schema{Type: genai.TypeInteger},
							Description: "[ymin, xmin, ymax, xmax] on a 0-1000 scale, caption included.",
						},
					},
					Required: []string{"label", "explanation", "page_number", "bbox"},
				},
			},
			"novelty": {
				Type:        genai.TypeString,
				Description: "Novelty and significance in Japanese.",
			},
			"conclusions": {
				Type:        genai.TypeString,
				Description: "Conclusion and future tasks in Japanese.",
			},
		},
		Required: []string{
			"title_original", "title_translated", "source_info",
			"publication_year", "background", "results_summary",
			"figures", "novelty", "conclusions",
		},
	}
}
