package papers

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ParseRecord decodes and validates the analyzer's raw JSON output.
// Every text field except publication_year must be a non-empty string,
// and every figure must carry label, explanation, page number, and bbox.
func ParseRecord(raw json.RawMessage) (AnalysisRecord, error) {
	var rec AnalysisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return AnalysisRecord{}, fmt.Errorf("decode record: %w", err)
	}

	required := map[string]string{
		"title_original":   rec.TitleOriginal,
		"title_translated": rec.TitleTranslated,
		"source_info":      rec.SourceInfo,
		"background":       rec.Background,
		"results_summary":  rec.ResultsSummary,
		"novelty":          rec.Novelty,
		"conclusions":      rec.Conclusions,
	}
	var missing []string
	for field, val := range required {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return AnalysisRecord{}, fmt.Errorf("record missing required fields: %s", strings.Join(missing, ", "))
	}

	for i, fig := range rec.Figures {
		if strings.TrimSpace(fig.Label) == "" {
			return AnalysisRecord{}, fmt.Errorf("figure %d: missing label", i)
		}
		if strings.TrimSpace(fig.Explanation) == "" {
			return AnalysisRecord{}, fmt.Errorf("figure %d (%s): missing explanation", i, fig.Label)
		}
		if fig.PageNumber == 0 {
			return AnalysisRecord{}, fmt.Errorf("figure %d (%s): missing page number", i, fig.Label)
		}
		if len(fig.BBox) == 0 {
			return AnalysisRecord{}, fmt.Errorf("figure %d (%s): missing bbox", i, fig.Label)
		}
		if fig.CroppedImage != nil {
			// The analyzer never produces images; drop anything unexpected.
			rec.Figures[i].CroppedImage = nil
		}
	}

	return rec, nil
}
