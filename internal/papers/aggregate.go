package papers

// Aggregate merges crops into the record positionally: crop i belongs to
// figure i. It returns a new record and leaves its inputs untouched; the
// figure list keeps its length and order no matter how many crops are nil.
func Aggregate(rec AnalysisRecord, crops [][]byte) AnalysisRecord {
	out := rec
	out.Figures = make([]FigureRef, len(rec.Figures))
	for i, fig := range rec.Figures {
		merged := fig
		merged.BBox = append([]int(nil), fig.BBox...)
		if i < len(crops) && len(crops[i]) > 0 {
			merged.CroppedImage = append([]byte(nil), crops[i]...)
		} else {
			merged.CroppedImage = nil
		}
		out.Figures[i] = merged
	}
	return out
}
