package computo

// QualityReport summarizes how corrupt a document's extracted text looks.
// Orchestrators use it as a cheap pre-check before paying for per-chunk
// field extraction.
type QualityReport struct {
	TotalChars int     `json:"total_chars"`
	BadChars   int     `json:"bad_chars"`
	Ratio      float64 `json:"quality_ratio"`
}

// suspect characters that indicate broken font encoding in the source PDF.
func isSuspectChar(r rune) bool {
	return r == '?' || r == '~' || r == '�'
}

// MeasureQuality computes the character-corruption ratio over a document's
// raw extracted text. A ratio of 1 means no suspect characters at all; an
// empty document reports 0.
func MeasureQuality(doc *Document) QualityReport {
	var report QualityReport
	for _, page := range doc.Pages {
		for _, line := range page.Lines {
			for _, r := range line.Text() {
				report.TotalChars++
				if isSuspectChar(r) {
					report.BadChars++
				}
			}
		}
	}
	if report.TotalChars > 0 {
		report.Ratio = 1 - float64(report.BadChars)/float64(report.TotalChars)
	}
	return report
}

// QualityFile extracts a PDF file and measures its text quality.
func (p *Processor) QualityFile(filePath string) (QualityReport, error) {
	doc, err := p.ExtractDocument(filePath)
	if err != nil {
		return QualityReport{}, err
	}
	return MeasureQuality(doc), nil
}
