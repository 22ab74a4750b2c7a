package computo

import "sort"

// FindKeywordHits locates every occurrence of the delimiter keyword among a
// page's words, ordered by vertical then horizontal position. Matching is
// exact and case-sensitive: the totals keyword is uppercase in every known
// layout variant.
func FindKeywordHits(page Page, keyword string) []KeywordHit {
	var hits []KeywordHit
	for _, word := range page.Words {
		if word.Text == keyword {
			hits = append(hits, KeywordHit{Page: page.Number, Box: word.Box})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Box.Y0 != hits[j].Box.Y0 {
			return hits[i].Box.Y0 < hits[j].Box.Y0
		}
		return hits[i].Box.X0 < hits[j].Box.X0
	})
	return hits
}

// contentTop derives the vertical start of a page's content: the top of the
// first word adjusted by ExtendTop, or a small offset from the page's
// geometric top when the page has no words.
func contentTop(page Page, cfg Config) float64 {
	if len(page.Words) == 0 {
		return 10
	}
	top := page.Words[0].Box.Y0
	for _, word := range page.Words[1:] {
		if word.Box.Y0 < top {
			top = word.Box.Y0
		}
	}
	return top + cfg.ExtendTop
}

// PlanRows derives one crop rectangle per keyword hit. Each row spans from
// the previous hit's bottom edge (the content top for the first row) down to
// the hit's bottom edge plus ExtendBottom and KeywordPadding, clipped to the
// page. Rectangles with a sub-floor dimension are dropped: they indicate an
// unreliable hit, not a structural failure. The next row's top follows the
// hit's bottom edge, not the padded crop bottom, so overlap padding never
// shifts subsequent rows.
func PlanRows(page Page, hits []KeywordHit, cfg Config) []Rect {
	pageRect := Rect{X0: 0, Y0: 0, X1: page.Width, Y1: page.Height}
	prevBottom := contentTop(page, cfg)

	var rows []Rect
	for _, hit := range hits {
		crop := Rect{
			X0: pageRect.X0 + cfg.LeftMargin,
			Y0: prevBottom,
			X1: pageRect.X1 - cfg.RightMargin,
			Y1: hit.Box.Y1 + cfg.ExtendBottom + cfg.KeywordPadding,
		}
		crop = crop.Intersect(pageRect)
		if crop.Width() >= cfg.MinCropSize && crop.Height() >= cfg.MinCropSize {
			rows = append(rows, crop)
		}
		prevBottom = hit.Box.Y1 + 2
	}
	return rows
}
