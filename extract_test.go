package computo

import "testing"

func pc(r rune, x0, y0, x1, y1 float64) pageChar {
	return pageChar{text: r, box: Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}}
}

func TestGroupCharsIntoWords_SplitsOnWhitespaceOnly(t *testing.T) {
	// Reference codes and decimal commas must stay intact; only whitespace
	// separates words.
	chars := []pageChar{
		pc('0', 10, 100, 14, 110),
		pc('1', 14, 100, 18, 110),
		pc('.', 18, 100, 20, 110),
		pc('A', 20, 100, 26, 110),
		pc(' ', 26, 100, 28, 110),
		pc('6', 28, 100, 32, 110),
		pc(',', 32, 100, 34, 110),
		pc('0', 34, 100, 38, 110),
		pc('0', 38, 100, 42, 110),
	}

	words := groupCharsIntoWords(chars)
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].Text != "01.A" {
		t.Errorf("first word = %q, want %q", words[0].Text, "01.A")
	}
	if words[1].Text != "6,00" {
		t.Errorf("second word = %q, want %q", words[1].Text, "6,00")
	}

	// Word boxes merge the character boxes.
	if words[0].Box.X0 != 10 || words[0].Box.X1 != 26 {
		t.Errorf("first word box = %+v", words[0].Box)
	}
	if words[1].Box.X0 != 28 || words[1].Box.X1 != 42 {
		t.Errorf("second word box = %+v", words[1].Box)
	}
}

func TestGroupCharsIntoWords_LeadingTrailingWhitespace(t *testing.T) {
	chars := []pageChar{
		pc(' ', 0, 0, 2, 10),
		pc('a', 2, 0, 6, 10),
		pc('\n', 6, 0, 6, 10),
	}
	words := groupCharsIntoWords(chars)
	if len(words) != 1 || words[0].Text != "a" {
		t.Fatalf("unexpected words: %+v", words)
	}
}

func TestGroupWordsIntoLines(t *testing.T) {
	words := []Word{
		// Second visual line, listed first to exercise the sort.
		{Text: "SOMMANO", Box: Rect{X0: 200, Y0: 120, X1: 260, Y1: 130}},
		{Text: "6,00", Box: Rect{X0: 270, Y0: 120.5, X1: 300, Y1: 130.5}},
		// First visual line.
		{Text: "1", Box: Rect{X0: 40, Y0: 100, X1: 46, Y1: 110}},
		{Text: "Scavo", Box: Rect{X0: 52, Y0: 100, X1: 90, Y1: 110}},
	}

	lines := groupWordsIntoLines(words)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text() != "1 Scavo" {
		t.Errorf("first line = %q", lines[0].Text())
	}
	if lines[1].Text() != "SOMMANO 6,00" {
		t.Errorf("second line = %q", lines[1].Text())
	}

	// Line boxes span their words.
	if lines[0].Box.X0 != 40 || lines[0].Box.X1 != 90 {
		t.Errorf("first line box = %+v", lines[0].Box)
	}
}

func TestGroupWordsIntoLines_Empty(t *testing.T) {
	if lines := groupWordsIntoLines(nil); lines != nil {
		t.Errorf("expected nil for empty input, got %+v", lines)
	}
}
