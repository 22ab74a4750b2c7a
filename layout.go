package computo

import "strings"

// Marker tokens that identify the tabular layout family. Both must appear
// somewhere in the document for the tabular strategy to be tried first.
const (
	tariffMarker      = "TARIFFA"
	descriptionMarker = "DESIGNAZIONE DEI LAVORI"
)

// DetectLayout inspects the normalized document text for the column marker
// tokens and returns the layout the document most likely uses. The result is
// advisory: the engine still falls through to generic strategies when the
// layout-specific one under-produces.
func DetectLayout(lines []NormalizedLine) LayoutTag {
	var tariffFound, descriptionFound bool
	for _, line := range lines {
		if strings.Contains(line.Text, tariffMarker) {
			tariffFound = true
		}
		if strings.Contains(line.Text, descriptionMarker) {
			descriptionFound = true
		}
		if tariffFound && descriptionFound {
			return LayoutTabular
		}
	}
	return LayoutUnknown
}
