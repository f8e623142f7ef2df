package export

import (
	"encoding/json"

	"fraudlens/internal/domain"
)

// EncodeJSON renders the stored raw result with the computed sections
// attached under extracted_sections, pretty-printed with 2-space indent.
// Keys follow the encoder's natural ordering; the sections object keeps its
// fixed internal order.
func EncodeJSON(rec *Record, sections domain.Sections) ([]byte, error) {
	doc := map[string]json.RawMessage{}
	if len(rec.Raw) > 0 {
		// A non-object result is dropped rather than failing the export;
		// the sections are still written.
		_ = json.Unmarshal(rec.Raw, &doc)
		if doc == nil {
			doc = map[string]json.RawMessage{}
		}
	}

	sectionJSON, err := json.Marshal(sections)
	if err != nil {
		return nil, err
	}
	doc["extracted_sections"] = sectionJSON

	return json.MarshalIndent(doc, "", "  ")
}
