package metadata

import (
	"encoding/json"
	"strconv"
)

// Metadata is the data payload returned by the extraction API. Every field
// is optional; sites vary wildly in what they expose.
type Metadata struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Publisher   string          `json:"publisher"`
	Text        FlexibleText    `json:"text"`
	Image       FlexibleImage   `json:"image"`
	Images      []FlexibleImage `json:"images"`
	Logo        FlexibleImage   `json:"logo"`
	Screenshot  FlexibleImage   `json:"screenshot"`
	Price       FlexiblePrice   `json:"price"`
}

// IsEmpty reports whether the payload carries nothing usable.
func (m *Metadata) IsEmpty() bool {
	return m == nil || (m.Title == "" && m.Description == "" && m.Image.URL == "" &&
		len(m.Images) == 0 && m.Logo.URL == "" && m.Screenshot.URL == "" && m.Price.Raw == "")
}

// FlexibleImage decodes an image field that may arrive either as a bare URL
// string or as an object with a url property.
type FlexibleImage struct {
	URL string
}

func (f *FlexibleImage) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.URL = s
		return nil
	}

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		f.URL = obj.URL
		return nil
	}

	// Unexpected shape, treat as absent
	f.URL = ""
	return nil
}

// FlexiblePrice decodes a price that may arrive as a number or as a
// preformatted string. Numeric indicates which one it was; the raw string
// form is kept verbatim.
type FlexiblePrice struct {
	Raw     string
	Value   float64
	Numeric bool
}

func (f *FlexiblePrice) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.Value = n
		f.Numeric = true
		f.Raw = strconv.FormatFloat(n, 'f', -1, 64)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Raw = s
		return nil
	}

	f.Raw = ""
	return nil
}

// FlexibleText tolerates the text field occasionally being a non-string.
type FlexibleText string

func (f *FlexibleText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleText(s)
	}
	return nil
}
