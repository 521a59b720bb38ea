package model

// Document is one named section of uploaded clinical text. Documents are
// immutable and identified by Name within a single request.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}
