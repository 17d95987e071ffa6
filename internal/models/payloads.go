package models

// These structs define the JSON payloads exchanged with the HTTP API.

// CreateDocumentResponse is returned after a document has been processed
// and both renditions stored.
type CreateDocumentResponse struct {
	DocumentID string           `json:"documentId"`
	Pages      int              `json:"pages"`
	Redactions []RedactionEntry `json:"redactions"`
}

// AccessDocumentRequest carries the single credential presented for a
// document.
type AccessDocumentRequest struct {
	Password string `json:"password"`
}

// AccessDocumentResponse is returned on a successful credential check. URL
// points at the rendition the matched role is entitled to.
type AccessDocumentResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Role     Role   `json:"role"`
	Note     string `json:"note,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
