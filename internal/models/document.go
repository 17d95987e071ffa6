package models

import "time"

// Role is the password tier a successful access matched.
type Role string

const (
	RoleOwner Role = "owner"
	RoleUser  Role = "user"
)

// RedactionEntry is one audit line for a detected region. The matched text
// itself is discarded before persistence; a record of stored PII would
// defeat the point of redacting it.
type RedactionEntry struct {
	Page int    `firestore:"page" json:"page"`
	Kind string `firestore:"type" json:"type"`
}

// DocumentRecord is the persistent record for one protected document in
// Firestore. The only field mutated after creation is AccessCount, and
// only through an atomic increment.
type DocumentRecord struct {
	Filename          string           `firestore:"filename"`
	OwnerPasswordHash string           `firestore:"ownerPassword"`
	UserPasswordHash  string           `firestore:"userPassword"`
	OriginalLocation  string           `firestore:"originalUrl"`
	RedactedLocation  string           `firestore:"redactedUrl"`
	Redactions        []RedactionEntry `firestore:"sensitiveData"`
	CreatedAt         time.Time        `firestore:"createdAt"`
	AccessCount       int64            `firestore:"accessCount"`
}
