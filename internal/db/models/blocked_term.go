package models

// BlockedTerm is a word or phrase that new catalog entries must not contain.
type BlockedTerm struct {
	ID   int64  `json:"id"`
	Term string `json:"palabra"`
}
