package models

// SectionContent is the (heading, body) projection of a page section used in
// draft previews. Order is intentionally absent: a draft proposes content,
// not placement.
type SectionContent struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// SectionUpdate is one proposed change in a publish batch, keyed by the
// section's display order. Nil Heading or Body means "leave the current
// value unchanged" for an existing section; for a new section the store
// applies defaults instead.
type SectionUpdate struct {
	Order   int     `json:"order"`
	Heading *string `json:"heading,omitempty"`
	Body    *string `json:"body,omitempty"`
}

// DraftMetadata records which model/provider pairing produced a draft.
type DraftMetadata struct {
	Model    string `json:"model"`
	Provider string `json:"provider"`
}

// Draft is a non-persisted proposed set of sections for a page: the current
// content plus one appended AI section. It lives only for the duration of a
// single preview response.
type Draft struct {
	Page     PageSlug         `json:"page"`
	Sections []SectionContent `json:"sections"`
	Metadata DraftMetadata    `json:"metadata"`
}
