package models

// SubmissionContext carries request-derived marketing attribution for one
// lead submission. It is assembled from the inbound request, never stored,
// and used only to enrich one outbound CRM payload.
type SubmissionContext struct {
	UTMParams  map[string]string
	Referrer   string
	GAClientID string
}
