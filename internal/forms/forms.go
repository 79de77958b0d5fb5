// Package forms implements the lead-capture submission pipeline: it
// validates raw submitted field values per form kind and shapes them, with
// the request's SubmissionContext, into a CRM lead payload. The pipeline
// performs no network I/O; delivering the payload is the CRM gateway's job.
package forms

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"leadpress/internal/crm"
	"leadpress/internal/models"
)

// Validation limits for submitted fields.
const (
	maxNameLen    = 120
	maxEmailLen   = 254
	maxCompanyLen = 150
	maxMessageLen = 10_000
	maxSlugLen    = 120
)

// leadSource is the fixed marker attached to every lead created from the
// website.
const leadSource = "Website"

// ValidationError carries per-field messages for a rejected submission.
// The pipeline never partially submits: any field failure rejects the whole
// form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	return "invalid submission: " + strings.Join(keys, ", ")
}

// Values holds raw submitted field values keyed by field name, decoded from
// either a JSON or form-encoded body. Presence matters: a field absent from
// the map is distinct from a field set to the empty string.
type Values map[string]string

// ContactSubmission is a validated contact form.
type ContactSubmission struct {
	FirstName string
	LastName  string
	Email     string
	Company   string // optional
	Message   string
	Consent   bool
}

// EbookSubmission is a validated ebook-download form.
type EbookSubmission struct {
	FirstName string
	LastName  string
	Email     string
	EbookSlug string
	Consent   bool
}

// ParseContact validates contact form values. All fields except company are
// required.
func ParseContact(values Values) (*ContactSubmission, error) {
	errs := map[string]string{}

	sub := &ContactSubmission{
		FirstName: requireName(values, "first_name", errs),
		LastName:  requireName(values, "last_name", errs),
		Email:     requireEmail(values, errs),
		Company:   strings.TrimSpace(values["company"]),
		Message:   strings.TrimSpace(values["message"]),
	}
	if sub.Message == "" {
		errs["message"] = "This field is required."
	} else if utf8.RuneCountInString(sub.Message) > maxMessageLen {
		errs["message"] = "Message is too long (max 10,000 characters)."
	}
	if utf8.RuneCountInString(sub.Company) > maxCompanyLen {
		errs["company"] = "Company is too long (max 150 characters)."
	}
	sub.Consent = requireConsent(values, errs)

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return sub, nil
}

// ParseEbook validates ebook-download form values. All fields are required.
func ParseEbook(values Values) (*EbookSubmission, error) {
	errs := map[string]string{}

	sub := &EbookSubmission{
		FirstName: requireName(values, "first_name", errs),
		LastName:  requireName(values, "last_name", errs),
		Email:     requireEmail(values, errs),
		EbookSlug: strings.TrimSpace(values["ebook_slug"]),
	}
	if sub.EbookSlug == "" {
		errs["ebook_slug"] = "This field is required."
	} else if utf8.RuneCountInString(sub.EbookSlug) > maxSlugLen {
		errs["ebook_slug"] = "Ebook identifier is too long (max 120 characters)."
	}
	sub.Consent = requireConsent(values, errs)

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return sub, nil
}

func requireName(values Values, field string, errs map[string]string) string {
	v := strings.TrimSpace(values[field])
	if v == "" {
		errs[field] = "This field is required."
	} else if utf8.RuneCountInString(v) > maxNameLen {
		errs[field] = "Value is too long (max 120 characters)."
	}
	return v
}

func requireEmail(values Values, errs map[string]string) string {
	v := strings.TrimSpace(values["email"])
	if v == "" {
		errs["email"] = "This field is required."
		return v
	}
	if utf8.RuneCountInString(v) > maxEmailLen {
		errs["email"] = "Email is too long (max 254 characters)."
		return v
	}
	if addr, err := mail.ParseAddress(v); err != nil || addr.Address != v {
		errs["email"] = "Enter a valid email address."
	}
	return v
}

// requireConsent demands that the consent field be present and boolean.
// Explicit refusal is valid input; it is rendered as "Denied" downstream,
// never dropped.
func requireConsent(values Values, errs map[string]string) bool {
	raw, ok := values["consent"]
	if !ok {
		errs["consent"] = "This field is required."
		return false
	}
	consent, err := parseBool(raw)
	if err != nil {
		errs["consent"] = "Enter a valid boolean value."
	}
	return consent
}

// parseBool accepts JSON booleans rendered as strings plus the HTML
// checkbox convention ("on").
func parseBool(raw string) (bool, error) {
	if strings.EqualFold(raw, "on") {
		return true, nil
	}
	return strconv.ParseBool(raw)
}

// consentStatus renders the consent flag as the literal the CRM expects.
// The raw boolean never leaves the pipeline.
func consentStatus(granted bool) string {
	if granted {
		return "Granted"
	}
	return "Denied"
}

// Pipeline shapes validated submissions into CRM lead payloads.
type Pipeline struct {
	leadOwnerID string
}

// NewPipeline creates a Pipeline. leadOwnerID may be empty, in which case
// no owner is attached and the CRM assigns its default.
func NewPipeline(leadOwnerID string) *Pipeline {
	return &Pipeline{leadOwnerID: leadOwnerID}
}

// ContactLead maps a contact submission to a lead payload. The message
// becomes the lead description.
func (p *Pipeline) ContactLead(sub *ContactSubmission, sctx models.SubmissionContext) crm.Lead {
	lead := p.baseLead(sub.FirstName, sub.LastName, sub.Email, sctx)
	lead.Company = sub.Company
	lead.Description = sub.Message
	lead.GDPRConsent = consentStatus(sub.Consent)
	return lead
}

// EbookLead maps an ebook-download submission to a lead payload with a
// synthesized description referencing the requested ebook.
func (p *Pipeline) EbookLead(sub *EbookSubmission, sctx models.SubmissionContext) crm.Lead {
	lead := p.baseLead(sub.FirstName, sub.LastName, sub.Email, sctx)
	lead.Description = "Requested ebook: " + sub.EbookSlug
	lead.GDPRConsent = consentStatus(sub.Consent)
	return lead
}

// baseLead builds the fields shared by every form kind. Absent attribution
// stays zero-valued and is omitted from the wire payload.
func (p *Pipeline) baseLead(firstName, lastName, email string, sctx models.SubmissionContext) crm.Lead {
	lead := crm.Lead{
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		LeadSource: leadSource,
		Owner:      p.leadOwnerID,
	}
	if len(sctx.UTMParams) > 0 {
		lead.UTMSource = sctx.UTMParams["utm_source"]
		lead.UTMMedium = sctx.UTMParams["utm_medium"]
		lead.UTMCampaign = sctx.UTMParams["utm_campaign"]
	}
	lead.Referrer = sctx.Referrer
	lead.GAClientID = sctx.GAClientID
	return lead
}
