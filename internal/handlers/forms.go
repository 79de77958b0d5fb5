package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"leadpress/internal/crm"
	"leadpress/internal/forms"
	"leadpress/internal/models"
)

// Forms groups the lead-capture endpoints. Each endpoint validates the
// submission, enriches it with request-derived attribution, and forwards
// the shaped lead to the CRM, returning the CRM's acknowledgment verbatim.
type Forms struct {
	pipeline *forms.Pipeline
	sender   crm.LeadSender
}

// NewForms creates the form handler group.
func NewForms(pipeline *forms.Pipeline, sender crm.LeadSender) *Forms {
	return &Forms{pipeline: pipeline, sender: sender}
}

// Contact handles the contact form.
func (h *Forms) Contact(w http.ResponseWriter, r *http.Request) {
	values, err := parseSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := forms.ParseContact(values)
	if err != nil {
		h.rejectSubmission(w, "contact", err)
		return
	}

	lead := h.pipeline.ContactLead(sub, submissionContext(r))
	h.deliverLead(w, r, "contact", lead)
}

// EbookDownload handles the ebook-download form.
func (h *Forms) EbookDownload(w http.ResponseWriter, r *http.Request) {
	values, err := parseSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := forms.ParseEbook(values)
	if err != nil {
		h.rejectSubmission(w, "ebook", err)
		return
	}

	lead := h.pipeline.EbookLead(sub, submissionContext(r))
	h.deliverLead(w, r, "ebook", lead)
}

func (h *Forms) rejectSubmission(w http.ResponseWriter, form string, err error) {
	var verr *forms.ValidationError
	if errors.As(err, &verr) {
		slog.Info("form submission rejected", "form", form, "fields", len(verr.Fields))
		writeFieldErrors(w, verr.Fields)
		return
	}
	slog.Error("form validation failed", "form", form, "error", err)
	writeError(w, http.StatusBadRequest, "Invalid submission")
}

func (h *Forms) deliverLead(w http.ResponseWriter, r *http.Request, form string, lead crm.Lead) {
	ack, err := h.sender.CreateLead(r.Context(), lead)
	if errors.Is(err, crm.ErrNotConfigured) {
		slog.Error("crm credentials missing", "form", form)
		writeError(w, http.StatusBadGateway, "Lead could not be delivered")
		return
	}
	if err != nil {
		slog.Error("crm lead creation failed", "form", form, "error", err)
		writeError(w, http.StatusBadGateway, "Lead could not be delivered")
		return
	}
	writeRawJSON(w, http.StatusOK, ack)
}

// parseSubmission decodes the request body into raw field values. JSON
// bodies and conventional form-encoded bodies are both accepted.
func parseSubmission(r *http.Request) (forms.Values, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
		values := make(forms.Values, len(raw))
		for key, v := range raw {
			switch t := v.(type) {
			case string:
				values[key] = t
			case bool:
				if t {
					values[key] = "true"
				} else {
					values[key] = "false"
				}
			case nil:
				// Explicit null is treated as an absent field.
			default:
				values[key] = fmt.Sprintf("%v", t)
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form body: %w", err)
	}
	values := make(forms.Values, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}
	return values, nil
}

// submissionContext assembles the per-request attribution: every utm_*
// query parameter, the Referer header, and the analytics client cookie.
func submissionContext(r *http.Request) models.SubmissionContext {
	sctx := models.SubmissionContext{
		Referrer: r.Header.Get("Referer"),
	}
	for key := range r.URL.Query() {
		if strings.HasPrefix(key, "utm_") {
			if sctx.UTMParams == nil {
				sctx.UTMParams = map[string]string{}
			}
			sctx.UTMParams[key] = r.URL.Query().Get(key)
		}
	}
	if cookie, err := r.Cookie("_ga"); err == nil {
		sctx.GAClientID = cookie.Value
	}
	return sctx
}
