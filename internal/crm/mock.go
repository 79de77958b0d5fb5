package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// MockSender implements LeadSender without any network I/O. The synthesized
// acknowledgment matches the shape of a real Zoho response so callers never
// need to know which sender is wired in.
type MockSender struct{}

// CreateLead returns a canned success acknowledgment embedding the
// submitted email.
func (MockSender) CreateLead(_ context.Context, lead Lead) (json.RawMessage, error) {
	slog.Info("mock mode enabled, returning fake zoho lead payload", "email", lead.Email)

	ack := struct {
		Data []mockAckEntry `json:"data"`
	}{
		Data: []mockAckEntry{{
			Code: "MOCK_SUCCESS",
			Details: mockAckDetails{
				ID:    "mock-lead",
				Email: lead.Email,
			},
			Message: "Lead stored locally (mock)",
			Status:  "success",
		}},
	}

	body, err := json.Marshal(ack)
	if err != nil {
		return nil, fmt.Errorf("mock lead marshal: %w", err)
	}
	return body, nil
}

type mockAckEntry struct {
	Code    string         `json:"code"`
	Details mockAckDetails `json:"details"`
	Message string         `json:"message"`
	Status  string         `json:"status"`
}

type mockAckDetails struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
