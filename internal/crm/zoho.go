// Package crm delivers lead payloads to Zoho CRM. The Zoho client handles
// OAuth refresh-token exchange and lead creation; MockSender synthesizes a
// structurally identical acknowledgment for environments without live
// credentials. Callers depend on the LeadSender interface and never branch
// on which implementation is active.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotConfigured is returned before any network call when the OAuth
// credentials are incomplete. Checking eagerly avoids a confusing transport
// error from a half-configured token exchange.
var ErrNotConfigured = errors.New("zoho oauth credentials are not configured")

// Lead is a Zoho CRM lead payload. Optional fields carry omitempty so
// absent attribution is omitted from the wire format entirely rather than
// sent as empty strings.
type Lead struct {
	FirstName   string `json:"First_Name"`
	LastName    string `json:"Last_Name"`
	Email       string `json:"Email"`
	LeadSource  string `json:"Lead_Source"`
	Owner       string `json:"Owner,omitempty"`
	Company     string `json:"Company,omitempty"`
	Description string `json:"Description,omitempty"`
	GDPRConsent string `json:"GDPR_Consent,omitempty"`
	UTMSource   string `json:"UTM_Source,omitempty"`
	UTMMedium   string `json:"UTM_Medium,omitempty"`
	UTMCampaign string `json:"UTM_Campaign,omitempty"`
	Referrer    string `json:"Referrer,omitempty"`
	GAClientID  string `json:"GA_Client_Id,omitempty"`
}

// LeadSender delivers one lead to the CRM and returns the CRM's raw
// acknowledgment body unchanged.
type LeadSender interface {
	CreateLead(ctx context.Context, lead Lead) (json.RawMessage, error)
}

// Config holds the Zoho client settings.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	// BaseURL is the regional API root, e.g. https://www.zohoapis.eu.
	BaseURL string
}

// Zoho implements LeadSender against the live Zoho CRM v2 API.
type Zoho struct {
	config Config
	client *http.Client
}

// NewZoho creates a Zoho client. Calls time out after 10 seconds; no retry
// is performed internally, the caller decides any retry policy.
func NewZoho(cfg Config) *Zoho {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.zohoapis.eu"
	}
	return &Zoho{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// accessToken exchanges the configured refresh token for a short-lived
// access token.
func (z *Zoho) accessToken(ctx context.Context) (string, error) {
	if z.config.ClientID == "" || z.config.ClientSecret == "" || z.config.RefreshToken == "" {
		return "", ErrNotConfigured
	}

	params := url.Values{}
	params.Set("refresh_token", z.config.RefreshToken)
	params.Set("client_id", z.config.ClientID)
	params.Set("client_secret", z.config.ClientSecret)
	params.Set("grant_type", "refresh_token")

	tokenURL := z.config.BaseURL + "/oauth/v2/token?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, nil)
	if err != nil {
		return "", fmt.Errorf("zoho token request: %w", err)
	}

	resp, err := z.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("zoho token http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("zoho token read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zoho token error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("zoho token unmarshal: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("zoho token response missing access_token: %s", string(respBody))
	}
	return result.AccessToken, nil
}

// CreateLead posts the lead wrapped in Zoho's single-element batch envelope
// and returns the raw acknowledgment. A non-2xx response is an error; the
// body is passed through unreshapen on success.
func (z *Zoho) CreateLead(ctx context.Context, lead Lead) (json.RawMessage, error) {
	token, err := z.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(struct {
		Data []Lead `json:"data"`
	}{Data: []Lead{lead}})
	if err != nil {
		return nil, fmt.Errorf("zoho marshal lead: %w", err)
	}

	leadsURL := z.config.BaseURL + "/crm/v2/Leads"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, leadsURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("zoho lead request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)

	resp, err := z.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zoho lead http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("zoho lead read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("zoho lead error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return json.RawMessage(respBody), nil
}
