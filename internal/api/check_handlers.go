package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/theopenlane/dkimcheck/internal/dkim"
	"github.com/theopenlane/dkimcheck/internal/slack"
)

// CheckRequest represents a DKIM key check request.
type CheckRequest struct {
	// Selector is the DKIM selector to check.
	Selector string `json:"selector"`
	// Domain is the domain to check.
	Domain string `json:"domain"`
	// NotifySlack controls whether a weak key triggers a Slack alert. Defaults to true when omitted.
	NotifySlack *bool `json:"notify_slack,omitempty"`
}

// CheckResult holds the check report plus notification state.
type CheckResult struct {
	// Report is the DKIM key check report.
	Report *dkim.Report `json:"report"`
	// SlackNotified indicates whether a weak-key alert was sent.
	SlackNotified bool `json:"slack_notified"`
}

// CheckResponse represents the check response envelope.
type CheckResponse struct {
	// Success indicates whether the check completed successfully.
	Success bool `json:"success"`
	// Data holds the check result when successful.
	Data *CheckResult `json:"data,omitempty"`
	// Error is the normalized error payload when the check fails.
	Error *Error `json:"error,omitempty"`
}

// ProbeRequest represents a selector discovery request.
type ProbeRequest struct {
	// Domain is the domain to probe.
	Domain string `json:"domain"`
	// Selectors overrides the well-known selector list when set.
	Selectors []string `json:"selectors,omitempty"`
}

// ProbeResponse represents the probe response envelope.
type ProbeResponse struct {
	// Success indicates whether the probe completed successfully.
	Success bool `json:"success"`
	// Data holds the probe result when successful.
	Data *dkim.ProbeResult `json:"data,omitempty"`
	// Error is the normalized error payload when the probe fails.
	Error *Error `json:"error,omitempty"`
}

// handleCheck resolves a selector/domain pair and reports its DKIM key length.
func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	if h.checker == nil {
		respondCheckError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrCheckerNotConfigured.Error())
		return
	}

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req CheckRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondCheckError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if req.Selector == "" {
		respondCheckError(w, http.StatusBadRequest, errCodeValidation, ErrSelectorRequired.Error())
		return
	}

	if req.Domain == "" {
		respondCheckError(w, http.StatusBadRequest, errCodeValidation, ErrDomainRequired.Error())
		return
	}

	report, err := h.checker.Check(r.Context(), req.Selector, req.Domain)
	if err != nil {
		status, code := checkErrorStatus(err)
		respondCheckError(w, status, code, err.Error())

		return
	}

	result := &CheckResult{Report: report}

	shouldNotify := req.NotifySlack == nil || *req.NotifySlack
	if shouldNotify && h.notifier != nil && h.notifyWeakKeys && isWeakKey(report.KeyStrength) {
		msg := buildWeakKeySlackMessage(report)

		if err := h.notifier.Send(r.Context(), msg); err != nil {
			log.Error().Err(err).Str("domain", report.Domain).Msg("slack notification failed")
		} else {
			result.SlackNotified = true
		}
	}

	writeJSON(w, http.StatusOK, CheckResponse{
		Success: true,
		Data:    result,
	})
}

// handleProbe discovers published DKIM selectors for a domain.
func (h *Handler) handleProbe(w http.ResponseWriter, r *http.Request) {
	if h.checker == nil {
		respondProbeError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrCheckerNotConfigured.Error())
		return
	}

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req ProbeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondProbeError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if req.Domain == "" {
		respondProbeError(w, http.StatusBadRequest, errCodeValidation, ErrDomainRequired.Error())
		return
	}

	result, err := h.checker.Probe(r.Context(), req.Domain, req.Selectors)
	if err != nil {
		status := http.StatusInternalServerError
		code := errCodeInternal

		switch {
		case errors.Is(err, dkim.ErrEmptyDomain):
			status = http.StatusBadRequest
			code = errCodeValidation
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
			code = errCodeTimeout
		}

		respondProbeError(w, status, code, err.Error())

		return
	}

	writeJSON(w, http.StatusOK, ProbeResponse{
		Success: true,
		Data:    result,
	})
}

// checkErrorStatus maps pipeline errors onto HTTP status and error codes
func checkErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, dkim.ErrEmptySelector), errors.Is(err, dkim.ErrEmptyDomain):
		return http.StatusBadRequest, errCodeValidation
	case errors.Is(err, dkim.ErrDomainNotFound), errors.Is(err, dkim.ErrNoRecordsFound):
		return http.StatusNotFound, errCodeNotFound
	case errors.Is(err, dkim.ErrResolutionFailed):
		return http.StatusBadGateway, errCodeResolutionFailed
	case errors.Is(err, dkim.ErrMissingPublicKeyTag), errors.Is(err, dkim.ErrEmptyPublicKey), errors.Is(err, dkim.ErrKeyParse):
		return http.StatusUnprocessableEntity, errCodeInvalidRecord
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errCodeTimeout
	default:
		return http.StatusInternalServerError, errCodeInternal
	}
}

// isWeakKey reports whether a strength grade should trigger an alert
func isWeakKey(strength dkim.KeyStrength) bool {
	return strength == dkim.StrengthDeprecated || strength == dkim.StrengthWeak
}

// buildWeakKeySlackMessage formats a weak-key report into a Slack Block Kit message
func buildWeakKeySlackMessage(report *dkim.Report) slack.Message {
	headerText := fmt.Sprintf("Weak DKIM Key: %s", report.Domain)

	blocks := []slack.Block{
		{
			Type: "header",
			Text: &slack.TextObject{Type: "plain_text", Text: headerText},
		},
		{
			Type: "section",
			Fields: []slack.TextObject{
				{Type: "mrkdwn", Text: fmt.Sprintf("*Domain:*\n%s", report.Domain)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Selector:*\n%s", report.Selector)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Key Length:*\n%s", report.KeyLengthLabel)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Strength:*\n%s", report.KeyStrength)},
			},
		},
		{
			Type: "section",
			Text: &slack.TextObject{Type: "mrkdwn", Text: report.StrengthDetail},
		},
	}

	return slack.Message{
		Text:   fmt.Sprintf("Weak DKIM key for %s (%s): %s", report.Domain, report.Selector, report.KeyLengthLabel),
		Blocks: blocks,
	}
}

func respondCheckError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, CheckResponse{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func respondProbeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ProbeResponse{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}
