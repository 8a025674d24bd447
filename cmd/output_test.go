package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/theopenlane/dkimcheck/internal/dkim"
)

func testReport() *dkim.Report {
	strength, detail := dkim.ClassifyKeyStrength(2048)

	return &dkim.Report{
		Selector:       "sel1",
		Domain:         "example.com",
		DKIMRecord:     "v=DKIM1; k=rsa; p=MIGf",
		PublicKeyPEM:   "-----BEGIN PUBLIC KEY-----\nMIGf\n-----END PUBLIC KEY-----\n",
		KeyLengthBits:  2048,
		KeyLengthLabel: "2048b",
		KeyStrength:    strength,
		StrengthDetail: detail,
	}
}

func TestRenderReport_Text(t *testing.T) {
	var buf bytes.Buffer

	if err := renderReport(&buf, outputText, testReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()

	if !strings.HasPrefix(out, "-----BEGIN PUBLIC KEY-----\n") {
		t.Fatalf("expected output to start with the PEM block, got %q", out)
	}

	if !strings.Contains(out, "-----END PUBLIC KEY-----\n\n") {
		t.Fatal("expected a blank line after the PEM block")
	}

	if !strings.Contains(out, "DKIM Public Key Length: 2048b\n") {
		t.Fatalf("expected key length line, got %q", out)
	}

	if !strings.Contains(out, "Key Strength: adequate") {
		t.Fatalf("expected strength line, got %q", out)
	}
}

func TestRenderReport_JSON(t *testing.T) {
	var buf bytes.Buffer

	if err := renderReport(&buf, outputJSON, testReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	for _, key := range []string{"selector", "domain", "dkim_record", "public_key_pem", "key_length_bits", "key_length_label", "key_strength", "strength_detail"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("expected key %q in JSON output", key)
		}
	}

	if decoded["key_length_bits"].(float64) != 2048 {
		t.Fatalf("expected key_length_bits 2048, got %v", decoded["key_length_bits"])
	}

	if decoded["key_length_label"] != "2048b" {
		t.Fatalf("expected key_length_label 2048b, got %v", decoded["key_length_label"])
	}
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer

	renderError(&buf, outputText, errors.New("domain does not exist"))

	if buf.String() != "Error: domain does not exist\n" {
		t.Fatalf("unexpected text error output: %q", buf.String())
	}

	buf.Reset()
	renderError(&buf, outputJSON, errors.New("domain does not exist"))

	var decoded map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("error output is not valid JSON: %v", err)
	}

	if decoded["error"] != "domain does not exist" {
		t.Fatalf("unexpected JSON error payload: %v", decoded)
	}
}

func TestRenderProbeResult_Text(t *testing.T) {
	result := &dkim.ProbeResult{
		Domain:           "example.com",
		SelectorsChecked: 10,
		Findings: []dkim.ProbeFinding{
			{Selector: "google", KeyLengthBits: 2048, KeyStrength: dkim.StrengthAdequate},
			{Selector: "s1", Revoked: true},
		},
		Found: true,
	}

	var buf bytes.Buffer

	if err := renderProbeResult(&buf, outputText, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()

	if !strings.Contains(out, "google: 2048b (adequate)") {
		t.Fatalf("expected google finding, got %q", out)
	}

	if !strings.Contains(out, "s1: key revoked") {
		t.Fatalf("expected revoked finding, got %q", out)
	}
}

func TestRenderProbeResult_NoneFound(t *testing.T) {
	result := &dkim.ProbeResult{Domain: "example.com", SelectorsChecked: 10}

	var buf bytes.Buffer

	if err := renderProbeResult(&buf, outputText, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), "No DKIM selectors found for example.com") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
