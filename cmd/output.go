package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/theopenlane/dkimcheck/internal/dkim"
)

const (
	// outputText renders results as human-readable text
	outputText = "text"
	// outputJSON renders results as a JSON object
	outputJSON = "json"
)

// errUnknownOutputFormat is returned when the output flag is neither text nor json
var errUnknownOutputFormat = errors.New("unknown output format")

// renderReport writes a successful check report in the selected encoding.
// Text mode prints the PEM block, a blank line, the key length line, and the
// strength grade.
func renderReport(w io.Writer, format string, report *dkim.Report) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	}

	fmt.Fprint(w, report.PublicKeyPEM)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "DKIM Public Key Length: %s\n", report.KeyLengthLabel)
	fmt.Fprintf(w, "Key Strength: %s (%s)\n", report.KeyStrength, report.StrengthDetail)

	return nil
}

// renderError writes a failure in the selected encoding
func renderError(w io.Writer, format string, err error) {
	if format == outputJSON {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err)
}
