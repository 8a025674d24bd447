package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theopenlane/dkimcheck/internal/dkim"
)

// probeCmd discovers published DKIM selectors for a domain
var probeCmd = &cobra.Command{
	Use:   "probe <domain>",
	Short: "probe well-known DKIM selectors for a domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		return probe(cmd.Context(), args[0])
	},
}

// init registers the probe command and its flags on the root command
func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().StringP("nameserver", "n", "", "nameserver IP to query instead of the system resolver")
	probeCmd.Flags().Float64("timeout", defaultTimeoutSeconds, "DNS resolution timeout in seconds per selector")
	probeCmd.Flags().String("output", outputText, "output encoding (text or json)")
	probeCmd.Flags().StringSlice("selectors", nil, "selectors to probe instead of the well-known list")
}

// probe sequentially checks the selector list against the domain and renders
// per-selector findings
func probe(ctx context.Context, domain string) error {
	format := k.String("output")
	if format != outputText && format != outputJSON {
		err := fmt.Errorf("%w: %s", errUnknownOutputFormat, format)
		renderError(os.Stderr, outputText, err)

		return err
	}

	checker := dkim.NewChecker(checkerOptions()...)

	result, err := checker.Probe(ctx, domain, k.Strings("selectors"))
	if err != nil {
		renderError(os.Stderr, format, err)
		return err
	}

	return renderProbeResult(os.Stdout, format, result)
}

// renderProbeResult writes the probe findings in the selected encoding
func renderProbeResult(w io.Writer, format string, result *dkim.ProbeResult) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(result)
	}

	if !result.Found {
		fmt.Fprintf(w, "No DKIM selectors found for %s (%d checked)\n", result.Domain, result.SelectorsChecked)
		return nil
	}

	fmt.Fprintf(w, "DKIM selectors for %s (%d checked):\n", result.Domain, result.SelectorsChecked)

	for _, finding := range result.Findings {
		if finding.Revoked {
			fmt.Fprintf(w, "  %s: key revoked\n", finding.Selector)
			continue
		}

		fmt.Fprintf(w, "  %s: %db (%s)\n", finding.Selector, finding.KeyLengthBits, finding.KeyStrength)
	}

	return nil
}
