package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KubeVet/kubevet/internal/fix"
	"github.com/KubeVet/kubevet/internal/log"
	"github.com/KubeVet/kubevet/internal/model"
	"github.com/KubeVet/kubevet/internal/report"
	"github.com/KubeVet/kubevet/internal/scan"
)

// doScan runs the analyzer and renders the report. Exit status is carried
// by the returned error: nil for a clean scan, model.ErrFindings when
// issues were reported.
func doScan(cmd *cobra.Command, args []string) error {
	ctx := log.ContextAttrs(cmd.Context(),
		slog.String("cmd", "scan"),
		slog.String("target", args[0]),
	)

	result, err := scan.Scan(ctx, args[0])
	if err != nil {
		return err
	}

	var suggestions []fix.Suggestion
	if flagSuggest && !result.Empty() {
		client := fix.New(ctx, cfg.Fix)
		suggestions = client.EnrichFindings(ctx, result.Findings)
	}
	rep := report.New(args[0], result, suggestions)

	out := io.Writer(os.Stdout)
	colored := true
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
		colored = false
	}

	switch flagFormat {
	case "text":
		err = rep.WriteText(out, colored)
	case "json":
		err = rep.AsJSON(out)
	case "html":
		err = rep.WriteHTML(out)
	case "sarif":
		err = rep.WriteSARIF(out)
	default:
		return fmt.Errorf("unknown report format %q", flagFormat)
	}
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if flagOutput != "" {
		fmt.Printf("report written to %s\n", flagOutput)
	}

	if !result.Empty() {
		return fmt.Errorf("%s: %w", args[0], model.ErrFindings)
	}
	return nil
}

// doFix sends the whole file to the correction service and writes the
// rewritten document. A failed YAML re-validation of the response is a
// warning, not an error: the text is written regardless.
func doFix(cmd *cobra.Command, args []string) error {
	ctx := log.ContextAttrs(cmd.Context(),
		slog.String("cmd", "fix"),
		slog.String("target", args[0]),
	)

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	client := fix.New(ctx, cfg.Fix)
	correction := client.CorrectDocument(ctx, string(content))
	if correction.Err != nil {
		return correction.Err
	}
	if correction.Warning != nil {
		slog.WarnContext(ctx, "corrected document failed validation", "warning", correction.Warning)
	}

	if err := os.WriteFile(flagFixOutput, []byte(correction.Text+"\n"), 0644); err != nil {
		return fmt.Errorf("writing corrected document: %w", err)
	}
	fmt.Printf("corrected document written to %s\n", flagFixOutput)
	return nil
}
