// Command dashgen generates the Grafana dashboard and Prometheus rule files
// for offer-tracker.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/offer-tracker/tools/dashgen/dashboards"
	"github.com/donaldgifford/offer-tracker/tools/dashgen/rules"
	"github.com/donaldgifford/offer-tracker/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

const (
	dashboardFile = "ot-overview.json"
	recordingFile = "ot-recording-rules.yaml"
	alertsFile    = "ot-alerts.yaml"
)

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	var (
		artifacts []artifact
		result    validate.Result
	)

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return fmt.Errorf("building dashboard: %w", err)
		}
		res := validate.Dashboard(dash, KnownMetrics)
		result.Errors = append(result.Errors, res.Errors...)
		result.Warnings = append(result.Warnings, res.Warnings...)

		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling dashboard: %w", err)
		}
		artifacts = append(artifacts, artifact{
			path: filepath.Join(cfg.OutputDir, "grafana", "data", dashboardFile),
			data: append(data, '\n'),
		})
	}

	if cfg.RulesEnabled {
		for name, cr := range map[string]rules.PrometheusRule{
			recordingFile: rules.RecordingRules(),
			alertsFile:    rules.AlertRules(),
		} {
			res := validate.Rules(cr, KnownMetrics)
			result.Errors = append(result.Errors, res.Errors...)
			result.Warnings = append(result.Warnings, res.Warnings...)

			data, err := yaml.Marshal(cr)
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", name, err)
			}
			artifacts = append(artifacts, artifact{
				path: filepath.Join(cfg.OutputDir, "prometheus", name),
				data: append([]byte(generatedHeader), data...),
			})
		}
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !result.Ok() {
		return errors.New("validation failed:\n  " + strings.Join(result.Errors, "\n  "))
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range artifacts {
		if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(a.path), err)
		}
		if err := os.WriteFile(a.path, a.data, 0o644); err != nil { //nolint:gosec // generated artifacts are world-readable
			return fmt.Errorf("writing %s: %w", a.path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", a.path)
	}
	return nil
}
