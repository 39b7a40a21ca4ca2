package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/orchestrator"
	"oilfield-finance-lab/internal/reporting"
	"oilfield-finance-lab/internal/verification"
)

// Manifest is the reproducibility metadata of one run.
type Manifest struct {
	RunID            string    `json:"run_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	GeneratorVersion string    `json:"generator_version"`
	CommitHash       string    `json:"commit_hash"`
	Seed             uint64    `json:"seed"`
	HorizonStart     string    `json:"horizon_start"`
	HorizonEnd       string    `json:"horizon_end"`
	Source           string    `json:"source"`
	DataVersion      string    `json:"data_version"`
	FieldCount       int       `json:"field_count"`
	FinancialRecords int       `json:"financial_records"`
	Aggregates       int       `json:"aggregates"`
	DegenerateMonths int       `json:"degenerate_months"`
	ValidationPassed bool      `json:"validation_passed"`
	Warnings         int       `json:"warnings"`
	Reproducible     *bool     `json:"reproducible,omitempty"`
	ReplayCommand    string    `json:"replay_command"`
}

func (p *Pipeline) buildManifest(
	info reporting.RunInfo,
	generatedAt time.Time,
	run *orchestrator.RunResult,
	check *verification.Report,
) Manifest {
	m := Manifest{
		RunID:            info.RunID,
		GeneratedAt:      generatedAt,
		GeneratorVersion: GeneratorVersion,
		CommitHash:       getGitCommitHash(),
		Seed:             info.Seed,
		HorizonStart:     domain.FormatDate(p.horizon.Start),
		HorizonEnd:       domain.FormatDate(p.horizon.End),
		Source:           p.source,
		DataVersion:      info.DataVersion,
		FieldCount:       info.FieldCount,
		FinancialRecords: len(run.Financials),
		Aggregates:       len(run.Aggregates),
		DegenerateMonths: len(run.Degenerate),
		ValidationPassed: run.Validation.Passed(),
		Warnings:         len(run.Validation.Warnings),
		ReplayCommand:    p.buildReplayCommand(),
	}
	if check != nil {
		match := check.Match()
		m.Reproducible = &match
	}
	return m
}

// RenderManifest encodes m as indented JSON.
func RenderManifest(m Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// buildReplayCommand returns the command to reproduce this run.
func (p *Pipeline) buildReplayCommand() string {
	start := p.horizon.Start.Format(domain.MonthLayout)
	end := p.horizon.End.Format(domain.MonthLayout)
	cmd := fmt.Sprintf("go run ./cmd/pipeline -source %s -seed %d -start %s -end %s", p.source, p.seed, start, end)
	if p.source == "csv" && p.inputDir != "" {
		cmd += fmt.Sprintf(" -input-dir %q", p.inputDir)
	}
	return cmd
}

// getGitCommitHash returns current git commit hash or "unknown" if not in git repo.
func getGitCommitHash() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "unknown"
	}
	return strings.TrimSpace(out.String())
}
