package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/gramlint/pkg/lint"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// sarifDefaultURI names the artifact when the result has no source.
const sarifDefaultURI = "stdin"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFResult represents a single lint.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a text location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains the artifact and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the artifact URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected bytes. Lints carry byte offsets, so
// regions use charOffset and charLength over the UTF-8 text.
type SARIFRegion struct {
	CharOffset int `json:"charOffset"`
	CharLength int `json:"charLength"`
}

// SARIFFix represents a proposed fix.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to an artifact.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement describes a text replacement.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion           `json:"deletedRegion"`
	InsertedContent *SARIFInsertedContent `json:"insertedContent,omitempty"`
}

// SARIFInsertedContent contains the replacement text.
type SARIFInsertedContent struct {
	Text string `json:"text"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *Result) (int, error) {
	output := buildSARIFOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func buildSARIFOutput(result *Result) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           "gramlint",
				InformationURI: "https://github.com/yaklabco/gramlint",
				Rules:          make([]SARIFRule, 0),
			},
		},
		Results: make([]SARIFResult, 0),
	}

	if result == nil {
		return &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
	}

	run.Tool.Driver.Version = result.EngineVersion
	uri := result.Source
	if uri == "" {
		uri = sarifDefaultURI
	}

	rulesSeen := make(map[string]bool)
	for i := range result.Lints {
		l := &result.Lints[i]

		if !rulesSeen[l.RuleID] {
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule(l))
			rulesSeen[l.RuleID] = true
		}

		region := SARIFRegion{CharOffset: l.Span.Start, CharLength: l.Span.Len()}
		sarifResult := SARIFResult{
			RuleID:  l.RuleID,
			Level:   "warning",
			Message: SARIFMessage{Text: l.Message},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: SARIFArtifactLocation{URI: uri},
					Region:           region,
				},
			}},
		}

		for _, suggestion := range l.Suggestions {
			sarifResult.Fixes = append(sarifResult.Fixes, SARIFFix{
				Description: SARIFMessage{Text: fmt.Sprintf("Replace with %q", suggestion)},
				ArtifactChanges: []SARIFArtifactChange{{
					ArtifactLocation: SARIFArtifactLocation{URI: uri},
					Replacements: []SARIFReplacement{{
						DeletedRegion:   region,
						InsertedContent: &SARIFInsertedContent{Text: suggestion},
					}},
				}},
			})
		}

		run.Results = append(run.Results, sarifResult)
	}

	return &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
}

func sarifRule(l *lint.Lint) SARIFRule {
	rule := SARIFRule{
		ID:               l.RuleID,
		Name:             l.RuleName,
		ShortDescription: SARIFMultiformatText{Text: l.RuleName},
		Properties:       map[string]any{"kind": string(l.Kind)},
	}
	if r, ok := lint.DefaultRegistry.GetByID(l.RuleID); ok {
		rule.ShortDescription.Text = r.Description()
	}
	return rule
}
