// Package analyzer sends a rewritten Dockerfile to the Gemini API for
// qualitative security and optimization analysis and decodes the model's
// structured verdict. The deterministic rewrite itself lives in
// internal/dockerfile and never calls in here.
package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Issue is a single finding reported by the model.
type Issue struct {
	Severity       string `json:"severity"` // high/medium/low
	Category       string `json:"category"` // security/optimization/best_practices
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	LineNumber     int    `json:"line_number,omitempty"`
}

// Metrics are the model's optimization estimates.
type Metrics struct {
	LayerCount           int    `json:"layer_count"`
	EstimatedSize        string `json:"estimated_size"`
	CacheEfficiency      int    `json:"cache_efficiency"`
	BuildTimeScore       int    `json:"build_time_score"`
	MaintainabilityScore int    `json:"maintainability_score"`
}

// Result is the decoded analysis verdict.
type Result struct {
	Issues              []Issue `json:"issues"`
	OptimizedDockerfile string  `json:"optimized_dockerfile"`
	SecurityScore       int     `json:"security_score"`
	OptimizationScore   int     `json:"optimization_score"`
	Metrics             Metrics `json:"optimization_metrics"`
}

// flexInt decodes a JSON number or a numeric string. The prompt asks for
// scores but models occasionally quote them ("85" or "85/100").
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if i := strings.IndexByte(s, '/'); i >= 0 {
			s = s[:i]
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("non-numeric score %q: %w", s, err)
		}
		*f = flexInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// envelope mirrors the JSON the model is instructed to return.
type envelope struct {
	Issues []struct {
		Severity       string  `json:"severity"`
		Category       string  `json:"category"`
		Description    string  `json:"description"`
		Recommendation string  `json:"recommendation"`
		LineNumber     flexInt `json:"line_number"`
	} `json:"issues"`
	OptimizedDockerfile string  `json:"optimized_dockerfile"`
	SecurityScore       flexInt `json:"security_score"`
	OptimizationScore   flexInt `json:"optimization_score"`
	Metrics             struct {
		LayerCount           flexInt `json:"layer_count"`
		EstimatedSize        string  `json:"estimated_size"`
		CacheEfficiency      flexInt `json:"cache_efficiency"`
		BuildTimeScore       flexInt `json:"build_time_score"`
		MaintainabilityScore flexInt `json:"maintainability_score"`
	} `json:"optimization_metrics"`
}

func (e *envelope) toResult() *Result {
	res := &Result{
		OptimizedDockerfile: e.OptimizedDockerfile,
		SecurityScore:       int(e.SecurityScore),
		OptimizationScore:   int(e.OptimizationScore),
		Metrics: Metrics{
			LayerCount:           int(e.Metrics.LayerCount),
			EstimatedSize:        e.Metrics.EstimatedSize,
			CacheEfficiency:      int(e.Metrics.CacheEfficiency),
			BuildTimeScore:       int(e.Metrics.BuildTimeScore),
			MaintainabilityScore: int(e.Metrics.MaintainabilityScore),
		},
	}
	for _, iss := range e.Issues {
		res.Issues = append(res.Issues, Issue{
			Severity:       strings.ToLower(iss.Severity),
			Category:       iss.Category,
			Description:    iss.Description,
			Recommendation: iss.Recommendation,
			LineNumber:     int(iss.LineNumber),
		})
	}
	SortIssues(res.Issues)
	return res
}

// severityRank orders high before medium before low; anything else last.
func severityRank(severity string) int {
	switch strings.ToLower(severity) {
	case "high":
		return 1
	case "medium":
		return 2
	case "low":
		return 3
	}
	return 4
}

// SortIssues orders issues by severity then category, the order the
// report presents them in.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		ri, rj := severityRank(issues[i].Severity), severityRank(issues[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return issues[i].Category < issues[j].Category
	})
}
