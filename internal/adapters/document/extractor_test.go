package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuta-io/batuta/pkg/schema"
)

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor()
	ctx := context.Background()

	tests := []struct {
		name      string
		path      string
		wantTitle string
	}{
		{"user manual", "/docs/user_manual.pdf", "User Authentication System - Requirements Document"},
		{"requirements in name", "requirements_v2.pdf", "User Authentication System - Requirements Document"},
		{"api spec", "specs/api_spec.pdf", "REST API Specification v2.1"},
		{"generic", "notes.pdf", "Document: notes.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := e.Extract(ctx, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, doc.Title)
			assert.Equal(t, tt.path, doc.Path)
			assert.NotEmpty(t, doc.Sections)
		})
	}
}

func TestExtractor_ExtractRejectsURLsAndEmpty(t *testing.T) {
	e := NewExtractor()
	ctx := context.Background()

	_, err := e.Extract(ctx, "https://example.com/doc.pdf")
	assert.Error(t, err)

	_, err = e.Extract(ctx, "")
	assert.Error(t, err)
}

func TestExtractor_AnalyzeStructure(t *testing.T) {
	e := NewExtractor()

	doc, err := e.Extract(context.Background(), "user_manual.pdf")
	require.NoError(t, err)

	analysis, err := e.AnalyzeStructure(doc)
	require.NoError(t, err)

	assert.Equal(t, 4, analysis.SectionCount)
	assert.Contains(t, analysis.RequirementSections, "Functional Requirements")
	assert.Contains(t, analysis.RequirementSections, "Non-Functional Requirements")
	assert.Contains(t, analysis.RequirementSections, "Acceptance Criteria")
	assert.NotContains(t, analysis.RequirementSections, "Introduction")

	assert.NotEmpty(t, analysis.Requirements, "the manual's must/should statements are testable")
	assert.NotEmpty(t, analysis.Summary)
}

func TestExtractor_AnalyzeStructure_Dedupes(t *testing.T) {
	e := NewExtractor()

	analysis, err := e.AnalyzeStructure(&schema.Document{
		Content: "User must provide a valid email address. User must provide a valid email address.",
	})
	require.NoError(t, err)
	assert.Len(t, analysis.Requirements, 1)
}

func TestExtractor_AnalyzeStructure_Nil(t *testing.T) {
	e := NewExtractor()
	_, err := e.AnalyzeStructure(nil)
	assert.Error(t, err)
}

func TestDetectType(t *testing.T) {
	assert.Equal(t, TypeAPISpec, DetectType(&schema.Document{Content: "POST /api/auth/login"}))
	assert.Equal(t, TypeRequirements, DetectType(&schema.Document{Content: "This requirement specification covers login."}))
	assert.Equal(t, TypeUnknown, DetectType(&schema.Document{Content: "meeting notes"}))
}

func TestExtractor_GenerateTestCases_Requirements(t *testing.T) {
	e := NewExtractor()
	ctx := context.Background()

	doc, err := e.Extract(ctx, "user_manual.pdf")
	require.NoError(t, err)
	analysis, err := e.AnalyzeStructure(doc)
	require.NoError(t, err)

	cases, err := e.GenerateTestCases(doc, analysis)
	require.NoError(t, err)

	// Positive plus negative per statement, then coverage and end-to-end.
	assert.Len(t, cases, 2*len(analysis.Requirements)+2)

	counts := map[string]int{}
	for _, c := range cases {
		counts[c.TestType]++
	}
	assert.Equal(t, len(analysis.Requirements), counts["Functional"])
	assert.Equal(t, len(analysis.Requirements), counts["Negative"])
	assert.Equal(t, 1, counts["Requirements"])
	assert.Equal(t, 1, counts["Integration"], "four sections trigger the end-to-end case")

	assert.Equal(t, "TC-DOC-001", cases[0].ID)
}

func TestExtractor_GenerateTestCases_APISpec(t *testing.T) {
	e := NewExtractor()
	ctx := context.Background()

	doc, err := e.Extract(ctx, "api_spec.pdf")
	require.NoError(t, err)
	analysis, err := e.AnalyzeStructure(doc)
	require.NoError(t, err)

	cases, err := e.GenerateTestCases(doc, analysis)
	require.NoError(t, err)

	var hasAPICase, hasE2E bool
	for _, c := range cases {
		if c.TestType == "API" {
			hasAPICase = true
		}
		if c.TestType == "Integration" {
			hasE2E = true
		}
	}
	assert.True(t, hasAPICase)
	assert.False(t, hasE2E, "two sections stay below the end-to-end threshold")
}

func TestExtractor_GenerateTestCases_Nil(t *testing.T) {
	e := NewExtractor()

	_, err := e.GenerateTestCases(nil, &schema.DocumentAnalysis{})
	assert.Error(t, err)

	_, err = e.GenerateTestCases(&schema.Document{}, nil)
	assert.Error(t, err)
}
