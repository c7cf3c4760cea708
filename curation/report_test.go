package curation

import (
	"strings"
	"testing"
)

func TestStatusReport(t *testing.T) {
	state := NewSessionState("sess-42", "")
	state.Observe(newRecord("c1", "read"))
	state.Observe(newRecord("c2", "read"))
	state.MarkPruned(StrategyDeduplication, "c1")
	state.AddPruneTokens(120)
	state.SetTurn(5)
	state.SetSummary("c1", "the gist")

	report := StatusReport(state, nil)

	for _, want := range []string{
		"sess-42",
		"Tracked tool calls: 2",
		"Pruned: 1",
		"Tokens saved: 120",
		"Current turn: 5",
		StrategyDeduplication + ": 1",
		"Extracted summaries: 1",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "Collector") {
		t.Error("report should omit the collector section when stats are nil")
	}
}

func TestStatusReportWithCollectorStats(t *testing.T) {
	state := NewSessionState("sess-42", "")
	collected := &CollectorStats{PruneEvents: 3, ExtractEvents: 1, TotalTokensSaved: 900}

	report := StatusReport(state, collected)

	for _, want := range []string{"Prune events: 3", "Extract events: 1", "Tokens saved: 900"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestStatusHTML(t *testing.T) {
	html, err := StatusHTML("## Heading\n\n- item one\n")
	if err != nil {
		t.Fatalf("StatusHTML() error: %v", err)
	}
	if !strings.Contains(html, "<h2") {
		t.Errorf("expected a rendered heading, got:\n%s", html)
	}
	if !strings.Contains(html, "<li>") {
		t.Errorf("expected a rendered list item, got:\n%s", html)
	}
}

func TestStatusHTMLSanitizes(t *testing.T) {
	html, err := StatusHTML("hello <script>alert(1)</script> world")
	if err != nil {
		t.Fatalf("StatusHTML() error: %v", err)
	}
	if strings.Contains(html, "<script") {
		t.Errorf("script tag survived sanitization:\n%s", html)
	}
	if !strings.Contains(html, "hello") {
		t.Errorf("benign content was lost:\n%s", html)
	}
}
