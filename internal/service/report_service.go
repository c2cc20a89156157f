package service

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/documind/documind/internal/model"
)

// ReportService renders a completed analysis as a standalone HTML page.
// Summaries come back from the model as markdown, so the report body is
// assembled as markdown first and converted in one pass.
type ReportService struct {
	md goldmark.Markdown
}

func NewReportService() *ReportService {
	return &ReportService{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)}
}

func (s *ReportService) Render(doc *model.Document, record *model.AnalysisRecord) (string, error) {
	result := record.Result
	var md strings.Builder
	fmt.Fprintf(&md, "# Analysis Report: %s\n\n", escapeMarkdown(doc.Name))
	fmt.Fprintf(&md, "| | |\n|---|---|\n")
	fmt.Fprintf(&md, "| Document type | %s |\n", result.DocumentType)
	fmt.Fprintf(&md, "| Classification confidence | %.0f%% |\n", result.ConfidenceScore*100)
	fmt.Fprintf(&md, "| Tamper risk score | %d / 100 |\n", result.FraudDetection.Score)
	fmt.Fprintf(&md, "| Analyzed at | %s |\n", time.Unix(record.Ctime, 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(&md, "| Model | %s |\n\n", record.Model)

	if result.FraudDetection.IsSuspicious {
		fmt.Fprintf(&md, "> **Flagged as suspicious.** %s\n\n", result.FraudDetection.Reasoning)
	} else if result.FraudDetection.Reasoning != "" {
		fmt.Fprintf(&md, "> %s\n\n", result.FraudDetection.Reasoning)
	}

	md.WriteString("## Summary\n\n")
	md.WriteString(result.SummaryShort + "\n\n")
	md.WriteString(result.SummaryMedium + "\n\n")
	md.WriteString("### Detailed summary\n\n")
	md.WriteString(result.SummaryLong + "\n\n")

	if len(result.Entities) > 0 {
		md.WriteString("## Extracted entities\n\n| Text | Category |\n|---|---|\n")
		for _, entity := range result.Entities {
			fmt.Fprintf(&md, "| %s | %s |\n", escapeMarkdown(entity.Text), escapeMarkdown(entity.Category))
		}
		md.WriteString("\n")
	}

	md.WriteString("## Extracted text\n\n```\n" + result.OCRText + "\n```\n")

	var body bytes.Buffer
	if err := s.md.Convert([]byte(md.String()), &body); err != nil {
		return "", err
	}
	return wrapHTMLPage(doc.Name, body.String()), nil
}

func wrapHTMLPage(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`, html.EscapeString(title), body)
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer("|", "\\|", "\n", " ")
	return replacer.Replace(s)
}
