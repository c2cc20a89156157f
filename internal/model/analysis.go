package model

type DocumentType string

const (
	DocumentTypeResume   DocumentType = "Resume"
	DocumentTypeInvoice  DocumentType = "Invoice"
	DocumentTypeLegal    DocumentType = "Legal Document"
	DocumentTypeMedical  DocumentType = "Medical Report"
	DocumentTypeResearch DocumentType = "Research Paper"
	DocumentTypeReceipt  DocumentType = "Receipt"
	DocumentTypeOther    DocumentType = "Other"
)

var documentTypes = map[DocumentType]struct{}{
	DocumentTypeResume:   {},
	DocumentTypeInvoice:  {},
	DocumentTypeLegal:    {},
	DocumentTypeMedical:  {},
	DocumentTypeResearch: {},
	DocumentTypeReceipt:  {},
	DocumentTypeOther:    {},
}

func ValidDocumentType(t DocumentType) bool {
	_, ok := documentTypes[t]
	return ok
}

// Entity is one extracted fact, e.g. {text: "2024-01-05", category: "Date"}.
type Entity struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// FraudAssessment is the model's tampering-risk judgment. IsSuspicious is
// the model's own summary of Score; no local threshold links the two.
type FraudAssessment struct {
	IsSuspicious bool   `json:"isSuspicious"`
	Score        int    `json:"score"`
	Reasoning    string `json:"reasoning"`
}

// AnalysisResult is the full structured output of one analysis call.
// Field names follow the model output schema.
type AnalysisResult struct {
	OCRText         string          `json:"ocrText"`
	SummaryShort    string          `json:"summaryShort"`
	SummaryMedium   string          `json:"summaryMedium"`
	SummaryLong     string          `json:"summaryLong"`
	DocumentType    DocumentType    `json:"documentType"`
	ConfidenceScore float64         `json:"confidenceScore"`
	FraudDetection  FraudAssessment `json:"fraudDetection"`
	Entities        []Entity        `json:"entities"`
}

// AnalysisRecord is one persisted analysis run.
type AnalysisRecord struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspace_id"`
	DocumentID  string          `json:"document_id"`
	Model       string          `json:"model"`
	Result      *AnalysisResult `json:"result"`
	Ctime       int64           `json:"ctime"`
}
