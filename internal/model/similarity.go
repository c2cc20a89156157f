package model

// SimilarityResult is the structured output of one two-document
// comparison. Similarities and differences keep the model's narrative
// order. The result is not guaranteed symmetric under swapping the
// two documents.
type SimilarityResult struct {
	SimilarityScore int      `json:"similarityScore"`
	Explanation     string   `json:"explanation"`
	Similarities    []string `json:"similarities"`
	Differences     []string `json:"differences"`
}
