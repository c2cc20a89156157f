package ai

const analysisInstruction = `Analyze this document comprehensively.
1. Extract all text (OCR).
2. Provide Short, Medium, and Long summaries.
3. Classify the document type.
4. Detect any signs of digital tampering (mismatched fonts, weird artifacts, logical inconsistencies in numbers/dates).
5. Extract key entities (Names, Prices, Dates, etc.).
Return strict JSON.`

const compareInstruction = `Compare these two documents. Analyze their visual layout, text content, and semantic meaning. Provide a similarity score and list key differences and similarities.`

// The hidden seed exchange of every chat session: the document plus a
// grounding instruction, answered by a canned acknowledgment. Neither
// turn is part of the visible transcript.
const (
	chatSeedInstruction = `I have uploaded this document. I will ask you questions about it. Answer based ONLY on the provided document.`
	chatSeedAck         = `Understood. I am ready to answer questions about this document.`
)
