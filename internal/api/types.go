// Package api provides the client for the Dyslexia Text Analyzer service.
// This file defines the wire types shared across endpoints.
package api

import "time"

// Label values returned by the readability classifier.
const (
	LabelEasy      = "Easy"
	LabelDifficult = "Difficult"
)

// Simplification methods accepted by the service.
const (
	MethodMT5    = "mt5"
	MethodOpenAI = "openai"
)

// Prediction is the classification result for one text.
type Prediction struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// SimplifyResult is the response of the simplify endpoint.
type SimplifyResult struct {
	Simplified string `json:"simplified"`
}

// HistoryEntry is one persisted analysis result.
// Simplified is nil when no simplification was produced; it marshals as
// JSON null, which the service expects for unsimplified entries.
type HistoryEntry struct {
	Text       string     `json:"text"`
	Score      float64    `json:"score"`
	Label      string     `json:"label"`
	Simplified *string    `json:"simplified"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
	User       string     `json:"user,omitempty"`
}

// Statistics is the server-computed aggregate over a user's history.
// Read-only on the client.
type Statistics struct {
	TotalTexts   int            `json:"total_texts"`
	AverageScore float64        `json:"average_score"`
	LabelCounts  map[string]int `json:"label_counts"`
	LastAnalysis *time.Time     `json:"last_analysis,omitempty"`
}

// Health is the service health report.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// tokenResponse is the body of a successful /auth/token call.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
