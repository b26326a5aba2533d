package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lexai-backend/models"
)

// ErrInvalidAnalysis is returned when the model response is not the
// expected JSON object.
var ErrInvalidAnalysis = errors.New("model returned invalid analysis JSON")

// Model output is coerced field by field rather than strictly decoded.
// A missing or mistyped field falls back to a safe default instead of
// failing the whole analysis.

func stringField(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intField(m map[string]interface{}, key string, fallback int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return fallback
}

func boolField(m map[string]interface{}, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func stringSlice(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func int64Slice(m map[string]interface{}, key string) []int64 {
	raw, ok := m[key].([]interface{})
	if !ok {
		return []int64{}
	}
	out := make([]int64, 0, len(raw))
	for _, item := range raw {
		if n, ok := item.(float64); ok {
			out = append(out, int64(n))
		}
	}
	return out
}

func objectField(m map[string]interface{}, key string) map[string]interface{} {
	v, _ := m[key].(map[string]interface{})
	return v
}

func arrayField(m map[string]interface{}, key string) []interface{} {
	v, _ := m[key].([]interface{})
	return v
}

// NormalizeAnalysis parses the master-analysis model output and coerces it
// into a document and its clauses. docType and fileName come from the
// request and fill in whatever the model omitted. The raw contract text is
// stored alongside the document.
func NormalizeAnalysis(responseText, docType, fileName, rawText string) (*models.Document, []*models.Clause, error) {
	var analysis map[string]interface{}
	if err := json.Unmarshal([]byte(responseText), &analysis); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidAnalysis, err)
	}

	docFields := objectField(analysis, "document")
	if docFields == nil {
		docFields = map[string]interface{}{}
	}

	doc := &models.Document{
		FileName:           fileName,
		DocType:            models.DocType(stringField(docFields, "doc_type", docType)),
		OverallRisk:        models.RiskLevel(stringField(docFields, "overall_risk", string(models.RiskMedium))),
		RiskScore:          intField(docFields, "risk_score", 50),
		IllegalCount:       intField(docFields, "illegal_count", 0),
		SignVerdict:        models.SignVerdict(stringField(docFields, "sign_verdict", string(models.VerdictConditional))),
		SignVerdictReason:  stringField(docFields, "sign_verdict_reason", ""),
		BlockingClauses:    int64Slice(docFields, "blocking_clauses"),
		Parties:            stringSlice(docFields, "parties"),
		KeyDates:           stringSlice(docFields, "key_dates"),
		MonthlyObligations: stringSlice(docFields, "monthly_obligations"),
		SummaryEn:          stringField(docFields, "summary_en", ""),
		SummaryHi:          stringField(docFields, "summary_hi", ""),
		RawText:            rawText,
		ClauseCount:        intField(docFields, "clause_count", 0),
		HighRiskCount:      intField(docFields, "high_risk_count", 0),
	}

	var clauses []*models.Clause
	for _, item := range arrayField(analysis, "clauses") {
		fields, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		clauses = append(clauses, &models.Clause{
			ClauseNumber:   intField(fields, "clause_number", 0),
			ClauseType:     models.ClauseType(stringField(fields, "clause_type", string(models.ClauseOther))),
			OriginalText:   stringField(fields, "original_text", ""),
			RiskLevel:      models.RiskLevel(stringField(fields, "risk_level", string(models.RiskLow))),
			IsIllegal:      boolField(fields, "is_illegal"),
			IllegalLaw:     stringField(fields, "illegal_law", ""),
			RiskReason:     stringField(fields, "risk_reason", ""),
			ExplanationEn:  stringField(fields, "explanation_en", ""),
			ExplanationHi:  stringField(fields, "explanation_hi", ""),
			CounterClause:  stringField(fields, "counter_clause", ""),
			ActionAdvice:   stringField(fields, "action_advice", ""),
			BenchmarkLabel: stringField(fields, "benchmark_label", ""),
			BenchmarkNote:  stringField(fields, "benchmark_note", ""),
			IsBlocking:     boolField(fields, "is_blocking"),
			TimelineMonth:  intField(fields, "timeline_month", 0),
			TimelineEvent:  stringField(fields, "timeline_event", ""),
			StartChar:      intField(fields, "start_char", 0),
			EndChar:        intField(fields, "end_char", 0),
		})
	}

	return doc, clauses, nil
}

// decodeJSONObject parses a JSON-mode completion into a generic map. Some
// models wrap the object in markdown fences despite instructions, so those
// are stripped first.
func decodeJSONObject(responseText string) (map[string]interface{}, error) {
	cleaned := strings.TrimSpace(responseText)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnalysis, err)
	}
	return out, nil
}
