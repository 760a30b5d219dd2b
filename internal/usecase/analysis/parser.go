package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// Parser handles parsing and validation of model responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseResult parses the JSON response from the model into an AnalysisResult
func (p *Parser) ParseResult(jsonString string) (*entities.AnalysisResult, error) {
	// The model may wrap the document in markdown code fences
	jsonString = extractJSON(jsonString)

	var result entities.AnalysisResult
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateResult(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

func validateResult(result *entities.AnalysisResult) error {
	switch result.BottomLine.Trajectory {
	case entities.TrajectoryStrengthening, entities.TrajectoryStable, entities.TrajectoryDeclining, entities.TrajectoryCritical:
	default:
		return fmt.Errorf("missing or unknown trajectory %q in response", result.BottomLine.Trajectory)
	}

	switch result.BottomLine.ChurnRisk {
	case entities.ChurnRiskLow, entities.ChurnRiskMedium, entities.ChurnRiskHigh, entities.ChurnRiskImmediate:
	default:
		return fmt.Errorf("missing or unknown churn risk %q in response", result.BottomLine.ChurnRisk)
	}

	if result.BottomLine.ClientConfidence < 1 || result.BottomLine.ClientConfidence > 10 {
		return fmt.Errorf("client confidence %d outside 1-10", result.BottomLine.ClientConfidence)
	}

	return nil
}

func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
