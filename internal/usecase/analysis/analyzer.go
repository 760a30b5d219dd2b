package analysis

import (
	"context"
	"fmt"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	pkgai "github.com/clientwatch-team/clientwatch/pkg/ai"
)

// Model call temperatures. Analysis runs cold for consistent structure,
// follow-up chat slightly warmer.
const (
	analysisTemperature    = 0.4
	followUpTemperature    = 0.5
	compressionTemperature = 0.3
)

// ChatMessage is one turn in a follow-up conversation
type ChatMessage struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

// Analyzer produces relationship analyses from transcript bundles
type Analyzer interface {
	// Analyze runs the three-transcript trajectory analysis
	Analyze(ctx context.Context, data entities.TranscriptData) (*entities.AnalysisResult, error)

	// Compress folds the latest result into the rolling summary
	Compress(ctx context.Context, existingSummary string, result entities.AnalysisResult, clientName string) (string, error)

	// FollowUp answers a pod leader's question about a finished analysis
	FollowUp(ctx context.Context, data entities.TranscriptData, result entities.AnalysisResult, history []ChatMessage, question string) (string, error)

	// IsConfigured reports whether the backing model can be called
	IsConfigured() bool
}

type geminiAnalyzer struct {
	client *pkgai.GeminiClient
	parser *Parser
}

// NewGeminiAnalyzer creates an Analyzer backed by the Gemini API
func NewGeminiAnalyzer(client *pkgai.GeminiClient) Analyzer {
	return &geminiAnalyzer{
		client: client,
		parser: NewParser(),
	}
}

func (a *geminiAnalyzer) IsConfigured() bool {
	return a.client.IsConfigured()
}

func (a *geminiAnalyzer) Analyze(ctx context.Context, data entities.TranscriptData) (*entities.AnalysisResult, error) {
	raw, err := a.client.GenerateJSON(ctx, analysisSystemInstruction, buildAnalysisPrompt(data), analysisTemperature)
	if err != nil {
		return nil, fmt.Errorf("analysis generation failed: %w", err)
	}

	result, err := a.parser.ParseResult(raw)
	if err != nil {
		return nil, fmt.Errorf("analysis response rejected: %w", err)
	}

	return result, nil
}

func (a *geminiAnalyzer) Compress(ctx context.Context, existingSummary string, result entities.AnalysisResult, clientName string) (string, error) {
	return a.client.GenerateText(ctx, "", buildCompressionPrompt(existingSummary, result, clientName), compressionTemperature)
}

func (a *geminiAnalyzer) FollowUp(ctx context.Context, data entities.TranscriptData, result entities.AnalysisResult, history []ChatMessage, question string) (string, error) {
	return a.client.GenerateText(ctx, "", buildFollowUpPrompt(data, result, history, question), followUpTemperature)
}
