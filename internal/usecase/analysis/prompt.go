package analysis

import (
	"fmt"
	"strings"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

const analysisSystemInstruction = `You are a client relationship analyst specializing in detecting subtle emotional and psychological signals that indicate relationship health in agency-client relationships.
Your job is to analyze meeting transcripts and identify warning signs that someone focused purely on tactics and metrics would miss.
You help agency account managers understand what their clients are REALLY thinking and feeling.

You will be provided with three transcripts (Oldest, Middle, Recent) and context about the client.
Analyze the trajectory across these three points in time.
Be direct, honest, and psychological in your assessment. Don't sugarcoat.

Respond with a single JSON object matching the agreed result shape. Do not include any prose outside the JSON.`

const churnRiskCalibration = `CHURN RISK CALIBRATION:
- Low: Client is engaged, shares wins, talks about future, responds promptly. Minor issues are normal.
- Medium: Some warning signs but still engaged overall. May need attention but not urgent.
- High: Multiple strong warning signs, clear disengagement, mentions competitors/budget cuts.
- Immediate: Client has explicitly mentioned leaving, stopped responding, or terminated services.

Note: Occasional rushed meetings or busy periods are NORMAL and not automatically high risk.
Focus on sustained patterns across all three transcripts, not isolated incidents.`

// buildContextSection renders the client background block shared by the
// analysis and follow-up prompts
func buildContextSection(data entities.TranscriptData) string {
	var b strings.Builder
	b.WriteString("CONTEXT & BACKGROUND:\n")
	if data.ClientProfile != nil {
		fmt.Fprintf(&b, "Client Name: %s\n", data.ClientProfile.Name)
		fmt.Fprintf(&b, "Average Spend: %s\n", data.ClientProfile.MonthlySpend)
		fmt.Fprintf(&b, "Relationship Duration: %s\n", data.ClientProfile.Duration)
		fmt.Fprintf(&b, "Client Profile Notes: %s\n", data.ClientProfile.Notes)
	}
	context := data.Context
	if context == "" {
		context = "None provided."
	}
	fmt.Fprintf(&b, "Additional User Notes: %s\n", context)
	return b.String()
}

func buildAnalysisPrompt(data entities.TranscriptData) string {
	var b strings.Builder

	b.WriteString("Here is the data for analysis:\n\n")
	b.WriteString(buildContextSection(data))

	if hc := data.HistoricalContext; hc != nil {
		b.WriteString("\nRELATIONSHIP HISTORY (compressed from earlier analyses):\n")
		fmt.Fprintf(&b, "Previous meetings analyzed: %d\n", hc.TotalPreviousMeetings)
		fmt.Fprintf(&b, "Trajectory trend: %s\n", hc.TrajectoryTrend)
		fmt.Fprintf(&b, "Summary: %s\n", hc.CumulativeSummary)
		if len(hc.KeyHistoricalMoments) > 0 {
			b.WriteString("Key moments to remember:\n")
			for _, m := range hc.KeyHistoricalMoments {
				fmt.Fprintf(&b, "- %s\n", m)
			}
		}
	}

	fmt.Fprintf(&b, "\nTRANSCRIPT 1 (OLDEST - 3 meetings ago):\n%s\n", data.Oldest)
	fmt.Fprintf(&b, "\nTRANSCRIPT 2 (MIDDLE - 2 meetings ago):\n%s\n", data.Middle)
	fmt.Fprintf(&b, "\nTRANSCRIPT 3 (RECENT - Most recent meeting):\n%s\n", data.Recent)

	for i, extra := range data.AdditionalTranscripts {
		fmt.Fprintf(&b, "\nADDITIONAL TRANSCRIPT %d (extra context, not part of the main window):\n%s\n", i+1, extra)
	}

	if fb := data.Feedback; fb != nil {
		b.WriteString("\nPOD LEADER FEEDBACK ON THE PREVIOUS ANALYSIS (correct for this):\n")
		if fb.Inaccuracies != "" {
			fmt.Fprintf(&b, "Inaccuracies in the previous run: %s\n", fb.Inaccuracies)
		}
		if fb.AdditionalContext != "" {
			fmt.Fprintf(&b, "Additional context: %s\n", fb.AdditionalContext)
		}
		if len(fb.FocusAreas) > 0 {
			fmt.Fprintf(&b, "Focus especially on: %s\n", strings.Join(fb.FocusAreas, ", "))
		}
	}

	if data.PersonalitySummary != "" {
		b.WriteString("\nPOD LEADER PERSONALITY PROFILE:\n")
		b.WriteString(data.PersonalitySummary)
		b.WriteString("\nInclude a blind_spots_for_your_personality section tailored to this pod leader: what their personality makes them likely to miss in this relationship, and what to watch for.\n")
	}

	b.WriteString("\nAnalyze the trajectory across these three transcripts and provide a BALANCED, objective assessment.\n")
	b.WriteString("\nIMPORTANT - You must identify BOTH:\n")
	b.WriteString("1. Positive signals (engagement, enthusiasm, trust)\n")
	b.WriteString("2. Concerning patterns (warning signs, disengagement, anxiety)\n\n")
	b.WriteString(churnRiskCalibration)
	b.WriteString("\n\nAlso extract meeting action items from the most recent transcript, characterize each participant's communication style and how it evolved, and flag any sarcastic or passive-aggressive remarks with their underlying meaning.\n")
	b.WriteString("\nKeep insights concise and actionable. Limit each array to 3-5 most significant items.\n")

	return b.String()
}

func buildFollowUpPrompt(data entities.TranscriptData, result entities.AnalysisResult, history []ChatMessage, question string) string {
	var b strings.Builder

	b.WriteString("You are a client relationship analyst. You have analyzed a set of meeting transcripts and provided a report.\nNow the user is asking a follow-up question.\n\n")
	b.WriteString("HERE IS THE DATA YOU ANALYZED:\n")
	b.WriteString(buildContextSection(data))
	fmt.Fprintf(&b, "\nTRANSCRIPT 1 (OLDEST): %s\n", data.Oldest)
	fmt.Fprintf(&b, "TRANSCRIPT 2 (MIDDLE): %s\n", data.Middle)
	fmt.Fprintf(&b, "TRANSCRIPT 3 (RECENT): %s\n", data.Recent)

	b.WriteString("\nHERE IS YOUR PREVIOUS ANALYSIS SUMMARY:\n")
	fmt.Fprintf(&b, "- Trajectory: %s\n", result.BottomLine.Trajectory)
	fmt.Fprintf(&b, "- Churn Risk: %s\n", result.BottomLine.ChurnRisk)
	fmt.Fprintf(&b, "- Primary Concern: %s\n", result.BottomLine.WhatsReallyGoingOn)

	if len(history) > 0 {
		b.WriteString("\nCONVERSATION HISTORY:\n")
		for _, m := range history {
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(m.Role), m.Content)
		}
	}

	fmt.Fprintf(&b, "\nUSER QUESTION: %q\n", question)
	b.WriteString("\nAnswer the user's question directly and objectively, citing specific quotes or patterns from the transcripts when relevant.\n")
	b.WriteString("Keep your answer concise (2-3 sentences) unless the question specifically requests detailed analysis.\n")

	return b.String()
}

func buildCompressionPrompt(existingSummary string, result entities.AnalysisResult, clientName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You maintain a rolling summary of the agency's relationship with the client %q.\n\n", clientName)
	if existingSummary != "" {
		fmt.Fprintf(&b, "CURRENT SUMMARY:\n%s\n\n", existingSummary)
	} else {
		b.WriteString("There is no existing summary yet; this is the first analysis.\n\n")
	}

	b.WriteString("LATEST ANALYSIS:\n")
	fmt.Fprintf(&b, "- Trajectory: %s\n", result.BottomLine.Trajectory)
	fmt.Fprintf(&b, "- Churn Risk: %s\n", result.BottomLine.ChurnRisk)
	fmt.Fprintf(&b, "- Client Confidence: %d/10\n", result.BottomLine.ClientConfidence)
	fmt.Fprintf(&b, "- What's really going on: %s\n", result.BottomLine.WhatsReallyGoingOn)
	for _, cm := range result.CriticalMoments {
		fmt.Fprintf(&b, "- Critical moment: %q (%s)\n", cm.Quote, cm.DeepMeaning)
	}

	b.WriteString("\nRewrite the summary to fold in the latest analysis. Keep it under 300 words, chronological, and focused on relationship health signals. Return plain text only, no headers or markdown.\n")

	return b.String()
}
