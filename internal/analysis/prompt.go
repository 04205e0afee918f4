package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/focusflow/internal/session"
)

const analysisSystemPrompt = `You review study session notes for a user who tracks their productivity and well-being. You are encouraging and supportive in tone.`

// sessionInput is the only part of a Session sent to the model.
type sessionInput struct {
	Duration int    `json:"duration"`
	Notes    string `json:"notes"`
}

func buildAnalysisUserMessage(sessions []session.Session) (string, error) {
	in := make([]sessionInput, len(sessions))
	for i, s := range sessions {
		in[i] = sessionInput{Duration: s.Duration, Notes: s.Notes}
	}
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode sessions: %w", err)
	}

	var b strings.Builder
	b.WriteString("Analyze the following study session notes. Based on the notes, provide a detailed analysis.\n\n")
	b.WriteString("Session Data (duration in minutes):\n")
	b.Write(data)
	b.WriteString(`

Instructions:
1. Infer the user's state of mind and productivity during these sessions.
2. Rate concentration, study capacity, stress and happiness, each from 1 to 100. For stress, 1 is low and 100 is high.
3. Write a brief summary of the study period.
4. Give 2-3 actionable suggestions for their next sessions.`)

	return b.String(), nil
}
