package inference

import (
	"strings"

	"github.com/hetulpatel/MantleCoop/internal/eligibility"
)

const systemPrompt = "You are an AI assistant that helps a lending cooperative determine loan eligibility based on a member's account history. Respond only with JSON."

// Prompt is the instruction pair sent to a backend.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt embeds the account history verbatim in the fixed eligibility instruction.
func BuildPrompt(req eligibility.Request) Prompt {
	user := strings.Join([]string{
		"Given the following account history, determine if the member is eligible for a loan.",
		"",
		"Account History: " + req.AccountHistory,
		"",
		"Based on the account history, set the isEligible field to true or false. Provide a reason for the decision in the reason field.",
		"Consider factors such as payment history, average balance, and any other relevant information.",
		"Return EXACTLY this JSON format and nothing else:\n{\n  \"isEligible\": true|false,\n  \"reason\": \"short explanation\"\n}",
	}, "\n")
	return Prompt{System: systemPrompt, User: user}
}
