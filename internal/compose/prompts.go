package compose

import (
	"fmt"
	"strings"

	"github.com/tumchatbot/tum-chatbot-go/internal/search"
	"github.com/tumchatbot/tum-chatbot-go/internal/session"
)

// buildPrompt assembles the generation prompt: user context, either
// the resume preamble or recent conversation, the retrieved knowledge
// entries, and the question itself.
func buildPrompt(in Input) string {
	var b strings.Builder

	b.WriteString("You are an intelligent TUM (Technical University of Munich) assistant with comprehensive knowledge across all campuses.\n\n")

	if info := userInfo(in.UserContext); info != "" {
		b.WriteString(info)
		b.WriteString("\n\n")
	}

	if in.Resuming {
		fmt.Fprintf(&b, `IMPORTANT: The user just provided their role/campus information. Now answer their original question using this context.
The user originally asked: %q
Now that you know they are a %s at TUM %s, provide a helpful, specific answer to their original question.
`, in.Query, in.UserContext.Role, in.UserContext.Campus)
	} else if conv := recentConversation(in.History); conv != "" {
		b.WriteString(conv)
	}
	b.WriteString("\n")

	b.WriteString(`CRITICAL INSTRUCTION - MANDATORY USE OF SPECIFIC INFORMATION:
- You MUST use specific details from the knowledge base when available
- You MUST NOT say "I don't have specific information" when building numbers, locations, or names are provided
- EXAMPLE: If knowledge base shows "Mensa (central cafeteria in Building 8)", you MUST say "You can eat at the Mensa in Building 8"
- EXAMPLE: If knowledge base shows "Café in Building 13", you MUST say "There's also a Café in Building 13"
- Users are frustrated by generic "check the website" responses when you have concrete details
- RULE: Always extract and include specific building numbers, room numbers, and location names from the knowledge base

CONVERSATION INTELLIGENCE:
- Understand the full conversation context and user intent
- For follow-up questions like "where?", "how much?", "when?", understand what the user is referring to from previous context
- Maintain conversation flow naturally - don't lose track of what we were discussing
- Be conversational and intelligent - use context clues to understand what the user really wants
- If user asks "where?" after discussing lunch, they obviously want to know WHERE to get lunch
- Connect related concepts intelligently (lunch = dining = food = mensa = cafeteria)

RESPONSE GUIDELINES:
- FIRST: Look for specific details in the knowledge base and use them
- Provide exact locations, building names, room numbers when available
- Give actionable, practical information with concrete details
- Be helpful and conversational (2-3 sentences typically)
- Only suggest "check the website" if you truly don't have specific information
- Don't reference "Entry X" numbers - speak naturally

KNOWLEDGE BASE WITH SPECIFIC INFORMATION:
`)
	b.WriteString(knowledgeBlock(in.Documents))

	fmt.Fprintf(&b, "\nCurrent question: %s\n\n", in.Query)
	b.WriteString("REMEMBER: If the knowledge base contains specific details (building numbers, exact locations, names), include them in your response! Users need actionable information, not generic advice.")

	return b.String()
}

// userInfo phrases the known user context for the prompt.
func userInfo(uc session.Context) string {
	switch {
	case uc.Role != "" && uc.Campus != "":
		return fmt.Sprintf("You are helping a %s at TUM %s campus.", uc.Role, uc.Campus)
	case uc.Role != "":
		return fmt.Sprintf("You are helping a %s at TUM.", uc.Role)
	case uc.Campus != "":
		return fmt.Sprintf("You are helping someone at TUM %s campus.", uc.Campus)
	default:
		return ""
	}
}

// recentConversation renders history entries as transcript lines.
func recentConversation(history []session.Entry) string {
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Recent conversation:\n")
	for _, e := range history {
		label := "User"
		if e.Role == "assistant" {
			label = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, e.Content)
	}
	return b.String()
}

// knowledgeBlock renders the retrieved documents as numbered entries.
func knowledgeBlock(docs []search.Result) string {
	if len(docs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, res := range docs {
		fmt.Fprintf(&b, "\n--- Knowledge Entry %d ---\n", i+1)
		fmt.Fprintf(&b, "Category: %s\n", res.Document.Category)
		fmt.Fprintf(&b, "Role: %s\n", res.Document.Role)
		fmt.Fprintf(&b, "Q: %s\n", res.Document.Question)
		fmt.Fprintf(&b, "A: %s\n", res.Document.Answer)
	}
	return b.String()
}
