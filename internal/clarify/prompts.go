package clarify

import "fmt"

// contextCheckPrompt asks the model for a binary decision on whether a
// question can only be answered well with role and campus known.
func contextCheckPrompt(query string) string {
	return fmt.Sprintf(`You are helping determine if a question needs specific TUM university context (role and campus).

Question: %q

Does this question require knowing the user's role (student/employee/visitor) and campus (Munich/Garching/Heilbronn/Weihenstephan) to answer properly?

Examples that need context (YES):
- "where to eat?" → YES (needs campus for dining locations)
- "how to get laptop?" → YES (needs role and campus for procedures)
- "where is building X?" → YES (needs campus for location)
- "how to register?" → YES (different for students/employees)
- "parking information?" → YES (campus-specific)

Examples that DON'T need context (NO):
- "hi" → NO (casual greeting)
- "i am sad" → NO (personal emotion)
- "i miss my mom" → NO (personal feeling)
- "thanks" → NO (casual response)
- "what is TUMonline?" → NO (general system information)
- "how are you?" → NO (casual conversation)
- "i feel tired" → NO (personal state)
- "good morning" → NO (greeting)
- "i love music" → NO (personal interest)
- "weather is nice" → NO (general comment)

Answer only: YES or NO`, query)
}
