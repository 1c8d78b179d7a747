package security

import "strings"

// Heuristic injection patterns, checked before any oracle round trip.
// Grouped by attack type; the first matching group names the attack.
var injectionPatterns = []struct {
	attackType string
	patterns   []string
}{
	{"role_manipulation", []string{
		"act as", "pretend to be", "you are now", "roleplay as",
	}},
	{"instruction_override", []string{
		"ignore previous", "ignore all previous", "forget everything",
		"new instructions", "disregard your instructions",
	}},
	{"context_injection", []string{
		"system:", "assistant:", "\nuser:",
	}},
	{"code_injection", []string{
		"execute(", "eval(", "system(", "subprocess", "os.system",
	}},
	{"jailbreak_attempt", []string{
		"bypass", "ignore safety", "without restrictions", "developer mode", "dan mode",
	}},
	{"system_override", []string{
		"override your", "reveal your prompt", "show your instructions",
		"repeat your system prompt",
	}},
}

// detectPatterns reports the attack type matched by the heuristic
// patterns, or "" when the text looks clean.
func detectPatterns(text string) string {
	lower := strings.ToLower(text)
	for _, group := range injectionPatterns {
		for _, p := range group.patterns {
			if strings.Contains(lower, p) {
				return group.attackType
			}
		}
	}
	return ""
}
