package clarify

import "strings"

// Keyword lists for spotting small talk without an oracle round trip.
var (
	personalKeywords = []string{
		"sad", "happy", "tired", "stressed", "lonely", "excited", "angry", "depressed",
		"feel", "feeling", "emotions", "mood", "upset", "worried", "anxious", "nervous",
		"miss", "love", "hate", "like", "dislike", "enjoy", "bored", "fun", "funny",
		"family", "mom", "dad", "mother", "father", "parents", "sister", "brother",
		"friend", "friends", "relationship", "dating", "boyfriend", "girlfriend",
		"weather", "hot", "cold", "rain", "sunny", "snow", "temperature",
		"music", "movie", "tv", "game", "sports", "hobby", "weekend", "vacation",
		"birthday", "party", "celebration", "holiday",
	}

	casualPatterns = []string{
		"hi", "hello", "hey", "good morning", "good afternoon", "good evening", "good night",
		"thanks", "thank you", "bye", "goodbye", "see you", "take care",
		"yes", "no", "okay", "ok", "sure", "fine", "good", "great", "awesome",
		"how are you", "whats up", "what's up", "how you doing", "hows it going",
	}

	emotionalPatterns = []string{
		"i am ", "i feel ", "i think ", "i believe ", "i want ", "i need ",
		"i miss ", "i love ", "i hate ", "i like ", "my ", "mine ",
	}

	// Campus-service terms that rescue a short "i need ..." statement
	// from the personal filter. "i need wifi" is a service request,
	// "i need a hug" is not.
	serviceKeywords = []string{
		"eat", "food", "lunch", "dinner", "mensa", "library", "parking", "wifi",
		"help", "study", "print", "course", "exam", "grade", "register", "login",
		"card", "room", "building", "location", "directions",
	}
)

// isPersonalConversation reports whether the query is small talk or an
// emotional statement that should never trigger a clarification.
func isPersonalConversation(query string) bool {
	lower := strings.ToLower(query)

	for _, kw := range personalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, p := range casualPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}

	// Short first-person statements lean personal unless they name a
	// campus service.
	if len(strings.Fields(query)) <= 5 {
		for _, p := range emotionalPatterns {
			if strings.Contains(lower, p) {
				for _, kw := range serviceKeywords {
					if strings.Contains(lower, kw) {
						return false
					}
				}
				return true
			}
		}
	}

	return false
}
