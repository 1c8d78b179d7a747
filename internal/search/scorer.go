// Package search ranks knowledge base documents against a user query.
// Ranking is lexical: token intersection after synonym expansion, plus
// a set of additive boosts for phrases, roles, campuses and location
// intent. Results are deterministic for a given query and corpus order.
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tumchatbot/tum-chatbot-go/internal/corpus"
)

// tokenPattern matches word tokens. Unicode classes keep German terms
// like "münchen" as single tokens.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// roomPattern matches room and building references such as "L.1.12",
// "room 42" or "building B".
var roomPattern = regexp.MustCompile(`[A-Za-z]\.\d+\.\d+|room \d+|building [A-Za-z0-9]`)

// UserContext carries the session's known role and campus into ranking.
// Empty fields contribute no boost.
type UserContext struct {
	Role   string
	Campus string
}

// Result pairs a document with its relevance score.
type Result struct {
	Document corpus.Document
	Score    float64
}

// Ranker scores documents against queries.
type Ranker struct {
	docs []corpus.Document
}

// NewRanker creates a Ranker over the given corpus.
func NewRanker(c *corpus.Corpus) *Ranker {
	return &Ranker{docs: c.Documents()}
}

// Tokenize lowercases the query and splits it into unique word tokens,
// preserving first-occurrence order.
func Tokenize(query string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(query), -1)
	seen := make(map[string]bool, len(raw))
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

var (
	locationIntentWords  = []string{"where", "location", "get to", "find", "navigate"}
	locationContentWords = []string{"building", "address", "campus", "location", "room", "navigate"}
	roomContentWords     = []string{"building", "room", "floor", "location"}
	studentKeywords      = []string{"student", "studying", "international", "visa", "foreign", "bachelor", "master", "semester"}
	employeeKeywords     = []string{
		"employee", "staff", "work", "professor", "lecturer", "phd", "postdoc",
		"research assistant", "researcher", "faculty", "teaching", "working",
	}
	multiRolePhrases  = []string{"student and", "also working", "working as", "assistant"}
	technicalIntents  = []string{"setup", "configure", "install", "technical", "how to"}
	technicalContents = []string{"configuration", "setup", "technical", "install"}
)

// containsAny reports whether text contains any of the substrings.
func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// mentionedCampus detects an explicit campus reference in the query.
// Garching content lives under the Munich campus umbrella.
func mentionedCampus(queryLower string) string {
	switch {
	case containsAny(queryLower, []string{"heilbronn", "bildungscampus", "chn"}):
		return "heilbronn"
	case containsAny(queryLower, []string{"munich", "münchen", "garching"}):
		return "munich"
	case strings.Contains(queryLower, "singapore"):
		return "singapore"
	}
	return ""
}

// Rank scores all documents against the query and returns the topK
// best matches with positive scores, ordered by descending score.
// Documents with equal scores keep their corpus order.
func (r *Ranker) Rank(query string, userCtx UserContext, topK int) []Result {
	queryLower := strings.ToLower(query)
	tokens := Tokenize(query)
	expanded := expand(tokens)
	joinedTokens := strings.Join(tokens, " ")
	campusMention := mentionedCampus(queryLower)

	results := make([]Result, 0, topK)
	for _, doc := range r.docs {
		searchable := doc.SearchableText()
		score := r.scoreDocument(doc, searchable, queryLower, tokens, expanded, joinedTokens, campusMention, userCtx)
		if score > 0 {
			results = append(results, Result{Document: doc, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

func (r *Ranker) scoreDocument(
	doc corpus.Document,
	searchable, queryLower string,
	tokens []string,
	expanded map[string]bool,
	joinedTokens, campusMention string,
	userCtx UserContext,
) float64 {
	// Base score: expanded token intersection with document tokens
	docTokens := tokenPattern.FindAllString(searchable, -1)
	docSet := make(map[string]bool, len(docTokens))
	for _, tok := range docTokens {
		docSet[tok] = true
	}
	var score float64
	for word := range expanded {
		if docSet[word] {
			score++
		}
	}

	// Critical keyword substring matches
	for _, tok := range tokens {
		if criticalKeywords[tok] && strings.Contains(searchable, tok) {
			score += boostCriticalKeyword
		}
	}

	// Exact phrase match
	if strings.Contains(searchable, queryLower) || strings.Contains(searchable, joinedTokens) {
		score += boostExactPhrase
	}

	// Question title matches (highest priority field)
	questionLower := strings.ToLower(doc.Question)
	categoryLower := strings.ToLower(doc.Category)
	roleLower := strings.ToLower(doc.Role)
	for _, tok := range tokens {
		if strings.Contains(questionLower, tok) {
			score += boostQuestionMatch
			break
		}
	}

	// Category matches
	for _, tok := range tokens {
		if strings.Contains(categoryLower, tok) {
			score += boostCategoryMatch
			break
		}
	}

	// Location-intent queries prefer documents with location content
	if containsAny(queryLower, locationIntentWords) && containsAny(searchable, locationContentWords) {
		score += boostLocationIntent
	}

	// Room number queries (like L.1.12, building references)
	if roomPattern.MatchString(queryLower) && containsAny(searchable, roomContentWords) {
		score += boostRoomPattern
	}

	// Explicit campus mention
	if campusMention != "" && strings.Contains(searchable, campusMention) {
		score += boostCampusMention
	}

	// Role detection from query phrasing
	if containsAny(queryLower, studentKeywords) && strings.Contains(roleLower, "student") {
		score += boostStudentRole
	}
	if containsAny(queryLower, employeeKeywords) &&
		(strings.Contains(roleLower, "employee") || strings.Contains(roleLower, "lecturer")) {
		score += boostEmployeeRole
	}

	// PhD students are often both students and employees
	if strings.Contains(queryLower, "phd") || strings.Contains(queryLower, "research assistant") {
		if strings.Contains(roleLower, "student") || strings.Contains(roleLower, "employee") {
			score += boostDualRole
		}
	}

	// Multi-role phrasing ("PhD student and research assistant")
	if containsAny(queryLower, multiRolePhrases) && strings.Contains(roleLower, "employee") {
		score += boostMultiRole
	}

	// Technical query boost
	if containsAny(queryLower, technicalIntents) && containsAny(searchable, technicalContents) {
		score += boostTechnical
	}

	// Session context boosts
	userRole := strings.ToLower(userCtx.Role)
	userCampus := strings.ToLower(userCtx.Campus)
	if userRole != "" && strings.Contains(roleLower, userRole) {
		score += boostContextRole
	}
	if userCampus != "" && strings.Contains(searchable, userCampus) {
		score += boostContextCampus
	}
	switch {
	case userRole == "student" && strings.Contains(roleLower, "student"):
		score += boostContextRoleExtra
	case (userRole == "employee" || userRole == "staff" || userRole == "professor" || userRole == "lecturer") &&
		(strings.Contains(roleLower, "employee") || strings.Contains(roleLower, "staff")):
		score += boostContextRoleExtra
	case userRole == "visitor" && strings.Contains(roleLower, "visitor"):
		score += boostContextRoleExtra
	}

	return score
}
