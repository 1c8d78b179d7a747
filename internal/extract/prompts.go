package extract

import "fmt"

// extractionPrompt asks the model to pull role and campus out of free
// text. The enumerated forms must match the validation lists exactly.
func extractionPrompt(query string) string {
	return fmt.Sprintf(`Extract the user's role and campus from this text: %q

ROLES (extract exactly as shown):
- student (includes: studying, enrolled, degree, bachelor, master, international student, etc.)
- employee (includes: staff, work, working, job, etc.)
- professor (includes: prof, faculty)
- lecturer (includes: instructor, teacher)
- visitor (includes: visiting, guest, tour)
- phd (includes: doctoral, doctorate, ph.d, phd student)
- postdoc (includes: post-doc, postdoctoral)

CAMPUSES (extract exactly as shown):
- Munich (includes: münchen, main campus)
- Garching
- Heilbronn (includes: bildungscampus, chn)
- Weihenstephan

Examples:
- "employee munich" → role: employee, campus: Munich
- "I am a student at garching" → role: student, campus: Garching
- "visitor heilbronn" → role: visitor, campus: Heilbronn
- "professor" → role: professor, campus: null
- "working at weihenstephan" → role: employee, campus: Weihenstephan

Return ONLY valid JSON format:
{"role": "extracted_role_or_null", "campus": "extracted_campus_or_null"}

If no role or campus found, use null for that field.`, query)
}
