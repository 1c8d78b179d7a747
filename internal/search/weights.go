package search

// Boost weights applied on top of the base token-intersection score.
// Relative order matters more than absolute values: role context and
// critical keywords outrank category hints.
const (
	boostCriticalKeyword = 3.0 // per critical query keyword found as substring
	boostExactPhrase     = 3.0
	boostQuestionMatch   = 2.0
	boostCategoryMatch   = 1.5
	boostLocationIntent  = 2.0
	boostRoomPattern     = 3.0
	boostCampusMention   = 2.0
	boostStudentRole     = 2.0
	boostEmployeeRole    = 3.0
	boostDualRole        = 3.0 // PhD students are both students and employees
	boostMultiRole       = 4.0 // explicit multi-role phrasing ("student and ...")
	boostTechnical       = 1.0

	// Session context boosts
	boostContextRole      = 3.0
	boostContextCampus    = 2.0
	boostContextRoleExtra = 2.0 // common role variation bonus
)
