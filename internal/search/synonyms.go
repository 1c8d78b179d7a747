package search

// synonyms maps query tokens to related terms added before scoring.
// The table is curated for the TUM campus domain: dining, IT services,
// academics, roles, administration, transport and campus names.
var synonyms = map[string][]string{
	// Campus and location
	"library":       {"lib", "liv", "books", "study", "reading", "research", "digital resources", "bibliothek"},
	"liv":           {"library", "lib", "books", "study", "reading", "research"},
	"location":      {"where", "building", "address", "find", "get to", "go to", "room", "directions", "navigate"},
	"heilbronn":     {"bildungscampus", "chn", "campuscard", "mensa", "dining"},
	"munich":        {"münchen", "main campus", "city campus", "downtown", "zentrum", "munich campus"},
	"garching":      {"garching campus", "research campus", "forschungszentrum", "garching-forschungszentrum"},
	"weihenstephan": {"weihenstephan campus", "freising", "freising-weihenstephan", "life sciences"},
	"singapore":     {"asia", "international", "tum asia", "singapore campus"},
	"building":      {"edifice", "structure", "facility", "complex", "hall", "tower", "block"},
	"room":          {"office", "classroom", "lab", "laboratory", "space", "venue", "hall", "auditorium"},

	// Dining and food
	"lunch":        {"mensa", "cafeteria", "canteen", "dining", "eat", "food", "meal", "restaurant", "cafe"},
	"dinner":       {"mensa", "cafeteria", "canteen", "dining", "eat", "food", "meal", "restaurant", "evening meal"},
	"breakfast":    {"mensa", "cafeteria", "canteen", "dining", "eat", "food", "meal", "morning meal"},
	"meal":         {"mensa", "cafeteria", "canteen", "dining", "eat", "food", "lunch", "dinner", "breakfast"},
	"mensa":        {"cafeteria", "canteen", "dining hall", "restaurant", "eat", "food", "lunch", "meal", "dining"},
	"cafeteria":    {"mensa", "canteen", "dining hall", "restaurant", "eat", "food", "lunch", "meal"},
	"canteen":      {"mensa", "cafeteria", "dining hall", "restaurant", "eat", "food", "lunch", "meal"},
	"restaurant":   {"mensa", "cafeteria", "canteen", "dining", "food", "eat", "meal"},
	"cafe":         {"coffee", "snack", "beverage", "drink", "light meal", "cafeteria"},
	"dining":       {"food", "mensa", "cafeteria", "restaurant", "eat", "meal", "dietary"},
	"hungry":       {"mensa", "cafeteria", "canteen", "food", "dining", "eat", "lunch", "breakfast", "dinner"},
	"eat":          {"mensa", "cafeteria", "canteen", "food", "dining", "hungry", "meal", "lunch"},
	"food":         {"mensa", "cafeteria", "canteen", "dining", "eat", "hungry", "meal", "vegetarian", "vegan", "dietary", "allergy"},
	"snack":        {"food", "eat", "vending", "quick", "meal", "light food", "bite"},
	"vegetarian":   {"vegan", "dietary", "food", "restrictions", "mensa", "dining"},
	"vegan":        {"vegetarian", "dietary", "food", "restrictions", "mensa", "dining"},
	"dietary":      {"food", "restriction", "allergy", "vegetarian", "vegan", "halal", "mensa", "dining"},
	"restrictions": {"dietary", "food", "allergy", "limitation", "requirement", "vegetarian", "vegan"},
	"menu":         {"food", "dining", "mensa", "meal", "dietary", "options"},
	"allergy":      {"dietary", "restrictions", "food", "allergen", "intolerance"},

	// Technology and IT
	"laptop":    {"computer", "equipment", "borrow", "device", "hardware", "notebook", "pc"},
	"computer":  {"laptop", "desktop", "pc", "workstation", "device", "hardware", "machine"},
	"print":     {"printing", "printer", "copy", "scan", "document", "paper", "multifunction"},
	"printing":  {"print", "printer", "copy", "scanner", "document", "paper", "multifunction"},
	"software":  {"application", "program", "app", "install", "license", "download", "tool"},
	"app":       {"application", "software", "program", "tool", "mobile app"},
	"install":   {"installation", "setup", "configure", "download", "deploy"},
	"support":   {"help", "assistance", "troubleshoot", "fix", "problem", "issue", "help desk"},
	"help":      {"support", "assistance", "troubleshoot", "fix", "problem", "issue", "guidance"},
	"login":     {"log-in", "sign-in", "access", "password", "credentials", "authentication", "signin"},
	"password":  {"login", "credentials", "authentication", "access", "security", "passphrase"},
	"account":   {"profile", "user", "credentials", "login", "access", "registration"},
	"card":      {"tumcard", "student card", "id", "access", "campuscard", "student id", "identification"},
	"tumcard":   {"card", "student card", "id", "access", "identification", "campus card"},
	"email":     {"mail", "e-mail", "setup", "configuration", "mytum", "exchange", "electronic mail"},
	"mail":      {"email", "e-mail", "electronic mail", "messaging", "correspondence"},
	"wifi":      {"eduroam", "internet", "network", "connection", "wireless", "wlan", "setup", "cat", "wizard"},
	"eduroam":   {"wifi", "wireless", "internet", "network", "wlan", "connection"},
	"internet":  {"wifi", "network", "connection", "online", "web", "connectivity"},
	"network":   {"wifi", "internet", "connection", "eduroam", "lan", "connectivity"},
	"tumonline": {"system", "portal", "online", "registration", "enrollment", "student portal"},
	"moodle":    {"lms", "learning", "course", "platform", "learning management system"},
	"vpn":       {"remote access", "secure connection", "network", "lrz", "virtual private network"},

	// Academics
	"course":      {"class", "lecture", "seminar", "tutorial", "subject", "module", "program"},
	"class":       {"course", "lecture", "seminar", "tutorial", "lesson", "session"},
	"lecture":     {"class", "course", "seminar", "presentation", "talk", "session"},
	"seminar":     {"course", "class", "workshop", "tutorial", "discussion"},
	"exam":        {"test", "assessment", "quiz", "evaluation", "examination", "final"},
	"test":        {"exam", "assessment", "quiz", "evaluation", "examination"},
	"grade":       {"mark", "score", "result", "transcript", "certificate", "evaluation"},
	"transcript":  {"grade", "record", "certificate", "academic record", "marks"},
	"enroll":      {"register", "matriculate", "admission", "application", "apply", "signup"},
	"register":    {"enroll", "registration", "signup", "apply", "matriculate"},
	"admission":   {"application", "apply", "acceptance", "enrollment", "entry"},
	"application": {"apply", "admission", "form", "request", "submission"},
	"thesis":      {"dissertation", "project", "research", "paper", "final project", "capstone"},
	"research":    {"thesis", "project", "lab", "academic", "study", "investigation"},
	"study":       {"library", "quiet", "space", "room", "liv", "academic", "learning", "research"},
	"graduation":  {"degree", "diploma", "certificate", "completion", "finish"},
	"degree":      {"graduation", "diploma", "certificate", "bachelor", "master", "phd"},

	// Role variations
	"student":       {"undergraduate", "graduate", "bachelor", "master", "pupil", "learner", "scholar"},
	"undergraduate": {"student", "bachelor", "undergrad", "first degree"},
	"graduate":      {"student", "master", "postgraduate", "grad student"},
	"professor":     {"prof", "faculty", "instructor", "teacher", "lecturer", "academic"},
	"lecturer":      {"professor", "instructor", "teacher", "faculty", "academic"},
	"employee":      {"staff", "worker", "personnel", "team member", "colleague", "work"},
	"staff":         {"employee", "worker", "personnel", "team member", "faculty"},
	"researcher":    {"scientist", "investigator", "post-doc", "postdoc", "doctoral", "phd"},
	"phd":           {"doctoral", "doctorate", "researcher", "graduate student", "phd student"},
	"postdoc":       {"post-doc", "postdoctoral", "researcher", "fellow"},
	"visitor":       {"guest", "external", "visiting", "tour"},
	"international": {"visa", "foreign", "exchange", "global", "overseas", "abroad"},

	// Services and processes
	"housing":       {"accommodation", "dormitory", "apartment", "room", "rent", "living", "residence"},
	"accommodation": {"housing", "dormitory", "apartment", "room", "residence", "living"},
	"sports":        {"fitness", "gym", "recreation", "exercise", "activities", "athletics"},
	"fitness":       {"sports", "gym", "exercise", "workout", "health", "recreation"},
	"health":        {"insurance", "medical", "doctor", "healthcare"},
	"counseling":    {"advice", "guidance", "support", "help", "consultation"},
	"career":        {"job", "internship", "professional", "employment", "work", "placement"},
	"job":           {"career", "employment", "work", "position", "internship"},
	"internship":    {"job", "career", "work experience", "placement", "training"},
	"visa":          {"permit", "authorization", "documentation", "immigration", "international"},
	"permit":        {"access", "permission", "authorization", "card", "pass", "employee", "visa"},
	"form":          {"forms", "application", "request", "document", "paperwork", "submission"},
	"document":      {"form", "paper", "file", "certificate", "record", "paperwork"},
	"payment":       {"fee", "cost", "price", "charge", "tuition"},
	"fee":           {"payment", "cost", "charge", "tuition", "expense"},

	// Transportation and mobility
	"transport": {"bus", "train", "parking", "bike", "mvv", "mobility", "travel", "public transport"},
	"parking":   {"car", "vehicle", "permit", "space", "parkhaus", "park", "garage", "lot", "galileo"},
	"galileo":   {"parking", "garage", "garching", "underground", "park"},
	"car":       {"parking", "vehicle", "permit", "space", "parkhaus", "park", "garage", "automobile"},
	"bike":      {"bicycle", "cycling", "bikebox", "sharing", "cycle"},
	"bus":       {"transport", "public transport", "mvv", "transit"},
	"train":     {"transport", "public transport", "mvv", "s-bahn", "u-bahn"},
	"parkhaus":  {"parking", "car", "vehicle", "permit", "garage", "park"},
	"park":      {"parking", "car", "parkhaus", "garage", "lot", "space"},
	"garage":    {"parking", "parkhaus", "car", "park", "lot"},
	"lot":       {"parking", "park", "garage", "parkhaus", "car", "space"},

	// Social and community
	"friends":  {"buddy", "program", "social", "meet", "people", "connect", "networking", "student council"},
	"buddy":    {"friends", "program", "social", "meet", "people", "connect", "networking", "mentor"},
	"social":   {"friends", "community", "networking", "events", "activities", "clubs"},
	"club":     {"organization", "group", "society", "association", "activity"},
	"event":    {"activity", "program", "workshop", "conference", "meeting"},
	"language": {"german", "english", "course", "learning", "foreign language"},
	"council":  {"student council", "representation", "organization"},
	"tired":    {"sleep", "rest", "study", "quiet", "break", "housing", "accommodation"},

	// Business and administration
	"business":    {"card", "contact", "information", "details", "professional"},
	"onboarding":  {"new employee", "setup", "orientation", "getting started", "induction"},
	"orientation": {"onboarding", "introduction", "getting started", "welcome"},
	"office":      {"workplace", "desk", "room", "workspace", "building"},
	"meeting":     {"appointment", "conference", "discussion", "session"},
	"conference":  {"meeting", "seminar", "workshop", "event"},

	// Administrative terms (employee specific)
	"forms":                {"form", "application", "request", "document", "paperwork"},
	"permits":              {"access", "permission", "authorization", "card", "pass", "employee"},
	"vacation":             {"leave", "time off", "holiday", "absence", "urlaubsantrag"},
	"travel":               {"business trip", "trip", "conference", "expense", "reimbursement", "dienstreise", "forms"},
	"expense":              {"reimbursement", "cost", "payment", "travel", "business", "auszahlungsanordnung"},
	"reimbursement":        {"expense", "refund", "payment", "claim", "travel", "auszahlungsanordnung"},
	"trip":                 {"travel", "business", "conference", "dienstreise", "expense"},
	"dienstreise":          {"travel", "business", "trip", "application", "dienstreiseantrag"},
	"dienstreiseantrag":    {"travel", "business", "application", "trip", "authorization"},
	"auszahlungsanordnung": {"expense", "reimbursement", "payment", "form", "claim"},
	"ethics":               {"committee", "approval", "research", "proposal", "ethik", "ethik-pool", "portal"},
	"approval":             {"permission", "authorization", "ethics", "committee", "forms", "ethik-pool"},
	"committee":            {"ethics", "ethik", "approval", "research", "proposal", "ethikkommission"},
	"ethik":                {"ethics", "committee", "approval", "portal", "pool"},
	"portal":               {"ethik-pool", "mytum", "online", "system", "access"},

	// Computing and advanced IT
	"computing":   {"hpc", "high performance", "cluster", "supercomputer", "resources", "lrz"},
	"hpc":         {"high performance computing", "cluster", "supercomputer", "computing", "resources"},
	"performance": {"computing", "hpc", "high", "cluster", "resources"},
	"cluster":     {"computing", "hpc", "supercomputer", "performance", "resources"},
	"resources":   {"computing", "hpc", "it", "cluster", "access"},

	// Campus-specific enhancements
	"bildungscampus": {"heilbronn", "campuscard", "mensa", "dining", "parking"},

	// WiFi setup
	"setup":         {"eduroam", "wifi", "configuration", "install", "wizard", "cat"},
	"configuration": {"setup", "eduroam", "wifi", "wizard", "profile"},
	"wizard":        {"setup", "eduroam", "cat", "configuration", "tool"},
	"cat":           {"eduroam", "wizard", "configuration", "tool", "setup"},
	"lrz":           {"vpn", "network", "computing", "leibniz", "centre"},

	// Emergency and practical
	"emergency": {"help", "urgent", "problem", "issue", "security"},
	"banking":   {"money", "account", "financial", "atm"},
	"shopping":  {"store", "service", "grocery", "restaurant"},
}

// criticalKeywords get an extra substring-match boost because token
// intersection alone under-ranks them (short names like "liv" and
// German compound terms rarely tokenize cleanly).
var criticalKeywords = map[string]bool{
	"liv": true, "library": true, "mensa": true, "cafeteria": true,
	"wifi": true, "eduroam": true, "parking": true, "parkhaus": true,
	"park": true, "garage": true, "vacation": true, "ethics": true,
	"permits": true, "reimbursement": true, "travel": true, "expense": true,
	"forms": true, "galileo": true, "hpc": true, "computing": true,
	"dietary": true, "restrictions": true, "approval": true, "committee": true,
	"portal": true, "dienstreise": true, "dienstreiseantrag": true,
	"auszahlungsanordnung": true, "heilbronn": true, "bildungscampus": true,
	"campuscard": true, "setup": true, "configuration": true, "wizard": true,
	"cat": true, "vegetarian": true, "vegan": true, "allergy": true,
	"ethik": true, "ethikkommission": true, "cluster": true, "resources": true,
	"lrz": true,
}

// expand returns the query tokens plus all synonym terms for tokens
// present in the table.
func expand(tokens []string) map[string]bool {
	expanded := make(map[string]bool, len(tokens)*4)
	for _, tok := range tokens {
		expanded[tok] = true
	}
	for _, tok := range tokens {
		for _, syn := range synonyms[tok] {
			expanded[syn] = true
		}
	}
	return expanded
}
