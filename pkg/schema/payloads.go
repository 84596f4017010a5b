package schema

// GitChange describes one changed file in a repository diff.
type GitChange struct {
	FilePath   string `json:"file_path" mapstructure:"file_path"`
	ChangeType string `json:"change_type" mapstructure:"change_type"` // added, modified, deleted, renamed, copied
	Additions  int    `json:"additions" mapstructure:"additions"`
	Deletions  int    `json:"deletions" mapstructure:"deletions"`
}

// GitAnalysis is the result of inspecting recent repository history.
type GitAnalysis struct {
	RepositoryURL  string      `json:"repository_url" mapstructure:"repository_url"`
	Branch         string      `json:"branch" mapstructure:"branch"`
	CommitHash     string      `json:"commit_hash" mapstructure:"commit_hash"`
	Changes        []GitChange `json:"changes" mapstructure:"changes"`
	AffectedFiles  []string    `json:"affected_files" mapstructure:"affected_files"`
	CommitMessages []string    `json:"commit_messages" mapstructure:"commit_messages"`
	Summary        string      `json:"summary" mapstructure:"summary"`
}

// Ticket is an issue-tracker ticket.
type Ticket struct {
	ID                 string   `json:"id" mapstructure:"id"`
	Title              string   `json:"title" mapstructure:"title"`
	Description        string   `json:"description" mapstructure:"description"`
	Status             string   `json:"status" mapstructure:"status"`
	Priority           string   `json:"priority" mapstructure:"priority"`
	Assignee           string   `json:"assignee" mapstructure:"assignee"`
	Reporter           string   `json:"reporter" mapstructure:"reporter"`
	AcceptanceCriteria []string `json:"acceptance_criteria" mapstructure:"acceptance_criteria"`
	Labels             []string `json:"labels" mapstructure:"labels"`
	Components         []string `json:"components" mapstructure:"components"`
}

// Requirement is a single testable requirement extracted from a ticket or document.
type Requirement struct {
	ID          string `json:"id" mapstructure:"id"`
	Description string `json:"description" mapstructure:"description"`
	Type        string `json:"type" mapstructure:"type"` // functional, performance, security, ...
	Priority    string `json:"priority" mapstructure:"priority"`
	Testable    bool   `json:"testable" mapstructure:"testable"`
}

// Requirements groups everything extracted from one ticket.
type Requirements struct {
	TicketID      string        `json:"ticket_id" mapstructure:"ticket_id"`
	Functional    []Requirement `json:"functional" mapstructure:"functional"`
	NonFunctional []Requirement `json:"non_functional" mapstructure:"non_functional"`
	Integrations  []Integration `json:"integrations" mapstructure:"integrations"`
}

// Integration marks a cross-component touch point that needs integration testing.
type Integration struct {
	Components  []string `json:"components" mapstructure:"components"`
	Description string   `json:"description" mapstructure:"description"`
}

// Scenario is a generated test scenario.
type Scenario struct {
	ID             string   `json:"id" mapstructure:"id"`
	Title          string   `json:"title" mapstructure:"title"`
	Description    string   `json:"description" mapstructure:"description"`
	Steps          []string `json:"steps" mapstructure:"steps"`
	ExpectedResult string   `json:"expected_result" mapstructure:"expected_result"`
	Priority       string   `json:"priority" mapstructure:"priority"`
	TestType       string   `json:"test_type" mapstructure:"test_type"` // Functional, Negative, Integration, Boundary, ...
	RequirementID  string   `json:"requirement_id" mapstructure:"requirement_id"`
}

// DocumentSection is one logical section of an extracted document.
type DocumentSection struct {
	ID      string `json:"id" mapstructure:"id"`
	Title   string `json:"title" mapstructure:"title"`
	Content string `json:"content" mapstructure:"content"`
	Page    int    `json:"page" mapstructure:"page"`
	Type    string `json:"type" mapstructure:"type"` // content, requirements, criteria, api_spec
}

// Document is the result of extracting a PDF or similar source.
type Document struct {
	Title    string            `json:"title" mapstructure:"title"`
	Path     string            `json:"path" mapstructure:"path"`
	Pages    int               `json:"pages" mapstructure:"pages"`
	Content  string            `json:"content" mapstructure:"content"`
	Sections []DocumentSection `json:"sections" mapstructure:"sections"`
}

// DocumentAnalysis summarizes the structure of an extracted document.
type DocumentAnalysis struct {
	SectionCount        int      `json:"section_count" mapstructure:"section_count"`
	RequirementSections []string `json:"requirement_sections" mapstructure:"requirement_sections"`
	Requirements        []string `json:"requirements" mapstructure:"requirements"`
	Summary             string   `json:"summary" mapstructure:"summary"`
}

// Script is a generated automation script.
type Script struct {
	ID           string   `json:"id" mapstructure:"id"`
	Title        string   `json:"title" mapstructure:"title"`
	Type         string   `json:"type" mapstructure:"type"` // ci_cd, deployment, testing, general
	Language     string   `json:"language" mapstructure:"language"`
	Content      string   `json:"content" mapstructure:"content"`
	Usage        string   `json:"usage" mapstructure:"usage"`
	Dependencies []string `json:"dependencies" mapstructure:"dependencies"`
}

// ScriptValidation is the result of a syntax-heuristic check on a script.
type ScriptValidation struct {
	Valid       bool     `json:"valid" mapstructure:"valid"`
	Issues      []string `json:"issues" mapstructure:"issues"`
	Suggestions []string `json:"suggestions" mapstructure:"suggestions"`
}

// TestResults is the verdict of a test-suite execution (or a refinement check).
type TestResults struct {
	Status string   `json:"status" mapstructure:"status"` // passed, failed, unknown
	Issues []string `json:"issues" mapstructure:"issues"`
}

// Passed reports whether the suite is green. This is the exit predicate of
// the test refinement loop.
func (r TestResults) Passed() bool {
	return r.Status == "passed"
}
