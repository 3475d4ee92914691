package generator

// Requirement is one user story plus its acceptance criteria.
type Requirement struct {
	UserStory          string
	AcceptanceCriteria []string
}

// RequirementsRequest is the decoded input for generate_requirements.
type RequirementsRequest struct {
	ProjectName        string
	ProjectDescription string
	Requirements       []Requirement
	OutputPath         string
}

// TechStack names the technology per layer. All fields are optional;
// empty layers are omitted from the document.
type TechStack struct {
	Frontend       string
	Backend        string
	Database       string
	Infrastructure string
}

// Component is a named system component with a short responsibility.
type Component struct {
	Name        string
	Description string
}

// DataModel is a named data model with a short description.
type DataModel struct {
	Name        string
	Description string
}

// DesignRequest is the decoded input for generate_design.
type DesignRequest struct {
	ProjectName        string
	ProjectDescription string
	TechStack          TechStack
	Components         []Component
	DataModels         []DataModel
	OutputPath         string
}

// Task is one implementation task.
type Task struct {
	Name               string
	Description        string
	AcceptanceCriteria []string
	Dependencies       []string
	Estimate           string
	RequirementRef     string
}

// TasksRequest is the decoded input for generate_tasks.
type TasksRequest struct {
	ProjectName       string
	EstimatedDuration string
	KeyDeliverables   []string
	Tasks             []Task
	OutputPath        string
}
