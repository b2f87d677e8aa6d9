package domain

import "time"

// LeadStatus represents where a prospect is in the sales funnel
type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "NEW"
	LeadStatusContacted    LeadStatus = "CONTACTED"
	LeadStatusQualified    LeadStatus = "QUALIFIED"
	LeadStatusProposalSent LeadStatus = "PROPOSAL_SENT"
	LeadStatusNegotiation  LeadStatus = "NEGOTIATION"
	LeadStatusConverted    LeadStatus = "CONVERTED"
	LeadStatusLost         LeadStatus = "LOST"
	// LeadStatusActive is a legacy value still present on older records; treated like NEW
	LeadStatusActive LeadStatus = "ACTIVE"
)

// IsQualified reports whether the lead counts toward the conversion rate
func (s LeadStatus) IsQualified() bool {
	return s == LeadStatusQualified || s == LeadStatusConverted
}

// IsTerminal reports whether no further status change is allowed
func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusConverted || s == LeadStatusLost
}

// IsValid checks if the status is a valid value
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusProposalSent,
		LeadStatusNegotiation, LeadStatusConverted, LeadStatusLost, LeadStatusActive:
		return true
	}
	return false
}

// DealStage represents the stage of a deal in the sales pipeline
type DealStage string

const (
	DealStageDiscovery   DealStage = "DISCOVERY"
	DealStageProposal    DealStage = "PROPOSAL"
	DealStageNegotiation DealStage = "NEGOTIATION"
	DealStageClosedWon   DealStage = "CLOSED_WON"
	DealStageClosedLost  DealStage = "CLOSED_LOST"
)

// DealStages lists every stage in pipeline order
var DealStages = []DealStage{
	DealStageDiscovery,
	DealStageProposal,
	DealStageNegotiation,
	DealStageClosedWon,
	DealStageClosedLost,
}

// IsActive reports whether a deal in this stage is still open
func (s DealStage) IsActive() bool {
	return s != DealStageClosedWon && s != DealStageClosedLost
}

// IsValid checks if the stage is a valid value
func (s DealStage) IsValid() bool {
	for _, st := range DealStages {
		if s == st {
			return true
		}
	}
	return false
}

// Next returns the following stage on the happy path. Closed stages have none.
func (s DealStage) Next() (DealStage, bool) {
	switch s {
	case DealStageDiscovery:
		return DealStageProposal, true
	case DealStageProposal:
		return DealStageNegotiation, true
	case DealStageNegotiation:
		return DealStageClosedWon, true
	}
	return "", false
}

// DefaultProbability is the win probability assigned when a deal enters the stage
func (s DealStage) DefaultProbability() float64 {
	switch s {
	case DealStageDiscovery:
		return 20
	case DealStageProposal:
		return 50
	case DealStageNegotiation:
		return 75
	case DealStageClosedWon:
		return 100
	}
	return 0
}

// ContactRole describes a contact's role at their company
type ContactRole string

const (
	ContactRolePrimary          ContactRole = "PRIMARY_CONTACT"
	ContactRoleDecisionMaker    ContactRole = "DECISION_MAKER"
	ContactRoleInfluencer       ContactRole = "INFLUENCER"
	ContactRoleTechnicalContact ContactRole = "TECHNICAL_CONTACT"
	ContactRoleGatekeeper       ContactRole = "GATEKEEPER"
)

// ContactStatus is the lifecycle status of a contact
type ContactStatus string

const (
	ContactStatusActive       ContactStatus = "ACTIVE"
	ContactStatusInactive     ContactStatus = "INACTIVE"
	ContactStatusUnsubscribed ContactStatus = "UNSUBSCRIBED"
)

// ActivityType represents the type of an activity
type ActivityType string

const (
	ActivityTypeCall    ActivityType = "CALL"
	ActivityTypeEmail   ActivityType = "EMAIL"
	ActivityTypeMeeting ActivityType = "MEETING"
	ActivityTypeNote    ActivityType = "NOTE"
	ActivityTypeTask    ActivityType = "TASK"
)

// ActivityStatus represents the completion state of an activity
type ActivityStatus string

const (
	ActivityStatusPlanned   ActivityStatus = "PLANNED"
	ActivityStatusCompleted ActivityStatus = "COMPLETED"
	ActivityStatusCancelled ActivityStatus = "CANCELLED"
)

// TaskStatus is the board column of a project task
type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "Backlog"
	TaskStatusTodo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusInReview   TaskStatus = "In Review"
	TaskStatusDone       TaskStatus = "Done"
)

// TaskStatuses lists board columns in order
var TaskStatuses = []TaskStatus{
	TaskStatusBacklog,
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusInReview,
	TaskStatusDone,
}

// TaskPriority represents the urgency of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "PLANNING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// LeadCompany is a prospect organization not yet a client
type LeadCompany struct {
	ID               string     `json:"id"`
	CompanyName      string     `json:"companyName"`
	Industry         string     `json:"industry,omitempty"`
	Website          string     `json:"website,omitempty"`
	Email            string     `json:"email,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Status           LeadStatus `json:"status,omitempty"`
	Segment          string     `json:"segment,omitempty"`
	Source           string     `json:"source,omitempty"`
	DealValue        float64    `json:"dealValue"`
	Score            int        `json:"score"`
	HealthScore      int        `json:"healthScore"`
	Notes            string     `json:"notes,omitempty"`
	AssignedTo       *Ref       `json:"assignedTo,omitempty"`
	ConvertedAccount *Ref       `json:"convertedAccount,omitempty"`
	LastActivityAt   Date       `json:"lastActivityAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ClientAccount is an organization with an active commercial relationship
type ClientAccount struct {
	ID                string    `json:"id"`
	CompanyName       string    `json:"companyName"`
	Industry          string    `json:"industry,omitempty"`
	Website           string    `json:"website,omitempty"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	Segment           string    `json:"segment,omitempty"`
	HealthScore       int       `json:"healthScore"`
	AccountValue      float64   `json:"accountValue"`
	Notes             string    `json:"notes,omitempty"`
	AssignedTo        *Ref      `json:"assignedTo,omitempty"`
	ConvertedFromLead *Ref      `json:"convertedFromLead,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Contact is a person attached to exactly one of a lead company or a client account
type Contact struct {
	ID            string        `json:"id"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	JobTitle      string        `json:"jobTitle,omitempty"`
	Role          ContactRole   `json:"role,omitempty"`
	Status        ContactStatus `json:"status,omitempty"`
	LeadCompany   *Ref          `json:"leadCompany,omitempty"`
	ClientAccount *Ref          `json:"clientAccount,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// FullName joins first and last name
func (c *Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Owner returns the owning company reference and which kind it is
func (c *Contact) Owner() (OwnerKind, *Ref) {
	if c.LeadCompany != nil && c.LeadCompany.ID != "" {
		return OwnerLeadCompany, c.LeadCompany
	}
	if c.ClientAccount != nil && c.ClientAccount.ID != "" {
		return OwnerClientAccount, c.ClientAccount
	}
	return OwnerNone, nil
}

// OwnerKind names the collection a contact belongs to
type OwnerKind string

const (
	OwnerNone          OwnerKind = ""
	OwnerLeadCompany   OwnerKind = "leadCompany"
	OwnerClientAccount OwnerKind = "clientAccount"
)

// Deal is a sales opportunity
type Deal struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Stage         DealStage `json:"stage"`
	Value         float64   `json:"value"`
	Probability   float64   `json:"probability"`
	CloseDate     Date      `json:"closeDate"`
	Description   string    `json:"description,omitempty"`
	LeadCompany   *Ref      `json:"leadCompany,omitempty"`
	ClientAccount *Ref      `json:"clientAccount,omitempty"`
	Contact       *Ref      `json:"contact,omitempty"`
	AssignedTo    *Ref      `json:"assignedTo,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CompanyName returns the name of whichever company the deal belongs to
func (d *Deal) CompanyName() string {
	if d.ClientAccount != nil && d.ClientAccount.Name != "" {
		return d.ClientAccount.Name
	}
	if d.LeadCompany != nil && d.LeadCompany.Name != "" {
		return d.LeadCompany.Name
	}
	return ""
}

// Activity is an interaction such as a call, email, meeting or note
type Activity struct {
	ID            string         `json:"id"`
	Subject       string         `json:"subject"`
	Description   string         `json:"description,omitempty"`
	ActivityType  ActivityType   `json:"activityType"`
	Status        ActivityStatus `json:"status,omitempty"`
	ScheduledDate Date           `json:"scheduledDate"`
	CompletedDate Date           `json:"completedDate"`
	Contact       *Ref           `json:"contact,omitempty"`
	LeadCompany   *Ref           `json:"leadCompany,omitempty"`
	ClientAccount *Ref           `json:"clientAccount,omitempty"`
	Deal          *Ref           `json:"deal,omitempty"`
	AssignedTo    *Ref           `json:"assignedTo,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// OccurredAt is when the activity happened: its completion date, else its
// scheduled date, else its creation time
func (a Activity) OccurredAt() time.Time {
	switch {
	case !a.CompletedDate.IsZero():
		return a.CompletedDate.Time
	case !a.ScheduledDate.IsZero():
		return a.ScheduledDate.Time
	}
	return a.CreatedAt
}

// Project groups tasks for a client engagement
type Project struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Status        ProjectStatus `json:"status,omitempty"`
	StartDate     Date          `json:"startDate"`
	DueDate       Date          `json:"dueDate"`
	ClientAccount *Ref          `json:"clientAccount,omitempty"`
	Owner         *Ref          `json:"owner,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Task is a unit of project work
type Task struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Status    TaskStatus   `json:"status"`
	Progress  int          `json:"progress"`
	Priority  TaskPriority `json:"priority,omitempty"`
	DueDate   Date         `json:"dueDate"`
	Project   *Ref         `json:"project,omitempty"`
	Assignee  *Ref         `json:"assignee,omitempty"`
	Assignees []Ref        `json:"assignees,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// AllAssignees merges the single and multi assignee relations without duplicates
func (t *Task) AllAssignees() []Ref {
	seen := make(map[string]bool)
	var out []Ref
	if t.Assignee != nil && t.Assignee.ID != "" {
		seen[t.Assignee.ID] = true
		out = append(out, *t.Assignee)
	}
	for _, a := range t.Assignees {
		if a.ID == "" || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out
}
