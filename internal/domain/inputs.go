package domain

// Request bodies double as backend payloads: their JSON names match the backend
// field names and relations are sent as ids.

type CreateLeadCompanyRequest struct {
	CompanyName string     `json:"companyName" validate:"required,max=200"`
	Industry    string     `json:"industry,omitempty" validate:"max=100"`
	Website     string     `json:"website,omitempty" validate:"omitempty,url"`
	Email       string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string     `json:"phone,omitempty" validate:"max=50"`
	Status      LeadStatus `json:"status,omitempty"`
	Segment     string     `json:"segment,omitempty" validate:"max=100"`
	Source      string     `json:"source,omitempty" validate:"max=100"`
	DealValue   float64    `json:"dealValue" validate:"gte=0"`
	Score       int        `json:"score" validate:"gte=0,lte=100"`
	HealthScore int        `json:"healthScore" validate:"gte=0,lte=100"`
	Notes       string     `json:"notes,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
}

// UpdateLeadCompanyRequest changes lead fields. Status moves through UpdateLeadStatusRequest.
type UpdateLeadCompanyRequest struct {
	CompanyName *string  `json:"companyName,omitempty" validate:"omitempty,max=200"`
	Industry    *string  `json:"industry,omitempty" validate:"omitempty,max=100"`
	Website     *string  `json:"website,omitempty" validate:"omitempty,url"`
	Email       *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string  `json:"phone,omitempty" validate:"omitempty,max=50"`
	Segment     *string  `json:"segment,omitempty" validate:"omitempty,max=100"`
	Source      *string  `json:"source,omitempty" validate:"omitempty,max=100"`
	DealValue   *float64 `json:"dealValue,omitempty" validate:"omitempty,gte=0"`
	Score       *int     `json:"score,omitempty" validate:"omitempty,gte=0,lte=100"`
	HealthScore *int     `json:"healthScore,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes       *string  `json:"notes,omitempty"`
	AssignedTo  *string  `json:"assignedTo,omitempty"`
}

type UpdateLeadStatusRequest struct {
	Status LeadStatus `json:"status" validate:"required"`
}

type BulkLeadStatusRequest struct {
	IDs    []string   `json:"ids" validate:"required,min=1,max=500,dive,required"`
	Status LeadStatus `json:"status" validate:"required"`
}

type CreateClientAccountRequest struct {
	CompanyName       string  `json:"companyName" validate:"required,max=200"`
	Industry          string  `json:"industry,omitempty" validate:"max=100"`
	Website           string  `json:"website,omitempty" validate:"omitempty,url"`
	Email             string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone             string  `json:"phone,omitempty" validate:"max=50"`
	Segment           string  `json:"segment,omitempty" validate:"max=100"`
	HealthScore       int     `json:"healthScore" validate:"gte=0,lte=100"`
	AccountValue      float64 `json:"accountValue" validate:"gte=0"`
	Notes             string  `json:"notes,omitempty"`
	AssignedTo        string  `json:"assignedTo,omitempty"`
	ConvertedFromLead string  `json:"convertedFromLead,omitempty"`
}

type UpdateClientAccountRequest struct {
	CompanyName  *string  `json:"companyName,omitempty" validate:"omitempty,max=200"`
	Industry     *string  `json:"industry,omitempty" validate:"omitempty,max=100"`
	Website      *string  `json:"website,omitempty" validate:"omitempty,url"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string  `json:"phone,omitempty" validate:"omitempty,max=50"`
	Segment      *string  `json:"segment,omitempty" validate:"omitempty,max=100"`
	HealthScore  *int     `json:"healthScore,omitempty" validate:"omitempty,gte=0,lte=100"`
	AccountValue *float64 `json:"accountValue,omitempty" validate:"omitempty,gte=0"`
	Notes        *string  `json:"notes,omitempty"`
	AssignedTo   *string  `json:"assignedTo,omitempty"`
}

type CreateContactRequest struct {
	FirstName     string        `json:"firstName" validate:"required,max=100"`
	LastName      string        `json:"lastName,omitempty" validate:"max=100"`
	Email         string        `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string        `json:"phone,omitempty" validate:"max=50"`
	JobTitle      string        `json:"jobTitle,omitempty" validate:"max=100"`
	Role          ContactRole   `json:"role,omitempty" validate:"omitempty,oneof=PRIMARY_CONTACT DECISION_MAKER INFLUENCER TECHNICAL_CONTACT GATEKEEPER"`
	Status        ContactStatus `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE UNSUBSCRIBED"`
	LeadCompany   string        `json:"leadCompany,omitempty"`
	ClientAccount string        `json:"clientAccount,omitempty"`
}

// UpdateContactRequest changes contact fields. Ownership moves through TransferContactRequest.
type UpdateContactRequest struct {
	FirstName *string        `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string        `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email     *string        `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string        `json:"phone,omitempty" validate:"omitempty,max=50"`
	JobTitle  *string        `json:"jobTitle,omitempty" validate:"omitempty,max=100"`
	Role      *ContactRole   `json:"role,omitempty" validate:"omitempty,oneof=PRIMARY_CONTACT DECISION_MAKER INFLUENCER TECHNICAL_CONTACT GATEKEEPER"`
	Status    *ContactStatus `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE UNSUBSCRIBED"`
}

// TransferContactRequest names exactly one new owner
type TransferContactRequest struct {
	LeadCompany   string `json:"leadCompany,omitempty"`
	ClientAccount string `json:"clientAccount,omitempty"`
}

type BulkContactStatusRequest struct {
	IDs    []string      `json:"ids" validate:"required,min=1,max=500,dive,required"`
	Status ContactStatus `json:"status" validate:"required,oneof=ACTIVE INACTIVE UNSUBSCRIBED"`
}

type CreateDealRequest struct {
	Name          string    `json:"name" validate:"required,max=200"`
	Stage         DealStage `json:"stage,omitempty"`
	Value         float64   `json:"value" validate:"gte=0"`
	Probability   *float64  `json:"probability,omitempty" validate:"omitempty,gte=0,lte=100"`
	CloseDate     string    `json:"closeDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Description   string    `json:"description,omitempty"`
	LeadCompany   string    `json:"leadCompany,omitempty"`
	ClientAccount string    `json:"clientAccount,omitempty"`
	Contact       string    `json:"contact,omitempty"`
	AssignedTo    string    `json:"assignedTo,omitempty"`
}

// UpdateDealRequest changes deal fields. Stage moves through advance and close.
type UpdateDealRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Value       *float64 `json:"value,omitempty" validate:"omitempty,gte=0"`
	Probability *float64 `json:"probability,omitempty" validate:"omitempty,gte=0,lte=100"`
	CloseDate   *string  `json:"closeDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Description *string  `json:"description,omitempty"`
	Contact     *string  `json:"contact,omitempty"`
	AssignedTo  *string  `json:"assignedTo,omitempty"`
}

type CloseDealRequest struct {
	Won   bool   `json:"won"`
	Notes string `json:"notes,omitempty" validate:"max=1000"`
}

type AdvanceDealRequest struct {
	Notes string `json:"notes,omitempty" validate:"max=1000"`
}

type CreateActivityRequest struct {
	Subject       string         `json:"subject" validate:"required,max=200"`
	Description   string         `json:"description,omitempty"`
	ActivityType  ActivityType   `json:"activityType" validate:"required,oneof=CALL EMAIL MEETING NOTE TASK"`
	Status        ActivityStatus `json:"status,omitempty" validate:"omitempty,oneof=PLANNED COMPLETED CANCELLED"`
	ScheduledDate string         `json:"scheduledDate,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Contact       string         `json:"contact,omitempty"`
	LeadCompany   string         `json:"leadCompany,omitempty"`
	ClientAccount string         `json:"clientAccount,omitempty"`
	Deal          string         `json:"deal,omitempty"`
	AssignedTo    string         `json:"assignedTo,omitempty"`
}

type UpdateActivityRequest struct {
	Subject       *string         `json:"subject,omitempty" validate:"omitempty,max=200"`
	Description   *string         `json:"description,omitempty"`
	Status        *ActivityStatus `json:"status,omitempty" validate:"omitempty,oneof=PLANNED COMPLETED CANCELLED"`
	ScheduledDate *string         `json:"scheduledDate,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CompletedDate *string         `json:"completedDate,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	AssignedTo    *string         `json:"assignedTo,omitempty"`
}

type CreateProjectRequest struct {
	Name          string        `json:"name" validate:"required,max=200"`
	Description   string        `json:"description,omitempty"`
	Status        ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=PLANNING ACTIVE ON_HOLD COMPLETED CANCELLED"`
	StartDate     string        `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueDate       string        `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ClientAccount string        `json:"clientAccount,omitempty"`
	Owner         string        `json:"owner,omitempty"`
}

type UpdateProjectRequest struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string        `json:"description,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=PLANNING ACTIVE ON_HOLD COMPLETED CANCELLED"`
	StartDate   *string        `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueDate     *string        `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Owner       *string        `json:"owner,omitempty"`
}

// CreateTaskRequest creates a board task. Status values contain spaces and are checked by the service.
type CreateTaskRequest struct {
	Title     string       `json:"title" validate:"required,max=200"`
	Status    TaskStatus   `json:"status,omitempty"`
	Progress  int          `json:"progress" validate:"gte=0,lte=100"`
	Priority  TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate   string       `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Project   string       `json:"project,omitempty"`
	Assignee  string       `json:"assignee,omitempty"`
	Assignees []string     `json:"assignees,omitempty"`
}

type UpdateTaskRequest struct {
	Title     *string       `json:"title,omitempty" validate:"omitempty,max=200"`
	Status    *TaskStatus   `json:"status,omitempty"`
	Progress  *int          `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`
	Priority  *TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate   *string       `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Assignee  *string       `json:"assignee,omitempty"`
	Assignees []string      `json:"assignees,omitempty"`
}

// IsValid checks if the status is a valid value
func (s TaskStatus) IsValid() bool {
	for _, st := range TaskStatuses {
		if s == st {
			return true
		}
	}
	return false
}
