package domain

import "time"

// Pagination describes the page a list result came from
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// ListResult is the canonical list shape returned by the record fetchers
type ListResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// EmptyList returns a result with no data and zeroed pagination
func EmptyList[T any]() *ListResult[T] {
	return &ListResult[T]{Data: []T{}}
}

// PaginatedResponse is the JSON shape of list endpoints
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// DashboardChanges holds month-over-month percentage changes
type DashboardChanges struct {
	Leads          int `json:"leads"`
	ActiveDeals    int `json:"activeDeals"`
	Revenue        int `json:"revenue"`
	ConversionRate int `json:"conversionRate"`
}

// DashboardStats is the headline KPI block of the CRM dashboard
type DashboardStats struct {
	TotalLeads      int              `json:"totalLeads"`
	PipelineValue   float64          `json:"pipelineValue"`
	ConversionRate  int              `json:"conversionRate"`
	ActiveDeals     int              `json:"activeDeals"`
	WonRevenue      float64          `json:"wonRevenue"`
	TotalContacts   int              `json:"totalContacts"`
	TotalActivities int              `json:"totalActivities"`
	Changes         DashboardChanges `json:"changes"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

// WeeklyLeads is one bucket of the weekly leads chart
type WeeklyLeads struct {
	Week      string    `json:"week"`
	Leads     int       `json:"leads"`
	Qualified int       `json:"qualified"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// PipelineCard is one entry in a funnel column
type PipelineCard struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Company      string  `json:"company,omitempty"`
	Initials     string  `json:"initials"`
	Value        float64 `json:"value"`
	LastActivity string  `json:"lastActivity"`
}

// PipelineStages is the four-column funnel view
type PipelineStages struct {
	Leads       []PipelineCard `json:"leads"`
	Qualified   []PipelineCard `json:"qualified"`
	Proposal    []PipelineCard `json:"proposal"`
	Negotiation []PipelineCard `json:"negotiation"`
}

// StageSummary is the count and value of deals in one stage
type StageSummary struct {
	Stage DealStage `json:"stage"`
	Count int       `json:"count"`
	Value float64   `json:"value"`
}

// PipelineData groups deals by stage
type PipelineData struct {
	Stages          []StageSummary `json:"stages"`
	TotalDeals      int            `json:"totalDeals"`
	TotalValue      float64        `json:"totalValue"`
	AverageDealSize float64        `json:"averageDealSize"`
}

// ForecastPeriod is the horizon of a revenue forecast
type ForecastPeriod string

const (
	ForecastMonth   ForecastPeriod = "month"
	ForecastQuarter ForecastPeriod = "quarter"
	ForecastYear    ForecastPeriod = "year"
)

// IsValid checks if the period is a valid value
func (p ForecastPeriod) IsValid() bool {
	return p == ForecastMonth || p == ForecastQuarter || p == ForecastYear
}

// ForecastStage is the per-stage part of a forecast
type ForecastStage struct {
	Stage         DealStage `json:"stage"`
	Count         int       `json:"count"`
	Value         float64   `json:"value"`
	WeightedValue float64   `json:"weightedValue"`
}

// Forecast is the expected revenue over a period
type Forecast struct {
	Period        ForecastPeriod  `json:"period"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	DealCount     int             `json:"dealCount"`
	TotalValue    float64         `json:"totalValue"`
	WeightedValue float64         `json:"weightedValue"`
	ByStage       []ForecastStage `json:"byStage"`
}

// DealStats summarizes deal outcomes
type DealStats struct {
	TotalDeals int     `json:"totalDeals"`
	OpenDeals  int     `json:"openDeals"`
	WonDeals   int     `json:"wonDeals"`
	LostDeals  int     `json:"lostDeals"`
	TotalValue float64 `json:"totalValue"`
	OpenValue  float64 `json:"openValue"`
	WonValue   float64 `json:"wonValue"`
	LostValue  float64 `json:"lostValue"`
	WinRate    float64 `json:"winRate"`
}

// EngagementScore rates recent interaction with a contact
type EngagementScore struct {
	ContactID     string               `json:"contactId"`
	Score         int                  `json:"score"`
	ActivityCount int                  `json:"activityCount"`
	Breakdown     map[ActivityType]int `json:"breakdown"`
	Since         time.Time            `json:"since"`
}

// DuplicatePair links a contact to an earlier contact with the same email
type DuplicatePair struct {
	Email     string  `json:"email"`
	Original  Contact `json:"original"`
	Duplicate Contact `json:"duplicate"`
}

// LeadCompanyStats summarizes the lead list
type LeadCompanyStats struct {
	Total            int                `json:"total"`
	ByStatus         map[LeadStatus]int `json:"byStatus"`
	BySegment        map[string]int     `json:"bySegment"`
	TotalDealValue   float64            `json:"totalDealValue"`
	AverageDealValue float64            `json:"averageDealValue"`
	AverageScore     int                `json:"averageScore"`
	ConversionRate   int                `json:"conversionRate"`
}

// ClientAccountStats summarizes client health
type ClientAccountStats struct {
	Total              int     `json:"total"`
	AverageHealthScore int     `json:"averageHealthScore"`
	AtRisk             int     `json:"atRisk"`
	ConvertedFromLead  int     `json:"convertedFromLead"`
	TotalAccountValue  float64 `json:"totalAccountValue"`
}

// ContactStats summarizes contacts by role and status
type ContactStats struct {
	Total         int                   `json:"total"`
	ByRole        map[ContactRole]int   `json:"byRole"`
	ByStatus      map[ContactStatus]int `json:"byStatus"`
	PrimaryCount  int                   `json:"primaryCount"`
	WithoutOwner  int                   `json:"withoutOwner"`
	WithoutEmails int                   `json:"withoutEmails"`
}

// ActivityStats summarizes activities
type ActivityStats struct {
	Total             int                    `json:"total"`
	ByType            map[ActivityType]int   `json:"byType"`
	ByStatus          map[ActivityStatus]int `json:"byStatus"`
	Overdue           int                    `json:"overdue"`
	CompletedThisWeek int                    `json:"completedThisWeek"`
}

// AssigneeLoad counts tasks per person
type AssigneeLoad struct {
	Assignee Ref `json:"assignee"`
	Tasks    int `json:"tasks"`
	Done     int `json:"done"`
}

// TaskStats summarizes the project-management board
type TaskStats struct {
	Total           int                `json:"total"`
	ByStatus        map[TaskStatus]int `json:"byStatus"`
	AverageProgress int                `json:"averageProgress"`
	Overdue         int                `json:"overdue"`
	ByAssignee      []AssigneeLoad     `json:"byAssignee"`
}

// ProjectProgress rolls task progress up to a project
type ProjectProgress struct {
	Project     Ref `json:"project"`
	TaskCount   int `json:"taskCount"`
	DoneCount   int `json:"doneCount"`
	Progress    int `json:"progress"`
	PercentDone int `json:"percentDone"`
}

// BulkResult reports a sequential bulk write. Writes before FailedID are committed,
// writes after it were not attempted.
type BulkResult struct {
	Succeeded []string `json:"succeeded"`
	FailedID  string   `json:"failedId,omitempty"`
	Error     string   `json:"error,omitempty"`
	Skipped   []string `json:"skipped,omitempty"`
}

// ConversionResult reports a lead conversion
type ConversionResult struct {
	Lead                LeadCompany   `json:"lead"`
	Account             ClientAccount `json:"account"`
	TransferredContacts []string      `json:"transferredContacts"`
	FailedContacts      []string      `json:"failedContacts,omitempty"`
}

// ImportRowError describes one rejected import row
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult reports a lead import
type ImportResult struct {
	FileKey string           `json:"fileKey"`
	Rows    int              `json:"rows"`
	Created []string         `json:"created"`
	Errors  []ImportRowError `json:"errors"`
}
