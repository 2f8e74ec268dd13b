package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Period values for an OKR timeframe.
const (
	PeriodQ1     = "Q1"
	PeriodQ2     = "Q2"
	PeriodQ3     = "Q3"
	PeriodQ4     = "Q4"
	PeriodAnnual = "annual"
	PeriodCustom = "custom"
)

// OKR status values.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
	StatusCancelled = "cancelled"
)

// Key Result status values.
const (
	KRStatusNotStarted = "not_started"
	KRStatusInProgress = "in_progress"
	KRStatusCompleted  = "completed"
	KRStatusAtRisk     = "at_risk"
)

// Visibility values.
const (
	VisibilityPrivate = "private"
	VisibilityTeam    = "team"
	VisibilityPublic  = "public"
)

var OKRStatuses = []string{StatusDraft, StatusActive, StatusCompleted, StatusPaused, StatusCancelled}

// ProgressRecord is a single advance-log entry on a Key Result. The field is
// stored and round-tripped but has no endpoints of its own.
type ProgressRecord struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AdvanceUnits float64            `json:"advanceUnits" bson:"advanceUnits"`
	AdvanceDate  time.Time          `json:"advanceDate" bson:"advanceDate"`
	Comment      string             `json:"comment" bson:"comment"`
}

type KeyResult struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title           string               `json:"title" bson:"title"`
	Description     string               `json:"description" bson:"description"`
	CurrentValue    float64              `json:"currentValue" bson:"currentValue"`
	TargetValue     float64              `json:"targetValue" bson:"targetValue"`
	Unit            string               `json:"unit" bson:"unit"`
	Progress        int                  `json:"progress" bson:"progress"`
	Status          string               `json:"status" bson:"status"`
	CompletedAt     *time.Time           `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	ProgressRecords []ProgressRecord     `json:"progressRecords" bson:"progressRecords"`
	Responsibles    []primitive.ObjectID `json:"responsibles" bson:"responsibles"`
}

type OKR struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title           string             `json:"title" bson:"title"`
	Description     string             `json:"description" bson:"description"`
	Owner           primitive.ObjectID `json:"owner" bson:"owner"`
	OwnerInfo       *UserSummary       `json:"ownerInfo,omitempty" bson:"-"`
	Period          string             `json:"period" bson:"period"`
	Year            int                `json:"year" bson:"year"`
	StartDate       time.Time          `json:"startDate" bson:"startDate"`
	EndDate         time.Time          `json:"endDate" bson:"endDate"`
	KeyResults      []KeyResult        `json:"keyResults" bson:"keyResults"`
	OverallProgress int                `json:"overallProgress" bson:"overallProgress"`
	Status          string             `json:"status" bson:"status"`
	CompletedAt     *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	Category        string             `json:"category" bson:"category"`
	Tags            []string           `json:"tags" bson:"tags"`
	Notes           string             `json:"notes" bson:"notes"`
	Team            string             `json:"team" bson:"team"`
	Visibility      string             `json:"visibility" bson:"visibility"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateKeyResultInput is a Key Result supplied inline on OKR creation.
// Numeric fields are pointers so a missing value is distinguishable from zero.
type CreateKeyResultInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	CurrentValue *float64 `json:"currentValue"`
	TargetValue  *float64 `json:"targetValue"`
	Unit         string   `json:"unit"`
}

type CreateOKRRequest struct {
	Title       string                 `json:"title" validate:"required"`
	Description string                 `json:"description"`
	Owner       string                 `json:"owner" validate:"required"`
	Period      string                 `json:"period" validate:"required,oneof=Q1 Q2 Q3 Q4 annual custom"`
	Year        int                    `json:"year" validate:"required,min=2000,max=2100"`
	StartDate   string                 `json:"startDate" validate:"required"`
	EndDate     string                 `json:"endDate" validate:"required"`
	KeyResults  []CreateKeyResultInput `json:"keyResults"`
	Category    string                 `json:"category"`
	Tags        []string               `json:"tags"`
	Notes       string                 `json:"notes"`
	Team        string                 `json:"team"`
	Visibility  string                 `json:"visibility" validate:"omitempty,oneof=private team public"`
}

// UpdateOKRRequest carries a partial update; nil fields are left untouched.
// Derived fields (overallProgress, key result progress) are never accepted
// from clients.
type UpdateOKRRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Period      *string   `json:"period" validate:"omitempty,oneof=Q1 Q2 Q3 Q4 annual custom"`
	Year        *int      `json:"year" validate:"omitempty,min=2000,max=2100"`
	StartDate   *string   `json:"startDate"`
	EndDate     *string   `json:"endDate"`
	Status      *string   `json:"status" validate:"omitempty,oneof=draft active completed paused cancelled"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	Notes       *string   `json:"notes"`
	Team        *string   `json:"team"`
	Visibility  *string   `json:"visibility" validate:"omitempty,oneof=private team public"`
}

type AddKeyResultRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	TargetValue *float64 `json:"targetValue" validate:"required"`
	Unit        string   `json:"unit"`
}

type UpdateKeyResultRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	CurrentValue *float64 `json:"currentValue"`
	TargetValue  *float64 `json:"targetValue"`
	Unit         *string  `json:"unit"`
	Status       *string  `json:"status" validate:"omitempty,oneof=not_started in_progress completed at_risk"`
}

// OKRFilter holds the optional list/stats query filters. Zero values mean
// "no filter".
type OKRFilter struct {
	Owner      string
	Period     string
	Year       int
	Status     string
	Category   string
	Team       string
	Visibility string
}
