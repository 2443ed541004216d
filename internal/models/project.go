package models

import (
	"time"
)

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// ProjectStatuses are the statuses offered by the admin form. Others are accepted.
var ProjectStatuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// StartDateLayout is the textual date format accepted for start dates.
const StartDateLayout = "2006-01-02"

// Project is a unit of work owned by exactly one client.
type Project struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:200;not null" json:"name"`
	Status    string     `gorm:"size:50;not null;default:Pending" json:"status"`
	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	ClientID  uint       `gorm:"index;not null" json:"client_id"`
	Client    *User      `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// StartDateString formats the start date for display, empty when unset.
func (p *Project) StartDateString() string {
	if p.StartDate == nil {
		return ""
	}
	return p.StartDate.Format(StartDateLayout)
}

// ClientName is the owner name when the project was loaded with its client.
func (p *Project) ClientName() string {
	if p.Client == nil {
		return ""
	}
	return p.Client.Name
}
