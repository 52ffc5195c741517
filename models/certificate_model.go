package models

import (
	"time"

	"github.com/google/uuid"
)

// Certificate is the issued record. UniqueID, IssueDate, IssuerName and
// OrgName are snapshots taken at issuance and never change afterwards; the
// unique index on UniqueID is the collision backstop for the id generator.
type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UniqueID       string    `gorm:"size:32;not null;uniqueIndex" json:"unique_id"`
	RecipientName  string    `gorm:"size:255;not null" json:"recipient_name"`
	RecipientEmail *string   `gorm:"size:255" json:"recipient_email,omitempty"`
	EventType      string    `gorm:"size:20;not null" json:"event_type"`
	EventName      string    `gorm:"size:255;not null" json:"event_name"`
	IssueDate      time.Time `gorm:"not null" json:"issue_date"`
	IssuerName     string    `gorm:"size:255;not null" json:"issuer_name"`
	OrgName        string    `gorm:"size:255;not null" json:"org_name"`
	GeneratedBy    string    `gorm:"size:255;not null;index" json:"-"`
	PDFURL         *string   `gorm:"type:text" json:"pdf_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
