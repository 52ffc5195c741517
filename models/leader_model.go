package models

import "time"

// Leader is an organization leader allowed to issue certificates. The row is
// provisioned on first authenticated login; OrgName starts NULL and can be
// set exactly once.
type Leader struct {
	OCID      string    `gorm:"size:255;primary_key" json:"ocid"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	OrgName   *string   `gorm:"size:255" json:"org_name"`
	CanLogin  bool      `gorm:"not null;default:true" json:"can_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Leader) TableName() string {
	return "allowed_leaders"
}
