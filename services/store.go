package services

import "github.com/GDG-on-Campus-ASU/GDGoC-certs/models"

// Store is the persistence contract the services consume. The GORM
// implementation lives in the database package; tests substitute an
// in-memory one.
type Store interface {
	// InsertCertificate persists a new certificate. A unique_id collision
	// must surface as apperror.ErrDuplicateID so callers can account for it
	// per row.
	InsertCertificate(cert *models.Certificate) error
	FindCertificateByUniqueID(uniqueID string) (*models.Certificate, error)
	ListCertificatesByIssuer(ocid string, page, limit int) ([]models.Certificate, int64, error)

	GetLeader(ocid string) (*models.Leader, error)
	CreateLeader(leader *models.Leader) error
	UpdateLeaderName(ocid, name string) (*models.Leader, error)
	// SetLeaderOrgNameOnce sets org_name only while it is still NULL and
	// returns apperror.ErrOrgAlreadySet otherwise, leaving the stored value
	// unchanged.
	SetLeaderOrgNameOnce(ocid, orgName string) (*models.Leader, error)
}

// Mailer sends the certificate notification. Delivery is best-effort: a
// failure is logged by the caller and never fails issuance.
type Mailer interface {
	SendCertificateEmail(toEmail, toName, eventName, uniqueID, validationURL string, pdfURL *string) error
}
