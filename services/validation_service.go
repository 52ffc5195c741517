package services

import (
	"time"
)

// ValidationService is the unauthenticated read-only lookup behind the
// public validation endpoint.
type ValidationService struct {
	store Store
}

func NewValidationService(store Store) *ValidationService {
	return &ValidationService{store: store}
}

// PublicCertificate is the public projection of an issued certificate. It
// deliberately carries no recipient email and no issuer reference.
type PublicCertificate struct {
	UniqueID      string    `json:"unique_id"`
	RecipientName string    `json:"recipient_name"`
	EventType     string    `json:"event_type"`
	EventName     string    `json:"event_name"`
	IssueDate     time.Time `json:"issue_date"`
	IssuerName    string    `json:"issuer_name"`
	OrgName       string    `json:"org_name"`
	PDFURL        *string   `json:"pdf_url"`
}

func (s *ValidationService) Lookup(uniqueID string) (*PublicCertificate, error) {
	cert, err := s.store.FindCertificateByUniqueID(uniqueID)
	if err != nil {
		return nil, err
	}

	return &PublicCertificate{
		UniqueID:      cert.UniqueID,
		RecipientName: cert.RecipientName,
		EventType:     cert.EventType,
		EventName:     cert.EventName,
		IssueDate:     cert.IssueDate,
		IssuerName:    cert.IssuerName,
		OrgName:       cert.OrgName,
		PDFURL:        cert.PDFURL,
	}, nil
}
