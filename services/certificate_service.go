package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs/apperror"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/models"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/utils"
)

// CertificateService orchestrates single and bulk issuance: resolves the
// issuer's profile, generates identifiers, persists records and fires
// best-effort notifications.
type CertificateService struct {
	store             Store
	mailer            Mailer
	validationBaseURL string
}

func NewCertificateService(store Store, mailer Mailer, validationBaseURL string) *CertificateService {
	return &CertificateService{
		store:             store,
		mailer:            mailer,
		validationBaseURL: strings.TrimRight(validationBaseURL, "/"),
	}
}

type GenerateRequest struct {
	RecipientName  string
	RecipientEmail string
	EventType      string
	EventName      string
}

// Generate issues a single certificate for the caller. The caller's
// organization must already be set; issuer name and org name are snapshotted
// from the profile at issuance time.
func (s *CertificateService) Generate(identity models.ResolvedIdentity, req GenerateRequest) (*models.Certificate, error) {
	leader, err := s.issuerProfile(identity)
	if err != nil {
		return nil, err
	}

	cert := s.buildCertificate(leader, utils.CertificateRow{
		RecipientName:  req.RecipientName,
		RecipientEmail: optionalEmail(req.RecipientEmail),
		EventType:      req.EventType,
		EventName:      req.EventName,
	})

	if err := s.store.InsertCertificate(cert); err != nil {
		return nil, err
	}

	s.notify(cert)
	return cert, nil
}

type BulkIssued struct {
	UniqueID      string `json:"unique_id"`
	RecipientName string `json:"recipient_name"`
	EventName     string `json:"event_name"`
}

type BulkFailure struct {
	RecipientName string `json:"recipient_name"`
	Error         string `json:"error"`
}

type BulkResult struct {
	Generated    int
	Failed       int
	Certificates []BulkIssued
	Failures     []BulkFailure
}

// GenerateBulk issues certificates from raw CSV text. The whole batch is
// rejected before any persistence when the profile is incomplete, the CSV is
// malformed, or any row fails validation. Once rows are validated they are
// issued independently: a per-row store failure (e.g. an identifier
// collision) is recorded and the remaining rows continue.
func (s *CertificateService) GenerateBulk(identity models.ResolvedIdentity, csvContent string) (*BulkResult, error) {
	leader, err := s.issuerProfile(identity)
	if err != nil {
		return nil, err
	}

	rows, err := utils.ParseCertificateCSV(csvContent)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{
		Certificates: []BulkIssued{},
		Failures:     []BulkFailure{},
	}

	for _, row := range rows {
		cert := s.buildCertificate(leader, row)

		if err := s.store.InsertCertificate(cert); err != nil {
			log.Printf("🔥 Failed to issue certificate for %s: %v", row.RecipientName, err)
			result.Failures = append(result.Failures, BulkFailure{
				RecipientName: row.RecipientName,
				Error:         err.Error(),
			})
			continue
		}

		result.Certificates = append(result.Certificates, BulkIssued{
			UniqueID:      cert.UniqueID,
			RecipientName: cert.RecipientName,
			EventName:     cert.EventName,
		})
		s.notify(cert)
	}

	result.Generated = len(result.Certificates)
	result.Failed = len(result.Failures)
	return result, nil
}

// ListByIssuer returns the caller's own certificates, newest first.
func (s *CertificateService) ListByIssuer(identity models.ResolvedIdentity, page, limit int) ([]models.Certificate, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	return s.store.ListCertificatesByIssuer(identity.SubjectID, page, limit)
}

func (s *CertificateService) issuerProfile(identity models.ResolvedIdentity) (*models.Leader, error) {
	leader, err := s.store.GetLeader(identity.SubjectID)
	if err != nil {
		return nil, err
	}
	if leader.OrgName == nil {
		return nil, fmt.Errorf("%w: please complete your profile setup before generating certificates", apperror.ErrProfileIncomplete)
	}
	return leader, nil
}

// buildCertificate assumes row.EventType is already normalized: the CSV
// pipeline lowercases it and the request validator only admits the lowercase
// values.
func (s *CertificateService) buildCertificate(leader *models.Leader, row utils.CertificateRow) *models.Certificate {
	return &models.Certificate{
		UniqueID:       utils.GenerateCertificateID(),
		RecipientName:  row.RecipientName,
		RecipientEmail: row.RecipientEmail,
		EventType:      row.EventType,
		EventName:      row.EventName,
		IssueDate:      time.Now(),
		IssuerName:     leader.Name,
		OrgName:        *leader.OrgName,
		GeneratedBy:    leader.OCID,
	}
}

// notify fires the certificate email without blocking the request. Failures
// are logged and never affect the issuance outcome.
func (s *CertificateService) notify(cert *models.Certificate) {
	if s.mailer == nil || cert.RecipientEmail == nil {
		return
	}

	toEmail := *cert.RecipientEmail
	toName := cert.RecipientName
	eventName := cert.EventName
	uniqueID := cert.UniqueID
	pdfURL := cert.PDFURL

	go func() {
		validationURL := fmt.Sprintf("%s/?cert=%s", s.validationBaseURL, uniqueID)
		if err := s.mailer.SendCertificateEmail(toEmail, toName, eventName, uniqueID, validationURL, pdfURL); err != nil {
			log.Printf("🔥 Failed to send certificate email to %s: %v", toEmail, err)
		}
	}()
}

func optionalEmail(email string) *string {
	if email == "" {
		return nil
	}
	return &email
}
