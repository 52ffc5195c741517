package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testValidationBase = "https://certs.gdg-oncampus.dev"

func newTestCertificateService(store *mockStore, mailer Mailer) *CertificateService {
	return NewCertificateService(store, mailer, testValidationBase)
}

func TestGenerateSnapshotsIssuerProfile(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", strPtr("GDGoC ASU"))
	svc := newTestCertificateService(store, nil)

	cert, err := svc.Generate(testIdentity("ocid-1"), GenerateRequest{
		RecipientName:  "Jane Doe",
		RecipientEmail: "jane@example.com",
		EventType:      "workshop",
		EventName:      "Intro to Go",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^GDGOC-\d{8}-[A-Z0-9]{5}$`, cert.UniqueID)
	assert.Equal(t, "Jane Doe", cert.RecipientName)
	require.NotNil(t, cert.RecipientEmail)
	assert.Equal(t, "jane@example.com", *cert.RecipientEmail)
	assert.Equal(t, "workshop", cert.EventType)
	assert.Equal(t, "Sam Organizer", cert.IssuerName)
	assert.Equal(t, "GDGoC ASU", cert.OrgName)
	assert.Equal(t, "ocid-1", cert.GeneratedBy)
	assert.WithinDuration(t, time.Now(), cert.IssueDate, 5*time.Second)
	assert.Equal(t, 1, store.certificateCount())
}

func TestGenerateProfileIncomplete(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", nil)
	svc := newTestCertificateService(store, nil)

	_, err := svc.Generate(testIdentity("ocid-1"), GenerateRequest{
		RecipientName: "Jane Doe",
		EventType:     "workshop",
		EventName:     "Intro to Go",
	})

	assert.ErrorIs(t, err, apperror.ErrProfileIncomplete)
	assert.Equal(t, 0, store.certificateCount())
}

func TestGenerateUnknownIssuer(t *testing.T) {
	svc := newTestCertificateService(newMockStore(), nil)

	_, err := svc.Generate(testIdentity("ghost"), GenerateRequest{
		RecipientName: "Jane Doe",
		EventType:     "workshop",
		EventName:     "Intro to Go",
	})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGenerateSendsCertificateEmail(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", strPtr("GDGoC ASU"))
	mailer := newMockMailer()
	svc := newTestCertificateService(store, mailer)

	cert, err := svc.Generate(testIdentity("ocid-1"), GenerateRequest{
		RecipientName:  "Jane Doe",
		RecipientEmail: "jane@example.com",
		EventType:      "course",
		EventName:      "Cloud Fundamentals",
	})
	require.NoError(t, err)

	email := mailer.waitForEmail(t)
	assert.Equal(t, "jane@example.com", email.toEmail)
	assert.Equal(t, "Jane Doe", email.toName)
	assert.Equal(t, "Cloud Fundamentals", email.eventName)
	assert.Equal(t, cert.UniqueID, email.uniqueID)
	assert.Equal(t, fmt.Sprintf("%s/?cert=%s", testValidationBase, cert.UniqueID), email.validationURL)
}

func TestGenerateWithoutEmailSkipsNotification(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", strPtr("GDGoC ASU"))
	mailer := newMockMailer()
	svc := newTestCertificateService(store, mailer)

	_, err := svc.Generate(testIdentity("ocid-1"), GenerateRequest{
		RecipientName: "Jane Doe",
		EventType:     "workshop",
		EventName:     "Intro to Go",
	})
	require.NoError(t, err)

	select {
	case e := <-mailer.ch:
		t.Fatalf("unexpected email to %s", e.toEmail)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGenerateMailerFailureDoesNotFailIssuance(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", strPtr("GDGoC ASU"))
	mailer := newMockMailer()
	mailer.err = fmt.Errorf("brevo is down")
	svc := newTestCertificateService(store, mailer)

	cert, err := svc.Generate(testIdentity("ocid-1"), GenerateRequest{
		RecipientName:  "Jane Doe",
		RecipientEmail: "jane@example.com",
		EventType:      "workshop",
		EventName:      "Intro to Go",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, store.certificateCount())
	mailer.waitForEmail(t)
	_, err = store.FindCertificateByUniqueID(cert.UniqueID)
	assert.NoError(t, err)
}

func TestGenerateBulkIssuesAllRows(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", strPtr("GDGoC ASU"))
	svc := newTestCertificateService(store, nil)

	csv := "recipient_name,recipient_email,event_type,event_name\n" +
		"Jane Doe,jane@example.com,Workshop,Intro to Go\n" +
		"John Smith,,course,Cloud Fundamentals\n" +
		"Ada Lovelace,ada@example.com,workshop,Numbers"

	result, err := svc.GenerateBulk(testIdentity("ocid-1"), csv)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Generated)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Certificates, 3)
	assert.Equal(t, "Jane Doe", result.Certificates[0].RecipientName)
	assert.Equal(t, "John Smith", result.Certificates[1].RecipientName)
	assert.Equal(t, "Ada Lovelace", result.Certificates[2].RecipientName)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 3, store.certificateCount())

	// Normalization carried through to the persisted record.
	cert, err := store.FindCertificateByUniqueID(result.Certificates[0].UniqueID)
	require.NoError(t, err)
	assert.Equal(t, "workshop", cert.EventType)
	assert.Equal(t, "GDGoC ASU", cert.OrgName)
}

func TestGenerateBulkRowPersistenceFailureContinues(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", strPtr("GDGoC ASU"))
	store.insertErrs["John Smith"] = fmt.Errorf("%w: GDGOC-20240101-A1B2C", apperror.ErrDuplicateID)
	svc := newTestCertificateService(store, nil)

	csv := "recipient_name,recipient_email,event_type,event_name\n" +
		"Jane Doe,,workshop,Intro to Go\n" +
		"John Smith,,course,Cloud Fundamentals\n" +
		"Ada Lovelace,,workshop,Numbers"

	result, err := svc.GenerateBulk(testIdentity("ocid-1"), csv)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Generated)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "John Smith", result.Failures[0].RecipientName)
	assert.Contains(t, result.Failures[0].Error, "duplicate identifier")
	assert.Equal(t, 2, store.certificateCount())
}

func TestGenerateBulkValidationFailureNoPersistence(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", strPtr("GDGoC ASU"))
	svc := newTestCertificateService(store, nil)

	csv := "recipient_name,recipient_email,event_type,event_name\n" +
		"Jane Doe,,workshop,Intro to Go\n" +
		",,course,Cloud Fundamentals"

	_, err := svc.GenerateBulk(testIdentity("ocid-1"), csv)

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, 0, store.certificateCount())
}

func TestGenerateBulkMalformedCSV(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", strPtr("GDGoC ASU"))
	svc := newTestCertificateService(store, nil)

	_, err := svc.GenerateBulk(testIdentity("ocid-1"), "recipient_name,recipient_email,event_type,event_name")

	assert.ErrorIs(t, err, apperror.ErrMalformedInput)
	assert.Equal(t, 0, store.certificateCount())
}

func TestGenerateBulkChecksProfileBeforeParsing(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", nil)
	svc := newTestCertificateService(store, nil)

	// The CSV is also invalid; the profile precondition must win.
	_, err := svc.GenerateBulk(testIdentity("ocid-1"), "not a csv")

	assert.ErrorIs(t, err, apperror.ErrProfileIncomplete)
}

func TestGenerateBulkEmptyBatch(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", strPtr("GDGoC ASU"))
	svc := newTestCertificateService(store, nil)

	// Rows that are all blank still count as zero issued, zero failed.
	csv := "recipient_name,recipient_email,event_type,event_name\n" +
		"   \n" +
		"Jane Doe,,workshop,Intro to Go"

	result, err := svc.GenerateBulk(testIdentity("ocid-1"), csv)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 0, result.Failed)

	// Header plus only whitespace collapses to a malformed input, rejected
	// before any persistence.
	_, err = svc.GenerateBulk(testIdentity("ocid-1"), "recipient_name,recipient_email,event_type,event_name\n   \n")
	assert.ErrorIs(t, err, apperror.ErrMalformedInput)
	assert.Equal(t, 1, store.certificateCount())
}

func TestListByIssuerDefaults(t *testing.T) {
	store := newMockStore()
	seedLeader(store, "ocid-1", "Sam Organizer", strPtr("GDGoC ASU"))
	svc := newTestCertificateService(store, nil)

	_, _, err := svc.ListByIssuer(testIdentity("ocid-1"), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, store.lastPage)
	assert.Equal(t, 50, store.lastLimit)

	_, _, err = svc.ListByIssuer(testIdentity("ocid-1"), 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, store.lastPage)
	assert.Equal(t, 10, store.lastLimit)
}
