package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs/apperror"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/models"
)

// In-memory Store so service tests exercise orchestration logic without a
// database. insertErrs simulates per-row persistence failures (keyed by
// recipient name, since generated ids are random).
type mockStore struct {
	mu         sync.Mutex
	certs      []*models.Certificate
	leaders    map[string]*models.Leader
	insertErrs map[string]error
	lastPage   int
	lastLimit  int
}

func newMockStore() *mockStore {
	return &mockStore{
		leaders:    make(map[string]*models.Leader),
		insertErrs: make(map[string]error),
	}
}

func (m *mockStore) InsertCertificate(cert *models.Certificate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.insertErrs[cert.RecipientName]; ok {
		return err
	}
	for _, c := range m.certs {
		if c.UniqueID == cert.UniqueID {
			return fmt.Errorf("%w: %s", apperror.ErrDuplicateID, cert.UniqueID)
		}
	}
	stored := *cert
	m.certs = append(m.certs, &stored)
	return nil
}

func (m *mockStore) FindCertificateByUniqueID(uniqueID string) (*models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.certs {
		if c.UniqueID == uniqueID {
			found := *c
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: certificate %s", apperror.ErrNotFound, uniqueID)
}

func (m *mockStore) ListCertificatesByIssuer(ocid string, page, limit int) ([]models.Certificate, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastPage = page
	m.lastLimit = limit

	out := []models.Certificate{}
	for _, c := range m.certs {
		if c.GeneratedBy == ocid {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockStore) GetLeader(ocid string) (*models.Leader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.leaders[ocid]; ok {
		found := *l
		return &found, nil
	}
	return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, ocid)
}

func (m *mockStore) CreateLeader(leader *models.Leader) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *leader
	m.leaders[leader.OCID] = &stored
	return nil
}

func (m *mockStore) UpdateLeaderName(ocid, name string) (*models.Leader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.leaders[ocid]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, ocid)
	}
	l.Name = name
	updated := *l
	return &updated, nil
}

func (m *mockStore) SetLeaderOrgNameOnce(ocid, orgName string) (*models.Leader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.leaders[ocid]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, ocid)
	}
	if l.OrgName != nil {
		return nil, fmt.Errorf("%w", apperror.ErrOrgAlreadySet)
	}
	value := orgName
	l.OrgName = &value
	updated := *l
	return &updated, nil
}

func (m *mockStore) certificateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.certs)
}

type sentEmail struct {
	toEmail       string
	toName        string
	eventName     string
	uniqueID      string
	validationURL string
	pdfURL        *string
}

type mockMailer struct {
	err error
	ch  chan sentEmail
}

func newMockMailer() *mockMailer {
	return &mockMailer{ch: make(chan sentEmail, 16)}
}

func (m *mockMailer) SendCertificateEmail(toEmail, toName, eventName, uniqueID, validationURL string, pdfURL *string) error {
	m.ch <- sentEmail{toEmail, toName, eventName, uniqueID, validationURL, pdfURL}
	return m.err
}

// waitForEmail blocks until the fire-and-forget notification goroutine
// delivers, or fails the test.
func (m *mockMailer) waitForEmail(t *testing.T) sentEmail {
	t.Helper()
	select {
	case e := <-m.ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for certificate email")
		return sentEmail{}
	}
}

func strPtr(s string) *string {
	return &s
}

func seedLeader(store *mockStore, ocid, name string, orgName *string) {
	store.leaders[ocid] = &models.Leader{
		OCID:     ocid,
		Name:     name,
		Email:    "leader@example.com",
		OrgName:  orgName,
		CanLogin: true,
	}
}

func testIdentity(ocid string) models.ResolvedIdentity {
	return models.ResolvedIdentity{
		SubjectID: ocid,
		Email:     "leader@example.com",
		Name:      "Test Leader",
		Username:  "leader",
		Groups:    []string{"GDGoC-Admins"},
	}
}
