package database

import (
	"errors"
	"fmt"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs/apperror"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/models"
	"gorm.io/gorm"
)

// Store is the GORM-backed implementation of services.Store.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InsertCertificate(cert *models.Certificate) error {
	if err := s.db.Create(cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", apperror.ErrDuplicateID, cert.UniqueID)
		}
		return err
	}
	return nil
}

func (s *Store) FindCertificateByUniqueID(uniqueID string) (*models.Certificate, error) {
	var cert models.Certificate
	if err := s.db.Where("unique_id = ?", uniqueID).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: certificate %s", apperror.ErrNotFound, uniqueID)
		}
		return nil, err
	}
	return &cert, nil
}

func (s *Store) ListCertificatesByIssuer(ocid string, page, limit int) ([]models.Certificate, int64, error) {
	var total int64
	if err := s.db.Model(&models.Certificate{}).Where("generated_by = ?", ocid).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	certs := []models.Certificate{}
	err := s.db.Where("generated_by = ?", ocid).
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&certs).Error
	if err != nil {
		return nil, 0, err
	}
	return certs, total, nil
}

func (s *Store) GetLeader(ocid string) (*models.Leader, error) {
	var leader models.Leader
	if err := s.db.Where("ocid = ?", ocid).First(&leader).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, ocid)
		}
		return nil, err
	}
	return &leader, nil
}

func (s *Store) CreateLeader(leader *models.Leader) error {
	return s.db.Create(leader).Error
}

func (s *Store) UpdateLeaderName(ocid, name string) (*models.Leader, error) {
	res := s.db.Model(&models.Leader{}).Where("ocid = ?", ocid).Update("name", name)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, ocid)
	}
	return s.GetLeader(ocid)
}

// SetLeaderOrgNameOnce performs a conditional update so two concurrent
// setters cannot both win: the row only changes while org_name is NULL.
func (s *Store) SetLeaderOrgNameOnce(ocid, orgName string) (*models.Leader, error) {
	res := s.db.Model(&models.Leader{}).
		Where("ocid = ? AND org_name IS NULL", ocid).
		Update("org_name", orgName)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the leader does not exist or the org was already set.
		if _, err := s.GetLeader(ocid); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: organization name cannot be changed once set", apperror.ErrOrgAlreadySet)
	}
	return s.GetLeader(ocid)
}
