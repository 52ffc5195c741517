package services

import (
	"errors"
	"fmt"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs/apperror"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/models"
)

// LeaderService handles leader provisioning and profile updates.
type LeaderService struct {
	store Store
}

func NewLeaderService(store Store) *LeaderService {
	return &LeaderService{store: store}
}

// ProvisionOnLogin returns the leader for the authenticated identity,
// creating the record on first login with org_name unset. The returned bool
// reports whether a new leader was created. Disabled accounts are rejected.
func (s *LeaderService) ProvisionOnLogin(identity models.ResolvedIdentity) (*models.Leader, bool, error) {
	leader, err := s.store.GetLeader(identity.SubjectID)
	if err == nil {
		if !leader.CanLogin {
			return nil, false, fmt.Errorf("%w: your account has been disabled", apperror.ErrAuthorization)
		}
		return leader, false, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, false, err
	}

	name := identity.Name
	if name == "" {
		name = identity.Email
	}

	leader = &models.Leader{
		OCID:     identity.SubjectID,
		Name:     name,
		Email:    identity.Email,
		CanLogin: true,
	}
	if err := s.store.CreateLeader(leader); err != nil {
		return nil, false, err
	}
	return leader, true, nil
}

func (s *LeaderService) Profile(ocid string) (*models.Leader, error) {
	return s.store.GetLeader(ocid)
}

type UpdateProfileRequest struct {
	Name    *string
	OrgName *string
}

// UpdateProfile applies a name change and/or the one-time org_name set.
// org_name transitions NULL -> value exactly once; any later attempt fails
// with apperror.ErrOrgAlreadySet and leaves the stored value unchanged.
func (s *LeaderService) UpdateProfile(ocid string, req UpdateProfileRequest) (*models.Leader, error) {
	if req.Name == nil && req.OrgName == nil {
		return nil, fmt.Errorf("%w: no valid fields to update", apperror.ErrMalformedInput)
	}

	leader, err := s.store.GetLeader(ocid)
	if err != nil {
		return nil, err
	}

	if req.OrgName != nil {
		if leader.OrgName != nil {
			return nil, fmt.Errorf("%w: organization name cannot be changed once set", apperror.ErrOrgAlreadySet)
		}
		if leader, err = s.store.SetLeaderOrgNameOnce(ocid, *req.OrgName); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		if leader, err = s.store.UpdateLeaderName(ocid, *req.Name); err != nil {
			return nil, err
		}
	}

	return leader, nil
}
