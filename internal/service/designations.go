package service

import (
	"context"

	"crub-courses/internal/aggregate"
	"crub-courses/internal/cache"
	"crub-courses/internal/domain"
)

// Designations returns every designation with its assigned courses linked.
func (s *Service) Designations(ctx context.Context) (domain.DesignationSet, error) {
	snap, err := s.load(ctx, needAll)
	if err != nil {
		return domain.DesignationSet{}, err
	}
	return aggregate.LinkDesignations(snap.designations, snap.assignments, snap.details, s.log), nil
}

func (s *Service) Designation(ctx context.Context, desig string) (domain.Designation, error) {
	set, err := s.Designations(ctx)
	if err != nil {
		return domain.Designation{}, err
	}
	return aggregate.FindDesignation(set.Designations, desig)
}

// Profiles groups the linked designations by person.
func (s *Service) Profiles(ctx context.Context) (domain.ProfileSet, error) {
	set, err := s.Designations(ctx)
	if err != nil {
		return domain.ProfileSet{}, err
	}
	return aggregate.Profiles(set.Designations), nil
}

// Profile finds a person by case-insensitive partial name.
func (s *Service) Profile(ctx context.Context, name string) (domain.PersonProfile, error) {
	set, err := s.Profiles(ctx)
	if err != nil {
		return domain.PersonProfile{}, err
	}
	return aggregate.FindProfile(set.Profiles, name)
}

func (s *Service) SearchProfiles(ctx context.Context, partial string) ([]domain.PersonProfile, error) {
	set, err := s.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.SearchProfiles(set.Profiles, partial), nil
}

// Department is one department group with its totals.
type Department struct {
	domain.DepartmentStats
	Designations []domain.Designation `json:"designaciones"`
}

func (s *Service) departments(ctx context.Context) (map[string][]domain.Designation, error) {
	set, err := s.Designations(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.GroupByDepartment(set.Designations), nil
}

// Departments summarizes every department, sorted by name.
func (s *Service) Departments(ctx context.Context) ([]domain.DepartmentStats, error) {
	groups, err := s.departments(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.DepartmentSummary(groups), nil
}

func (s *Service) Department(ctx context.Context, name string) (Department, error) {
	groups, err := s.departments(ctx)
	if err != nil {
		return Department{}, err
	}
	key, ds, err := aggregate.FindDepartment(groups, name)
	if err != nil {
		return Department{}, err
	}
	stats := aggregate.DepartmentSummary(map[string][]domain.Designation{key: ds})
	return Department{DepartmentStats: stats[0], Designations: ds}, nil
}

// AdminStats is the payload of the admin statistics route.
type AdminStats struct {
	Cache   cache.Status        `json:"cache"`
	Sources domain.SourceStatus `json:"sources"`
}

func (s *Service) AdminStats(ctx context.Context) (AdminStats, error) {
	st, err := s.Status(ctx)
	if err != nil {
		return AdminStats{}, err
	}
	return AdminStats{Cache: s.memo.Status(), Sources: st}, nil
}
