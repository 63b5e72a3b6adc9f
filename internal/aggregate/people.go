package aggregate

import (
	"sort"
	"strings"

	"crub-courses/internal/domain"
)

// NoName groups designations whose person name is blank.
const NoName = "SIN NOMBRE"

// GroupByPerson groups designations by trimmed person name, sorted by name.
//
// The profile's personal fields come from the designation with the longest Correos
// value (first one on ties). That is a completeness heuristic, not a guarantee the
// record is the most recent one.
func GroupByPerson(designations []domain.Designation) []domain.PersonProfile {
	byName := make(map[string][]domain.Designation)
	for _, d := range designations {
		name := strings.TrimSpace(d.PersonName)
		if name == "" {
			name = NoName
		}
		byName[name] = append(byName[name], d)
	}

	profiles := make([]domain.PersonProfile, 0, len(byName))
	for name, ds := range byName {
		primary := ds[0]
		for _, d := range ds[1:] {
			if len(d.Emails) > len(primary.Emails) {
				primary = d
			}
		}
		p := domain.PersonProfile{
			PersonName:        name,
			FileNumber:        primary.FileNumber,
			NationalID:        primary.NationalID,
			CUIL:              primary.CUIL,
			Sex:               primary.Sex,
			BirthDate:         primary.BirthDate,
			Emails:            primary.Emails,
			TotalDesignations: len(ds),
			Designations:      ds,
		}
		for _, d := range ds {
			p.TotalCourses += len(d.Courses)
		}
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].PersonName < profiles[j].PersonName
	})
	return profiles
}

// Profiles wraps GroupByPerson with its totals.
func Profiles(designations []domain.Designation) domain.ProfileSet {
	set := domain.ProfileSet{Profiles: GroupByPerson(designations)}
	set.TotalPeople = len(set.Profiles)
	for _, p := range set.Profiles {
		set.TotalDesignations += p.TotalDesignations
		set.TotalAssigned += p.TotalCourses
	}
	return set
}

// SearchProfiles returns the profiles whose name contains partial, ignoring case.
func SearchProfiles(profiles []domain.PersonProfile, partial string) []domain.PersonProfile {
	q := strings.ToLower(strings.TrimSpace(partial))
	out := make([]domain.PersonProfile, 0)
	for _, p := range profiles {
		if strings.Contains(strings.ToLower(p.PersonName), q) {
			out = append(out, p)
		}
	}
	return out
}

// FindProfile returns the first profile matching name as a case-insensitive substring.
func FindProfile(profiles []domain.PersonProfile, name string) (domain.PersonProfile, error) {
	if strings.TrimSpace(name) != "" {
		if found := SearchProfiles(profiles, name); len(found) > 0 {
			return found[0], nil
		}
	}
	return domain.PersonProfile{}, notFound("person", name)
}
