package aggregate

import (
	"strings"

	"go.uber.org/zap"

	"crub-courses/internal/domain"
)

// MatchCount reports how many targets an enrichment pass attached a record to.
type MatchCount struct {
	Matched int `json:"matched"`
	Total   int `json:"total"`
}

// Rate is Matched as a percentage of Total.
func (m MatchCount) Rate() float64 {
	return percent(m.Matched, m.Total)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// DesignationIndex maps D Desig to the designation. Entries point into the slice
// the index was built from; on duplicate keys the last record wins.
func DesignationIndex(designations []domain.Designation) map[string]*domain.Designation {
	idx := make(map[string]*domain.Designation, len(designations))
	for i := range designations {
		if k := strings.TrimSpace(designations[i].Desig); k != "" {
			idx[k] = &designations[i]
		}
	}
	return idx
}

// DetailIndex maps cod_guarani to the detail. Last record wins on duplicates.
func DetailIndex(details []domain.Detail) map[string]*domain.Detail {
	idx := make(map[string]*domain.Detail, len(details))
	for i := range details {
		if k := strings.TrimSpace(details[i].CodGuarani); k != "" {
			idx[k] = &details[i]
		}
	}
	return idx
}

// EnrichFaculty attaches each team member's designation by Desig. Members without a
// match keep a nil Faculty. A nil designations slice means the source was not loaded;
// the pass is skipped.
func EnrichFaculty(courses []domain.Course, designations []domain.Designation, log *zap.Logger) MatchCount {
	log = orNop(log).With(zap.String("component", "aggregate"))

	var mc MatchCount
	for _, c := range courses {
		mc.Total += len(c.Team)
	}
	if designations == nil {
		log.Warn("designations not available, skipping faculty enrichment")
		return mc
	}

	idx := DesignationIndex(designations)
	for i := range courses {
		team := courses[i].Team
		for j := range team {
			d, ok := idx[strings.TrimSpace(team[j].Desig)]
			if !ok {
				team[j].Faculty = nil
				continue
			}
			team[j].Faculty = d
			mc.Matched++
		}
	}
	log.Debug("faculty enrichment", zap.Int("matched", mc.Matched), zap.Int("total", mc.Total))
	return mc
}

// EnrichDetails attaches the course detail whose cod_guarani equals the course code.
func EnrichDetails(courses []domain.Course, details []domain.Detail, log *zap.Logger) MatchCount {
	log = orNop(log).With(zap.String("component", "aggregate"))

	mc := MatchCount{Total: len(courses)}
	if details == nil {
		log.Warn("course details not available, skipping detail enrichment")
		return mc
	}

	idx := DetailIndex(details)
	for i := range courses {
		d, ok := idx[courses[i].Code]
		if !ok {
			courses[i].Detail = nil
			continue
		}
		courses[i].Detail = d
		mc.Matched++
	}
	log.Debug("detail enrichment", zap.Int("matched", mc.Matched), zap.Int("total", mc.Total))
	return mc
}

// LinkDesignations builds the designation-centric view: every designation gets the
// assignments that reference its D Desig, each with its course detail when known.
// The input designations are not modified.
func LinkDesignations(designations []domain.Designation, assignments []domain.Assignment, details []domain.Detail, log *zap.Logger) domain.DesignationSet {
	log = orNop(log).With(zap.String("component", "aggregate"))

	byDesig := make(map[string][]domain.Assignment)
	for _, a := range assignments {
		if k := strings.TrimSpace(a.Desig); k != "" {
			byDesig[k] = append(byDesig[k], a)
		}
	}
	detailIdx := DetailIndex(details)

	set := domain.DesignationSet{Designations: make([]domain.Designation, 0, len(designations))}
	for _, d := range designations {
		linked := byDesig[strings.TrimSpace(d.Desig)]
		d.Courses = make([]domain.AssignedCourse, 0, len(linked))
		for _, a := range linked {
			d.Courses = append(d.Courses, domain.AssignedCourse{
				Assignment: a,
				Detail:     detailIdx[strings.TrimSpace(a.CourseCode)],
			})
		}
		set.TotalAssigned += len(d.Courses)
		set.Designations = append(set.Designations, d)
	}
	set.TotalDesignations = len(set.Designations)

	log.Debug("designations linked",
		zap.Int("designations", set.TotalDesignations),
		zap.Int("assigned", set.TotalAssigned))
	return set
}

// FindDesignation returns the designation with the given D Desig.
func FindDesignation(designations []domain.Designation, desig string) (domain.Designation, error) {
	desig = strings.TrimSpace(desig)
	for _, d := range designations {
		if strings.TrimSpace(d.Desig) == desig {
			return d, nil
		}
	}
	return domain.Designation{}, notFound("designation", desig)
}
