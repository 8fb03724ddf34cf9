package services

import (
	"context"
	"strings"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
)

// DirectoryService serves the alumni directory from the cached snapshot,
// applying filters in memory.
type DirectoryService struct {
	directory   DirectoryProvider
	profileRepo ProfileRepositoryInterface
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(directory DirectoryProvider, profileRepo ProfileRepositoryInterface) *DirectoryService {
	return &DirectoryService{
		directory:   directory,
		profileRepo: profileRepo,
	}
}

// ListAlumni returns alumni matching the filter. Clauses combine with AND;
// within the skills clause any shared skill matches. An empty filter returns
// the full directory.
func (s *DirectoryService) ListAlumni(ctx context.Context, filter models.DirectoryFilter) ([]*models.Profile, error) {
	alumni, err := s.directory.Get(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Profile, 0, len(alumni))
	for _, p := range alumni {
		if matchesFilter(p, filter) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Industries lists the distinct industries present across alumni profiles
func (s *DirectoryService) Industries(ctx context.Context) ([]string, error) {
	return s.profileRepo.DistinctIndustries(ctx)
}

func matchesFilter(p *models.Profile, filter models.DirectoryFilter) bool {
	if p.Alumni == nil {
		return false
	}

	if filter.Industry != "" && !strings.EqualFold(p.Alumni.Industry, filter.Industry) {
		return false
	}

	// Skills match any-of: one shared skill is enough
	if len(filter.Skills) > 0 && !hasAnySkill(p.Alumni.Skills, filter.Skills) {
		return false
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		name := strings.ToLower(p.Name)
		company := strings.ToLower(p.Alumni.Company)
		if !strings.Contains(name, needle) && !strings.Contains(company, needle) {
			return false
		}
	}

	return true
}

func hasAnySkill(skills, wanted []string) bool {
	for _, want := range wanted {
		for _, s := range skills {
			if strings.EqualFold(s, want) {
				return true
			}
		}
	}
	return false
}
