package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
)

func directoryFixture() []*models.Profile {
	return []*models.Profile{
		{
			ID:   "a-1",
			Name: "Grace Hopper",
			Role: models.RoleAlumni,
			Alumni: &models.AlumniProfile{
				Company:  "Navy Labs",
				Industry: "Software",
				Skills:   []string{"Go", "Compilers"},
			},
		},
		{
			ID:   "a-2",
			Name: "Ada Lovelace",
			Role: models.RoleAlumni,
			Alumni: &models.AlumniProfile{
				Company:  "Analytical Engines",
				Industry: "Hardware",
				Skills:   []string{"Mathematics"},
			},
		},
		{
			ID:   "a-3",
			Name: "Linus Tech",
			Role: models.RoleAlumni,
			Alumni: &models.AlumniProfile{
				Company:  "Kernel Co",
				Industry: "software",
				Skills:   []string{"go", "Operating Systems"},
			},
		},
	}
}

func TestListAlumni_NoFilterReturnsAll(t *testing.T) {
	directory := new(MockDirectoryProvider)
	svc := services.NewDirectoryService(directory, new(MockProfileRepository))

	directory.On("Get", mock.Anything).Return(directoryFixture(), nil)

	alumni, err := svc.ListAlumni(context.Background(), models.DirectoryFilter{})
	assert.NoError(t, err)
	assert.Len(t, alumni, 3)
}

func TestListAlumni_IndustryCaseInsensitive(t *testing.T) {
	directory := new(MockDirectoryProvider)
	svc := services.NewDirectoryService(directory, new(MockProfileRepository))

	directory.On("Get", mock.Anything).Return(directoryFixture(), nil)

	alumni, err := svc.ListAlumni(context.Background(), models.DirectoryFilter{Industry: "SOFTWARE"})
	assert.NoError(t, err)
	assert.Len(t, alumni, 2)
}

func TestListAlumni_SkillsMatchAny(t *testing.T) {
	directory := new(MockDirectoryProvider)
	svc := services.NewDirectoryService(directory, new(MockProfileRepository))

	directory.On("Get", mock.Anything).Return(directoryFixture(), nil)

	// One shared skill is enough; nobody holds "Quantum"
	alumni, err := svc.ListAlumni(context.Background(), models.DirectoryFilter{
		Skills: []string{"Mathematics", "Quantum"},
	})
	assert.NoError(t, err)
	assert.Len(t, alumni, 1)
	assert.Equal(t, "Ada Lovelace", alumni[0].Name)

	// Skill matching stays case-insensitive
	goers, err := svc.ListAlumni(context.Background(), models.DirectoryFilter{
		Skills: []string{"GO"},
	})
	assert.NoError(t, err)
	assert.Len(t, goers, 2)
}

func TestListAlumni_SearchNameOrCompany(t *testing.T) {
	directory := new(MockDirectoryProvider)
	svc := services.NewDirectoryService(directory, new(MockProfileRepository))

	directory.On("Get", mock.Anything).Return(directoryFixture(), nil)

	byName, err := svc.ListAlumni(context.Background(), models.DirectoryFilter{Search: "lovelace"})
	assert.NoError(t, err)
	assert.Len(t, byName, 1)

	byCompany, err := svc.ListAlumni(context.Background(), models.DirectoryFilter{Search: "kernel"})
	assert.NoError(t, err)
	assert.Len(t, byCompany, 1)
	assert.Equal(t, "Linus Tech", byCompany[0].Name)
}

func TestListAlumni_CombinedFilters(t *testing.T) {
	directory := new(MockDirectoryProvider)
	svc := services.NewDirectoryService(directory, new(MockProfileRepository))

	directory.On("Get", mock.Anything).Return(directoryFixture(), nil)

	alumni, err := svc.ListAlumni(context.Background(), models.DirectoryFilter{
		Industry: "Software",
		Skills:   []string{"go"},
		Search:   "linus",
	})
	assert.NoError(t, err)
	assert.Len(t, alumni, 1)
	assert.Equal(t, "Linus Tech", alumni[0].Name)
}

func TestIndustries(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	svc := services.NewDirectoryService(new(MockDirectoryProvider), profileRepo)

	profileRepo.On("DistinctIndustries", mock.Anything).Return([]string{"Software", "Hardware"}, nil)

	industries, err := svc.Industries(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"Software", "Hardware"}, industries)
}
