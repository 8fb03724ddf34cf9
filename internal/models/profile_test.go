package models_test

import (
	"testing"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestProfile_Validate(t *testing.T) {
	student := &models.StudentProfile{College: "State University", Year: 3}
	alumni := &models.AlumniProfile{JobTitle: "Engineer", Company: "Acme", Industry: "Technology"}

	tests := []struct {
		name    string
		profile models.Profile
		valid   bool
	}{
		{"student with student variant", models.Profile{Role: models.RoleStudent, Student: student}, true},
		{"alumni with alumni variant", models.Profile{Role: models.RoleAlumni, Alumni: alumni}, true},
		{"unset with no variant", models.Profile{Role: models.RoleUnset}, true},
		{"admin with no variant", models.Profile{Role: models.RoleAdmin}, true},
		{"student missing variant", models.Profile{Role: models.RoleStudent}, false},
		{"student with both variants", models.Profile{Role: models.RoleStudent, Student: student, Alumni: alumni}, false},
		{"alumni with student variant", models.Profile{Role: models.RoleAlumni, Student: student}, false},
		{"unset with variant", models.Profile{Role: models.RoleUnset, Alumni: alumni}, false},
		{"unknown role", models.Profile{Role: models.Role("wizard")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRole_IsSelectable(t *testing.T) {
	assert.True(t, models.RoleStudent.IsSelectable())
	assert.True(t, models.RoleAlumni.IsSelectable())
	assert.False(t, models.RoleAdmin.IsSelectable())
	assert.False(t, models.RoleUnset.IsSelectable())
}
