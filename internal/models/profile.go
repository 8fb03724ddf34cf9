package models

import (
	"fmt"
	"time"
)

// Role is the profile's role in the platform. A profile starts unset and
// selects student or alumni exactly once.
type Role string

const (
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
	RoleAdmin   Role = "admin"
	RoleUnset   Role = "unset"
)

// IsSelectable reports whether a role can be chosen during role selection
func (r Role) IsSelectable() bool {
	return r == RoleStudent || r == RoleAlumni
}

// StudentProfile holds the student-specific part of a profile
type StudentProfile struct {
	College           string   `bson:"college" json:"college"`
	Year              int      `bson:"year" json:"year"`
	AcademicInterests []string `bson:"academicInterests" json:"academicInterests"`
	Goals             string   `bson:"goals" json:"goals"`
}

// AlumniProfile holds the alumni-specific part of a profile
type AlumniProfile struct {
	JobTitle        string   `bson:"jobTitle" json:"jobTitle"`
	Company         string   `bson:"company" json:"company"`
	Skills          []string `bson:"skills" json:"skills"`
	ExperienceYears int      `bson:"experienceYears" json:"experienceYears"`
	Education       string   `bson:"education" json:"education"`
	Industry        string   `bson:"industry" json:"industry"`
}

// Profile is a platform user. The Student/Alumni pointers form a tagged
// variant keyed by Role: exactly the variant matching the role is set, so
// illegal combinations are rejected before any write.
type Profile struct {
	ID        string          `bson:"_id" json:"id"`
	Email     string          `bson:"email" json:"email"`
	Role      Role            `bson:"role" json:"role"`
	Name      string          `bson:"name" json:"name"`
	AvatarURL string          `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt time.Time       `bson:"createdAt" json:"createdAt"`
	Student   *StudentProfile `bson:"studentProfile,omitempty" json:"studentProfile,omitempty"`
	Alumni    *AlumniProfile  `bson:"alumniProfile,omitempty" json:"alumniProfile,omitempty"`
}

// Validate enforces the role/variant invariant
func (p *Profile) Validate() error {
	switch p.Role {
	case RoleStudent:
		if p.Student == nil || p.Alumni != nil {
			return fmt.Errorf("student profile must carry exactly the student variant")
		}
	case RoleAlumni:
		if p.Alumni == nil || p.Student != nil {
			return fmt.Errorf("alumni profile must carry exactly the alumni variant")
		}
	case RoleAdmin, RoleUnset:
		if p.Student != nil || p.Alumni != nil {
			return fmt.Errorf("profile with role %q must not carry a role variant", p.Role)
		}
	default:
		return fmt.Errorf("unknown role %q", p.Role)
	}
	return nil
}

// CreateProfileRequest is the payload for creating a profile
type CreateProfileRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=1,max=120"`
}

// SelectRoleRequest is the payload for the one-shot role selection
type SelectRoleRequest struct {
	Role    Role                 `json:"role" binding:"required,oneof=student alumni"`
	Student *StudentProfileInput `json:"studentProfile,omitempty"`
	Alumni  *AlumniProfileInput  `json:"alumniProfile,omitempty"`
}

// StudentProfileInput is the bindable student variant payload
type StudentProfileInput struct {
	College           string   `json:"college" binding:"required,max=200"`
	Year              int      `json:"year" binding:"required,gt=0"`
	AcademicInterests []string `json:"academicInterests" binding:"max=20,dive,max=60"`
	Goals             string   `json:"goals" binding:"max=2000"`
}

// AlumniProfileInput is the bindable alumni variant payload
type AlumniProfileInput struct {
	JobTitle        string   `json:"jobTitle" binding:"required,max=120"`
	Company         string   `json:"company" binding:"required,max=120"`
	Skills          []string `json:"skills" binding:"max=30,dive,max=60"`
	ExperienceYears int      `json:"experienceYears" binding:"gte=0"`
	Education       string   `json:"education" binding:"max=200"`
	Industry        string   `json:"industry" binding:"max=120"`
}

// UploadAvatarRequest is the payload for an avatar upload
type UploadAvatarRequest struct {
	Image       string `json:"image" binding:"required"` // base64 or data URI
	FileName    string `json:"fileName" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required"`
}

// DirectoryFilter narrows the alumni directory listing. Matching is an
// in-memory scan over the cached directory snapshot.
type DirectoryFilter struct {
	Industry string   `form:"industry"`
	Skills   []string `form:"skills"`
	Search   string   `form:"search"` // matches name or company, case-insensitive
}
