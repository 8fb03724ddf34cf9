package models

import (
	"time"
)

// RequestStatus represents the status of a mentorship request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
	StatusMessaged RequestStatus = "messaged"
)

// IsTerminal returns true if no further transitions are allowed from the
// status. Further chat after accepted/messaged happens in the chat module and
// never re-enters pending.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusMessaged
}

// CanTransitionTo checks if a status transition is valid
func (s RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	switch s {
	case StatusPending:
		return newStatus == StatusAccepted || newStatus == StatusRejected || newStatus == StatusMessaged
	case StatusAccepted:
		// An accepted request may still get a written response
		return newStatus == StatusMessaged
	default:
		return false
	}
}

// MentorshipRequest is a student's request to an alumni mentor. Names and
// avatars are denormalized at write time; they go stale if the author later
// renames, which is the accepted trade-off.
type MentorshipRequest struct {
	ID              string        `bson:"_id" json:"id"`
	StudentID       string        `bson:"studentId" json:"studentId"`
	StudentName     string        `bson:"studentName" json:"studentName"`
	StudentAvatar   string        `bson:"studentAvatar,omitempty" json:"studentAvatar,omitempty"`
	AlumniID        string        `bson:"alumniId" json:"alumniId"`
	AlumniName      string        `bson:"alumniName" json:"alumniName"`
	AlumniAvatar    string        `bson:"alumniAvatar,omitempty" json:"alumniAvatar,omitempty"`
	Message         string        `bson:"message" json:"message"`
	StudentGoals    string        `bson:"studentGoals,omitempty" json:"studentGoals,omitempty"`
	Status          RequestStatus `bson:"status" json:"status"`
	ResponseMessage string        `bson:"responseMessage,omitempty" json:"responseMessage,omitempty"`
	RequestedAt     time.Time     `bson:"requestedAt" json:"requestedAt"`
	RespondedAt     *time.Time    `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
}

// CreateMentorshipRequestPayload is the payload for creating a request
type CreateMentorshipRequestPayload struct {
	AlumniID string `json:"alumniId" binding:"required"`
	Message  string `json:"message" binding:"required,max=2000"`
	Goals    string `json:"goals" binding:"max=2000"`
}

// UpdateMentorshipStatusPayload is the payload for responding to a request
type UpdateMentorshipStatusPayload struct {
	Status  RequestStatus `json:"status" binding:"required,oneof=accepted rejected messaged"`
	Message string        `json:"message" binding:"max=2000"` // persisted when status is messaged
}

// MentorshipRequestsResponse is the response for listing requests
type MentorshipRequestsResponse struct {
	Requests []MentorshipRequest `json:"requests"`
	Total    int                 `json:"total"`
}
