package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComplaint(t *testing.T) {
	c, err := NewComplaint(ComplaintDraft{
		RestaurantName: "Taco Stand",
		Title:          "Cold food",
		Description:    "Tacos arrived cold",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultComplainant, c.UserName)
	assert.Equal(t, AnonymousUser, c.UserID)
	assert.Equal(t, ComplaintOpen, c.Status)

	_, err = NewComplaint(ComplaintDraft{Title: "x", Description: "y"}, "u1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseComplaintStatus(t *testing.T) {
	s, err := ParseComplaintStatus("in_review")
	require.NoError(t, err)
	assert.Equal(t, ComplaintInReview, s)

	_, err = ParseComplaintStatus("closed")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComplaintVisibleTo(t *testing.T) {
	c := &Complaint{UserID: "u1"}
	assert.True(t, c.VisibleTo("u1", RoleUser))
	assert.False(t, c.VisibleTo("u2", RoleUser))
	assert.True(t, c.VisibleTo("u2", RoleAdmin))
	assert.True(t, c.VisibleTo("", RoleSuperAdmin))
}
