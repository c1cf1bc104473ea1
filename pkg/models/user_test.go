package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUserName(t *testing.T) {
	valid := []string{"wanjiku", "duka_lesedi", "a.b.c", "abc", "A1234567890123456789"}
	for _, name := range valid {
		assert.True(t, ValidUserName(name), name)
	}

	invalid := []string{"", "ab", "has space", "too-dashy", "way_too_long_for_a_user_name", "emoji😀"}
	for _, name := range invalid {
		assert.False(t, ValidUserName(name), name)
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAgent))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}

func TestProductPubliclyVisible(t *testing.T) {
	assert.True(t, (&Product{ReviewStatus: ReviewApproved, IsActive: true}).PubliclyVisible())
	assert.False(t, (&Product{ReviewStatus: ReviewApproved, IsActive: false}).PubliclyVisible())
	assert.False(t, (&Product{ReviewStatus: ReviewPending, IsActive: true}).PubliclyVisible())
	assert.False(t, (&Product{ReviewStatus: ReviewRejected, IsActive: true}).PubliclyVisible())
}
