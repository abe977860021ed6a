package domain_test

import (
	"testing"

	"github.com/Gpober/pdsLogix-sub001/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, ok := domain.ParseRole("reviewer")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleReviewer, role)

	_, ok = domain.ParseRole("superuser")
	assert.False(t, ok)

	_, ok = domain.ParseRole("")
	assert.False(t, ok)
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, domain.RoleLocation.Can(domain.CapSubmitPayroll))
	assert.False(t, domain.RoleLocation.Can(domain.CapReviewPayroll))

	assert.True(t, domain.RoleReviewer.Can(domain.CapReviewPayroll))
	assert.False(t, domain.RoleReviewer.Can(domain.CapSubmitPayroll))

	assert.True(t, domain.RoleAdmin.Can(domain.CapSubmitPayroll))
	assert.True(t, domain.RoleAdmin.Can(domain.CapReviewPayroll))
	assert.True(t, domain.RoleAdmin.Can(domain.CapManageStaff))

	var unknown domain.Role = "bogus"
	assert.False(t, unknown.Can(domain.CapReadPayroll))
}
