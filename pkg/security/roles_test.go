package security

import "testing"

func TestCheckRoleEmptyRequirementAllowsAnyone(t *testing.T) {
	if !CheckRole(nil, nil) {
		t.Fatal("no role requirement should pass without a user")
	}
	if !CheckRole(&User{Role: "member"}, nil) {
		t.Fatal("no role requirement should pass for any user")
	}
}

func TestCheckRoleDeniesNilUser(t *testing.T) {
	if CheckRole(nil, []string{"admin"}) {
		t.Fatal("role requirement must deny an absent user")
	}
}

func TestCheckRoleMembership(t *testing.T) {
	admin := &User{Role: "admin"}
	member := &User{Role: "member"}

	if !CheckRole(admin, []string{"admin", "steward"}) {
		t.Fatal("admin should pass an admin/steward gate")
	}
	if CheckRole(member, []string{"admin", "steward"}) {
		t.Fatal("member must not pass an admin/steward gate")
	}
}
