package auth

import (
	"testing"
	"time"
)

func TestRolePermissionTable(t *testing.T) {
	cases := []struct {
		role       Role
		permission string
		want       bool
	}{
		{RoleSupervisor, PermRatingsApprove, true},
		{RoleSupervisor, PermRatingsReviewChange, false},
		{RoleAdmin, PermRatingsReviewChange, true},
		{RoleAdmin, PermRatingsApprove, false},
		{RoleAdmin, PermRatingsSubmit, true},
		{RoleSupervisor, PermRatingsSubmit, true},
		{RoleWIS, PermRatingsSubmit, false},
		{RoleWIS, PermEvidenceWrite, true},
		{RoleQC, PermEvidenceWrite, true},
		{RolePC, PermLeaderboardRead, true},
		{RoleSupervisor, PermEvidenceWrite, false},
		{Role("UNKNOWN"), PermGoalsRead, false},
	}

	for _, tc := range cases {
		if got := HasPermission(tc.role, tc.permission); got != tc.want {
			t.Fatalf("HasPermission(%s, %s) = %v, want %v", tc.role, tc.permission, got, tc.want)
		}
	}
}

func TestAllRolesAreValid(t *testing.T) {
	for role := range RolePermissions {
		if !role.Valid() {
			t.Fatalf("role %s in permission table is not valid", role)
		}
	}
	if Role("GUEST").Valid() {
		t.Fatal("expected GUEST to be invalid")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", Name: "Pat", Role: RoleSupervisor}, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != RoleSupervisor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, err := ParseToken("wrong-secret", token); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}
