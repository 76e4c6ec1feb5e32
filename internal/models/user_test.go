package models

import "testing"

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"owner role", RoleOwner, true},
		{"mechanic role", RoleMechanic, true},
		{"viewer role", RoleViewer, true},
		{"invalid role", "admin", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidRole(tt.role)
			if result != tt.expected {
				t.Errorf("IsValidRole(%s) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestUser_HasPermission(t *testing.T) {
	owner := &User{Role: RoleOwner}
	mechanic := &User{Role: RoleMechanic}
	viewer := &User{Role: RoleViewer}

	tests := []struct {
		name     string
		user     *User
		action   string
		expected bool
	}{
		{"owner can manage vehicles", owner, "manage_vehicles", true},
		{"owner can delete records", owner, "delete_record", true},

		{"mechanic can create records", mechanic, "create_record", true},
		{"mechanic can view predictions", mechanic, "view_predictions", true},
		{"mechanic cannot manage vehicles", mechanic, "manage_vehicles", false},

		{"viewer can view alerts", viewer, "view_alerts", true},
		{"viewer cannot create records", viewer, "create_record", false},
		{"viewer cannot delete records", viewer, "delete_record", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.user.HasPermission(tt.action)
			if result != tt.expected {
				t.Errorf("User with role %s HasPermission(%s) = %v, want %v",
					tt.user.Role, tt.action, result, tt.expected)
			}
		})
	}
}
