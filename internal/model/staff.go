package model

import (
	"fmt"
	"strings"
)

// Role is the job category of a staff member.
type Role string

const (
	RoleDoctor    Role = "doctor"
	RoleNurse     Role = "nurses"
	RoleParamedic Role = "paramedics"
	RoleJanitor   Role = "janitors"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RoleNurse, RoleParamedic, RoleJanitor:
		return true
	}
	return false
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role: %q (valid: doctor, nurses, paramedics, janitors)", s)
	}
	return r, nil
}

// StaffRecord describes one member of staff held in the staff
// directory.  The ID is the directory key and is never negative.
//
// Fields:
//  ID         – unique staff identifier.
//  Name       – display name.
//  Role       – job category.
//  Department – department the member works in.
//  Shift      – free-form shift description (e.g. "night").
type StaffRecord struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
	Shift      string `json:"shift"`
}
