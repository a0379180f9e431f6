package schemas

import (
	"strings"

	"fleet/src/models"
	"fleet/src/utils"
)

var roles = map[string]bool{utils.RoleAdmin: true, utils.RoleStaff: true, utils.RoleMechanic: true}

type RegisterRequest struct {
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r RegisterRequest) Validate() error {
	v := utils.NewValidationError()
	v.Require("fullname", r.Fullname)
	v.Require("username", r.Username)
	if len(r.Password) < 6 {
		v.Add("password", "must be at least 6 characters")
	}
	if r.Role != "" && !roles[strings.ToUpper(r.Role)] {
		v.Add("role", "must be one of ADMIN, STAFF, MECHANIC")
	}
	return v.OrNil()
}

type UpdateUserRequest struct {
	Fullname *string `json:"fullname"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

func (r UpdateUserRequest) Validate() error {
	v := utils.NewValidationError()
	if r.Fullname != nil {
		v.Require("fullname", *r.Fullname)
	}
	if r.Username != nil {
		v.Require("username", *r.Username)
	}
	if r.Password != nil && len(*r.Password) < 6 {
		v.Add("password", "must be at least 6 characters")
	}
	if r.Role != nil && !roles[strings.ToUpper(*r.Role)] {
		v.Add("role", "must be one of ADMIN, STAFF, MECHANIC")
	}
	return v.OrNil()
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	v := utils.NewValidationError()
	v.Require("username", r.Username)
	v.Require("password", r.Password)
	return v.OrNil()
}

type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        models.User `json:"user"`
}

type DriverRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
}

func (r DriverRequest) Validate() error {
	v := utils.NewValidationError()
	v.Require("name", r.Name)
	return v.OrNil()
}
