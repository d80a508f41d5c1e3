package models

import "time"

type AdminUser struct {
	Admin_User_ID int       `json:"adminUserId" goqu:"skipinsert"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	Name          string    `json:"name"`
	Is_Active     bool      `json:"isActive"`
	Created_At    time.Time `json:"createdAt" goqu:"skipinsert"`
}

type AdminLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
