package controllers

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/ibam-church/membership/models"
)

// Test fixture data for use in tests

// MockAdmin creates an active admin whose password is "secret123".
func MockAdmin() models.AdminUser {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	return models.AdminUser{
		Admin_User_ID: 1,
		Email:         "secretaria@ibam.org",
		Password:      string(hashed),
		Name:          "Secretaria",
		Is_Active:     true,
		Created_At:    time.Now(),
	}
}

func adminRows(admin models.AdminUser) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"admin_user_id", "email", "password", "name", "is_active", "created_at"}).
		AddRow(admin.Admin_User_ID, admin.Email, admin.Password, admin.Name, admin.Is_Active, admin.Created_At)
}

// scenarioAPayload is a baptized registrant who asks for nothing else.
func scenarioAPayload() map[string]interface{} {
	return map[string]interface{}{
		"form": map[string]interface{}{
			"name":           "Maria Silva",
			"phone":          "(69) 99123-4567",
			"birth_date":     "1990-05-10",
			"baptized":       true,
			"zone":           "Centro",
			"address_opt_in": false,
			"wants_visit":    false,
			"wants_ministry": false,
			"wants_cell":     false,
			"consent_truth":  true,
			"consent_data":   true,
		},
		"selectedMinistries": []interface{}{},
		"selectedCell":       nil,
	}
}

// expectDirectorySnapshot queues the reads of one directory refresh.
// Ana (Centro, born in May) asked for a visit and serves in Louvor; Bruno
// (Zona Sul) is not baptized and wants to talk about it.
func expectDirectorySnapshot(mock sqlmock.Sqlmock) {
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "people"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "phone", "birth_date", "zone", "baptized", "baptism_contact",
			"address_opt_in", "wants_visit", "street", "house_number", "neighborhood", "city",
			"wants_ministry", "wants_cell", "declaration_true", "consent_internal", "created_at",
		}).
			AddRow("p-ana", "Ana Souza", "69991234567", "1995-05-20", "Centro", true, nil,
				true, true, "Rua A", "10", "Centro", "Porto Velho",
				false, false, true, true, created).
			AddRow("p-bruno", "Bruno Lima", "69998765432", "1988-11-02", "Zona Sul", false, true,
				false, false, nil, nil, nil, nil,
				false, true, true, true, created))
	mock.ExpectQuery(`SELECT .* FROM "ministries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Louvor"))
	mock.ExpectQuery(`SELECT .* FROM "cells"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow(int64(7), "Célula Centro", true))
	mock.ExpectQuery(`SELECT .* FROM "people_ministries"`).
		WillReturnRows(sqlmock.NewRows([]string{"person_id", "ministry_id"}).AddRow("p-ana", int64(1)))
	mock.ExpectQuery(`SELECT .* FROM "people_cells"`).
		WillReturnRows(sqlmock.NewRows([]string{"person_id", "cell_id"}))
	mock.ExpectCommit()
}
