package services

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/ibam-church/membership/models"
)

// RegistrationStore is what the intake path needs from the database.
type RegistrationStore interface {
	InsertPerson(ctx context.Context, person models.Person) error
	InsertPersonMinistries(ctx context.Context, rows []models.PersonMinistry) error
	InsertPersonCell(ctx context.Context, row models.PersonCell) error
	DeletePerson(ctx context.Context, personID string) error
}

type dbRegistrationStore struct {
	db *goqu.Database
}

func NewRegistrationStore(db *goqu.Database) RegistrationStore {
	return &dbRegistrationStore{db: db}
}

func (s *dbRegistrationStore) InsertPerson(ctx context.Context, person models.Person) error {
	_, err := s.db.Insert("people").Rows(person).Executor().ExecContext(ctx)
	return err
}

func (s *dbRegistrationStore) InsertPersonMinistries(ctx context.Context, rows []models.PersonMinistry) error {
	_, err := s.db.Insert("people_ministries").Rows(rows).Executor().ExecContext(ctx)
	return err
}

func (s *dbRegistrationStore) InsertPersonCell(ctx context.Context, row models.PersonCell) error {
	_, err := s.db.Insert("people_cells").Rows(row).Executor().ExecContext(ctx)
	return err
}

func (s *dbRegistrationStore) DeletePerson(ctx context.Context, personID string) error {
	_, err := s.db.Delete("people").Where(goqu.C("id").Eq(personID)).Executor().ExecContext(ctx)
	return err
}
