package pgsql

import (
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewSlotStore returns the postgres slot store.
func NewSlotStore(dbPool *pgxpool.Pool) portsrepo.SlotStore {
	return newPgxSlotRepository(dbPool)
}

// NewUserRepository returns the postgres account repository.
func NewUserRepository(dbPool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return newPgxUserRepository(dbPool)
}
