package repositories

// RepositoryProvider holds the repositories needed by services.
// UserRepo is only set when accounts live in postgres.
type RepositoryProvider struct {
	SlotStore SlotStore
	UserRepo  UserRepositoryFacade
}
