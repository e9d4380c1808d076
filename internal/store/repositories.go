package store

import "github.com/MKhiriev/go-todo-keeper/internal/logger"

// Repositories groups every repository built over one database connection.
type Repositories struct {
	UserRepository UserRepository
	TodoRepository TodoRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(db, log),
		TodoRepository: NewTodoRepository(db, log),
	}
}
