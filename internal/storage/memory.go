package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryTaskRepository is an in-memory task repository for tests and
// single-process development. Safe for concurrent use.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]Task
}

// NewMemoryTaskRepository creates an empty in-memory task repository.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[uuid.UUID]Task)}
}

// ListByUser returns all tasks owned by the given principal.
func (r *MemoryTaskRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []Task{}
	for _, task := range r.tasks {
		if task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// Create inserts a task.
func (r *MemoryTaskRepository) Create(_ context.Context, task Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID] = task
	return nil
}

// Update applies the mutable fields and returns the updated task, or
// ErrNotFound when the id is absent. Zero-valued fields are left untouched,
// except ShortDescription which is always written, matching the partial
// $set the mongo repository issues with its omitempty document tags.
func (r *MemoryTaskRepository) Update(_ context.Context, id uuid.UUID, upd TaskUpdate) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}

	task.ShortDescription = upd.ShortDescription
	if upd.LongDescription != "" {
		task.LongDescription = upd.LongDescription
	}
	if upd.Deadline != nil {
		task.Deadline = upd.Deadline
	}
	if upd.Priority != "" {
		task.Priority = upd.Priority
	}
	if upd.AssignedBy != "" {
		task.AssignedBy = upd.AssignedBy
	}

	r.tasks[id] = task
	return task, nil
}

// Delete removes the task idempotently.
func (r *MemoryTaskRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tasks, id)
	return nil
}

// MemoryAccountRepository is an in-memory account repository for tests and
// single-process development. Safe for concurrent use.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]Account
}

// NewMemoryAccountRepository creates an empty in-memory account repository.
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[uuid.UUID]Account)}
}

// List returns all accounts.
func (r *MemoryAccountRepository) List(_ context.Context) ([]Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := []Account{}
	for _, account := range r.accounts {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Create inserts an account.
func (r *MemoryAccountRepository) Create(_ context.Context, account Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts[account.ID] = account
	return nil
}

// Delete removes the account, or fails with ErrNotFound when the id is absent.
func (r *MemoryAccountRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}
