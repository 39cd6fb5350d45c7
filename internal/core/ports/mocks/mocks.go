// Package mocks holds testify mocks of the ports.
package mocks

import (
	"context"

	"evalportal/internal/core/domain/report"
	"evalportal/internal/core/domain/user"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserRepository) List(ctx context.Context, filter user.Filter) ([]*user.User, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

func (m *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) Stats(ctx context.Context) (user.Stats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(user.Stats)
	return stats, args.Error(1)
}

type PasswordHasher struct {
	mock.Mock
}

func NewPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *PasswordHasher {
	m := &PasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

type EvaluationRepository struct {
	mock.Mock
}

func NewEvaluationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *EvaluationRepository {
	m := &EvaluationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EvaluationRepository) Find(ctx context.Context, filter report.Filter) ([]report.Evaluation, error) {
	args := m.Called(ctx, filter)
	evs, _ := args.Get(0).([]report.Evaluation)
	return evs, args.Error(1)
}

func (m *EvaluationRepository) Cycles(ctx context.Context) ([]report.Cycle, error) {
	args := m.Called(ctx)
	cycles, _ := args.Get(0).([]report.Cycle)
	return cycles, args.Error(1)
}

func (m *EvaluationRepository) Professors(ctx context.Context) ([]report.Professor, error) {
	args := m.Called(ctx)
	professors, _ := args.Get(0).([]report.Professor)
	return professors, args.Error(1)
}
