package mocks

import (
	context "context"

	domain "raster-editor/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// SnapshotRepository is a mock type for the SnapshotRepository type
type SnapshotRepository struct {
	mock.Mock
}

// SaveSnapshot provides a mock function with given fields: ctx, snapshot
func (_m *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	ret := _m.Called(ctx, snapshot)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Snapshot) error); ok {
		r0 = rf(ctx, snapshot)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewSnapshotRepository creates a new instance of SnapshotRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSnapshotRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *SnapshotRepository {
	m := &SnapshotRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
