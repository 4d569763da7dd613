package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/harborcrm/harbor/internal/domain"
)

// MockCustomerRepository is a mock of CustomerRepository interface
type MockCustomerRepository struct {
	ctrl     *gomock.Controller
	recorder *MockCustomerRepositoryMockRecorder
}

// MockCustomerRepositoryMockRecorder is the mock recorder for MockCustomerRepository
type MockCustomerRepositoryMockRecorder struct {
	mock *MockCustomerRepository
}

// NewMockCustomerRepository creates a new mock instance
func NewMockCustomerRepository(ctrl *gomock.Controller) *MockCustomerRepository {
	mock := &MockCustomerRepository{ctrl: ctrl}
	mock.recorder = &MockCustomerRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockCustomerRepository) EXPECT() *MockCustomerRepositoryMockRecorder {
	return m.recorder
}

// GetCustomerByID mocks base method
func (m *MockCustomerRepository) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCustomerByID", ctx, id)
	ret0, _ := ret[0].(*domain.Customer)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCustomerByID indicates an expected call of GetCustomerByID
func (mr *MockCustomerRepositoryMockRecorder) GetCustomerByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCustomerByID", reflect.TypeOf((*MockCustomerRepository)(nil).GetCustomerByID), ctx, id)
}

// CreateCustomerWithIdentity mocks base method
func (m *MockCustomerRepository) CreateCustomerWithIdentity(ctx context.Context, customer *domain.Customer, identity *domain.CustomerIdentity) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateCustomerWithIdentity", ctx, customer, identity)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateCustomerWithIdentity indicates an expected call of CreateCustomerWithIdentity
func (mr *MockCustomerRepositoryMockRecorder) CreateCustomerWithIdentity(ctx, customer, identity interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateCustomerWithIdentity", reflect.TypeOf((*MockCustomerRepository)(nil).CreateCustomerWithIdentity), ctx, customer, identity)
}

// FillCustomerNulls mocks base method
func (m *MockCustomerRepository) FillCustomerNulls(ctx context.Context, id int64, patch *domain.Customer) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FillCustomerNulls", ctx, id, patch)
	ret0, _ := ret[0].(error)
	return ret0
}

// FillCustomerNulls indicates an expected call of FillCustomerNulls
func (mr *MockCustomerRepositoryMockRecorder) FillCustomerNulls(ctx, id, patch interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FillCustomerNulls", reflect.TypeOf((*MockCustomerRepository)(nil).FillCustomerNulls), ctx, id, patch)
}

// RefreshCustomer mocks base method
func (m *MockCustomerRepository) RefreshCustomer(ctx context.Context, id int64, patch *domain.Customer) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RefreshCustomer", ctx, id, patch)
	ret0, _ := ret[0].(error)
	return ret0
}

// RefreshCustomer indicates an expected call of RefreshCustomer
func (mr *MockCustomerRepositoryMockRecorder) RefreshCustomer(ctx, id, patch interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RefreshCustomer", reflect.TypeOf((*MockCustomerRepository)(nil).RefreshCustomer), ctx, id, patch)
}

// FindCustomerIDsByEmail mocks base method
func (m *MockCustomerRepository) FindCustomerIDsByEmail(ctx context.Context, email string) ([]int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindCustomerIDsByEmail", ctx, email)
	ret0, _ := ret[0].([]int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindCustomerIDsByEmail indicates an expected call of FindCustomerIDsByEmail
func (mr *MockCustomerRepositoryMockRecorder) FindCustomerIDsByEmail(ctx, email interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindCustomerIDsByEmail", reflect.TypeOf((*MockCustomerRepository)(nil).FindCustomerIDsByEmail), ctx, email)
}

// FindCustomerIDsByPhone mocks base method
func (m *MockCustomerRepository) FindCustomerIDsByPhone(ctx context.Context, phone string) ([]int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindCustomerIDsByPhone", ctx, phone)
	ret0, _ := ret[0].([]int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindCustomerIDsByPhone indicates an expected call of FindCustomerIDsByPhone
func (mr *MockCustomerRepositoryMockRecorder) FindCustomerIDsByPhone(ctx, phone interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindCustomerIDsByPhone", reflect.TypeOf((*MockCustomerRepository)(nil).FindCustomerIDsByPhone), ctx, phone)
}

// MockIdentityRepository is a mock of IdentityRepository interface
type MockIdentityRepository struct {
	ctrl     *gomock.Controller
	recorder *MockIdentityRepositoryMockRecorder
}

// MockIdentityRepositoryMockRecorder is the mock recorder for MockIdentityRepository
type MockIdentityRepositoryMockRecorder struct {
	mock *MockIdentityRepository
}

// NewMockIdentityRepository creates a new mock instance
func NewMockIdentityRepository(ctrl *gomock.Controller) *MockIdentityRepository {
	mock := &MockIdentityRepository{ctrl: ctrl}
	mock.recorder = &MockIdentityRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockIdentityRepository) EXPECT() *MockIdentityRepositoryMockRecorder {
	return m.recorder
}

// GetIdentity mocks base method
func (m *MockIdentityRepository) GetIdentity(ctx context.Context, provider domain.Provider, externalID string) (*domain.CustomerIdentity, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetIdentity", ctx, provider, externalID)
	ret0, _ := ret[0].(*domain.CustomerIdentity)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetIdentity indicates an expected call of GetIdentity
func (mr *MockIdentityRepositoryMockRecorder) GetIdentity(ctx, provider, externalID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetIdentity", reflect.TypeOf((*MockIdentityRepository)(nil).GetIdentity), ctx, provider, externalID)
}

// UpsertIdentity mocks base method
func (m *MockIdentityRepository) UpsertIdentity(ctx context.Context, identity *domain.CustomerIdentity) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertIdentity", ctx, identity)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpsertIdentity indicates an expected call of UpsertIdentity
func (mr *MockIdentityRepositoryMockRecorder) UpsertIdentity(ctx, identity interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertIdentity", reflect.TypeOf((*MockIdentityRepository)(nil).UpsertIdentity), ctx, identity)
}

// CreateIdentity mocks base method
func (m *MockIdentityRepository) CreateIdentity(ctx context.Context, identity *domain.CustomerIdentity) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateIdentity", ctx, identity)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateIdentity indicates an expected call of CreateIdentity
func (mr *MockIdentityRepositoryMockRecorder) CreateIdentity(ctx, identity interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateIdentity", reflect.TypeOf((*MockIdentityRepository)(nil).CreateIdentity), ctx, identity)
}

// ListIdentities mocks base method
func (m *MockIdentityRepository) ListIdentities(ctx context.Context, customerID int64) ([]*domain.CustomerIdentity, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListIdentities", ctx, customerID)
	ret0, _ := ret[0].([]*domain.CustomerIdentity)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListIdentities indicates an expected call of ListIdentities
func (mr *MockIdentityRepositoryMockRecorder) ListIdentities(ctx, customerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListIdentities", reflect.TypeOf((*MockIdentityRepository)(nil).ListIdentities), ctx, customerID)
}

// MockCursorRepository is a mock of CursorRepository interface
type MockCursorRepository struct {
	ctrl     *gomock.Controller
	recorder *MockCursorRepositoryMockRecorder
}

// MockCursorRepositoryMockRecorder is the mock recorder for MockCursorRepository
type MockCursorRepositoryMockRecorder struct {
	mock *MockCursorRepository
}

// NewMockCursorRepository creates a new mock instance
func NewMockCursorRepository(ctrl *gomock.Controller) *MockCursorRepository {
	mock := &MockCursorRepository{ctrl: ctrl}
	mock.recorder = &MockCursorRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockCursorRepository) EXPECT() *MockCursorRepositoryMockRecorder {
	return m.recorder
}

// GetCursor mocks base method
func (m *MockCursorRepository) GetCursor(ctx context.Context, sourceType string) (*domain.SyncCursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCursor", ctx, sourceType)
	ret0, _ := ret[0].(*domain.SyncCursor)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCursor indicates an expected call of GetCursor
func (mr *MockCursorRepositoryMockRecorder) GetCursor(ctx, sourceType interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCursor", reflect.TypeOf((*MockCursorRepository)(nil).GetCursor), ctx, sourceType)
}

// UpdateCursor mocks base method
func (m *MockCursorRepository) UpdateCursor(ctx context.Context, params domain.UpdateCursorParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateCursor", ctx, params)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateCursor indicates an expected call of UpdateCursor
func (mr *MockCursorRepositoryMockRecorder) UpdateCursor(ctx, params interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateCursor", reflect.TypeOf((*MockCursorRepository)(nil).UpdateCursor), ctx, params)
}

// ListCursors mocks base method
func (m *MockCursorRepository) ListCursors(ctx context.Context) ([]*domain.SyncCursor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListCursors", ctx)
	ret0, _ := ret[0].([]*domain.SyncCursor)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListCursors indicates an expected call of ListCursors
func (mr *MockCursorRepositoryMockRecorder) ListCursors(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListCursors", reflect.TypeOf((*MockCursorRepository)(nil).ListCursors), ctx)
}

// MockSearchRepository is a mock of SearchRepository interface
type MockSearchRepository struct {
	ctrl     *gomock.Controller
	recorder *MockSearchRepositoryMockRecorder
}

// MockSearchRepositoryMockRecorder is the mock recorder for MockSearchRepository
type MockSearchRepositoryMockRecorder struct {
	mock *MockSearchRepository
}

// NewMockSearchRepository creates a new mock instance
func NewMockSearchRepository(ctrl *gomock.Controller) *MockSearchRepository {
	mock := &MockSearchRepository{ctrl: ctrl}
	mock.recorder = &MockSearchRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockSearchRepository) EXPECT() *MockSearchRepositoryMockRecorder {
	return m.recorder
}

// RankedSearch mocks base method
func (m *MockSearchRepository) RankedSearch(ctx context.Context, query string, limit int) ([]*domain.RankedCustomer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RankedSearch", ctx, query, limit)
	ret0, _ := ret[0].([]*domain.RankedCustomer)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RankedSearch indicates an expected call of RankedSearch
func (mr *MockSearchRepositoryMockRecorder) RankedSearch(ctx, query, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RankedSearch", reflect.TypeOf((*MockSearchRepository)(nil).RankedSearch), ctx, query, limit)
}

// FallbackSearch mocks base method
func (m *MockSearchRepository) FallbackSearch(ctx context.Context, query string, limit int) ([]*domain.RankedCustomer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FallbackSearch", ctx, query, limit)
	ret0, _ := ret[0].([]*domain.RankedCustomer)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FallbackSearch indicates an expected call of FallbackSearch
func (mr *MockSearchRepositoryMockRecorder) FallbackSearch(ctx, query, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FallbackSearch", reflect.TypeOf((*MockSearchRepository)(nil).FallbackSearch), ctx, query, limit)
}

// MockMergeRepository is a mock of MergeRepository interface
type MockMergeRepository struct {
	ctrl     *gomock.Controller
	recorder *MockMergeRepositoryMockRecorder
}

// MockMergeRepositoryMockRecorder is the mock recorder for MockMergeRepository
type MockMergeRepositoryMockRecorder struct {
	mock *MockMergeRepository
}

// NewMockMergeRepository creates a new mock instance
func NewMockMergeRepository(ctrl *gomock.Controller) *MockMergeRepository {
	mock := &MockMergeRepository{ctrl: ctrl}
	mock.recorder = &MockMergeRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockMergeRepository) EXPECT() *MockMergeRepositoryMockRecorder {
	return m.recorder
}

// FindCustomerIDsSharingEmail mocks base method
func (m *MockMergeRepository) FindCustomerIDsSharingEmail(ctx context.Context, email string, excludeID int64) ([]int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindCustomerIDsSharingEmail", ctx, email, excludeID)
	ret0, _ := ret[0].([]int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindCustomerIDsSharingEmail indicates an expected call of FindCustomerIDsSharingEmail
func (mr *MockMergeRepositoryMockRecorder) FindCustomerIDsSharingEmail(ctx, email, excludeID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindCustomerIDsSharingEmail", reflect.TypeOf((*MockMergeRepository)(nil).FindCustomerIDsSharingEmail), ctx, email, excludeID)
}

// FindCustomerIDsSharingPhone mocks base method
func (m *MockMergeRepository) FindCustomerIDsSharingPhone(ctx context.Context, phone string, excludeID int64) ([]int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindCustomerIDsSharingPhone", ctx, phone, excludeID)
	ret0, _ := ret[0].([]int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindCustomerIDsSharingPhone indicates an expected call of FindCustomerIDsSharingPhone
func (mr *MockMergeRepositoryMockRecorder) FindCustomerIDsSharingPhone(ctx, phone, excludeID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindCustomerIDsSharingPhone", reflect.TypeOf((*MockMergeRepository)(nil).FindCustomerIDsSharingPhone), ctx, phone, excludeID)
}

// MergeCustomers mocks base method
func (m *MockMergeRepository) MergeCustomers(ctx context.Context, primaryID int64, mergeIDs []int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MergeCustomers", ctx, primaryID, mergeIDs)
	ret0, _ := ret[0].(error)
	return ret0
}

// MergeCustomers indicates an expected call of MergeCustomers
func (mr *MockMergeRepositoryMockRecorder) MergeCustomers(ctx, primaryID, mergeIDs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MergeCustomers", reflect.TypeOf((*MockMergeRepository)(nil).MergeCustomers), ctx, primaryID, mergeIDs)
}
