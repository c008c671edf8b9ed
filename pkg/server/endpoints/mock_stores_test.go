package endpoints

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/objectstore"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// MockServiceStore implements store.ServiceStore for testing using testify/mock
type MockServiceStore struct {
	mock.Mock
}

func (m *MockServiceStore) ListEquipment() ([]model.Equipment, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Equipment), args.Error(1)
}

func (m *MockServiceStore) LineEquipment(lineName string) ([]store.LineEquipment, error) {
	args := m.Called(lineName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.LineEquipment), args.Error(1)
}

func (m *MockServiceStore) Equipment(id int) (*model.Equipment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Equipment), args.Error(1)
}

func (m *MockServiceStore) EquipmentByName(name string) (*model.Equipment, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Equipment), args.Error(1)
}

func (m *MockServiceStore) MotorEquipment() ([]store.MotorEquipment, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.MotorEquipment), args.Error(1)
}

func (m *MockServiceStore) MotorsInEquipment(equipmentID int) ([]store.MotorEquipment, error) {
	args := m.Called(equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.MotorEquipment), args.Error(1)
}

func (m *MockServiceStore) Motor(equipmentID, number int) (*store.MotorEquipment, error) {
	args := m.Called(equipmentID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.MotorEquipment), args.Error(1)
}

func (m *MockServiceStore) UniformSettings(plc int) ([]store.UniformSetting, error) {
	args := m.Called(plc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.UniformSetting), args.Error(1)
}

func (m *MockServiceStore) VariableSettings(plc int) ([]store.VariableSetting, error) {
	args := m.Called(plc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.VariableSetting), args.Error(1)
}

func (m *MockServiceStore) UniformSetting(key model.ParameterKey) (*store.UniformSetting, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.UniformSetting), args.Error(1)
}

func (m *MockServiceStore) VariableSetting(key model.ParameterKey) (*store.VariableSetting, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.VariableSetting), args.Error(1)
}

func (m *MockServiceStore) SupplyFreq(key model.ParameterKey) (float64, error) {
	args := m.Called(key)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockServiceStore) ParametersExist(key model.ParameterKey, category model.Category) (bool, error) {
	args := m.Called(key, category)
	return args.Bool(0), args.Error(1)
}

func (m *MockServiceStore) CreateParameters(p *store.ParameterSetting, now time.Time) error {
	args := m.Called(p, now)
	return args.Error(0)
}

func (m *MockServiceStore) UpdateParameters(p *store.ParameterSetting, now time.Time) error {
	args := m.Called(p, now)
	return args.Error(0)
}

func (m *MockServiceStore) DeleteParametersByPLC(plc int) error {
	args := m.Called(plc)
	return args.Error(0)
}

// MockFeatureStore implements store.FeatureStore for testing using testify/mock
type MockFeatureStore struct {
	mock.Mock
}

func (m *MockFeatureStore) LatestFeature(q store.FeatureQuery) (store.FeatureRow, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(store.FeatureRow), args.Error(1)
}

func (m *MockFeatureStore) FeatureRange(q store.FeatureQuery) ([]store.FeatureRow, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.FeatureRow), args.Error(1)
}

func (m *MockFeatureStore) FeatureAt(category model.Category, equipmentID, motorNumber int, acqTime time.Time) ([]store.FeatureRow, error) {
	args := m.Called(category, equipmentID, motorNumber, acqTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.FeatureRow), args.Error(1)
}

func (m *MockFeatureStore) LatestTrigger(equipmentID, motorNumber, plc int) (*model.Trigger, error) {
	args := m.Called(equipmentID, motorNumber, plc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trigger), args.Error(1)
}

func (m *MockFeatureStore) TriggerRange(equipmentID, motorNumber int, start, end time.Time) ([]model.Trigger, error) {
	args := m.Called(equipmentID, motorNumber, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Trigger), args.Error(1)
}

// MockMetadataStore implements store.MetadataStore for testing using testify/mock
type MockMetadataStore struct {
	mock.Mock
}

func (m *MockMetadataStore) Range(equipmentID, motorNumber int, start, end time.Time) ([]model.Metadata, error) {
	args := m.Called(equipmentID, motorNumber, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Metadata), args.Error(1)
}

func (m *MockMetadataStore) Find(key store.MetadataKey) ([]model.Metadata, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Metadata), args.Error(1)
}

func (m *MockMetadataStore) Insert(md *model.Metadata) error {
	args := m.Called(md)
	return args.Error(0)
}

func (m *MockMetadataStore) Delete(key store.MetadataKey) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

// MockPLCStore implements store.PLCStore for testing using testify/mock
type MockPLCStore struct {
	mock.Mock
}

func (m *MockPLCStore) CurrentModel(equipmentID int) (int, error) {
	args := m.Called(equipmentID)
	return args.Int(0), args.Error(1)
}

func (m *MockPLCStore) Models() ([]model.PLCModel, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PLCModel), args.Error(1)
}

func (m *MockPLCStore) ModelsOf(equipmentID int) ([]model.PLCModel, error) {
	args := m.Called(equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PLCModel), args.Error(1)
}

func (m *MockPLCStore) Model(number int) (*model.PLCModel, error) {
	args := m.Called(number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PLCModel), args.Error(1)
}

func (m *MockPLCStore) ModelExists(number int) (bool, error) {
	args := m.Called(number)
	return args.Bool(0), args.Error(1)
}

func (m *MockPLCStore) MemoryMappings() ([]model.MemoryMapping, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MemoryMapping), args.Error(1)
}

func (m *MockPLCStore) EquipmentMappings(lineID, equipmentID int) ([]model.MemoryMapping, error) {
	args := m.Called(lineID, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MemoryMapping), args.Error(1)
}

func (m *MockPLCStore) InsertLog(timestamp time.Time, mmID int, value string) error {
	args := m.Called(timestamp, mmID, value)
	return args.Error(0)
}

func (m *MockPLCStore) CreateModel(pm *model.PLCModel) error {
	args := m.Called(pm)
	return args.Error(0)
}

func (m *MockPLCStore) UpdateModel(pm *model.PLCModel) error {
	args := m.Called(pm)
	return args.Error(0)
}

func (m *MockPLCStore) DeleteModel(number int) error {
	args := m.Called(number)
	return args.Error(0)
}

// MockFDCStore implements store.FDCStore for testing using testify/mock
type MockFDCStore struct {
	mock.Mock
}

func (m *MockFDCStore) Config() (*model.FDCConfig, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FDCConfig), args.Error(1)
}

func (m *MockFDCStore) UpdateConfig(c *model.FDCConfig) error {
	args := m.Called(c)
	return args.Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockHealthStore) Databases() map[string]bool {
	args := m.Called()
	return args.Get(0).(map[string]bool)
}

// memoryObjects is an in-memory objectstore.Store
type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: make(map[string][]byte)}
}

func (o *memoryObjects) Get(_ context.Context, key string) ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return nil, o.err
	}
	data, ok := o.objects[key]
	if !ok {
		return nil, objectstore.ErrNoSuchKey
	}
	return data, nil
}

func (o *memoryObjects) Put(_ context.Context, key string, data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.objects[key] = data
	return nil
}

func (o *memoryObjects) Remove(_ context.Context, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.objects, key)
	return nil
}

// mockStores bundles a mock of every store.
type mockStores struct {
	Services *MockServiceStore
	Features *MockFeatureStore
	Metadata *MockMetadataStore
	PLC      *MockPLCStore
	FDC      *MockFDCStore
	Health   *MockHealthStore
}

func newMockStores() *mockStores {
	return &mockStores{
		Services: &MockServiceStore{},
		Features: &MockFeatureStore{},
		Metadata: &MockMetadataStore{},
		PLC:      &MockPLCStore{},
		FDC:      &MockFDCStore{},
		Health:   &MockHealthStore{},
	}
}

func (m *mockStores) Stores() *store.Stores {
	return &store.Stores{
		Services: m.Services,
		Features: m.Features,
		Metadata: m.Metadata,
		PLC:      m.PLC,
		FDC:      m.FDC,
		Health:   m.Health,
	}
}

func (m *mockStores) AssertExpectations(t mock.TestingT) {
	m.Services.AssertExpectations(t)
	m.Features.AssertExpectations(t)
	m.Metadata.AssertExpectations(t)
	m.PLC.AssertExpectations(t)
	m.FDC.AssertExpectations(t)
	m.Health.AssertExpectations(t)
}
