package iocache

import (
	"time"

	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetAnalysisStore implements the StoreManager interface.
func (m *MockStoreManager) GetAnalysisStore() contract.AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AnalysisStore)
	return store
}

// MockAnalysisStore is a mock implementation of AnalysisStore for testing.
type MockAnalysisStore struct {
	mock.Mock
}

var _ contract.AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) EndAnalysis(analysisID int64, endTime time.Time, totalSites int) error {
	args := m.Called(analysisID, endTime, totalSites)
	return args.Error(0)
}

// RecordSiteReport implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordSiteReport(analysisID int64, sitePath string, report schema.Report) error {
	args := m.Called(analysisID, sitePath, report)
	return args.Error(0)
}

// GetStatus implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.AnalysisStatus), args.Error(1)
}

// GetAllAnalysisRuns implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.AnalysisRunRecord)
	return records, args.Error(1)
}

// GetAllSiteReports implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllSiteReports() ([]schema.SiteReportRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.SiteReportRecord)
	return records, args.Error(1)
}

// GetAllCriterionScores implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllCriterionScores() ([]schema.CriterionScoreRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.CriterionScoreRecord)
	return records, args.Error(1)
}

// Close implements the AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
