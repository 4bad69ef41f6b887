package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	"github.com/SscSPs/karangnongko_farm/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CheckinReaderSvc ---
type MockCheckinReader struct {
	mock.Mock
}

func (m *MockCheckinReader) GetCheckinByDate(ctx context.Context, date string) (*domain.CheckinEntry, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckinEntry), args.Error(1)
}

func (m *MockCheckinReader) HasCheckinForDate(ctx context.Context, date string) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockCheckinReader) ListCheckins(ctx context.Context) ([]domain.CheckinEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CheckinEntry), args.Error(1)
}

type CalendarServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	checkins *MockCheckinReader
}

func (suite *CalendarServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.checkins = new(MockCheckinReader)
}

func (suite *CalendarServiceTestSuite) TestMonthGridAnnotatesDays() {
	suite.checkins.On("ListCheckins", suite.ctx).Return([]domain.CheckinEntry{
		{Date: "2024-05-13", Mood: domain.MoodGreat},
		{Date: "2024-05-09", Mood: domain.MoodBad},
		{Date: "2024-04-30", Mood: domain.MoodBad},
	}, nil).Once()
	svc := services.NewCalendarService(suite.checkins, fixedClock, time.UTC)

	grid, err := svc.MonthGrid(suite.ctx, domain.MonthRef{Year: 2024, Month: time.May})

	suite.Require().NoError(err)
	suite.Len(grid.Cells, 3+31)
	var today, submitted []string
	for _, c := range grid.Cells {
		if c.IsToday {
			today = append(today, c.Date)
		}
		if c.Submitted {
			submitted = append(submitted, c.Date)
		}
	}
	suite.Equal([]string{"2024-05-15"}, today)
	suite.Equal([]string{"2024-05-09", "2024-05-13"}, submitted)
	suite.checkins.AssertExpectations(suite.T())
}

func (suite *CalendarServiceTestSuite) TestTodayUsesFarmTimezone() {
	jakarta := time.FixedZone("WIB", 7*60*60)
	lateUTC := func() time.Time { return time.Date(2024, time.May, 31, 20, 0, 0, 0, time.UTC) }
	suite.checkins.On("ListCheckins", suite.ctx).Return([]domain.CheckinEntry{}, nil).Once()
	svc := services.NewCalendarService(suite.checkins, lateUTC, jakarta)

	suite.Equal("2024-06-01", domain.DateKey(svc.Today()))

	grid, err := svc.MonthGrid(suite.ctx, domain.MonthRef{Year: 2024, Month: time.May})
	suite.Require().NoError(err)
	for _, c := range grid.Cells {
		suite.False(c.IsToday)
	}
}

func (suite *CalendarServiceTestSuite) TestMonthGridPropagatesErrors() {
	suite.checkins.On("ListCheckins", suite.ctx).Return(nil, apperrors.ErrUnavailable).Once()
	svc := services.NewCalendarService(suite.checkins, fixedClock, nil)

	grid, err := svc.MonthGrid(suite.ctx, domain.MonthRef{Year: 2024, Month: time.May})

	suite.Nil(grid)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
}

func (suite *CalendarServiceTestSuite) TestSelectDay() {
	existing := &domain.CheckinEntry{Date: "2024-05-13", Mood: domain.MoodGreat, Accomplishments: "vaccinated kids"}
	suite.checkins.On("GetCheckinByDate", suite.ctx, "2024-05-13").Return(existing, nil).Once()
	suite.checkins.On("GetCheckinByDate", suite.ctx, "2024-05-14").Return(nil, apperrors.ErrNotFound).Once()
	suite.checkins.On("GetCheckinByDate", suite.ctx, "bogus").Return(nil, apperrors.ErrValidation).Once()
	svc := services.NewCalendarService(suite.checkins, fixedClock, nil)

	form, err := svc.SelectDay(suite.ctx, "2024-05-13")
	suite.Require().NoError(err)
	suite.True(form.Exists)
	suite.Equal(*existing, form.Entry)

	form, err = svc.SelectDay(suite.ctx, "2024-05-14")
	suite.Require().NoError(err)
	suite.False(form.Exists)
	suite.Equal(domain.EmptyCheckin("2024-05-14"), form.Entry)

	form, err = svc.SelectDay(suite.ctx, "bogus")
	suite.Nil(form)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.checkins.AssertExpectations(suite.T())
}

func TestCalendarServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CalendarServiceTestSuite))
}
