package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"commissions/internal/core/application/usecases/commands"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAssigner struct{ mock.Mock }

func (m *mockAssigner) Handle(ctx context.Context, cmd commands.AssignTalentCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type mockSweeper struct{ mock.Mock }

func (m *mockSweeper) Handle(ctx context.Context, cmd commands.CompleteOverdueDeliveriesCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type recordingObserver struct {
	runs map[string]int
}

func (r *recordingObserver) ObserveJob(job string, _ time.Duration) {
	if r.runs == nil {
		r.runs = map[string]int{}
	}
	r.runs[job]++
}

type fakeJob struct {
	name     string
	startErr error
	events   *[]string
}

func (f *fakeJob) Start() error {
	*f.events = append(*f.events, "start "+f.name)
	return f.startErr
}

func (f *fakeJob) Stop() {
	*f.events = append(*f.events, "stop "+f.name)
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	email, err := kernel.NewEmail("client@example.com")
	require.NoError(t, err)
	price, err := kernel.NewMoney(decimal.NewFromInt(100), "USD")
	require.NoError(t, err)
	o, err := order.NewOrder(order.Terms{
		ID:              kernel.NewUUID(),
		ProductLine:     kernel.ProductLineVoice,
		Tier:            "tier1",
		ClientEmail:     email,
		Units:           decimal.NewFromInt(1),
		RequestedRights: kernel.RightsStandard,
		EffectiveRights: kernel.RightsStandard,
		Price:           price,
		MaxRevisions:    1,
		MaxVersions:     2,
		TurnaroundDays:  5,
		CreatedAt:       time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return o
}

func TestTalentAssignmentJob_Run(t *testing.T) {
	testCases := []struct {
		name      string
		returnErr error
		logged    string
	}{
		{name: "assigned", logged: "talent assigned"},
		{name: "no order waiting", returnErr: commands.ErrNoOrderFound},
		{name: "no talent free", returnErr: commands.ErrNoAvailableTalentFound},
		{name: "storage failure", returnErr: errors.New("connection reset"), logged: "talent assignment job failed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := &mockAssigner{}
			var returned *order.Order
			if tc.returnErr == nil {
				returned = testOrder(t)
			}
			handler.On("Handle", mock.Anything, mock.Anything).Return(returned, tc.returnErr).Once()
			observer := &recordingObserver{}

			job := NewTalentAssignmentJob(handler, "*/5 * * * * *", observer, zerolog.New(&buf))
			job.Run(context.Background())

			handler.AssertExpectations(t)
			assert.Equal(t, 1, observer.runs[talentAssignmentJobName])
			if tc.logged == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tc.logged)
			}
		})
	}
}

func TestAutoCompleteSweepJob_Run(t *testing.T) {
	t.Run("logs completed orders", func(t *testing.T) {
		var buf bytes.Buffer
		handler := &mockSweeper{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(3, nil).Once()
		observer := &recordingObserver{}

		job := NewAutoCompleteSweepJob(handler, "0 */10 * * * *", 50, observer, zerolog.New(&buf))
		job.Run(context.Background())

		handler.AssertExpectations(t)
		assert.Equal(t, 1, observer.runs[autoCompleteSweepJobName])
		assert.Contains(t, buf.String(), `"completed":3`)
	})

	t.Run("quiet when nothing is due", func(t *testing.T) {
		var buf bytes.Buffer
		handler := &mockSweeper{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Once()

		job := NewAutoCompleteSweepJob(handler, "0 */10 * * * *", 50, nil, zerolog.New(&buf))
		job.Run(context.Background())

		assert.Empty(t, buf.String())
	})

	t.Run("logs partial failures", func(t *testing.T) {
		var buf bytes.Buffer
		handler := &mockSweeper{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("stale write")).Once()

		job := NewAutoCompleteSweepJob(handler, "0 */10 * * * *", 50, nil, zerolog.New(&buf))
		job.Run(context.Background())

		assert.Contains(t, buf.String(), "stale write")
		assert.Contains(t, buf.String(), `"completed":1`)
	})

	t.Run("negative batch size never reaches the handler", func(t *testing.T) {
		var buf bytes.Buffer
		handler := &mockSweeper{}

		job := NewAutoCompleteSweepJob(handler, "0 */10 * * * *", -1, nil, zerolog.New(&buf))
		job.Run(context.Background())

		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		assert.Contains(t, buf.String(), "misconfigured")
	})
}

func TestTalentAssignmentJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewTalentAssignmentJob(&mockAssigner{}, "not a schedule", nil, zerolog.Nop())
	assert.Error(t, job.Start())
}

func TestJobManager_StartAllStopsStartedJobsOnFailure(t *testing.T) {
	var events []string
	manager := NewJobManager()
	manager.Add("first", &fakeJob{name: "first", events: &events})
	manager.Add("second", &fakeJob{name: "second", events: &events})
	manager.Add("third", &fakeJob{name: "third", events: &events, startErr: errors.New("boom")})

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "third")
	assert.Equal(t, []string{"start first", "start second", "start third", "stop second", "stop first"}, events)
}

func TestJobManager_StopAll(t *testing.T) {
	var events []string
	manager := NewJobManager()
	manager.Add("first", &fakeJob{name: "first", events: &events})
	manager.Add("second", &fakeJob{name: "second", events: &events})

	require.NoError(t, manager.StartAll())
	manager.StopAll()

	assert.Equal(t, 2, manager.Len())
	assert.Equal(t, []string{"start first", "start second", "stop second", "stop first"}, events)
}
