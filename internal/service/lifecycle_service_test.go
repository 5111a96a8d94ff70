package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lotcast/lotcast/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLifecycleFixture(notifier StageNotifier) (LifecycleService, *fakeVehicleRepo, *fakeEventRepo) {
	vr := newFakeVehicleRepo()
	er := newFakeEventRepo()
	return NewLifecycleService(vr, er, notifier), vr, er
}

func seedVehicle(t *testing.T, vr *fakeVehicleRepo, dealershipID int64, stage string) int64 {
	t.Helper()
	id, err := vr.Create(context.Background(), &models.Vehicle{
		DealershipID: dealershipID,
		Make:         "Toyota",
		Model:        "Corolla",
		Status:       stage,
	})
	require.NoError(t, err)
	return id
}

func TestAdvanceStage(t *testing.T) {
	ctx := context.Background()

	t.Run("walks the full stage order", func(t *testing.T) {
		svc, vr, er := newLifecycleFixture(nil)
		vehicleID := seedVehicle(t, vr, 1, models.StageAcquired)

		for _, want := range models.StageOrder[1:] {
			vehicle, err := svc.AdvanceStage(ctx, 1, vehicleID, "")
			require.NoError(t, err)
			assert.Equal(t, want, vehicle.Status)
		}

		events, err := er.ListByVehicleID(ctx, vehicleID)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, models.StageInService, events[0].EventType)
		assert.Equal(t, models.StageSold, events[2].EventType)
	})

	t.Run("sold vehicle cannot advance", func(t *testing.T) {
		svc, vr, _ := newLifecycleFixture(nil)
		vehicleID := seedVehicle(t, vr, 1, models.StageSold)

		_, err := svc.AdvanceStage(ctx, 1, vehicleID, "")
		assert.ErrorIs(t, err, ErrAlreadySold)
	})

	t.Run("notes land on the event", func(t *testing.T) {
		svc, vr, er := newLifecycleFixture(nil)
		vehicleID := seedVehicle(t, vr, 1, models.StageAcquired)

		_, err := svc.AdvanceStage(ctx, 1, vehicleID, "fresh trade-in")
		require.NoError(t, err)

		events, _ := er.ListByVehicleID(ctx, vehicleID)
		require.Len(t, events, 1)
		assert.Equal(t, "fresh trade-in", events[0].Notes)
	})

	t.Run("foreign vehicle is rejected", func(t *testing.T) {
		svc, vr, _ := newLifecycleFixture(nil)
		vehicleID := seedVehicle(t, vr, 2, models.StageAcquired)

		_, err := svc.AdvanceStage(ctx, 1, vehicleID, "")
		assert.Error(t, err)
	})

	t.Run("notifier receives the new stage", func(t *testing.T) {
		notifier := &fakeNotifier{}
		svc, vr, _ := newLifecycleFixture(notifier)
		vehicleID := seedVehicle(t, vr, 1, models.StageAcquired)

		_, err := svc.AdvanceStage(ctx, 1, vehicleID, "")
		require.NoError(t, err)
		assert.Equal(t, []string{models.StageInService}, notifier.calls)
	})

	t.Run("notifier failure does not block the transition", func(t *testing.T) {
		notifier := &fakeNotifier{err: errors.New("queue down")}
		svc, vr, _ := newLifecycleFixture(notifier)
		vehicleID := seedVehicle(t, vr, 1, models.StageAcquired)

		vehicle, err := svc.AdvanceStage(ctx, 1, vehicleID, "")
		require.NoError(t, err)
		assert.Equal(t, models.StageInService, vehicle.Status)
	})
}

func TestSetStage(t *testing.T) {
	ctx := context.Background()

	t.Run("allows backward moves", func(t *testing.T) {
		svc, vr, er := newLifecycleFixture(nil)
		vehicleID := seedVehicle(t, vr, 1, models.StageSold)

		vehicle, err := svc.SetStage(ctx, 1, vehicleID, models.StageReadyForSale, "returned by buyer")
		require.NoError(t, err)
		assert.Equal(t, models.StageReadyForSale, vehicle.Status)

		events, _ := er.ListByVehicleID(ctx, vehicleID)
		require.Len(t, events, 1)
		assert.Equal(t, models.StageReadyForSale, events[0].EventType)
	})

	t.Run("allows stage skips", func(t *testing.T) {
		svc, vr, _ := newLifecycleFixture(nil)
		vehicleID := seedVehicle(t, vr, 1, models.StageAcquired)

		vehicle, err := svc.SetStage(ctx, 1, vehicleID, models.StageSold, "")
		require.NoError(t, err)
		assert.Equal(t, models.StageSold, vehicle.Status)
	})

	t.Run("rejects unknown stages", func(t *testing.T) {
		svc, vr, _ := newLifecycleFixture(nil)
		vehicleID := seedVehicle(t, vr, 1, models.StageAcquired)

		_, err := svc.SetStage(ctx, 1, vehicleID, "detailing", "")
		assert.Error(t, err)
	})
}

func TestSuggestedActions(t *testing.T) {
	svc, _, _ := newLifecycleFixture(nil)

	for _, stage := range models.StageOrder {
		assert.NotEmpty(t, svc.SuggestedActions(stage), stage)
	}
	assert.Empty(t, svc.SuggestedActions("unknown"))
}
