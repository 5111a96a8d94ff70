package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/repository"
)

// StageNotifier receives the stage-changed domain notification. Delivery is
// best-effort; a failed notification never blocks the transition.
type StageNotifier interface {
	StageChanged(ctx context.Context, dealershipID, vehicleID, eventID int64, stage string) error
}

type LifecycleService interface {
	AdvanceStage(ctx context.Context, dealershipID, vehicleID int64, notes string) (*models.Vehicle, error)
	SetStage(ctx context.Context, dealershipID, vehicleID int64, stage, notes string) (*models.Vehicle, error)
	Events(ctx context.Context, dealershipID, vehicleID int64) ([]*models.LifecycleEvent, error)
	SuggestedActions(stage string) []string
}

type lifecycleService struct {
	vr       repository.VehicleRepository
	er       repository.LifecycleEventRepository
	notifier StageNotifier
}

func NewLifecycleService(vr repository.VehicleRepository, er repository.LifecycleEventRepository, notifier StageNotifier) LifecycleService {
	return &lifecycleService{
		vr:       vr,
		er:       er,
		notifier: notifier,
	}
}

// AdvanceStage moves the vehicle to the immediate next stage and appends the
// matching lifecycle event. Calling it on a sold vehicle is rejected.
func (s *lifecycleService) AdvanceStage(ctx context.Context, dealershipID, vehicleID int64, notes string) (*models.Vehicle, error) {
	vehicle, err := s.ownedVehicle(ctx, dealershipID, vehicleID)
	if err != nil {
		return nil, err
	}

	next, ok := models.NextStage(vehicle.Status)
	if !ok {
		slog.Info(ErrAlreadySold.Error())
		return nil, ErrAlreadySold
	}

	return s.transition(ctx, vehicle, next, notes)
}

// SetStage is the escape hatch: it accepts any of the four stages, including
// backward moves and skips. The default path is AdvanceStage.
func (s *lifecycleService) SetStage(ctx context.Context, dealershipID, vehicleID int64, stage, notes string) (*models.Vehicle, error) {
	if !models.IsValidStage(stage) {
		err := fmt.Errorf("unknown stage %q", stage)
		slog.Info(err.Error())
		return nil, err
	}

	vehicle, err := s.ownedVehicle(ctx, dealershipID, vehicleID)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, vehicle, stage, notes)
}

func (s *lifecycleService) transition(ctx context.Context, vehicle *models.Vehicle, stage, notes string) (*models.Vehicle, error) {
	if err := s.vr.UpdateStatus(ctx, stage, vehicle.ID); err != nil {
		return nil, fmt.Errorf("error updating vehicle status: %w", err)
	}
	vehicle.Status = stage

	eventID, err := s.er.Create(ctx, &models.LifecycleEvent{
		VehicleID: vehicle.ID,
		EventType: stage,
		Notes:     notes,
	})
	if err != nil {
		return nil, fmt.Errorf("error recording lifecycle event: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.StageChanged(ctx, vehicle.DealershipID, vehicle.ID, eventID, stage); err != nil {
			slog.Info(err.Error())
		}
	}

	return vehicle, nil
}

func (s *lifecycleService) Events(ctx context.Context, dealershipID, vehicleID int64) ([]*models.LifecycleEvent, error) {
	if _, err := s.ownedVehicle(ctx, dealershipID, vehicleID); err != nil {
		return nil, err
	}

	events, err := s.er.ListByVehicleID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("error getting lifecycle events")
	}
	return events, nil
}

func (s *lifecycleService) SuggestedActions(stage string) []string {
	return models.StageSuggestedActions[stage]
}

func (s *lifecycleService) ownedVehicle(ctx context.Context, dealershipID, vehicleID int64) (*models.Vehicle, error) {
	var err error

	if dealershipID == 0 {
		err = errors.New("DealershipID is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	if vehicleID == 0 {
		err = errors.New("VehicleID is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	isValid, err := s.vr.CheckByDealershipID(ctx, vehicleID, dealershipID)
	if err != nil {
		return nil, err
	}

	if !isValid {
		err = errors.New("Vehicle doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	vehicle, err := s.vr.GetByID(ctx, vehicleID)
	if err != nil || vehicle == nil {
		return nil, fmt.Errorf("Unable to get vehicle info")
	}

	return vehicle, nil
}
