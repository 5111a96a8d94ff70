package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/repository"
	"github.com/lotcast/lotcast/internal/transfer"
)

type VehicleService interface {
	Create(ctx context.Context, dealershipID int64, vc *transfer.VehicleCreation) (int64, error)
	List(ctx context.Context, dealershipID int64) ([]*models.Vehicle, error)
	VehicleInfo(ctx context.Context, dealershipID, vehicleID int64) (*models.Vehicle, error)
	Archive(ctx context.Context, dealershipID, vehicleID int64) error
}

type vehicleService struct {
	vr repository.VehicleRepository
	er repository.LifecycleEventRepository
}

func NewVehicleService(vr repository.VehicleRepository, er repository.LifecycleEventRepository) VehicleService {
	return &vehicleService{
		vr: vr,
		er: er,
	}
}

// Create inserts the vehicle at the first stage and records the initial
// acquired event.
func (s *vehicleService) Create(ctx context.Context, dealershipID int64, vc *transfer.VehicleCreation) (int64, error) {
	var err error

	if vc.Make == "" || vc.Model == "" {
		err = errors.New("make and model cannot be empty")
		slog.Info(err.Error())
		return 0, err
	}

	vehicle := &models.Vehicle{
		DealershipID: dealershipID,
		Make:         vc.Make,
		Model:        vc.Model,
		Year:         vc.Year,
		VIN:          vc.VIN,
		StockNumber:  vc.StockNumber,
		Price:        vc.Price,
		Mileage:      vc.Mileage,
		Color:        vc.Color,
		Status:       models.StageAcquired,
	}

	vehicleID, err := s.vr.Create(ctx, vehicle)
	if err != nil {
		return 0, fmt.Errorf("error creating vehicle")
	}

	_, err = s.er.Create(ctx, &models.LifecycleEvent{
		VehicleID: vehicleID,
		EventType: models.StageAcquired,
	})
	if err != nil {
		slog.Info(err.Error())
	}

	return vehicleID, nil
}

func (s *vehicleService) List(ctx context.Context, dealershipID int64) ([]*models.Vehicle, error) {
	vehicles, err := s.vr.ListByDealershipID(ctx, dealershipID)
	if err != nil {
		return nil, fmt.Errorf("error getting vehicles")
	}
	return vehicles, nil
}

func (s *vehicleService) VehicleInfo(ctx context.Context, dealershipID, vehicleID int64) (*models.Vehicle, error) {
	if err := s.checkOwned(ctx, dealershipID, vehicleID); err != nil {
		return nil, err
	}

	vehicle, err := s.vr.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("error getting vehicle info")
	}

	return vehicle, nil
}

func (s *vehicleService) Archive(ctx context.Context, dealershipID, vehicleID int64) error {
	if err := s.checkOwned(ctx, dealershipID, vehicleID); err != nil {
		return err
	}

	if err := s.vr.Archive(ctx, vehicleID); err != nil {
		return fmt.Errorf("error archiving vehicle")
	}
	return nil
}

func (s *vehicleService) checkOwned(ctx context.Context, dealershipID, vehicleID int64) error {
	var err error

	if vehicleID == 0 {
		err = errors.New("VehicleID is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.vr.CheckByDealershipID(ctx, vehicleID, dealershipID)
	if err != nil {
		return err
	}

	if !isValid {
		err = errors.New("Vehicle doesn't exist")
		slog.Info(err.Error())
		return err
	}

	return nil
}
