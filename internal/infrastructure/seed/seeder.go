// Package seed loads sample reference and demo data for local environments.
package seed

import (
	"context"
	"time"

	"rcverify-service/internal/domain/entity"
	"rcverify-service/internal/domain/repository"
	interfaceRepo "rcverify-service/internal/interface/repository"
	"rcverify-service/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder populates the state reference table and, when the vehicle
// collection is empty, a handful of demo RC records.
type Seeder struct {
	rcService rcCreator
	rcRepo    repository.RcRepository
	stateDB   *gorm.DB
	logger    logger.Logger
}

type rcCreator interface {
	Create(ctx context.Context, rc *entity.Rc) (*entity.Rc, error)
}

// NewSeeder creates a new seeder. stateDB may be nil when PostgreSQL is
// not configured.
func NewSeeder(rcService rcCreator, rcRepo repository.RcRepository, stateDB *gorm.DB, logger logger.Logger) *Seeder {
	return &Seeder{
		rcService: rcService,
		rcRepo:    rcRepo,
		stateDB:   stateDB,
		logger:    logger,
	}
}

// Run seeds states and demo records. Errors are returned but the caller
// treats seeding as non-fatal.
func (s *Seeder) Run(ctx context.Context) error {
	if s.stateDB != nil {
		if err := s.seedStates(ctx); err != nil {
			return err
		}
	}
	return s.seedRecords(ctx)
}

func (s *Seeder) seedStates(ctx context.Context) error {
	if err := s.stateDB.WithContext(ctx).AutoMigrate(&interfaceRepo.States{}); err != nil {
		return err
	}

	states := []interfaceRepo.States{
		{Code: "KA", Name: "Karnataka"},
		{Code: "MH", Name: "Maharashtra"},
		{Code: "DL", Name: "Delhi"},
		{Code: "TN", Name: "Tamil Nadu"},
		{Code: "UP", Name: "Uttar Pradesh"},
	}

	result := s.stateDB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&states)
	if result.Error != nil {
		return result.Error
	}
	s.logger.Info("State reference data seeded", "rows", len(states))
	return nil
}

func (s *Seeder) seedRecords(ctx context.Context) error {
	existing, err := s.rcRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.logger.Debug("Skipping demo records, collection not empty", "count", len(existing))
		return nil
	}

	s.logger.Info("Seeding demo RC records")

	stolen := true
	records := []*entity.Rc{
		{
			RcNumber: "KA01AB1234",
			Owner: entity.Owner{
				Name:         "Rohit Kumar",
				Phone:        "9876543210",
				Email:        "rohit@example.com",
				Address:      "Bengaluru, Karnataka",
				AadhaarLast4: "1234",
			},
			VehicleInfo: entity.VehicleInfo{
				Type:            "Car",
				Make:            "Maruti",
				Model:           "Swift",
				Variant:         "VXI",
				FuelType:        "Petrol",
				Color:           "Red",
				ManufactureYear: 2021,
			},
			RegistrationInfo: entity.RegistrationInfo{
				RegistrationDate: time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
				ValidTill:        time.Date(2036, 3, 14, 0, 0, 0, 0, time.UTC),
				Active:           true,
			},
			Insurance: &entity.Insurance{
				Provider:     "ICICI Lombard",
				PolicyNumber: "POL123456",
				ValidTill:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			},
			Puc: &entity.Puc{
				CertificateNumber: "PUC998877",
				ValidTill:         time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
			},
			ChassisNumber:     "MA3EYD32S00123456",
			EngineNumber:      "K12MN1234567",
			RegistrationState: "KA",
		},
		{
			RcNumber: "MH12XY5678",
			Owner: entity.Owner{
				Name:    "Priya Sharma",
				Phone:   "9123456780",
				Address: "Pune, Maharashtra",
			},
			VehicleInfo: entity.VehicleInfo{
				Type:            "Bike",
				Make:            "Honda",
				Model:           "Activa",
				FuelType:        "Petrol",
				Color:           "Black",
				ManufactureYear: 2019,
			},
			RegistrationInfo: entity.RegistrationInfo{
				RegistrationDate: time.Date(2019, 7, 2, 0, 0, 0, 0, time.UTC),
				Active:           true,
			},
			ChassisNumber:     "ME4JC448A0T123456",
			EngineNumber:      "JC44ET1234567",
			RegistrationState: "MH",
			PreviousOwners:    []string{"Anil Sharma"},
		},
		{
			RcNumber: "DL8CAF9012",
			Owner: entity.Owner{
				Name:    "Vikram Singh",
				Address: "New Delhi",
			},
			VehicleInfo: entity.VehicleInfo{
				Type:            "Car",
				Make:            "Hyundai",
				Model:           "i20",
				FuelType:        "Diesel",
				Color:           "White",
				ManufactureYear: 2018,
			},
			RegistrationInfo: entity.RegistrationInfo{
				RegistrationDate: time.Date(2018, 1, 20, 0, 0, 0, 0, time.UTC),
				Active:           false,
			},
			ChassisNumber:     "MALBB51BLJM123456",
			EngineNumber:      "D4FC1234567",
			RegistrationState: "DL",
			Stolen:            &stolen,
		},
	}

	for _, rc := range records {
		if _, err := s.rcService.Create(ctx, rc); err != nil {
			return err
		}
	}
	s.logger.Info("Demo RC records seeded", "count", len(records))
	return nil
}
