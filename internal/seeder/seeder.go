// Package seeder loads the default catalog and the admin account.
package seeder

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"rentwheels/config"
	carModel "rentwheels/internal/domains/car/model"
	carRepo "rentwheels/internal/domains/car/repository"
	userModel "rentwheels/internal/domains/user/model"
	userRepo "rentwheels/internal/domains/user/repository"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	gModel "rentwheels/shared/model"
	"rentwheels/shared/password"
	"rentwheels/shared/timezone"
)

//go:embed catalog.yaml
var catalogData []byte

type Account struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type CatalogCar struct {
	Name         string  `yaml:"name"`
	PricePerDay  float64 `yaml:"price_per_day"`
	Seats        int     `yaml:"seats"`
	Transmission string  `yaml:"transmission"`
	FuelType     string  `yaml:"fuel_type"`
	Image        string  `yaml:"image"`
}

type Catalog struct {
	Admin Account      `yaml:"admin"`
	Cars  []CatalogCar `yaml:"cars"`
}

// Result counts the rows a run inserted.
type Result struct {
	Admin bool
	Cars  int
}

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (Catalog, error) {
	return ParseCatalog(catalogData)
}

func ParseCatalog(data []byte) (Catalog, error) {
	var catalog Catalog

	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for idx := range catalog.Cars {
		catalog.Cars[idx].Name = strings.TrimSpace(catalog.Cars[idx].Name)
	}

	return catalog, nil
}

type Seeder struct {
	config   *config.Config
	carRepo  carRepo.Car
	userRepo userRepo.User
	clock    timezone.Clock
}

func New(cfg *config.Config, carRepo carRepo.Car, userRepo userRepo.User, clock timezone.Clock) *Seeder {
	return &Seeder{
		config:   cfg,
		carRepo:  carRepo,
		userRepo: userRepo,
		clock:    clock,
	}
}

// Run seeds the admin account and the catalog. Rows that already exist are
// left alone, so running it twice is harmless.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	catalog, err := LoadCatalog()
	if err != nil {
		return Result{}, err
	}

	admin, err := s.SeedAdmin(ctx, catalog.Admin)
	if err != nil {
		return Result{}, err
	}

	cars, err := s.SeedCars(ctx, catalog.Cars)
	if err != nil {
		return Result{Admin: admin}, err
	}

	return Result{Admin: admin, Cars: cars}, nil
}

// SeedAdmin creates the admin account unless its username is taken. The
// configured admin username wins over the catalog one.
func (s *Seeder) SeedAdmin(ctx context.Context, account Account) (bool, error) {
	username := account.Username
	if s.config.App.AdminUsername != "" {
		username = s.config.App.AdminUsername
	}

	exists, err := s.userRepo.Exist(ctx, gDto.NewFilterGroup(
		gDto.Filter{Field: userModel.FieldUsername, Value: username, Operator: gDto.FilterOperatorEq, Table: userModel.TableName},
	))
	if err != nil {
		return false, fmt.Errorf("failed to check admin account: %w", err)
	}

	if exists {
		log.Info().Str("username", username).Msg("Admin account already exists")

		return false, nil
	}

	hashed, err := password.Hash(account.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	err = s.userRepo.Insert(ctx, userModel.User{
		ID:       uuid.NewString(),
		Name:     account.Name,
		Email:    account.Email,
		Username: username,
		Password: hashed,
		Role:     constant.RoleAdmin,
		Metadata: gModel.NewMetadata(constant.ContextSystem, s.clock.Now()),
	})
	if err != nil {
		return false, fmt.Errorf("failed to insert admin account: %w", err)
	}

	log.Info().Str("username", username).Msg("Admin account created")

	return true, nil
}

// SeedCars inserts the catalog cars whose names are not in the catalog yet.
func (s *Seeder) SeedCars(ctx context.Context, cars []CatalogCar) (int, error) {
	now := s.clock.Now()
	missing := []carModel.Car{}

	for _, car := range cars {
		exists, err := s.carRepo.Exist(ctx, gDto.NewFilterGroup(
			gDto.Filter{Field: carModel.FieldName, Value: car.Name, Operator: gDto.FilterOperatorEq, Table: carModel.TableName},
		))
		if err != nil {
			return 0, fmt.Errorf("failed to check car %q: %w", car.Name, err)
		}

		if exists {
			continue
		}

		missing = append(missing, carModel.Car{
			ID:           uuid.NewString(),
			Name:         car.Name,
			PricePerDay:  car.PricePerDay,
			Seats:        car.Seats,
			Transmission: car.Transmission,
			FuelType:     car.FuelType,
			Status:       carModel.StatusAvailable,
			ImageRef:     car.Image,
			Metadata:     gModel.NewMetadata(constant.ContextSystem, now),
		})
	}

	if len(missing) == 0 {
		log.Info().Int("catalog", len(cars)).Msg("Catalog already seeded")

		return 0, nil
	}

	if err := s.carRepo.InsertBulk(ctx, missing); err != nil {
		return 0, fmt.Errorf("failed to insert catalog cars: %w", err)
	}

	log.Info().Int("inserted", len(missing)).Msg("Catalog cars inserted")

	return len(missing), nil
}
