package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"rentwheels/config"
	"rentwheels/infras/otel"
	"rentwheels/infras/s3"
	"rentwheels/internal/domains/car/model"
	"rentwheels/internal/domains/car/model/dto"
	"rentwheels/internal/domains/car/repository"
	"rentwheels/shared"
	"rentwheels/shared/cache"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/failure"
	"rentwheels/shared/lock"
	gRepo "rentwheels/shared/repository"
	"rentwheels/shared/timezone"
	"rentwheels/shared/validator"
)

const (
	MessageCarExists       = "A car with this name already exists!"
	MessageCarBooked       = "Car is currently booked!"
	MessageBookedByBooking = "A car becomes Booked only through a reservation!"
	MessageStorageDisabled = "Image upload is not available!"
)

type Car interface {
	Create(ctx context.Context, req dto.CreateCarRequest) (dto.CarResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCarsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CarResponse, error)
	GetByName(ctx context.Context, name string) (dto.CarResponse, error)
	Update(ctx context.Context, req dto.UpdateCarRequest, id string) error
	ToggleStatus(ctx context.Context, id string) (dto.CarResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateCarStatusRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Car
	transactor gRepo.Transactor
	locks      *lock.KeyedMutex
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	s3         s3.S3
}

// New builds the catalog service. locks must be the same KeyedMutex the
// booking workflow and the availability engine use.
func New(
	repo repository.Car,
	transactor gRepo.Transactor,
	locks *lock.KeyedMutex,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Car {
	return &serviceImpl{
		repo:       repo,
		transactor: transactor,
		locks:      locks,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		s3:         s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCarRequest) (res dto.CarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	price, seats, err := req.Check()
	if err != nil {
		return res, err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, byName(req.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to check car existence")

		return res, fmt.Errorf("failed to check car existence: %w", err)
	}

	if exist {
		return res, failure.Conflict(MessageCarExists)
	}

	imageURL, err := s.upload(ctx, req.ImageFile, req.Image)
	if err != nil {
		return res, err
	}

	car := req.ToModel(user, imageURL, price, seats, timezone.Now())

	if err = s.repo.Insert(ctx, car); err != nil {
		log.Error().Err(err).Msg("failed to create car")

		s.removeImage(ctx, imageURL)

		return res, fmt.Errorf("failed to create car: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(car)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCarsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sortable(model.SortableFields...)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllCar, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cars")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cars")

		return res, fmt.Errorf("failed to count cars: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cars")

		return res, fmt.Errorf("failed to get cars: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cars to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCountCar, gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for car count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cars")

		return res, fmt.Errorf("failed to count cars: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save car count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGetCar, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for car")

		return res, nil
	}

	car, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(car)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save car to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByName(ctx context.Context, name string) (res dto.CarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByName")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	car, err := s.find(ctx, byName(name))
	if err != nil {
		return res, err
	}

	res.FromModel(car)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCarRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString(dto.MessageRequiredFields)
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	fields, err := req.ToFields()
	if err != nil {
		return err
	}

	car, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return err
	}

	if req.Name != "" && req.Name != car.Name {
		exist, err := s.repo.Exist(ctx, byName(req.Name))
		if err != nil {
			log.Error().Err(err).Msg("failed to check car existence")

			return fmt.Errorf("failed to check car existence: %w", err)
		}

		if exist {
			return failure.Conflict(MessageCarExists)
		}
	}

	imageURL, err := s.upload(ctx, req.ImageFile, req.Image)
	if err != nil {
		return err
	}

	if imageURL != constant.Empty {
		fields[model.FieldImageRef] = imageURL
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	err = s.guarded(ctx, car.ID, func(tx *sqlx.Tx, _ model.Car) error {
		if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(car.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update car")

			return fmt.Errorf("failed to update car: %w", err)
		}

		return nil
	})
	if err != nil {
		s.removeImage(ctx, imageURL)

		return err
	}

	if imageURL != constant.Empty {
		s.removeImage(ctx, car.ImageRef)
	}

	s.invalidate(ctx)

	return nil
}

// ToggleStatus flips an idle car between Available and Unavailable.
func (s *serviceImpl) ToggleStatus(ctx context.Context, id string) (res dto.CarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	car, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	err = s.guarded(ctx, car.ID, func(tx *sqlx.Tx, locked model.Car) error {
		if locked.IsBooked() {
			return failure.Conflict(MessageCarBooked)
		}

		next := model.StatusUnavailable
		if locked.Status == model.StatusUnavailable {
			next = model.StatusAvailable
		}

		if err := s.setStatusTx(ctx, tx, locked.ID, next); err != nil {
			return err
		}

		car = locked
		car.Status = next

		return nil
	})
	if err != nil {
		return res, err
	}

	s.invalidate(ctx)

	res.FromModel(car)

	return res, nil
}

// UpdateStatus sets an idle car Available or Unavailable by name. Booked is
// owned by reservations and cannot be set or cleared here.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateCarStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	if req.Status == model.StatusBooked {
		return failure.BadRequestFromString(MessageBookedByBooking)
	}

	car, err := s.find(ctx, byName(req.Name))
	if err != nil {
		return err
	}

	err = s.guarded(ctx, car.ID, func(tx *sqlx.Tx, locked model.Car) error {
		if locked.IsBooked() {
			return failure.Conflict(MessageCarBooked)
		}

		return s.setStatusTx(ctx, tx, locked.ID, req.Status)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	car, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return err
	}

	err = s.guarded(ctx, car.ID, func(tx *sqlx.Tx, locked model.Car) error {
		if locked.IsBooked() {
			return failure.Conflict(MessageCarBooked)
		}

		if err := s.repo.DeleteTx(ctx, tx, shared.FilterByID(locked.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete car")

			return fmt.Errorf("failed to delete car: %w", err)
		}

		car = locked

		return nil
	})
	if err != nil {
		return err
	}

	s.removeImage(ctx, car.ImageRef)
	s.invalidate(ctx)

	return nil
}

// guarded runs fn with the car row locked, under the same per-car mutex the
// booking workflow and the sweep take. fn sees the row as committed at lock
// time.
func (s *serviceImpl) guarded(ctx context.Context, carID string, fn func(tx *sqlx.Tx, locked model.Car) error) error {
	unlock := s.locks.Lock(carID)
	defer unlock()

	return s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(carID, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to lock car")

			return fmt.Errorf("failed to lock car: %w", err)
		}

		if locked.ID == constant.Empty {
			return failure.NotFound(model.EntityName) // nolint:wrapcheck
		}

		return fn(tx, locked)
	})
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Car, error) {
	car, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get car")

		return car, fmt.Errorf("failed to get car: %w", err)
	}

	if car.ID == constant.Empty {
		return car, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	return car, nil
}

func (s *serviceImpl) setStatusTx(ctx context.Context, tx *sqlx.Tx, carID, status string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(carID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("status", status).Msg("failed to update car status")

		return fmt.Errorf("failed to update car status: %w", err)
	}

	return nil
}

// upload stores the car image under the car directory and returns its public
// URL. No header means no image.
func (s *serviceImpl) upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header == nil || file == nil {
		return constant.Empty, nil
	}

	if !s.s3.Enabled() {
		return constant.Empty, failure.BadRequestFromString(MessageStorageDisabled)
	}

	contentType := header.Header.Get(constant.RequestHeaderContentType)

	url, err := s.s3.UploadFile(ctx, model.EntityName, objectName(header.Filename), contentType, file, header.Size)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload car image")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) removeImage(ctx context.Context, url string) {
	if url == constant.Empty || !s.s3.Enabled() {
		return
	}

	if err := s.s3.DeleteFile(ctx, s.s3.ObjectKeyFromURL(url)); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to delete car image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CachePrefixes()...)
	}()
}

func byName(name string) gDto.FilterGroup {
	return gDto.NewFilterGroup(gDto.Filter{Field: model.FieldName, Value: name, Operator: gDto.FilterOperatorEq, Table: model.TableName})
}

func objectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	return uuid.NewString() + ext
}
