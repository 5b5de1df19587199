package usecase

import (
	"context"

	"doctor-directory/internal/converter"
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/domain/repository"
	"doctor-directory/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"gorm.io/gorm"
)

const (
	featuredSpecialtyLimit = 5
	latestHospitalLimit    = 4
	topSpecialtyLimit      = 8
	homeQueryConcurrency   = 4
)

type HomeUsecase interface {
	GetHome(ctx context.Context) (*dto.HomeView, error)
}

type homeUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	specialtyRepo repository.SpecialtyRepository
	hospitalRepo  repository.HospitalRepository
	doctorRepo    repository.DoctorRepository
	reviewRepo    repository.ReviewRepository
	cache         service.HomeCache
	mediaURL      string
}

func NewHomeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specialtyRepo repository.SpecialtyRepository,
	hospitalRepo repository.HospitalRepository,
	doctorRepo repository.DoctorRepository,
	reviewRepo repository.ReviewRepository,
	cache service.HomeCache,
	mediaURL string,
) HomeUsecase {
	return &homeUsecase{
		db:            db,
		log:           log,
		specialtyRepo: specialtyRepo,
		hospitalRepo:  hospitalRepo,
		doctorRepo:    doctorRepo,
		reviewRepo:    reviewRepo,
		cache:         cache,
		mediaURL:      mediaURL,
	}
}

// GetHome returns the home page context, served from the cache when warm.
func (u *homeUsecase) GetHome(ctx context.Context) (*dto.HomeView, error) {
	return u.cache.GetOrLoad(ctx, u.load)
}

// load runs the independent read queries concurrently. Each task writes a
// distinct field of view, so no locking is needed.
func (u *homeUsecase) load(ctx context.Context) (*dto.HomeView, error) {
	view := &dto.HomeView{}
	p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(homeQueryConcurrency)

	p.Go(func(ctx context.Context) error {
		specialties, err := u.specialtyRepo.FindAll(u.db.WithContext(ctx), "")
		if err != nil {
			u.log.Warnf("Failed to find specialties: %+v", err)
			return err
		}
		view.Specialties = converter.SpecialtiesToResponses(specialties)
		return nil
	})

	p.Go(func(ctx context.Context) error {
		locations, err := u.doctorRepo.FindDistinctLocations(u.db.WithContext(ctx))
		if err != nil {
			u.log.Warnf("Failed to find doctor locations: %+v", err)
			return err
		}
		if locations == nil {
			locations = []string{}
		}
		view.Locations = locations
		return nil
	})

	p.Go(func(ctx context.Context) error {
		db := u.db.WithContext(ctx)
		var err error
		if view.TotalDoctors, err = u.doctorRepo.Count(db); err != nil {
			u.log.Warnf("Failed to count doctors: %+v", err)
			return err
		}
		if view.TotalHospitals, err = u.hospitalRepo.Count(db); err != nil {
			u.log.Warnf("Failed to count hospitals: %+v", err)
			return err
		}
		if view.TotalReviews, err = u.reviewRepo.Count(db); err != nil {
			u.log.Warnf("Failed to count reviews: %+v", err)
			return err
		}
		if view.DistrictsCovered, err = u.doctorRepo.CountDistinctLocations(db); err != nil {
			u.log.Warnf("Failed to count districts: %+v", err)
			return err
		}
		return nil
	})

	p.Go(func(ctx context.Context) error {
		featured, err := u.featuredDoctors(ctx)
		if err != nil {
			return err
		}
		view.FeaturedDoctors = featured
		return nil
	})

	p.Go(func(ctx context.Context) error {
		specialties, err := u.specialtyRepo.FindForFeaturedDoctors(u.db.WithContext(ctx), featuredSpecialtyLimit)
		if err != nil {
			u.log.Warnf("Failed to find featured specialties: %+v", err)
			return err
		}
		view.FeaturedSpecialties = converter.SpecialtiesToResponses(specialties)
		return nil
	})

	p.Go(func(ctx context.Context) error {
		hospitals, err := u.hospitalRepo.FindLatest(u.db.WithContext(ctx), latestHospitalLimit)
		if err != nil {
			u.log.Warnf("Failed to find latest hospitals: %+v", err)
			return err
		}
		view.LatestHospitals = converter.HospitalsToCards(hospitals, u.mediaURL)
		return nil
	})

	p.Go(func(ctx context.Context) error {
		counts, err := u.specialtyRepo.FindTopWithDoctorCount(u.db.WithContext(ctx), topSpecialtyLimit)
		if err != nil {
			u.log.Warnf("Failed to find top specialties: %+v", err)
			return err
		}
		view.TopSpecialties = converter.SpecialtyCountsToResponses(counts)
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (u *homeUsecase) featuredDoctors(ctx context.Context) ([]dto.FeaturedDoctor, error) {
	db := u.db.WithContext(ctx)

	summaries, err := u.doctorRepo.FindFeaturedRatings(db)
	if err != nil {
		u.log.Warnf("Failed to aggregate featured ratings: %+v", err)
		return nil, err
	}
	ranked := RankFeatured(summaries, FeaturedDoctorLimit)

	ids := make([]int, len(ranked))
	for i, s := range ranked {
		ids[i] = s.DoctorID
	}
	doctors, err := u.doctorRepo.FindByIDs(db, ids)
	if err != nil {
		u.log.Warnf("Failed to find featured doctors: %+v", err)
		return nil, err
	}

	byID := make(map[int]*entity.Doctor, len(doctors))
	for i := range doctors {
		byID[doctors[i].ID] = &doctors[i]
	}

	featured := make([]dto.FeaturedDoctor, 0, len(ranked))
	for _, s := range ranked {
		// A doctor deleted between the two queries is skipped
		if d, ok := byID[s.DoctorID]; ok {
			featured = append(featured, converter.DoctorToFeatured(d, s, u.mediaURL))
		}
	}
	return featured, nil
}
