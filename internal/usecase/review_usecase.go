package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"doctor-directory/internal/converter"
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/delivery/http/middleware"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/domain/repository"
	"doctor-directory/internal/service"
	"doctor-directory/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidRating  = errors.New("rating must be between 1.0 and 5.0")
)

type ReviewUsecase interface {
	CreateReview(ctx context.Context, doctorID int, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	CreateReviewForSlug(ctx context.Context, doctorSlug string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetAllReviews(ctx context.Context, filter *entity.ReviewFilter) (*dto.ReviewListResponse, error)
	DeleteReview(ctx context.Context, id int) error
}

type reviewUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	validator    *validator.CustomValidator
	doctorRepo   repository.DoctorRepository
	reviewRepo   repository.ReviewRepository
	auditService service.AuditService
}

func NewReviewUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	doctorRepo repository.DoctorRepository,
	reviewRepo repository.ReviewRepository,
	auditService service.AuditService,
) ReviewUsecase {
	return &reviewUsecase{
		db:           db,
		log:          log,
		validator:    validator,
		doctorRepo:   doctorRepo,
		reviewRepo:   reviewRepo,
		auditService: auditService,
	}
}

func (u *reviewUsecase) CreateReview(ctx context.Context, doctorID int, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return u.create(ctx, tx, doctor, req)
}

// CreateReviewForSlug backs the public review form, which addresses doctors
// by slug.
func (u *reviewUsecase) CreateReviewForSlug(ctx context.Context, doctorSlug string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindBySlug(tx, doctorSlug)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return u.create(ctx, tx, doctor, req)
}

func (u *reviewUsecase) create(ctx context.Context, tx *gorm.DB, doctor *entity.Doctor, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	review := &entity.Review{
		DoctorID:    doctor.ID,
		PatientName: strings.TrimSpace(req.PatientName),
		Rating:      req.Rating,
		Comment:     req.Comment,
	}
	if res := u.validator.Check(review); !res.OK() {
		if res.Has("rating", validator.KindOutOfRange) {
			return nil, ErrInvalidRating
		}
		return nil, res
	}

	if err := u.reviewRepo.Create(tx, review); err != nil {
		u.log.Warnf("Failed to create review: %+v", err)
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	review.Doctor = doctor

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionReviewCreate, "review", strconv.Itoa(review.ID), converter.ReviewToResponse(review)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) GetAllReviews(ctx context.Context, filter *entity.ReviewFilter) (*dto.ReviewListResponse, error) {
	reviews, err := u.reviewRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all reviews: %+v", err)
		return nil, err
	}

	responses := converter.ReviewsToResponses(reviews)

	return &dto.ReviewListResponse{
		Reviews: responses,
		Total:   len(responses),
	}, nil
}

func (u *reviewUsecase) DeleteReview(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	review, err := u.reviewRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find review: %+v", err)
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}

	if _, err := u.reviewRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete review: %+v", err)
		return err
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionReviewDelete, "review", strconv.Itoa(id), converter.ReviewToResponse(review)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
