package usecase

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"testing"
	"time"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/infrastructure/database"
	"doctor-directory/internal/infrastructure/storage"
	repoimpl "doctor-directory/internal/repository"
	"doctor-directory/internal/service"
	"doctor-directory/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db         *gorm.DB
	specialty  SpecialtyUsecase
	hospital   HospitalUsecase
	doctor     DoctorUsecase
	experience ExperienceUsecase
	review     ReviewUsecase
	home       HomeUsecase
	directory  DirectoryUsecase
	audit      AuditLogUsecase
}

// newFixture wires the use cases against TEST_DATABASE_DSN, skipping the test
// when no database is configured. Every table is emptied first.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := database.Open(dsn, logger.Silent, 2, 4)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec("TRUNCATE audit_logs, reviews, experiences, doctor_specialties, doctors, hospitals, specialties RESTART IDENTITY CASCADE").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	media, err := storage.NewLocalStorage(t.TempDir(), "/media/", 1<<20, log)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}

	v := validator.NewValidator()
	specialtyRepo := repoimpl.NewSpecialtyRepository()
	hospitalRepo := repoimpl.NewHospitalRepository()
	doctorRepo := repoimpl.NewDoctorRepository()
	experienceRepo := repoimpl.NewExperienceRepository()
	reviewRepo := repoimpl.NewReviewRepository()
	auditRepo := repoimpl.NewAuditLogRepository()
	auditService := service.NewAuditService(log, auditRepo)
	homeCache := service.NewHomeCache(nil, time.Minute, log)

	return &fixture{
		db:         db,
		specialty:  NewSpecialtyUsecase(db, log, v, specialtyRepo, auditService),
		hospital:   NewHospitalUsecase(db, log, v, hospitalRepo, media, "/media/", auditService),
		doctor:     NewDoctorUsecase(db, log, v, doctorRepo, hospitalRepo, specialtyRepo, reviewRepo, media, "/media/", auditService),
		experience: NewExperienceUsecase(db, log, v, doctorRepo, experienceRepo, auditService),
		review:     NewReviewUsecase(db, log, v, doctorRepo, reviewRepo, auditService),
		home:       NewHomeUsecase(db, log, specialtyRepo, hospitalRepo, doctorRepo, reviewRepo, homeCache, "/media/"),
		directory:  NewDirectoryUsecase(db, log, doctorRepo, hospitalRepo, specialtyRepo, reviewRepo, "/media/"),
		audit:      NewAuditLogUsecase(db, log, auditRepo),
	}
}

func (f *fixture) mustSpecialty(t *testing.T, name string) *dto.SpecialtyResponse {
	t.Helper()
	s, err := f.specialty.CreateSpecialty(context.Background(), &dto.CreateSpecialtyRequest{Name: name})
	if err != nil {
		t.Fatalf("create specialty %q: %v", name, err)
	}
	return s
}

func (f *fixture) mustDoctor(t *testing.T, req dto.CreateDoctorRequest) *dto.DoctorResponse {
	t.Helper()
	if req.Designation == "" {
		req.Designation = "Consultant"
	}
	if req.Qualifications == "" {
		req.Qualifications = "MBBS"
	}
	if req.About == "" {
		req.About = "About " + req.Name
	}
	d, err := f.doctor.CreateDoctor(context.Background(), &req)
	if err != nil {
		t.Fatalf("create doctor %q: %v", req.Name, err)
	}
	return d
}

func (f *fixture) mustReview(t *testing.T, doctorID int, rating float64) {
	t.Helper()
	_, err := f.review.CreateReview(context.Background(), doctorID, &dto.CreateReviewRequest{
		PatientName: "Patient",
		Rating:      rating,
		Comment:     "ok",
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

func TestSpecialtySlugsAreUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.mustSpecialty(t, "Cardiology")
	if first.Slug != "cardiology" {
		t.Fatalf("first slug = %q, want cardiology", first.Slug)
	}

	// Same slug base, different name
	second := f.mustSpecialty(t, "Cardiology!")
	if second.Slug != "cardiology-1" {
		t.Fatalf("second slug = %q, want cardiology-1", second.Slug)
	}

	_, err := f.specialty.CreateSpecialty(ctx, &dto.CreateSpecialtyRequest{Name: "Cardiology"})
	if !errors.Is(err, ErrSpecialtyExists) {
		t.Fatalf("duplicate name err = %v, want ErrSpecialtyExists", err)
	}

	renamed, err := f.specialty.UpdateSpecialty(ctx, first.ID, &dto.UpdateSpecialtyRequest{Name: "Heart"})
	if err != nil {
		t.Fatalf("update specialty: %v", err)
	}
	if renamed.Slug != "cardiology" {
		t.Fatalf("slug changed on rename: %q", renamed.Slug)
	}
}

func TestDoctorSlugUsesIDAndIsStable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doctor := f.mustDoctor(t, dto.CreateDoctorRequest{Name: "Jane Doe"})
	want := "jane-doe-" + strconv.Itoa(doctor.ID)
	if doctor.Slug != want {
		t.Fatalf("slug = %q, want %q", doctor.Slug, want)
	}

	updated, err := f.doctor.UpdateDoctor(ctx, doctor.ID, &dto.UpdateDoctorRequest{Name: strPtr("Jane Smith")})
	if err != nil {
		t.Fatalf("update doctor: %v", err)
	}
	if updated.Slug != want {
		t.Fatalf("slug recomputed on rename: %q", updated.Slug)
	}

	page, err := f.directory.GetDoctorPage(ctx, want)
	if err != nil {
		t.Fatalf("doctor page: %v", err)
	}
	if page.Name != "Jane Smith" {
		t.Fatalf("page name = %q", page.Name)
	}

	if _, err := f.directory.GetDoctorPage(ctx, "nobody-1"); !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("unknown slug err = %v", err)
	}
}

func TestReviewRatingBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctor := f.mustDoctor(t, dto.CreateDoctorRequest{Name: "Rated"})

	for _, r := range []float64{1.0, 5.0} {
		f.mustReview(t, doctor.ID, r)
	}
	for _, r := range []float64{0.5, 5.5} {
		_, err := f.review.CreateReviewForSlug(ctx, doctor.Slug, &dto.CreateReviewRequest{PatientName: "P", Rating: r, Comment: "c"})
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %v err = %v, want ErrInvalidRating", r, err)
		}
	}

	got, err := f.doctor.GetDoctor(ctx, doctor.ID)
	if err != nil {
		t.Fatalf("get doctor: %v", err)
	}
	if got.ReviewCount != 2 || got.AverageRating != "3.0" {
		t.Fatalf("rating = %q over %d reviews", got.AverageRating, got.ReviewCount)
	}
}

func TestReviewListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctor := f.mustDoctor(t, dto.CreateDoctorRequest{Name: "Listed"})
	f.mustReview(t, doctor.ID, 4)
	f.mustReview(t, doctor.ID, 2)

	old := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	if err := f.db.Exec("UPDATE reviews SET created_at = ? WHERE id = 1", old).Error; err != nil {
		t.Fatalf("backdate review: %v", err)
	}
	cutoff := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter entity.ReviewFilter
		want   int
	}{
		{"all", entity.ReviewFilter{}, 2},
		{"before cutoff", entity.ReviewFilter{CreatedTo: &cutoff}, 1},
		{"after cutoff", entity.ReviewFilter{CreatedFrom: &cutoff}, 1},
		{"from is inclusive", entity.ReviewFilter{CreatedFrom: &old, CreatedTo: &cutoff}, 1},
		{"to is exclusive", entity.ReviewFilter{CreatedTo: &old}, 0},
		{"plain search", entity.ReviewFilter{Search: "ok"}, 2},
		{"percent is literal", entity.ReviewFilter{Search: "%"}, 0},
		{"underscore is literal", entity.ReviewFilter{Search: "o_"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := f.review.GetAllReviews(ctx, &tt.filter)
			if err != nil {
				t.Fatalf("GetAllReviews: %v", err)
			}
			if list.Total != tt.want {
				t.Fatalf("Total = %d, want %d", list.Total, tt.want)
			}
		})
	}
}

func TestDeletesCascadeAndSetNull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hospital, err := f.hospital.CreateHospital(ctx, &dto.CreateHospitalRequest{Name: "General", Location: "Dhaka"})
	if err != nil {
		t.Fatalf("create hospital: %v", err)
	}
	doctor := f.mustDoctor(t, dto.CreateDoctorRequest{
		Name:       "Cascade",
		HospitalID: intPtr(hospital.ID),
		Experiences: []dto.CreateExperienceRequest{
			{Position: "Registrar", HospitalName: "General", StartYear: intPtr(2010), EndYear: intPtr(2015)},
		},
	})
	f.mustReview(t, doctor.ID, 4)

	if err := f.hospital.DeleteHospital(ctx, hospital.ID); err != nil {
		t.Fatalf("delete hospital: %v", err)
	}
	orphan, err := f.doctor.GetDoctor(ctx, doctor.ID)
	if err != nil {
		t.Fatalf("doctor should survive hospital delete: %v", err)
	}
	if orphan.Hospital != nil {
		t.Fatalf("hospital = %+v, want nil", orphan.Hospital)
	}

	if err := f.doctor.DeleteDoctor(ctx, doctor.ID); err != nil {
		t.Fatalf("delete doctor: %v", err)
	}
	var experiences, reviews int64
	f.db.Model(&entity.Experience{}).Where("doctor_id = ?", doctor.ID).Count(&experiences)
	f.db.Model(&entity.Review{}).Where("doctor_id = ?", doctor.ID).Count(&reviews)
	if experiences != 0 || reviews != 0 {
		t.Fatalf("left %d experiences and %d reviews", experiences, reviews)
	}
}

func TestInvalidExperienceYears(t *testing.T) {
	f := newFixture(t)
	doctor := f.mustDoctor(t, dto.CreateDoctorRequest{Name: "Years"})

	_, err := f.experience.CreateExperience(context.Background(), doctor.ID, &dto.CreateExperienceRequest{
		Position: "Intern", HospitalName: "X", StartYear: intPtr(2020), EndYear: intPtr(2019),
	})
	if !errors.Is(err, ErrInvalidExperienceYears) {
		t.Fatalf("err = %v, want ErrInvalidExperienceYears", err)
	}
}

func TestHomeView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	unused := f.mustSpecialty(t, "Unused")
	specialtyIDs := make([]int, 0, 9)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"} {
		specialtyIDs = append(specialtyIDs, f.mustSpecialty(t, name).ID)
	}

	locations := []*string{strPtr("Dhaka"), strPtr("Dhaka"), strPtr("Sylhet"), nil, strPtr("Khulna"), nil, strPtr("Sylhet")}
	var ids []int
	for i, loc := range locations {
		d := f.mustDoctor(t, dto.CreateDoctorRequest{
			Name:         "Doctor " + strconv.Itoa(i),
			Location:     loc,
			IsFeatured:   true,
			SpecialtyIDs: specialtyIDs[:i+1],
		})
		ids = append(ids, d.ID)
	}
	f.mustReview(t, ids[6], 5)
	f.mustReview(t, ids[2], 4)
	f.mustReview(t, ids[2], 4)
	f.mustReview(t, ids[3], 4)

	for i := 0; i < 5; i++ {
		if _, err := f.hospital.CreateHospital(ctx, &dto.CreateHospitalRequest{Name: "H" + strconv.Itoa(i), Location: "Dhaka"}); err != nil {
			t.Fatalf("create hospital: %v", err)
		}
	}

	view, err := f.home.GetHome(ctx)
	if err != nil {
		t.Fatalf("GetHome: %v", err)
	}

	if view.TotalDoctors != 7 || view.TotalHospitals != 5 || view.TotalReviews != 4 {
		t.Fatalf("totals = %d/%d/%d", view.TotalDoctors, view.TotalHospitals, view.TotalReviews)
	}
	if view.DistrictsCovered != 3 {
		t.Fatalf("DistrictsCovered = %d, want 3", view.DistrictsCovered)
	}
	if len(view.Locations) != 3 || view.Locations[0] != "Dhaka" {
		t.Fatalf("Locations = %v", view.Locations)
	}
	if len(view.FeaturedDoctors) != 6 {
		t.Fatalf("featured = %d, want 6", len(view.FeaturedDoctors))
	}
	if view.FeaturedDoctors[0].ID != ids[6] || view.FeaturedDoctors[1].ID != ids[2] || view.FeaturedDoctors[2].ID != ids[3] {
		t.Fatalf("featured order = %+v", view.FeaturedDoctors[:3])
	}
	if len(view.FeaturedSpecialties) != 5 {
		t.Fatalf("featured specialties = %d, want 5", len(view.FeaturedSpecialties))
	}
	if len(view.LatestHospitals) != 4 || view.LatestHospitals[0].Name != "H4" {
		t.Fatalf("latest hospitals = %+v", view.LatestHospitals)
	}
	if len(view.TopSpecialties) != 7 {
		t.Fatalf("top specialties = %d, want 7", len(view.TopSpecialties))
	}
	if view.TopSpecialties[0].Name != "A" || view.TopSpecialties[0].DoctorCount != 7 {
		t.Fatalf("top specialty = %+v", view.TopSpecialties[0])
	}
	for _, s := range view.TopSpecialties {
		if s.ID == unused.ID {
			t.Fatal("specialty without doctors listed in top specialties")
		}
	}
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cardio := f.mustSpecialty(t, "Cardiology")
	f.mustDoctor(t, dto.CreateDoctorRequest{Name: "Alice", Location: strPtr("Dhaka"), SpecialtyIDs: []int{cardio.ID}})
	f.mustDoctor(t, dto.CreateDoctorRequest{Name: "Bob", Location: strPtr("Sylhet"), Designation: "Surgeon"})

	empty, err := f.directory.Search(ctx, dto.SearchQuery{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if empty.Searched || len(empty.Results) != 0 || len(empty.Specialties) != 1 || len(empty.Locations) != 2 {
		t.Fatalf("empty search page = %+v", empty)
	}

	tests := []struct {
		name  string
		query dto.SearchQuery
		want  string
	}{
		{"by specialty name", dto.SearchQuery{Q: "cardio"}, "Alice"},
		{"by designation", dto.SearchQuery{Q: "surgeon"}, "Bob"},
		{"by specialty slug", dto.SearchQuery{Specialty: "cardiology"}, "Alice"},
		{"by location", dto.SearchQuery{Location: "Sylhet"}, "Bob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.directory.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(page.Results) != 1 || page.Results[0].Name != tt.want {
				t.Fatalf("results = %+v, want %s", page.Results, tt.want)
			}
		})
	}
}

func TestWritesAreAudited(t *testing.T) {
	f := newFixture(t)
	s := f.mustSpecialty(t, "Audited")

	logs, err := f.audit.GetAllAuditLogs(context.Background(), &entity.AuditLogFilter{EntityName: "specialty", EntityID: strconv.Itoa(s.ID)})
	if err != nil {
		t.Fatalf("GetAllAuditLogs: %v", err)
	}
	if logs.Total != 1 || logs.Logs[0].Action != entity.AuditActionSpecialtyCreate || logs.Logs[0].Actor != service.SystemActor {
		t.Fatalf("logs = %+v", logs.Logs)
	}
}
