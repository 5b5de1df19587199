package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/delivery/http/handler"
	"doctor-directory/internal/delivery/http/view"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/infrastructure/storage"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

// Fakes

type fakeHome struct {
	view *dto.HomeView
	err  error
}

func (f *fakeHome) GetHome(context.Context) (*dto.HomeView, error) { return f.view, f.err }

type fakeDirectory struct {
	doctors   map[string]*dto.DoctorResponse
	hospitals map[int]*dto.HospitalResponse
	lastQuery dto.SearchQuery
	err       error
}

func (f *fakeDirectory) GetDoctorPage(_ context.Context, slug string) (*dto.DoctorResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.doctors[slug]; ok {
		return d, nil
	}
	return nil, usecase.ErrDoctorNotFound
}

func (f *fakeDirectory) ListDoctors(context.Context) (*dto.DoctorListPage, error) {
	page := &dto.DoctorListPage{}
	for _, d := range f.doctors {
		page.Doctors = append(page.Doctors, *d)
	}
	return page, f.err
}

func (f *fakeDirectory) GetHospitalPage(_ context.Context, id int) (*dto.HospitalResponse, error) {
	if h, ok := f.hospitals[id]; ok {
		return h, nil
	}
	return nil, usecase.ErrHospitalNotFound
}

func (f *fakeDirectory) ListHospitals(context.Context) (*dto.HospitalListPage, error) {
	page := &dto.HospitalListPage{}
	for _, h := range f.hospitals {
		page.Hospitals = append(page.Hospitals, *h)
	}
	return page, nil
}

func (f *fakeDirectory) Search(_ context.Context, q dto.SearchQuery) (*dto.SearchPage, error) {
	f.lastQuery = q
	return &dto.SearchPage{Query: q, Searched: !q.IsEmpty(), Results: []dto.DoctorResponse{}}, nil
}

type fakeDoctors struct {
	created *dto.CreateDoctorRequest
	err     error
	upload  []byte
}

func (f *fakeDoctors) CreateDoctor(_ context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	f.created = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.DoctorResponse{ID: 7, Name: req.Name, Slug: "jane-doe-7"}, nil
}

func (f *fakeDoctors) GetDoctor(_ context.Context, id int) (*dto.DoctorResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.DoctorResponse{ID: id}, nil
}

func (f *fakeDoctors) GetAllDoctors(context.Context, *entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	return &dto.DoctorListResponse{}, f.err
}

func (f *fakeDoctors) UpdateDoctor(_ context.Context, id int, _ *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.DoctorResponse{ID: id}, nil
}

func (f *fakeDoctors) SetProfilePicture(_ context.Context, id int, picture io.Reader) (*dto.DoctorResponse, error) {
	data, _ := io.ReadAll(picture)
	f.upload = data
	if f.err != nil {
		return nil, f.err
	}
	return &dto.DoctorResponse{ID: id}, nil
}

func (f *fakeDoctors) DeleteDoctor(context.Context, int) error { return f.err }

type fakeReviews struct {
	slug   string
	filter *entity.ReviewFilter
	err    error
}

func (f *fakeReviews) CreateReview(_ context.Context, doctorID int, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	return &dto.ReviewResponse{DoctorID: doctorID, Rating: req.Rating}, f.err
}

func (f *fakeReviews) CreateReviewForSlug(_ context.Context, slug string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	f.slug = slug
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ReviewResponse{PatientName: req.PatientName, Rating: req.Rating}, nil
}

func (f *fakeReviews) GetAllReviews(_ context.Context, filter *entity.ReviewFilter) (*dto.ReviewListResponse, error) {
	f.filter = filter
	return &dto.ReviewListResponse{}, nil
}

func (f *fakeReviews) DeleteReview(context.Context, int) error { return f.err }

// Page handler

func newPageRouter(t *testing.T, home *fakeHome, dir *fakeDirectory) *mux.Router {
	t.Helper()
	renderer, err := view.NewRenderer(quietLogger())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	h := handler.NewPageHandler(home, dir, renderer, quietLogger())

	r := mux.NewRouter()
	r.HandleFunc("/", h.Home)
	r.HandleFunc("/doctor/", h.DoctorSingle)
	r.HandleFunc("/doctor/{slug}/", h.DoctorSingle)
	r.HandleFunc("/doctors_detail/", h.DoctorDetail)
	r.HandleFunc("/hospital/", h.HospitalSingle)
	r.HandleFunc("/hospital/{id}/", h.HospitalSingle)
	r.HandleFunc("/hospital_detail/", h.HospitalDetail)
	r.HandleFunc("/search/", h.Search)
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	return r
}

func TestPages(t *testing.T) {
	home := &fakeHome{view: &dto.HomeView{TotalDoctors: 42}}
	dir := &fakeDirectory{
		doctors:   map[string]*dto.DoctorResponse{"jane-doe-7": {ID: 7, Name: "Jane Doe", Slug: "jane-doe-7"}},
		hospitals: map[int]*dto.HospitalResponse{3: {ID: 3, Name: "City Hospital"}},
	}
	router := newPageRouter(t, home, dir)

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, "42"},
		{"/doctor/", http.StatusOK, "Jane Doe"},
		{"/doctor/jane-doe-7/", http.StatusOK, "Jane Doe"},
		{"/doctor/nobody-1/", http.StatusNotFound, "Doctor not found"},
		{"/doctors_detail/?slug=jane-doe-7", http.StatusOK, "Be the first to review Jane Doe"},
		{"/doctors_detail/", http.StatusOK, "Doctors"},
		{"/hospital/", http.StatusOK, "City Hospital"},
		{"/hospital/3/", http.StatusOK, "City Hospital"},
		{"/hospital/abc/", http.StatusNotFound, "Hospital not found"},
		{"/hospital_detail/?id=3", http.StatusOK, "City Hospital"},
		{"/hospital_detail/?id=99", http.StatusNotFound, "Hospital not found"},
		{"/search/", http.StatusOK, "Search doctors"},
		{"/nowhere", http.StatusNotFound, "Page not found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Fatalf("body missing %q", tt.want)
			}
		})
	}
}

func TestSearchPassesQuery(t *testing.T) {
	dir := &fakeDirectory{}
	router := newPageRouter(t, &fakeHome{view: &dto.HomeView{}}, dir)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search/?q=heart&specialty=cardiology&location=Dhaka", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := dto.SearchQuery{Q: "heart", Specialty: "cardiology", Location: "Dhaka"}
	if dir.lastQuery != want {
		t.Fatalf("query = %+v, want %+v", dir.lastQuery, want)
	}
}

func TestHomeErrorRendersServerErrorPage(t *testing.T) {
	router := newPageRouter(t, &fakeHome{err: errors.New("db down")}, &fakeDirectory{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

// Doctor handler

func TestCreateDoctor(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"created", `{"name":"Jane Doe","designation":"GP","qualifications":"MBBS","about":"x"}`, nil, http.StatusCreated},
		{"missing fields", `{"name":"Jane Doe"}`, nil, http.StatusBadRequest},
		{"malformed", `{"name":`, nil, http.StatusBadRequest},
		{"unknown hospital", `{"name":"A","designation":"GP","qualifications":"MBBS","about":"x","hospital_id":9}`, usecase.ErrDoctorHospitalNotFound, http.StatusBadRequest},
		{"unknown specialty", `{"name":"A","designation":"GP","qualifications":"MBBS","about":"x","specialty_ids":[9]}`, usecase.ErrUnknownSpecialty, http.StatusBadRequest},
		{"entity violation", `{"name":"A","designation":"GP","qualifications":"MBBS","about":"x"}`, validator.Result{Violations: []validator.Violation{{Field: "slug", Kind: validator.KindTooLong, Param: "255"}}}, http.StatusBadRequest},
		{"internal", `{"name":"A","designation":"GP","qualifications":"MBBS","about":"x"}`, errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewDoctorHandler(&fakeDoctors{err: tt.err}, validator.NewValidator())
			rec := httptest.NewRecorder()
			h.CreateDoctor(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/doctors", strings.NewReader(tt.body)))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestGetDoctorNotFound(t *testing.T) {
	h := handler.NewDoctorHandler(&fakeDoctors{err: usecase.ErrDoctorNotFound}, validator.NewValidator())
	r := mux.NewRouter()
	r.HandleFunc("/doctors/{id}", h.GetDoctor)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors/5", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func multipartBody(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "upload.png")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write(content)
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUploadProfilePicture(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		err    error
		status int
	}{
		{"uploaded", "picture", nil, http.StatusOK},
		{"wrong field", "image", nil, http.StatusBadRequest},
		{"unsupported", "picture", storage.ErrUnsupportedMedia, http.StatusUnsupportedMediaType},
		{"too large", "picture", storage.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"missing doctor", "picture", usecase.ErrDoctorNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDoctors{err: tt.err}
			h := handler.NewDoctorHandler(fake, validator.NewValidator())
			r := mux.NewRouter()
			r.HandleFunc("/doctors/{id}/picture", h.UploadProfilePicture)

			body, contentType := multipartBody(t, tt.field, []byte("image-bytes"))
			req := httptest.NewRequest(http.MethodPost, "/doctors/7/picture", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if tt.field == "picture" && string(fake.upload) != "image-bytes" {
				t.Fatalf("upload = %q", fake.upload)
			}
		})
	}
}

// Review handler

func TestSubmitReview(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"accepted", `{"patient_name":"Sam","rating":4.5,"comment":"Kind"}`, nil, http.StatusCreated},
		{"lowest rating", `{"patient_name":"Sam","rating":1,"comment":"Meh"}`, nil, http.StatusCreated},
		{"rating too low", `{"patient_name":"Sam","rating":0.5,"comment":"x"}`, nil, http.StatusBadRequest},
		{"rating too high", `{"patient_name":"Sam","rating":5.5,"comment":"x"}`, nil, http.StatusBadRequest},
		{"unknown doctor", `{"patient_name":"Sam","rating":3,"comment":"x"}`, usecase.ErrDoctorNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeReviews{err: tt.err}
			h := handler.NewReviewHandler(fake, validator.NewValidator())
			r := mux.NewRouter()
			r.HandleFunc("/doctors/{slug}/reviews", h.SubmitReview)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/doctors/jane-doe-7/reviews", strings.NewReader(tt.body)))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status == http.StatusCreated && fake.slug != "jane-doe-7" {
				t.Fatalf("slug = %q", fake.slug)
			}
		})
	}
}

func TestSubmitReviewRatingViolationMessage(t *testing.T) {
	h := handler.NewReviewHandler(&fakeReviews{}, validator.NewValidator())
	r := mux.NewRouter()
	r.HandleFunc("/doctors/{slug}/reviews", h.SubmitReview)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/doctors/x-1/reviews", strings.NewReader(`{"patient_name":"Sam","rating":9,"comment":"x"}`)))

	env := decodeEnvelope(t, rec)
	if env.Success || env.Error["rating"] == "" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestGetAllReviewsCreatedRange(t *testing.T) {
	day := func(d int) *time.Time {
		ts := time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
		return &ts
	}
	tests := []struct {
		name   string
		query  string
		status int
		from   *time.Time
		to     *time.Time
	}{
		{"no range", "", http.StatusOK, nil, nil},
		{"dates", "?created_from=2024-03-01&created_to=2024-03-10", http.StatusOK, day(1), day(11)},
		{"timestamps", "?created_from=2024-03-01T00:00:00Z&created_to=2024-03-10T00:00:00Z", http.StatusOK, day(1), day(10)},
		{"only from", "?created_from=2024-03-05", http.StatusOK, day(5), nil},
		{"same day", "?created_from=2024-03-05&created_to=2024-03-05", http.StatusOK, day(5), day(6)},
		{"bad from", "?created_from=yesterday", http.StatusBadRequest, nil, nil},
		{"bad to", "?created_to=2024-13-01", http.StatusBadRequest, nil, nil},
		{"inverted", "?created_from=2024-03-10&created_to=2024-03-01", http.StatusBadRequest, nil, nil},
	}
	sameTime := func(got, want *time.Time) bool {
		if got == nil || want == nil {
			return got == want
		}
		return got.Equal(*want)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeReviews{}
			h := handler.NewReviewHandler(fake, validator.NewValidator())

			rec := httptest.NewRecorder()
			h.GetAllReviews(rec, httptest.NewRequest(http.MethodGet, "/admin/reviews"+tt.query, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				if fake.filter != nil {
					t.Fatal("usecase called for rejected query")
				}
				return
			}
			if !sameTime(fake.filter.CreatedFrom, tt.from) {
				t.Fatalf("CreatedFrom = %v, want %v", fake.filter.CreatedFrom, tt.from)
			}
			if !sameTime(fake.filter.CreatedTo, tt.to) {
				t.Fatalf("CreatedTo = %v, want %v", fake.filter.CreatedTo, tt.to)
			}
		})
	}
}
