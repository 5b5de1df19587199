package http

import (
	"net/http"
	"strings"

	"doctor-directory/internal/delivery/http/handler"
	"doctor-directory/internal/delivery/http/middleware"
	"doctor-directory/internal/delivery/http/view"
	"doctor-directory/internal/service"
	"doctor-directory/pkg/response"

	"github.com/gorilla/mux"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Page       *handler.PageHandler
	Specialty  *handler.SpecialtyHandler
	Hospital   *handler.HospitalHandler
	Doctor     *handler.DoctorHandler
	Experience *handler.ExperienceHandler
	Review     *handler.ReviewHandler
	AuditLog   *handler.AuditLogHandler
	Health     *handler.HealthHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	rateLimiter       *middleware.RateLimiter
	homeCache         service.HomeCache
	mediaRoot         string
	mediaURL          string
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	rateLimiter *middleware.RateLimiter,
	homeCache service.HomeCache,
	mediaRoot, mediaURL string,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		rateLimiter:       rateLimiter,
		homeCache:         homeCache,
		mediaRoot:         mediaRoot,
		mediaURL:          mediaURL,
	}
}

// Setup registers every route and returns the root handler. Logging, panic
// recovery and CORS wrap the whole mux so unmatched routes and preflights pass
// through them too.
func (r *Router) Setup() http.Handler {
	h := r.handlers
	invalidate := middleware.InvalidateHomeCache(r.homeCache)

	// Assets
	r.router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(view.Static())))
	if prefix := mediaPrefix(r.mediaURL); prefix != "" {
		r.router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(r.mediaRoot))))
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	api.HandleFunc("/health", h.Health.Check).Methods(http.MethodGet)

	// Public review submission
	public := api.PathPrefix("/doctors").Subrouter()
	public.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	public.Use(r.rateLimiter.Handle)
	public.Use(invalidate)
	public.HandleFunc("/{slug}/reviews", h.Review.SubmitReview).Methods(http.MethodPost)

	// Admin routes (admin scope only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.Use(invalidate)

	admin.HandleFunc("/specialties", h.Specialty.CreateSpecialty).Methods(http.MethodPost)
	admin.HandleFunc("/specialties", h.Specialty.GetAllSpecialties).Methods(http.MethodGet)
	admin.HandleFunc("/specialties/{id}", h.Specialty.GetSpecialty).Methods(http.MethodGet)
	admin.HandleFunc("/specialties/{id}", h.Specialty.UpdateSpecialty).Methods(http.MethodPut)
	admin.HandleFunc("/specialties/{id}", h.Specialty.DeleteSpecialty).Methods(http.MethodDelete)

	admin.HandleFunc("/hospitals", h.Hospital.CreateHospital).Methods(http.MethodPost)
	admin.HandleFunc("/hospitals", h.Hospital.GetAllHospitals).Methods(http.MethodGet)
	admin.HandleFunc("/hospitals/{id}", h.Hospital.GetHospital).Methods(http.MethodGet)
	admin.HandleFunc("/hospitals/{id}", h.Hospital.UpdateHospital).Methods(http.MethodPut)
	admin.HandleFunc("/hospitals/{id}", h.Hospital.DeleteHospital).Methods(http.MethodDelete)
	admin.HandleFunc("/hospitals/{id}/image", h.Hospital.UploadHospitalImage).Methods(http.MethodPost)

	admin.HandleFunc("/doctors", h.Doctor.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", h.Doctor.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", h.Doctor.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", h.Doctor.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", h.Doctor.DeleteDoctor).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{id}/picture", h.Doctor.UploadProfilePicture).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}/experiences", h.Experience.CreateExperience).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}/reviews", h.Review.CreateReview).Methods(http.MethodPost)

	admin.HandleFunc("/experiences/{id}", h.Experience.UpdateExperience).Methods(http.MethodPut)
	admin.HandleFunc("/experiences/{id}", h.Experience.DeleteExperience).Methods(http.MethodDelete)

	admin.HandleFunc("/reviews", h.Review.GetAllReviews).Methods(http.MethodGet)
	admin.HandleFunc("/reviews/{id}", h.Review.DeleteReview).Methods(http.MethodDelete)

	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	// Pages
	r.router.HandleFunc("/", h.Page.Home).Methods(http.MethodGet)
	r.router.HandleFunc("/doctor/", h.Page.DoctorSingle).Methods(http.MethodGet)
	r.router.HandleFunc("/doctor/{slug}/", h.Page.DoctorSingle).Methods(http.MethodGet)
	r.router.HandleFunc("/doctors_detail/", h.Page.DoctorDetail).Methods(http.MethodGet)
	r.router.HandleFunc("/hospital/", h.Page.HospitalSingle).Methods(http.MethodGet)
	r.router.HandleFunc("/hospital/{id}/", h.Page.HospitalSingle).Methods(http.MethodGet)
	r.router.HandleFunc("/hospital_detail/", h.Page.HospitalDetail).Methods(http.MethodGet)
	r.router.HandleFunc("/search/", h.Page.Search).Methods(http.MethodGet)
	r.router.NotFoundHandler = http.HandlerFunc(h.Page.NotFound)
	r.router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	return r.loggingMiddleware.Handle(r.loggingMiddleware.Recover(r.corsMiddleware.Handle(r.router)))
}

// methodNotAllowed answers requests whose path matched a route registered
// for other methods.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
}

// mediaPrefix returns the path uploads are served under, or "" when
// MEDIA_URL points at another host.
func mediaPrefix(mediaURL string) string {
	if !strings.HasPrefix(mediaURL, "/") || strings.HasPrefix(mediaURL, "//") {
		return ""
	}
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return mediaURL
}
