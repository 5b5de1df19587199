package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/delivery/http/view"
	"doctor-directory/internal/usecase"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// PageRenderer renders a named HTML page.
type PageRenderer interface {
	Render(w http.ResponseWriter, status int, name string, page view.Page)
}

// PageHandler serves the public HTML pages.
type PageHandler struct {
	homeUsecase      usecase.HomeUsecase
	directoryUsecase usecase.DirectoryUsecase
	renderer         PageRenderer
	log              *logrus.Logger
}

func NewPageHandler(
	homeUsecase usecase.HomeUsecase,
	directoryUsecase usecase.DirectoryUsecase,
	renderer PageRenderer,
	log *logrus.Logger,
) *PageHandler {
	return &PageHandler{
		homeUsecase:      homeUsecase,
		directoryUsecase: directoryUsecase,
		renderer:         renderer,
		log:              log,
	}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.homeUsecase.GetHome(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, view.PageHome, view.Page{Data: home})
}

// DoctorSingle serves /doctor/ and /doctor/{slug}/. Without a slug it lists
// every doctor.
func (h *PageHandler) DoctorSingle(w http.ResponseWriter, r *http.Request) {
	if slug := mux.Vars(r)["slug"]; slug != "" {
		h.renderDoctor(w, r, slug)
		return
	}
	h.renderDoctorList(w, r)
}

// DoctorDetail serves /doctors_detail/?slug=.
func (h *PageHandler) DoctorDetail(w http.ResponseWriter, r *http.Request) {
	if slug := strings.TrimSpace(r.URL.Query().Get("slug")); slug != "" {
		h.renderDoctor(w, r, slug)
		return
	}
	h.renderDoctorList(w, r)
}

// HospitalSingle serves /hospital/ and /hospital/{id}/.
func (h *PageHandler) HospitalSingle(w http.ResponseWriter, r *http.Request) {
	if raw := mux.Vars(r)["id"]; raw != "" {
		h.renderHospital(w, r, raw)
		return
	}
	h.renderHospitalList(w, r)
}

// HospitalDetail serves /hospital_detail/?id=.
func (h *PageHandler) HospitalDetail(w http.ResponseWriter, r *http.Request) {
	if raw := strings.TrimSpace(r.URL.Query().Get("id")); raw != "" {
		h.renderHospital(w, r, raw)
		return
	}
	h.renderHospitalList(w, r)
}

// Search serves /search/?q=&specialty=&location=.
func (h *PageHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := h.directoryUsecase.Search(r.Context(), dto.SearchQuery{
		Q:         query.Get("q"),
		Specialty: query.Get("specialty"),
		Location:  query.Get("location"),
	})
	if err != nil {
		h.serverError(w, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, view.PageSearch, view.Page{Title: "Search", Data: page})
}

// NotFound renders the 404 page for unmatched routes.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusNotFound, view.PageNotFound, view.Page{Title: "Not found"})
}

func (h *PageHandler) renderDoctor(w http.ResponseWriter, r *http.Request, slug string) {
	doctor, err := h.directoryUsecase.GetDoctorPage(r.Context(), slug)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			h.renderer.Render(w, http.StatusNotFound, view.PageNotFound, view.Page{Title: "Not found", Data: "Doctor not found"})
			return
		}
		h.serverError(w, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, view.PageDoctorDetail, view.Page{Title: doctor.Name, Data: doctor})
}

func (h *PageHandler) renderDoctorList(w http.ResponseWriter, r *http.Request) {
	page, err := h.directoryUsecase.ListDoctors(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, view.PageDoctorSingle, view.Page{Title: "Doctors", Data: page})
}

func (h *PageHandler) renderHospital(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		h.renderer.Render(w, http.StatusNotFound, view.PageNotFound, view.Page{Title: "Not found", Data: "Hospital not found"})
		return
	}

	hospital, err := h.directoryUsecase.GetHospitalPage(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrHospitalNotFound) {
			h.renderer.Render(w, http.StatusNotFound, view.PageNotFound, view.Page{Title: "Not found", Data: "Hospital not found"})
			return
		}
		h.serverError(w, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, view.PageHospitalDetail, view.Page{Title: hospital.Name, Data: hospital})
}

func (h *PageHandler) renderHospitalList(w http.ResponseWriter, r *http.Request) {
	page, err := h.directoryUsecase.ListHospitals(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, view.PageHospitalSingle, view.Page{Title: "Hospitals", Data: page})
}

func (h *PageHandler) serverError(w http.ResponseWriter, err error) {
	h.log.Errorf("Failed to build page: %+v", err)
	h.renderer.Render(w, http.StatusInternalServerError, view.PageServerError, view.Page{Title: "Error"})
}
