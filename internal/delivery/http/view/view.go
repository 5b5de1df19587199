package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names. Each has a templates/<name>.html file rendered inside the
// shared layout.
const (
	PageHome           = "home"
	PageDoctorSingle   = "doctor_single"
	PageDoctorDetail   = "doctor_detail"
	PageHospitalSingle = "hospital_single"
	PageHospitalDetail = "hospital_detail"
	PageSearch         = "search"
	PageNotFound       = "404"
	PageServerError    = "500"
)

var pages = []string{
	PageHome,
	PageDoctorSingle,
	PageDoctorDetail,
	PageHospitalSingle,
	PageHospitalDetail,
	PageSearch,
	PageNotFound,
	PageServerError,
}

// Page is the value every template executes against. Data holds the page's
// own context, e.g. *dto.HomeView for the home page.
type Page struct {
	Title string
	Data  interface{}
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"stars": func(rating float64) string {
		full := int(rating + 0.5)
		if full > 5 {
			full = 5
		}
		if full < 0 {
			full = 0
		}
		return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
	},
	"deref": func(i *int) int {
		if i == nil {
			return 0
		}
		return *i
	},
}

type Renderer struct {
	log       *logrus.Logger
	templates map[string]*template.Template
}

// NewRenderer parses every page against the layout once at startup.
func NewRenderer(log *logrus.Logger) (*Renderer, error) {
	layout, err := template.New("layout").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		clone, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		tmpl, err := clone.ParseFS(templatesFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Renderer{log: log, templates: templates}, nil
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := r.templates[name]
	if !ok {
		r.log.Errorf("Unknown page template %q", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		r.log.Errorf("Failed to render page %s: %+v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Static serves the bundled stylesheet and default images.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
