package webui

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/revquotes/console/internal/app/quoteflow"
	"github.com/revquotes/console/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"formatPrice": domain.FormatPrice,
	"formatNum":   formatNum,
}).ParseFS(templateFS, "templates/*.html"))

// formatNum renders a form float without trailing zeros (12.5, not 12.50).
func formatNum(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// page is the data every template receives.
type page struct {
	Title  string
	Active string
	User   *domain.UserProfile

	// Auth-form state: the inline failure line and the sticky email value.
	Flash string
	Email string

	// Quote-flow state plus the form option lists and the action URLs the
	// embedding page posts to.
	Flow      *quoteflow.State
	Vehicles  []domain.VehicleType
	Urgencies []domain.Urgency
	Actions   flowActions
}

type flowActions struct {
	Quote       string
	Book        string
	Recalculate string
	Dismiss     string
}

// Summary is the one-line shipment recap shown next to an accepted quote.
func (p page) Summary() string {
	if p.Flow == nil {
		return ""
	}
	return formatNum(p.Flow.DistanceKM) + "km • " + formatNum(p.Flow.WeightKG) + "kg • " + string(p.Flow.Vehicle)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data page) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
