package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/cyberwatch/internal/dashboard"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/nfrund/cyberwatch/internal/middleware"
	"github.com/nfrund/cyberwatch/internal/view"
	authdto "github.com/nfrund/cyberwatch/internal/view/dto/auth"
	"github.com/nfrund/cyberwatch/web/src/templates/layouts"
	"github.com/nfrund/cyberwatch/web/src/templates/pages"
)

const overviewUnavailable = "No se pudieron cargar los incidentes."

// OverviewSource provides the incident figures shown on the dashboard.
type OverviewSource interface {
	Overview(ctx context.Context) (dashboard.Overview, error)
}

// DashboardHandler handles requests for the user dashboard.
type DashboardHandler struct {
	overview OverviewSource
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(overview OverviewSource) *DashboardHandler {
	return &DashboardHandler{overview: overview}
}

// DashboardGet shows the user's dashboard page. When the incidents cannot
// be loaded the greeting is still shown, with a 500 status.
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	// RequireUser has already placed the user in the context.
	data := dashboardData(middleware.CurrentUser(c))

	status := http.StatusOK
	overview, err := h.overview.Overview(c.Request().Context())
	if err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to build incident overview", "error", err)
		data.Error = overviewUnavailable
		status = http.StatusInternalServerError
	} else {
		data.Overview = &overview
	}
	return render(c, status, layouts.Base("Dashboard", view.GetFlashData(c), pages.Dashboard(data)))
}

// SessionGet returns the session panel fragment polled by the dashboard.
func (h *DashboardHandler) SessionGet(c echo.Context) error {
	data := dashboardData(middleware.CurrentUser(c))
	return render(c, http.StatusOK, pages.SessionPanel(data))
}

func dashboardData(u *domain.User) authdto.DashboardData {
	return authdto.DashboardData{FullName: u.FullName, Email: u.Email, Role: u.Role}
}
