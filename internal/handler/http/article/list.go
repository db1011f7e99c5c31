package article

import (
	"log/slog"
	"net/http"
	"time"

	"pressroom/internal/common/pagination"
	"pressroom/internal/handler/http/respond"
	"pressroom/internal/observability/logging"
	artUC "pressroom/internal/usecase/article"
)

// Page is a resource collection with pagination metadata.
type Page struct {
	Data []Resource          `json:"data"`
	Meta pagination.Metadata `json:"meta"`
}

// ListHandler serves GET /articles?page=&limit=.
type ListHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.FromContext(ctx)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters", slog.String("error", err.Error()))
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.ListPaginated(ctx, params)
	if err != nil {
		logger.Error("failed to list articles",
			slog.Int("page", params.Page),
			slog.Int("limit", params.Limit),
			slog.String("error", respond.SanitizeError(err)))
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	page := Page{Data: resources(result.Data), Meta: result.Pagination}
	pagination.RecordRequest(http.StatusOK, params.Page)
	logger.Debug("paginated response",
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("returned_count", len(page.Data)),
		slog.Duration("duration", time.Since(start)))

	respond.JSON(w, http.StatusOK, page)
}
