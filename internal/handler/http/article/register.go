package article

import (
	"net/http"

	"pressroom/internal/common/pagination"
	artUC "pressroom/internal/usecase/article"
)

// Register mounts the read-only article routes.
func Register(mux *http.ServeMux, svc *artUC.Service, paginationCfg pagination.Config) {
	mux.Handle("GET /articles", ListHandler{Svc: svc, PaginationCfg: paginationCfg})
	mux.Handle("GET /articles/{id}", GetHandler{Svc: svc})
}
