package article

import (
	"net/http"

	"pressroom/internal/handler/http/pathutil"
	"pressroom/internal/handler/http/respond"
	"pressroom/internal/observability/logging"
	artUC "pressroom/internal/usecase/article"
)

// GetHandler serves GET /articles/{id} as a bare resource.
type GetHandler struct{ Svc *artUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	a, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := respond.StatusFor(err)
		if code == http.StatusInternalServerError {
			logging.FromContext(r.Context()).Error("get article failed",
				"article_id", id,
				"error", respond.SanitizeError(err))
		}
		respond.SafeError(w, code, err)
		return
	}

	body, err := Marshal(*a)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.Bytes(w, http.StatusOK, body)
}
