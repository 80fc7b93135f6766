package api

import "net/http"

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	a.Response(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"timezone": a.loc.String(),
	})
}
