package api

import (
	"net/http"
	"salon-booking/service"
)

type getServicesResponse struct {
	Services []service.Service `json:"services"`
}

func (a *API) getServices(w http.ResponseWriter, r *http.Request) {
	services, err := a.services.GetServices(r.Context())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, getServicesResponse{Services: services})
}

func (a *API) getService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid service ID")
		return
	}

	s, err := a.services.GetService(r.Context(), id)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, s)
}
