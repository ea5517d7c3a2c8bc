package handler

import "net/http"

// GetWeather handles GET /weather?city=…
// The response is already normalized by the weather service; the handler
// only maps errors onto the status contract.
func (s *Server) GetWeather(w http.ResponseWriter, r *http.Request) {
	weather, err := s.weather.Current(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weather)
}
