package app

import "net/http"

type HealthcheckResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthcheckResponse{
		Status:      "UP",
		Environment: app.config.Env,
		Version:     version,
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
