package rest

import "net/http"

const APIName = "Expense Tracker API"

type IndexResponse struct {
	Name      string            `json:"name"`
	OK        bool              `json:"ok"`
	Endpoints map[string]string `json:"endpoints"`
}

func index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, IndexResponse{
		Name: APIName,
		OK:   true,
		Endpoints: map[string]string{
			"health":        "/health",
			"ready":         "/ready",
			"dashboard":     "/dashboard",
			"responsibles":  "/responsibles",
			"expenses":      "/expenses",
			"expenseStatus": "/expenses/:id/status",
			"openapi":       "/openapi.yml",
		},
	})
}
