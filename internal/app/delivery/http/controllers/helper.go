package controllers

import (
	"net/http"

	"claimbridge-service/internal/pkg/constvars"
)

func clinicIDFromRequest(r *http.Request) string {
	clinicID, _ := r.Context().Value(constvars.CONTEXT_CLINIC_ID_KEY).(string)
	return clinicID
}

func sessionIDFromRequest(r *http.Request) string {
	sessionID, _ := r.Context().Value(constvars.CONTEXT_SESSION_ID_KEY).(string)
	return sessionID
}
