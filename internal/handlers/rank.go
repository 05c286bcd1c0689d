package handlers

import (
	"errors"
	"net/http"

	"github.com/jason-s-yu/pushups/internal/pushup"
	"github.com/jason-s-yu/pushups/internal/rank"
)

// rankView is a rank.Info with its display name.
type rankView struct {
	rank.Info
	FormattedRank string `json:"formattedRank"`
}

func viewOf(info rank.Info) rankView {
	return rankView{Info: info, FormattedRank: info.FormattedRank()}
}

// CalculateRankHandler computes a rank without touching any stored state.
//
//	GET /api/calculate-rank?count=N
//	GET /api/calculate-rank?totalPushups=A&maxSet=B
func (s *APIServer) CalculateRankHandler(w http.ResponseWriter, r *http.Request) {
	const invalid = "Invalid pushup count. Please provide a positive number."

	count, hasCount, err := queryInt(r, "count")
	if err != nil {
		writeError(w, http.StatusBadRequest, invalid)
		return
	}
	total, hasTotal, err := queryInt(r, "totalPushups")
	if err != nil {
		writeError(w, http.StatusBadRequest, invalid)
		return
	}
	maxSet, hasMax, err := queryInt(r, "maxSet")
	if err != nil {
		writeError(w, http.StatusBadRequest, invalid)
		return
	}
	if !hasCount && !hasTotal && !hasMax {
		writeError(w, http.StatusBadRequest, invalid)
		return
	}

	total = max(total, count)
	info, err := rank.Calculate(total, maxSet)
	if errors.Is(err, rank.ErrInvalidArgument) {
		writeError(w, http.StatusBadRequest, invalid)
		return
	}
	if err != nil {
		s.Logger.WithError(err).Error("rank calculation failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	v := viewOf(info)
	writeJSON(w, http.StatusOK, envelope{
		"success":       true,
		"tier":          v.Tier,
		"level":         v.Level,
		"progress":      v.Progress,
		"nextThreshold": v.NextThreshold,
		"formattedRank": v.FormattedRank,
	})
}

// AnonymousTemplateHandler returns the starting record for a client without an account.
func (s *APIServer) AnonymousTemplateHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pushup.NewAnonymousUserData())
}
