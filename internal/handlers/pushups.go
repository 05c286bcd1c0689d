// internal/handlers/pushups.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pushups/internal/middleware"
	"github.com/jason-s-yu/pushups/internal/models"
	"github.com/jason-s-yu/pushups/internal/pushup"
	"github.com/jason-s-yu/pushups/internal/rank"
	"github.com/jason-s-yu/pushups/internal/realtime"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

type submitRequest struct {
	pushup.Submission
	// UserData is the client-held record of an anonymous user.
	UserData *pushup.AnonymousUserData `json:"userData,omitempty"`
}

// SubmitPushupsHandler records a set.
//
// Signed-in users get the set persisted and their stats updated (201).
// Anonymous users send their record in userData and get it back updated (200); nothing is stored.
func (s *APIServer) SubmitPushupsHandler(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if userID, ok := middleware.UserID(r.Context()); ok {
		s.submitPersisted(w, r, userID, req.Submission)
		return
	}
	s.submitAnonymous(w, req)
}

func (s *APIServer) submitAnonymous(w http.ResponseWriter, req submitRequest) {
	data := pushup.NewAnonymousUserData()
	if req.UserData != nil {
		data = *req.UserData
		if data.History == nil {
			data.History = []pushup.HistoryEntry{}
		}
	}

	next, out, err := data.Submit(req.Submission, s.clock())
	if err != nil {
		s.writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":        true,
		"userData":       next,
		"rank":           viewOf(out.Rank),
		"effectiveCount": out.EffectiveCount,
		"rankedUp":       out.RankedUp,
	})
}

func (s *APIServer) submitPersisted(w http.ResponseWriter, r *http.Request, userID uuid.UUID, sub pushup.Submission) {
	res, err := s.Store.RecordSubmission(r.Context(), userID, sub)
	if err != nil {
		s.writeSubmitError(w, err)
		return
	}

	if res.Outcome.RankedUp {
		s.announceRankUp(r.Context(), userID, res.Outcome)
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success":        true,
		"message":        "Pushup record created successfully",
		"record":         res.Record,
		"stats":          res.Stats,
		"rank":           viewOf(res.Outcome.Rank),
		"effectiveCount": res.Outcome.EffectiveCount,
		"rankedUp":       res.Outcome.RankedUp,
	})
}

func (s *APIServer) writeSubmitError(w http.ResponseWriter, err error) {
	if errors.Is(err, pushup.ErrInvalidSubmission) || errors.Is(err, rank.ErrInvalidArgument) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.Logger.WithError(err).Error("failed to record pushups")
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// announceRankUp queues the event and pushes it to open websockets. Failures are logged only;
// the submission itself already committed.
func (s *APIServer) announceRankUp(ctx context.Context, userID uuid.UUID, out pushup.Outcome) {
	ev := models.RankEvent{
		UserID:       userID,
		FromTier:     out.Previous.Tier,
		FromLevel:    out.Previous.Level,
		ToTier:       out.Rank.Tier,
		ToLevel:      out.Rank.Level,
		TotalPushups: out.Totals.TotalPushups,
		MaxSet:       out.Totals.MaxSet,
		Timestamp:    s.clock().UnixMilli(),
	}

	if s.Events != nil {
		if err := s.Events.PublishRankEvent(ctx, ev); err != nil {
			s.Logger.WithError(err).WithField("user", userID).Warn("failed to publish rank event")
		}
	}
	if s.Hub != nil {
		s.Hub.Notify(ctx, userID, realtime.Message{Type: "rank_up", Payload: envelope{
			"event": ev,
			"rank":  viewOf(out.Rank),
		}})
	}
}

// ListPushupsHandler returns the signed-in user's most recent sets.
//
//	GET /api/pushups?limit=N
func (s *APIServer) ListPushupsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	limit, present, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !present || limit == 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	records, err := s.Store.RecentPushupRecords(r.Context(), userID, limit)
	if err != nil {
		s.Logger.WithError(err).Error("failed to list pushup records")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if records == nil {
		records = []models.PushupRecord{}
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "records": records})
}
