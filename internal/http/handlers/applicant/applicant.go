// Package applicant contains the HTTP handlers for the Applicant resource.
//
// HANDLER PATTERN: FACTORY + CLOSURE
// ────────────────────────────────────────────────────────────
// The router wants func(http.ResponseWriter, *http.Request), which has no
// room for a store. Each handler is therefore built by a factory that
// takes the store and returns the handler closing over it:
//
//	r.Post("/api/applicants", applicant.New(store))
//	//                                  ^^^^^^^^^^
//	//                 New(store) runs ONCE at startup.
//	//                 The returned func runs on EVERY request.
//
// Anything expensive to build (the validator) is built in the factory,
// not per request.
package applicant

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/orgconnect/internal/metrics"
	"github.com/aanand-mishra/orgconnect/internal/storage"
	"github.com/aanand-mishra/orgconnect/internal/types"
	"github.com/aanand-mishra/orgconnect/internal/utils/response"
	"github.com/aanand-mishra/orgconnect/internal/validation"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/applicants.
//
// Request body (JSON):
//
//	{ "name": "Ada", "email": "ada@example.com", "role": "Intern", "reason": "..." }
//
// Success response (201 Created): the stored applicant, including its id
// and submittedAt.
//
// Error responses:
//
//	400 Bad Request: missing field (including an empty body), unknown role, malformed JSON
//	500 Internal:    storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage) http.HandlerFunc {
	validate := validation.New()

	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating an applicant")

		// ── Step 1: Decode the JSON body ──────────────────────────────
		var input types.ApplicantInput

		err := json.NewDecoder(r.Body).Decode(&input)

		// An empty body carries no fields at all, which is the same
		// failure as a body with every field missing.
		if err != nil && !errors.Is(err, io.EOF) {
			metrics.ValidationFailures.WithLabelValues("malformed").Inc()
			response.WriteJSON(w, http.StatusBadRequest, response.Message(response.MsgInvalidBody))
			return
		}

		// ── Step 2: Validate ──────────────────────────────────────────
		// ValidationError folds the per-field failures into the single
		// public message the client shows.
		if err := validate.Struct(input); err != nil {
			var validateErrs validator.ValidationErrors
			if !errors.As(err, &validateErrs) {
				slog.Error("validator failed", slog.String("error", err.Error()))
				response.WriteJSON(w, http.StatusInternalServerError, response.Message(response.MsgInternal))
				return
			}

			resp := response.ValidationError(validateErrs)
			metrics.ValidationFailures.WithLabelValues(failureReason(resp.Message)).Inc()
			slog.Debug("rejected applicant", slog.String("reason", resp.Message))
			response.WriteJSON(w, http.StatusBadRequest, resp)
			return
		}

		// ── Step 3: Store, which assigns id and submittedAt ───────────
		applicant, err := storage.CreateApplicant(input)
		if err != nil {
			slog.Error("error creating applicant", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Message(response.MsgInternal))
			return
		}

		// ── Step 4: Respond 201 with the full record ──────────────────
		metrics.ApplicantsCreated.WithLabelValues(string(applicant.Role)).Inc()
		slog.Info("applicant created",
			slog.Int64("id", applicant.ID),
			slog.String("role", string(applicant.Role)),
		)

		response.WriteJSON(w, http.StatusCreated, applicant)
	}
}

// GetList handles GET /api/applicants.
// Returns every stored applicant as a JSON array, [] when there are none.
// No filtering or ordering beyond insertion order; clients sort.
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all applicants")

		applicants, err := storage.GetApplicants()
		if err != nil {
			slog.Error("error getting applicants", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Message(response.MsgInternal))
			return
		}
		if applicants == nil {
			applicants = []types.Applicant{}
		}

		response.WriteJSON(w, http.StatusOK, applicants)
	}
}

func failureReason(msg string) string {
	switch msg {
	case response.MsgFieldsRequired:
		return "missing_field"
	case response.MsgInvalidRole:
		return "invalid_role"
	default:
		return "other"
	}
}
