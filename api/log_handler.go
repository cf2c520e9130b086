package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-labs/blog-platform-backend/database"
	"github.com/inkwell-labs/blog-platform-backend/errs"
	"github.com/inkwell-labs/blog-platform-backend/models"
	"github.com/inkwell-labs/blog-platform-backend/policy"
)

type logHandler struct {
	responder Responder
	logger    zerolog.Logger
	logRepo   *database.LogEntryRepo
}

func newLogHandler(logRepo *database.LogEntryRepo) logHandler {
	logger := log.With().Str("handlerName", "logHandler").Logger()

	return logHandler{
		responder: NewResponder(logger),
		logger:    logger,
		logRepo:   logRepo,
	}
}

// list returns the audit trail
// @Summary List audit log
// @Description Returns audit records: staff see everything, other users see records for their own entries and their own actions
// @Tags Logs
// @Produce json
// @Success 200 {array} models.LogEntry "Audit records"
// @Failure 401 {object} ErrorResponse "Unauthorized - authentication required"
// @Router /logs/ [get]
func (h logHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())
		if user == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var entries []*models.LogEntry
		var err error
		if policy.RoleOf(user) == policy.RoleStaff {
			entries, err = h.logRepo.ListAll()
		} else {
			entries, err = h.logRepo.ListForUser(user.ID)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list logs", "log_entries", err))
			return
		}

		h.responder.WriteJSON(w, entries)
	}
}
