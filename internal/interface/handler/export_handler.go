package handler

import (
	"context"
	"errors"
	"net/http"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/templates"

	"golang.org/x/oauth2"
)

// Export runs the full listing and write, then renders a summary
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := SessionFromContext(ctx)
	if !session.Authenticated() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	// a run is not cancelled with its request
	runCtx := context.WithoutCancel(ctx)
	tokenSource := h.oauth.TokenSource(runCtx, session.Token)

	result, err := h.exporter.Export(runCtx, tokenSource, session.Email)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "Export failed", err, true)
		return
	}
	h.keepRefreshedToken(runCtx, session, tokenSource)

	data := templates.ExportData{
		Count:          len(result.Rows),
		Worksheet:      h.cfg.Worksheet,
		SheetCreated:   result.SheetCreated,
		Legacy:         result.Layout == entity.LayoutLegacy,
		SpreadsheetURL: h.cfg.SpreadsheetURL,
	}
	for i, row := range result.Rows {
		if i == h.cfg.SummaryRows {
			data.Truncated = true
			break
		}
		data.Rows = append(data.Rows, templates.ExportRow{
			DisplayName: row.DisplayName,
			SpaceID:     row.SpaceID,
			MemberCount: row.MemberCount,
		})
	}

	h.renderPage(w, http.StatusOK, templates.PageExport, data)
}

// keepRefreshedToken stores the token tokenSource ended up with, so a refresh done
// during the run is not repeated by the next one
func (h *Handler) keepRefreshedToken(ctx context.Context, session *entity.Session, tokenSource oauth2.TokenSource) {
	token, err := tokenSource.Token()
	if err != nil || token.AccessToken == session.Token.AccessToken {
		return
	}
	session.Token = token
	if err := h.saveSession(ctx, session); err != nil {
		h.logger.Warn("Failed to save refreshed token", "sessionID", session.ID, "error", err)
	}
}

// Lookup resolves a space ID from the worksheet by name
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := SessionFromContext(ctx)
	if !session.Authenticated() {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrNotAuthenticated.Error()})
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	match, err := h.finder.FindSpaceID(ctx, h.oauth.TokenSource(ctx, session.Token), name)
	switch {
	case errors.Is(err, entity.ErrSpaceNotFound), errors.Is(err, entity.ErrWorksheetNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case err != nil:
		h.logger.Error("Space lookup failed", "name", name, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		h.writeJSON(w, http.StatusOK, match)
	}
}

type historyResponse struct {
	Runs []*entity.ExportRun `json:"runs"`
}

// History lists recent export runs
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := SessionFromContext(ctx)
	if !session.Authenticated() {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrNotAuthenticated.Error()})
		return
	}

	runs, err := h.exporter.RecentRuns(ctx, h.cfg.HistoryLimit)
	if err != nil {
		h.logger.Error("Failed to load export history", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if runs == nil {
		runs = []*entity.ExportRun{}
	}
	h.writeJSON(w, http.StatusOK, historyResponse{Runs: runs})
}
