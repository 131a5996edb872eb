package document

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sgfkit/internal/domain/document"
	"sgfkit/internal/domain/rawsgf"
	"sgfkit/internal/domain/sgf"
	sgferrors "sgfkit/internal/errors"
	"sgfkit/internal/httpresponse"
	docuc "sgfkit/internal/usecase/document"
	"sgfkit/internal/utils"
)

type DocumentHandler struct {
	log   *zap.SugaredLogger
	docUC *docuc.DocumentUseCase

	// подключения к /live по id документа
	liveMu sync.Mutex
	live   map[string]map[*liveConn]struct{}
}

func NewDocumentHandler(log *zap.SugaredLogger, docUC *docuc.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{
		log:   log,
		docUC: docUC,
		live:  make(map[string]map[*liveConn]struct{}),
	}
}

func (h *DocumentHandler) Routes(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Post("/", h.HandleCreateDocument)
		r.Get("/{id}", h.HandleGetDocument)
		r.Delete("/{id}", h.HandleDeleteDocument)
		r.Get("/{id}/sgf", h.HandleGetSGF)
		r.Get("/{id}/gameinfo", h.HandleGetGameInfo)
		r.Put("/{id}/gameinfo", h.HandleUpdateGameInfo)
		r.Post("/{id}/moves", h.HandleAppendMove)
		r.Get("/{id}/live", h.HandleLive)
	})
}

func gameIndex(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("game")
	if raw == "" {
		return 0, nil
	}
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: game %q", sgferrors.ErrInvalidArgument, raw)
	}
	return index, nil
}

func (h *DocumentHandler) HandleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var collection rawsgf.Collection
	if err := utils.DecodeJSONRequest(r, &collection); err != nil {
		h.log.Errorw("JSON decode error", "error", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	id, err := h.docUC.CreateDocument(r.Context(), &collection)
	if err != nil {
		h.log.Errorw("failed to create document", "error", err)
		httpresponse.WriteError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, document.CreateDocumentResponse{ID: id})
}

func (h *DocumentHandler) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.docUC.GetDocumentView(r.Context(), id)
	if err != nil {
		h.log.Errorw("failed to get document", "id", id, "error", err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

func (h *DocumentHandler) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.docUC.DeleteDocument(r.Context(), id); err != nil {
		h.log.Errorw("failed to delete document", "id", id, "error", err)
		httpresponse.WriteError(w, err)
		return
	}
	h.closeLive(id)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, document.CreateDocumentResponse{ID: id})
}

func (h *DocumentHandler) HandleGetSGF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text, err := h.docUC.GetSGF(r.Context(), id)
	if err != nil {
		h.log.Errorw("failed to get sgf", "id", id, "error", err)
		httpresponse.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-go-sgf; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (h *DocumentHandler) HandleGetGameInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := gameIndex(r)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	info, err := h.docUC.GetGameInfo(r.Context(), id, index)
	if err != nil {
		h.log.Errorw("failed to get game info", "id", id, "game", index, "error", err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, document.GameInfoResponse{
		GameInfo: info,
		Result:   info.GameResult(),
	})
}

func (h *DocumentHandler) HandleUpdateGameInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := gameIndex(r)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	var info sgf.GameInfo
	if err = utils.DecodeJSONRequest(r, &info); err != nil {
		h.log.Errorw("JSON decode error", "error", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}
	if err = h.docUC.UpdateGameInfo(r.Context(), id, index, &info); err != nil {
		h.log.Errorw("failed to update game info", "id", id, "game", index, "error", err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, info)
}

func (h *DocumentHandler) HandleAppendMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := gameIndex(r)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	var move document.Move
	if err = utils.DecodeJSONRequest(r, &move); err != nil {
		h.log.Errorw("JSON decode error", "error", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	text, err := h.docUC.AppendMove(r.Context(), id, index, move)
	if err != nil {
		h.log.Errorw("failed to append move", "id", id, "move", move, "error", err)
		httpresponse.WriteError(w, err)
		return
	}

	resp := document.GameStateResponse{Move: move, SGF: text}
	h.broadcast(id, resp)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}
