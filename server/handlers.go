package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/umputun/cardfilter/pkg/domain"
	"github.com/umputun/cardfilter/pkg/hover"
	"github.com/umputun/cardfilter/pkg/service"
)

type keywordRequest struct {
	Keyword string `json:"keyword"`
}

type authorRequest struct {
	Input string `json:"input"`
}

type cardsRequest struct {
	HTML string `json:"html"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// pageHandler renders the current document with the visibility toggles applied
func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	var body string
	var err error
	if !s.onLoop(w, r, func() { body, err = s.page.HTML() }) {
		return
	}
	if err != nil {
		log.Printf("[ERROR] failed to render page: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func (s *Server) rulesHandler(w http.ResponseWriter, r *http.Request) {
	var res service.RulesView
	if !s.onLoop(w, r, func() { res = s.filter.Rules() }) {
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	var res domain.Stats
	if !s.onLoop(w, r, func() { res = s.filter.Stats() }) {
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

func (s *Server) addKeywordHandler(w http.ResponseWriter, r *http.Request) {
	var req keywordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	var added bool
	if !s.onLoop(w, r, func() { added = s.filter.AddKeyword(r.Context(), req.Keyword) }) {
		return
	}
	if !added {
		renderJSON(w, r, http.StatusOK, map[string]any{"added": false, "keyword": req.Keyword})
		return
	}
	renderJSON(w, r, http.StatusCreated, map[string]any{"added": true, "keyword": req.Keyword})
}

func (s *Server) removeKeywordHandler(w http.ResponseWriter, r *http.Request) {
	keyword := r.PathValue("keyword")
	if !s.onLoop(w, r, func() { s.filter.RemoveKeyword(r.Context(), keyword) }) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	var author domain.BlockedAuthor
	var added bool
	if !s.onLoop(w, r, func() { author, added = s.filter.AddAuthor(r.Context(), req.Input) }) {
		return
	}
	if author.ID == "" {
		renderError(w, r, errors.New("empty author"), http.StatusBadRequest)
		return
	}
	code := http.StatusCreated
	if !added {
		code = http.StatusOK
	}
	renderJSON(w, r, code, map[string]any{"added": added, "id": author.ID, "name": author.Name, "display": author.Display()})
}

func (s *Server) removeAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.onLoop(w, r, func() { s.filter.RemoveAuthor(r.Context(), id) }) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// appendCardsHandler inserts new cards into the page, the scheduler picks up the mutation
func (s *Server) appendCardsHandler(w http.ResponseWriter, r *http.Request) {
	var req cardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	var added int
	var err error
	if !s.onLoop(w, r, func() { added, err = s.page.AppendCards(req.HTML) }) {
		return
	}
	if err != nil {
		renderError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	renderJSON(w, r, http.StatusCreated, map[string]int{"added": added})
}

func (s *Server) removeCardHandler(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || idx < 0 {
		renderError(w, r, errors.New("invalid card index"), http.StatusBadRequest)
		return
	}
	var removed bool
	if !s.onLoop(w, r, func() { removed = s.page.RemoveCard(idx) }) {
		return
	}
	if !removed {
		renderError(w, r, fmt.Errorf("card %d not found", idx), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pointerHandler feeds a pointer event to the hover advisor and returns its state afterwards
func (s *Server) pointerHandler(w http.ResponseWriter, r *http.Request) {
	var ev domain.PointerEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	var status hover.Status
	var err error
	if !s.onLoop(w, r, func() {
		if err = s.advisor.Handle(r.Context(), ev); err == nil {
			status = s.advisor.Status()
		}
	}) {
		return
	}
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	renderJSON(w, r, http.StatusOK, status)
}

func (s *Server) hoverHandler(w http.ResponseWriter, r *http.Request) {
	var status hover.Status
	if !s.onLoop(w, r, func() { status = s.advisor.Status() }) {
		return
	}
	renderJSON(w, r, http.StatusOK, status)
}
