package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/apocrypha/forge/internal/config"
	"github.com/apocrypha/forge/internal/forge"
	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/store"
)

const sessionCookie = "forge_session"

// sessionID returns the browser's ideation session id, assigning a fresh
// uuid via cookie on first visit.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

// currentSessionID is for API endpoints, which never assign a session:
// the forge page must have been visited first.
func currentSessionID(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "index.html", nil)
}

type forgeData struct {
	Considerations []config.Definition
	Session        *models.Session
	Status         forge.CompletionStatus
}

func (s *Server) handleForge(w http.ResponseWriter, r *http.Request) {
	sess := s.svc.LoadSession(s.sessionID(w, r))
	s.renderPage(w, "forge.html", forgeData{
		Considerations: s.svc.Config().Considerations,
		Session:        sess,
		Status:         s.svc.CompletionStatus(sess),
	})
}

type marketplaceData struct {
	Ideas []models.IdeaSummary
	Query string
}

func (s *Server) handleMarketplace(w http.ResponseWriter, r *http.Request) {
	ideas := s.svc.ListIdeas()

	query := r.URL.Query().Get("q")
	if query != "" && s.index != nil {
		ids, err := s.index.Search(query, 50)
		if err != nil {
			log.Printf("searching ideas for %q: %v", query, err)
		} else {
			matched := make(map[string]bool, len(ids))
			for _, id := range ids {
				matched[id] = true
			}
			filtered := ideas[:0]
			for _, idea := range ideas {
				if matched[idea.ID] {
					filtered = append(filtered, idea)
				}
			}
			ideas = filtered
		}
	}

	s.renderPage(w, "marketplace.html", marketplaceData{Ideas: ideas, Query: query})
}

type ideaDetailData struct {
	Idea *models.Idea
}

func (s *Server) handleIdeaDetail(w http.ResponseWriter, r *http.Request) {
	idea, err := s.svc.GetIdea(r.PathValue("id"))
	if err != nil {
		http.Redirect(w, r, "/marketplace", http.StatusSeeOther)
		return
	}
	s.renderPage(w, "idea_detail.html", ideaDetailData{Idea: idea})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sessionID := currentSessionID(r)
	if sessionID == "" {
		errorJSON(w, http.StatusBadRequest, "No session found")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		errorJSON(w, http.StatusBadRequest, "Missing required data")
		return
	}

	sess := s.svc.LoadSession(sessionID)
	result := s.asst.Respond(r.Context(), req.Message, sess)

	s.svc.ApplyUpdates(sessionID, result.Updates)
	if err := s.svc.AddTurn(sessionID, req.Message, result.Response); err != nil {
		log.Printf("recording chat turn: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"response":              result.Response,
		"session_id":            sessionID,
		"consideration_updates": result.Updates,
	})
}

type updateConsiderationRequest struct {
	ConsiderationID string `json:"consideration_id"`
	Content         string `json:"content"`
}

func (s *Server) handleUpdateConsideration(w http.ResponseWriter, r *http.Request) {
	sessionID := currentSessionID(r)
	if sessionID == "" {
		errorJSON(w, http.StatusBadRequest, "No session found")
		return
	}

	var req updateConsiderationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ConsiderationID == "" {
		errorJSON(w, http.StatusBadRequest, "Missing required data")
		return
	}

	sess, err := s.svc.UpdateConsideration(sessionID, req.ConsiderationID, req.Content)
	if err != nil {
		if errors.Is(err, forge.ErrInvalidField) {
			errorJSON(w, http.StatusBadRequest, "Unknown consideration")
			return
		}
		log.Printf("updating consideration: %v", err)
		errorJSON(w, http.StatusInternalServerError, "Failed to update consideration")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"completion_status": s.svc.CompletionStatus(sess),
	})
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := currentSessionID(r)
	if sessionID == "" {
		errorJSON(w, http.StatusBadRequest, "No session found")
		return
	}

	sess := s.svc.LoadSession(sessionID)
	status := s.svc.CompletionStatus(sess)
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":        sessionID,
		"completion_status": status,
		"can_submit":        status.CanSubmit,
	})
}

func (s *Server) handleSubmitIdea(w http.ResponseWriter, r *http.Request) {
	sessionID := currentSessionID(r)
	if sessionID == "" {
		errorJSON(w, http.StatusBadRequest, "No session found")
		return
	}

	idea, err := s.svc.SubmitIdea(sessionID)
	if err != nil {
		if errors.Is(err, forge.ErrCannotSubmit) {
			errorJSON(w, http.StatusBadRequest,
				"Idea must have enough completed considerations to submit")
			return
		}
		log.Printf("submitting idea: %v", err)
		errorJSON(w, http.StatusInternalServerError, "Failed to submit idea")
		return
	}

	if s.index != nil {
		if err := s.index.IndexIdea(idea); err != nil {
			log.Printf("indexing idea %s: %v", idea.ID, err)
		}
	}
	if s.notifier != nil {
		s.notifier.IdeaSubmitted(idea)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"idea_id": idea.ID,
		"message": "Idea submitted successfully! It will be available for public review.",
	})
}

type addCommentRequest struct {
	Comment string `json:"comment"`
	Author  string `json:"author"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Comment == "" {
		errorJSON(w, http.StatusBadRequest, "Missing required data")
		return
	}

	comment, err := s.svc.AddComment(r.PathValue("id"), req.Author, req.Comment)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errorJSON(w, http.StatusNotFound, "Idea not found")
			return
		}
		log.Printf("adding comment: %v", err)
		errorJSON(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"comment_id": comment.ID,
	})
}
