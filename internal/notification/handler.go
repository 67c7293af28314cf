package notification

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MairieServices/api-marche/internal/auth"
	"github.com/MairieServices/api-marche/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Service *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Service: NewService()}
}

// MesNotifications retourne les notifications non lues de l'appelant.
func (h *Handler) MesNotifications(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if userID == 0 {
		utils.RespondError(w, http.StatusUnauthorized, "non authentifié")
		return
	}

	list, err := h.Service.NonLues(h.DB, userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des notifications")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// MarquerLue marque une notification de l'appelant comme lue.
func (h *Handler) MarquerLue(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	if err := h.Service.MarquerLue(h.DB, userID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(w, http.StatusNotFound, "notification introuvable")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la mise à jour")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "notification lue"})
}

// DeclencherRelances notifie les administrateurs des taxes en retard
// (admin uniquement, appelé par le planificateur externe).
func (h *Handler) DeclencherRelances(w http.ResponseWriter, r *http.Request) {
	nb, err := h.Service.NotifierRetards(h.DB, time.Now())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la génération des relances")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]int{"administrateursNotifies": nb})
}
