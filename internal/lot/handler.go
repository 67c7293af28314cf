package lot

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MairieServices/api-marche/internal/auth"
	"github.com/MairieServices/api-marche/internal/ticket"
	"github.com/MairieServices/api-marche/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Service *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:      db,
		Service: NewService(),
	}
}

// statusPourErreur mappe les erreurs du partitionneur vers un code HTTP.
func statusPourErreur(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPlageManquante),
		errors.Is(err, ErrPlageInversee),
		errors.Is(err, ticket.ErrFormatInvalide):
		return http.StatusBadRequest
	case errors.Is(err, ErrLotClos),
		errors.Is(err, ErrPlageIncomplete),
		errors.Is(err, ErrPlageConflit),
		errors.Is(err, ErrLotImmuable),
		errors.Is(err, ErrLotOuvertExistant),
		errors.Is(err, ErrTicketsUtilises):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type createLotRequest struct {
	CollecteurID uint   `json:"collecteurId"`
	TicketDebut  string `json:"ticketDebut"`
	TicketFin    string `json:"ticketFin"`
}

// CreerLot enregistre un carnet et assigne sa plage si elle est fournie.
func (h *Handler) CreerLot(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)

	var req createLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}
	if req.CollecteurID == 0 {
		utils.RespondError(w, http.StatusBadRequest, "collecteur obligatoire")
		return
	}

	l := LotTickets{
		CollecteurID: req.CollecteurID,
		TicketDebut:  req.TicketDebut,
		TicketFin:    req.TicketFin,
		Statut:       StatutOuvert,
	}
	if userID != 0 {
		l.RemisParID = &userID
	}

	if err := h.Service.Creer(h.DB, &l); err != nil {
		utils.RespondError(w, statusPourErreur(err), err.Error())
		return
	}

	if l.TicketDebut != "" || l.TicketFin != "" {
		if _, err := h.Service.AssignerPlage(h.DB, l.ID); err != nil {
			utils.RespondError(w, statusPourErreur(err), err.Error())
			return
		}
	}
	utils.RespondJSON(w, http.StatusCreated, l)
}

// AssignerPlage (re)lie les tickets de la plage au lot. Idempotent.
func (h *Handler) AssignerPlage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	compte, err := h.Service.AssignerPlage(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, statusPourErreur(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]int{"ticketsAssignes": compte})
}

// MettreAJourLot modifie collecteur/plage tant que rien n'est assigné.
func (h *Handler) MettreAJourLot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	var req struct {
		CollecteurID *uint   `json:"collecteurId"`
		TicketDebut  *string `json:"ticketDebut"`
		TicketFin    *string `json:"ticketFin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}

	l, err := h.Service.MettreAJour(h.DB, uint(id), req.CollecteurID, req.TicketDebut, req.TicketFin)
	if err != nil {
		utils.RespondError(w, statusPourErreur(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, l)
}

// CloreLot ferme le carnet.
func (h *Handler) CloreLot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}
	l, err := h.Service.Clore(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, statusPourErreur(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, l)
}

// RouvrirLot repasse un carnet clos en ouvert (admin uniquement).
func (h *Handler) RouvrirLot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}
	l, err := h.Service.Rouvrir(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, statusPourErreur(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, l)
}

// ListerLots retourne tous les carnets, les plus récents d'abord.
func (h *Handler) ListerLots(w http.ResponseWriter, r *http.Request) {
	var lots []LotTickets
	if err := h.DB.Preload("Collecteur").Order("date_remise DESC, id DESC").Find(&lots).Error; err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des lots")
		return
	}
	utils.RespondJSON(w, http.StatusOK, lots)
}

// ObtenirResume retourne les compteurs de tickets d'un carnet.
func (h *Handler) ObtenirResume(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}
	var l LotTickets
	if err := h.DB.First(&l, id).Error; err != nil {
		utils.RespondError(w, http.StatusNotFound, "lot introuvable")
		return
	}
	dto, err := MonterResumeLotDTO(h.DB, l)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du calcul du résumé")
		return
	}
	utils.RespondJSON(w, http.StatusOK, dto)
}
