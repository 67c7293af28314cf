package ticket

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MairieServices/api-marche/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Borne de génération en masse imposée par la surface d'appel, pas par
// le registre lui-même.
const MaxGenerationEnMasse = 1000

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Service    *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Service:    NewService(),
	}
}

// CreerTicket crée un ticket unique, numéro auto-généré ou fourni.
func (h *Handler) CreerTicket(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Numero string `json:"numero"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	t, err := h.Service.Creer(h.DB, req.Numero)
	if err != nil {
		switch {
		case errors.Is(err, ErrFormatInvalide):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNumeroDuplique):
			utils.RespondError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la création du ticket")
		}
		return
	}
	utils.RespondJSON(w, http.StatusCreated, t)
}

// GenererEnMasse génère entre 1 et 1000 tickets séquentiels.
func (h *Handler) GenererEnMasse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantite int `json:"quantite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}
	if req.Quantite < 1 || req.Quantite > MaxGenerationEnMasse {
		utils.RespondError(w, http.StatusBadRequest, "la quantité doit être comprise entre 1 et 1000")
		return
	}

	tickets, err := h.Service.CreerEnMasse(h.DB, req.Quantite)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la génération des tickets")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"nombre":  len(tickets),
		"premier": tickets[0].Numero,
		"dernier": tickets[len(tickets)-1].Numero,
	})
}

// ChercherParNumero retourne un ticket par son numéro externe.
func (h *Handler) ChercherParNumero(w http.ResponseWriter, r *http.Request) {
	numero := mux.Vars(r)["numero"]
	if _, err := ParseNumero(numero); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.Repository.ChercherParNumero(h.DB, numero)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "ticket introuvable")
		return
	}
	utils.RespondJSON(w, http.StatusOK, t)
}

// AnnulerTicket passe un ticket en annulé ou perdu.
func (h *Handler) AnnulerTicket(w http.ResponseWriter, r *http.Request) {
	numero := mux.Vars(r)["numero"]
	t, err := h.Repository.ChercherParNumero(h.DB, numero)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "ticket introuvable")
		return
	}

	var req struct {
		Motif  string `json:"motif"`
		Statut string `json:"statut"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}

	if err := h.Service.Annuler(h.DB, t, req.Motif, req.Statut); err != nil {
		if errors.Is(err, ErrTicketDejaRegle) {
			utils.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de l'annulation du ticket")
		return
	}
	utils.RespondJSON(w, http.StatusOK, t)
}

// SupprimerTicket détruit un ticket jamais utilisé (admin uniquement).
func (h *Handler) SupprimerTicket(w http.ResponseWriter, r *http.Request) {
	numero := mux.Vars(r)["numero"]
	t, err := h.Repository.ChercherParNumero(h.DB, numero)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "ticket introuvable")
		return
	}

	if err := h.Service.Supprimer(h.DB, t); err != nil {
		if errors.Is(err, ErrTicketDejaRegle) {
			utils.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la suppression du ticket")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "ticket supprimé"})
}

// ListerDisponibles retourne les tickets encore en circulation.
func (h *Handler) ListerDisponibles(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListerDisponibles(h.DB, 200)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des tickets")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}
