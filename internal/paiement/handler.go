package paiement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MairieServices/api-marche/internal/auth"
	"github.com/MairieServices/api-marche/internal/utils"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

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

// statusPourErreur mappe les refus du moteur de règlement vers un code
// HTTP. Les conflits d'état (ticket, taxe, lot) sortent en 409, les
// références manquantes en 400, l'inconnu en 500.
func statusPourErreur(err error) int {
	var partiel ErreurPaiementPartiel
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.As(err, &partiel),
		errors.Is(err, ErrEtalObligatoire),
		errors.Is(err, ErrCollecteurObligatoire),
		errors.Is(err, ErrCollecteurInvalide),
		errors.Is(err, ErrTicketObligatoire),
		errors.Is(err, ErrCommercantInactif),
		errors.Is(err, ErrPaiementSansEtal):
		return http.StatusBadRequest
	case errors.Is(err, ErrTicketIndisponible),
		errors.Is(err, ErrTicketDejaLie),
		errors.Is(err, ErrTicketSansLot),
		errors.Is(err, ErrLotClos),
		errors.Is(err, ErrMauvaisCollecteur),
		errors.Is(err, ErrEtalNonOccupe),
		errors.Is(err, ErrTaxeAnnulee),
		errors.Is(err, ErrTaxeDejaPayee):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type createPaiementRequest struct {
	CommercantID uint            `json:"commercantId"`
	Montant      decimal.Decimal `json:"montant"`
	ModePaiement string          `json:"modePaiement"`
	EtalID       uint            `json:"etalId"`
	TicketID     uint            `json:"ticketId"`
	CollecteurID uint            `json:"collecteurId"`
	DatePaiement string          `json:"datePaiement,omitempty"`
}

// CreerPaiement règle la taxe du jour d'un étal avec un ticket.
func (h *Handler) CreerPaiement(w http.ResponseWriter, r *http.Request) {
	var req createPaiementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}
	if req.CommercantID == 0 {
		utils.RespondError(w, http.StatusBadRequest, "commerçant obligatoire")
		return
	}

	params := ParamsReglement{
		CommercantID: req.CommercantID,
		Montant:      req.Montant,
		ModePaiement: req.ModePaiement,
		EtalID:       req.EtalID,
		TicketID:     req.TicketID,
		CollecteurID: req.CollecteurID,
	}
	if userID, ok := r.Context().Value(auth.CtxUserID).(uint); ok && userID != 0 {
		params.UtilisateurID = &userID
	}
	if req.DatePaiement != "" {
		parsed, err := time.Parse("2006-01-02", req.DatePaiement)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "date invalide, format attendu: AAAA-MM-JJ")
			return
		}
		params.DatePaiement = &parsed
	}

	p, err := h.Service.Enregistrer(h.DB, params)
	if err != nil {
		utils.RespondError(w, statusPourErreur(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, p)
}

// ModifierPaiement amende montant/mode et remplace éventuellement le ticket.
func (h *Handler) ModifierPaiement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	var req struct {
		Montant      decimal.Decimal `json:"montant"`
		ModePaiement *string         `json:"modePaiement"`
		TicketID     *uint           `json:"ticketId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}

	p, err := h.Service.Modifier(h.DB, uint(id), req.Montant, req.ModePaiement, req.TicketID)
	if err != nil {
		utils.RespondError(w, statusPourErreur(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

// AnnulerPaiement défait le règlement (admin uniquement).
func (h *Handler) AnnulerPaiement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	supprime, err := h.Service.Annuler(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, statusPourErreur(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "paiement annulé",
		"id":      supprime,
	})
}

// ChercherPaiement retourne un paiement avec ses relations.
func (h *Handler) ChercherPaiement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	p, err := h.Repository.ChercherParID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(w, http.StatusNotFound, "paiement introuvable")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la recherche du paiement")
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

// ListerPaiements liste les paiements, filtrables par date, commerçant
// ou collecteur.
func (h *Handler) ListerPaiements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if v := q.Get("commercantId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "commercantId invalide")
			return
		}
		list, err := h.Repository.ListerParCommercant(h.DB, uint(id))
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des paiements")
			return
		}
		utils.RespondJSON(w, http.StatusOK, list)
		return
	}

	if v := q.Get("collecteurId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "collecteurId invalide")
			return
		}
		var date *time.Time
		if d := q.Get("date"); d != "" {
			parsed, err := time.Parse("2006-01-02", d)
			if err != nil {
				utils.RespondError(w, http.StatusBadRequest, "date invalide, format attendu: AAAA-MM-JJ")
				return
			}
			date = &parsed
		}
		list, err := h.Repository.ListerParCollecteur(h.DB, uint(id), date)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des paiements")
			return
		}
		utils.RespondJSON(w, http.StatusOK, list)
		return
	}

	date := time.Now()
	if v := q.Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "date invalide, format attendu: AAAA-MM-JJ")
			return
		}
		date = parsed
	}
	list, err := h.Repository.ListerParDate(h.DB, date)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des paiements")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// ObtenirResumeJournalier retourne les agrégats d'encaissement du jour.
func (h *Handler) ObtenirResumeJournalier(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "date invalide, format attendu: AAAA-MM-JJ")
			return
		}
		date = parsed
	}

	dto, err := MonterResumeJournalierDTO(h.DB, date)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du calcul du résumé")
		return
	}
	utils.RespondJSON(w, http.StatusOK, dto)
}
