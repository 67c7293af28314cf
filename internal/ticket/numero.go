package ticket

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Erreurs du registre des tickets.
var (
	// ErrFormatInvalide: le numéro ne respecte pas le format T-000001.
	ErrFormatInvalide = errors.New("format ticket invalide, format attendu: T-000001")
	// ErrNumeroDuplique: un ticket porte déjà ce numéro.
	ErrNumeroDuplique = errors.New("numéro de ticket déjà existant")
	// ErrTicketDejaRegle: le ticket a déjà servi à régler un paiement.
	ErrTicketDejaRegle = errors.New("ticket déjà utilisé ou lié à un paiement")
)

// Le numéro externe est un contrat: "T-" suivi de 6 chiffres ASCII.
var numeroRe = regexp.MustCompile(`^T-(\d{6})$`)

// ParseNumero extrait la valeur numérique d'un numéro "T-NNNNNN".
func ParseNumero(numero string) (int, error) {
	m := numeroRe.FindStringSubmatch(strings.TrimSpace(numero))
	if m == nil {
		return 0, ErrFormatInvalide
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, ErrFormatInvalide
	}
	return n, nil
}

// FormatNumero rend la forme externe zéro-paddée d'une valeur numérique.
func FormatNumero(n int) string {
	return fmt.Sprintf("T-%06d", n)
}
