package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumero(t *testing.T) {
	n, err := ParseNumero("T-000001")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = ParseNumero("T-123456")
	require.NoError(t, err)
	assert.Equal(t, 123456, n)
}

func TestParseNumeroInvalide(t *testing.T) {
	for _, numero := range []string{
		"",
		"T-1",
		"T-12345",
		"T-1234567",
		"X-000001",
		"t-000001",
		"T-00000A",
		"000001",
		"T -000001",
	} {
		_, err := ParseNumero(numero)
		assert.ErrorIs(t, err, ErrFormatInvalide, "numero %q", numero)
	}
}

func TestParseNumeroTolereEspacesAutour(t *testing.T) {
	// Les espaces de saisie autour du numéro sont tolérés, pas à l'intérieur.
	for _, numero := range []string{" T-000001", "T-000001 ", "  T-000001  "} {
		n, err := ParseNumero(numero)
		require.NoError(t, err, "numero %q", numero)
		assert.Equal(t, 1, n)
	}
}

func TestFormatNumero(t *testing.T) {
	assert.Equal(t, "T-000001", FormatNumero(1))
	assert.Equal(t, "T-000042", FormatNumero(42))
	assert.Equal(t, "T-999999", FormatNumero(999999))
}

func TestFormatPuisParse(t *testing.T) {
	n, err := ParseNumero(FormatNumero(7))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
