package routes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MEMOUE/PrrojetMgh/models"
)

func TestInitialPaymentProblem(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		method  string
		total   float64
		problem string
	}{
		{name: "no payment", amount: 0, method: "", total: 50000, problem: ""},
		{name: "deposit", amount: 20000, method: models.PayCash, total: 50000, problem: ""},
		{name: "full amount without method", amount: 50000, method: "", total: 50000, problem: ""},
		{name: "exceeds total", amount: 60000, method: models.PayCash, total: 50000, problem: "Le montant payé dépasse le montant total"},
		{name: "unknown method", amount: 20000, method: "BITCOIN", total: 50000, problem: "Mode de paiement inconnu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.problem, initialPaymentProblem(tt.amount, tt.method, tt.total))
		})
	}
}

func TestGenerateReservationNumber_Format(t *testing.T) {
	numero := generateReservationNumber(func(string) bool { return false })

	require.True(t, strings.HasPrefix(numero, "RES"))
	require.Len(t, numero, 11)
	require.Equal(t, strings.ToUpper(numero), numero)
}

func TestGenerateReservationNumber_RetriesOnCollision(t *testing.T) {
	attempts := 0
	numero := generateReservationNumber(func(candidate string) bool {
		attempts++
		return attempts <= 2
	})

	require.Equal(t, 3, attempts)
	require.True(t, strings.HasPrefix(numero, "RES"))
}

func TestApplyReservationUpdate_PartialFields(t *testing.T) {
	r := models.Reservation{
		NumAdults:       2,
		NumChildren:     1,
		Notes:           "ancienne note",
		SpecialRequests: "lit bébé",
	}

	adults := 3
	notes := "arrivée tardive"
	applyReservationUpdate(&r, UpdateReservationInput{
		NumAdults: &adults,
		Notes:     &notes,
	})

	require.Equal(t, 3, r.NumAdults)
	require.Equal(t, "arrivée tardive", r.Notes)
	require.Equal(t, 1, r.NumChildren)
	require.Equal(t, "lit bébé", r.SpecialRequests)
}

func TestApplyReservationUpdate_NoFields(t *testing.T) {
	r := models.Reservation{NumAdults: 2, Notes: "note"}

	applyReservationUpdate(&r, UpdateReservationInput{})

	require.Equal(t, 2, r.NumAdults)
	require.Equal(t, "note", r.Notes)
}
