package routes

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"

	"github.com/MEMOUE/PrrojetMgh/models"
	"github.com/MEMOUE/PrrojetMgh/planning"
	"github.com/MEMOUE/PrrojetMgh/storage"
	"github.com/MEMOUE/PrrojetMgh/utils"
)

// Reservation endpoints of the back office.

func GetReservations(ctx iris.Context) {
	query := storage.DB.Preload("Client").Preload("Room").Order("created_at DESC")
	if statut := ctx.URLParam("statut"); statut != "" {
		query = query.Where("status = ?", statut)
	}
	if chambre := ctx.URLParam("chambreId"); chambre != "" {
		query = query.Where("room_id = ?", chambre)
	}

	var reservations []models.Reservation
	if res := query.Find(&reservations); res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reservations})
}

func GetReservation(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var reservation models.Reservation
	if err := storage.DB.Preload("Client").Preload("Room").Preload("Payments").First(&reservation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reservation})
}

func GetReservationByNumber(ctx iris.Context) {
	numero := ctx.Params().Get("numero")

	var reservation models.Reservation
	if err := storage.DB.Preload("Client").Preload("Room").Where("number = ?", numero).First(&reservation).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reservation})
}

// GetArrivalsToday lists reservations arriving today.
func GetArrivalsToday(ctx iris.Context) {
	today := planning.Day(time.Now())

	var reservations []models.Reservation
	res := storage.DB.Preload("Client").Preload("Room").
		Where("arrival_date >= ? AND arrival_date < ?", today, today.AddDate(0, 0, 1)).
		Find(&reservations)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reservations})
}

// GetDeparturesToday lists reservations departing today.
func GetDeparturesToday(ctx iris.Context) {
	today := planning.Day(time.Now())

	var reservations []models.Reservation
	res := storage.DB.Preload("Client").Preload("Room").
		Where("departure_date >= ? AND departure_date < ?", today, today.AddDate(0, 0, 1)).
		Find(&reservations)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reservations})
}

// GetInHouse lists currently checked-in stays.
func GetInHouse(ctx iris.Context) {
	var reservations []models.Reservation
	res := storage.DB.Preload("Client").Preload("Room").
		Where("status = ?", models.ReservationInProgress).
		Find(&reservations)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reservations})
}

type NewClientInput struct {
	FirstName string `json:"prenom" validate:"required"`
	LastName  string `json:"nom" validate:"required"`
	Phone     string `json:"telephone" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type CreateReservationInput struct {
	RoomID            uint            `json:"chambreId" validate:"required"`
	ClientID          uint            `json:"clientId"`
	NewClient         *NewClientInput `json:"newClient"`
	ArrivalDate       time.Time       `json:"dateArrivee" validate:"required"`
	DepartureDate     time.Time       `json:"dateDepart" validate:"required"`
	NumAdults         int             `json:"nombreAdultes" validate:"required,gte=1"`
	NumChildren       int             `json:"nombreEnfants" validate:"gte=0"`
	PaidAmount        float64         `json:"montantPaye" validate:"gte=0"`
	PaymentMethod     string          `json:"modePaiement"`
	Notes             string          `json:"notes"`
	SpecialRequests   string          `json:"demandesSpeciales"`
	ExternalReference string          `json:"referenceExterne"`
}

func CreateReservation(ctx iris.Context) {
	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	arrival := planning.Day(input.ArrivalDate)
	departure := planning.Day(input.DepartureDate)
	if !arrival.Before(departure) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "dateArrivee must be before dateDepart", ctx)
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, input.RoomID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Chambre non trouvée", ctx)
		return
	}

	// Half-open overlap against reservations still holding the room. A stay
	// may start on another stay's departure day.
	var conflicts int64
	storage.DB.Model(&models.Reservation{}).
		Where("room_id = ?", room.ID).
		Where("status NOT IN ?", []string{models.ReservationCancelled, models.ReservationCompleted, models.ReservationNoShow}).
		Where("arrival_date < ? AND departure_date > ?", departure, arrival).
		Count(&conflicts)
	if conflicts > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "La chambre n'est pas disponible pour cette période", ctx)
		return
	}

	nights := planning.Nights(arrival, departure)
	total := room.NightlyPrice * float64(nights)

	// Reject the payment before any row is written, so a refused request
	// leaves nothing behind.
	if problem := initialPaymentProblem(input.PaidAmount, input.PaymentMethod, total); problem != "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", problem, ctx)
		return
	}

	clientID := input.ClientID
	if clientID == 0 {
		if input.NewClient == nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "Client requis", ctx)
			return
		}
		client := models.Client{
			FirstName: input.NewClient.FirstName,
			LastName:  input.NewClient.LastName,
			Phone:     input.NewClient.Phone,
			Email:     strings.ToLower(input.NewClient.Email),
		}
		if err := storage.DB.Create(&client).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		clientID = client.ID
	}

	reservation := models.Reservation{
		Number:            generateReservationNumber(reservationNumberExists),
		RoomID:            room.ID,
		ClientID:          clientID,
		ArrivalDate:       arrival,
		DepartureDate:     departure,
		Nights:            nights,
		NumAdults:         input.NumAdults,
		NumChildren:       input.NumChildren,
		NightlyPrice:      room.NightlyPrice,
		TotalAmount:       total,
		Status:            models.ReservationConfirmed,
		Notes:             input.Notes,
		SpecialRequests:   input.SpecialRequests,
		ExternalReference: input.ExternalReference,
	}

	if input.PaidAmount > 0 {
		reservation.PaidAmount = input.PaidAmount
		reservation.RemainingAmount = total - input.PaidAmount
		reservation.PaymentMethod = input.PaymentMethod
		if reservation.RemainingAmount <= 0 {
			reservation.PaymentStatus = models.PaymentPaid
		} else {
			reservation.PaymentStatus = models.PaymentDeposit
		}
	} else {
		reservation.RemainingAmount = total
		reservation.PaymentStatus = models.PaymentUnpaid
	}

	if userID := ctx.Values().Get("userID"); userID != nil {
		id := userID.(uint)
		reservation.CreatedByID = &id
	}

	if err := storage.DB.Create(&reservation).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	if reservation.PaidAmount > 0 {
		payment := models.Payment{
			ReservationID: reservation.ID,
			Amount:        reservation.PaidAmount,
			Method:        reservation.PaymentMethod,
			ReceivedByID:  reservation.CreatedByID,
		}
		storage.DB.Create(&payment)
	}

	// Arriving today occupies the room right away, otherwise it is held.
	if arrival.Equal(planning.Day(time.Now())) {
		room.Status = models.RoomOccupied
	} else {
		room.Status = models.RoomReserved
	}
	storage.DB.Save(&room)

	utils.Audit(ctx, "reservation.create", "reservation", reservation.ID, nil, reservation)
	refreshPlanning(ctx)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "message": "Réservation créée", "data": reservation})
}

type UpdateReservationInput struct {
	NumAdults       *int    `json:"nombreAdultes" validate:"omitempty,gte=1"`
	NumChildren     *int    `json:"nombreEnfants" validate:"omitempty,gte=0"`
	Notes           *string `json:"notes"`
	SpecialRequests *string `json:"demandesSpeciales"`
}

// applyReservationUpdate copies the provided fields onto the reservation;
// absent fields stay untouched.
func applyReservationUpdate(r *models.Reservation, input UpdateReservationInput) {
	if input.NumAdults != nil {
		r.NumAdults = *input.NumAdults
	}
	if input.NumChildren != nil {
		r.NumChildren = *input.NumChildren
	}
	if input.Notes != nil {
		r.Notes = *input.Notes
	}
	if input.SpecialRequests != nil {
		r.SpecialRequests = *input.SpecialRequests
	}
}

// UpdateReservation edits the mutable details of a stay: notes, special
// requests and guest counts. Dates, room and amounts never change here; a
// different stay means a new reservation.
func UpdateReservation(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input UpdateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Preload("Client").Preload("Room").First(&reservation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !planning.CanEdit(&reservation) {
		utils.CreateError(iris.StatusConflict, "Conflict",
			"Impossible de modifier une réservation annulée ou terminée", ctx)
		return
	}

	before := reservation
	applyReservationUpdate(&reservation, input)

	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	utils.Audit(ctx, "reservation.update", "reservation", reservation.ID, before, reservation)

	ctx.JSON(iris.Map{"success": true, "message": "Réservation modifiée", "data": reservation})
}

// SearchReservations matches a keyword against the reservation number and the
// client's name or phone.
func SearchReservations(ctx iris.Context) {
	keyword := strings.TrimSpace(ctx.URLParam("keyword"))
	if keyword == "" {
		ctx.JSON(iris.Map{"success": true, "data": []models.Reservation{}})
		return
	}

	like := "%" + strings.ToLower(keyword) + "%"
	var reservations []models.Reservation
	res := storage.DB.Preload("Client").Preload("Room").
		Joins("JOIN clients ON clients.id = reservations.client_id").
		Where("LOWER(reservations.number) LIKE ? OR LOWER(clients.first_name) LIKE ? OR LOWER(clients.last_name) LIKE ? OR clients.phone LIKE ?",
			like, like, like, "%"+keyword+"%").
		Order("reservations.created_at DESC").
		Find(&reservations)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reservations})
}

func Checkin(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var reservation models.Reservation
	if err := storage.DB.Preload("Room").First(&reservation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !planning.CanCheckin(&reservation) {
		utils.CreateError(iris.StatusConflict, "Conflict",
			"Seules les réservations confirmées peuvent faire l'objet d'un check-in", ctx)
		return
	}

	before := reservation
	now := time.Now()
	reservation.Status = models.ReservationInProgress
	reservation.CheckinAt = &now
	if userID := ctx.Values().Get("userID"); userID != nil {
		uid := userID.(uint)
		reservation.CheckinByID = &uid
	}

	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}
	storage.DB.Model(&models.Room{}).Where("id = ?", reservation.RoomID).
		Update("status", models.RoomOccupied)

	utils.Audit(ctx, "reservation.checkin", "reservation", reservation.ID, before, reservation)
	refreshPlanning(ctx)

	ctx.JSON(iris.Map{"success": true, "message": "Check-in effectué", "data": reservation})
}

func Checkout(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var reservation models.Reservation
	if err := storage.DB.Preload("Room").First(&reservation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !planning.CanCheckout(&reservation) {
		utils.CreateError(iris.StatusConflict, "Conflict",
			"Seules les réservations en cours peuvent faire l'objet d'un check-out", ctx)
		return
	}

	before := reservation
	now := time.Now()
	reservation.Status = models.ReservationCompleted
	reservation.CheckoutAt = &now
	if userID := ctx.Values().Get("userID"); userID != nil {
		uid := userID.(uint)
		reservation.CheckoutByID = &uid
	}

	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}
	storage.DB.Model(&models.Room{}).Where("id = ?", reservation.RoomID).
		Update("status", models.RoomCleaning)

	utils.Audit(ctx, "reservation.checkout", "reservation", reservation.ID, before, reservation)
	refreshPlanning(ctx)

	ctx.JSON(iris.Map{"success": true, "message": "Check-out effectué", "data": reservation})
}

func CancelReservation(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var reservation models.Reservation
	if err := storage.DB.First(&reservation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !planning.CanCancel(&reservation) {
		detail := "Impossible d'annuler cette réservation"
		if reservation.Status == models.ReservationInProgress {
			detail = "Impossible d'annuler une réservation en cours. Effectuez d'abord un check-out."
		}
		utils.CreateError(iris.StatusConflict, "Conflict", detail, ctx)
		return
	}

	before := reservation
	reservation.Status = models.ReservationCancelled
	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}
	storage.DB.Model(&models.Room{}).Where("id = ?", reservation.RoomID).
		Update("status", models.RoomAvailable)

	utils.Audit(ctx, "reservation.cancel", "reservation", reservation.ID, before, reservation)
	refreshPlanning(ctx)

	ctx.JSON(iris.Map{"success": true, "message": "Réservation annulée"})
}

// MarkNoShow flags a pending or confirmed reservation whose arrival day has
// passed without the guest showing up.
func MarkNoShow(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var reservation models.Reservation
	if err := storage.DB.First(&reservation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !planning.CanTransition(reservation.Status, models.ReservationNoShow) {
		utils.CreateError(iris.StatusConflict, "Conflict", "Cette réservation ne peut pas être marquée no-show", ctx)
		return
	}
	if !planning.Day(reservation.ArrivalDate).Before(planning.Day(time.Now())) {
		utils.CreateError(iris.StatusConflict, "Conflict", "La date d'arrivée n'est pas encore passée", ctx)
		return
	}

	before := reservation
	reservation.Status = models.ReservationNoShow
	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}
	storage.DB.Model(&models.Room{}).Where("id = ?", reservation.RoomID).
		Update("status", models.RoomAvailable)

	utils.Audit(ctx, "reservation.noshow", "reservation", reservation.ID, before, reservation)
	refreshPlanning(ctx)

	ctx.JSON(iris.Map{"success": true, "message": "Réservation marquée no-show", "data": reservation})
}

type AddPaymentInput struct {
	Amount float64 `json:"montant" validate:"required,gt=0"`
	Method string  `json:"modePaiement" validate:"required"`
}

func AddPayment(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input AddPaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !planning.ValidPaymentMethod(input.Method) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Mode de paiement inconnu", ctx)
		return
	}

	var reservation models.Reservation
	if err := storage.DB.First(&reservation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	// Gate on the remaining balance, not the lifecycle status: a completed
	// stay with a balance can still be settled.
	if !planning.CanAddPayment(&reservation) {
		utils.CreateError(iris.StatusConflict, "Conflict", "Cette réservation n'accepte plus de paiement", ctx)
		return
	}
	remaining := planning.RemainingBalance(&reservation)
	if input.Amount > remaining {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Le montant payé dépasse le montant restant", ctx)
		return
	}

	before := reservation
	reservation.PaidAmount += input.Amount
	reservation.RemainingAmount = planning.RemainingBalance(&reservation)
	reservation.PaymentMethod = input.Method
	if reservation.RemainingAmount <= 0 {
		reservation.PaymentStatus = models.PaymentPaid
	} else {
		reservation.PaymentStatus = models.PaymentDeposit
	}

	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	payment := models.Payment{
		ReservationID: reservation.ID,
		Amount:        input.Amount,
		Method:        input.Method,
	}
	if userID := ctx.Values().Get("userID"); userID != nil {
		uid := userID.(uint)
		payment.ReceivedByID = &uid
	}
	storage.DB.Create(&payment)

	utils.Audit(ctx, "reservation.payment", "reservation", reservation.ID, before, reservation)
	refreshPlanning(ctx)

	ctx.JSON(iris.Map{"success": true, "message": "Paiement enregistré", "data": reservation})
}

// initialPaymentProblem validates a creation-time payment against the stay
// total. Empty string means acceptable.
func initialPaymentProblem(amount float64, method string, total float64) string {
	if amount <= 0 {
		return ""
	}
	if amount > total {
		return "Le montant payé dépasse le montant total"
	}
	if method != "" && !planning.ValidPaymentMethod(method) {
		return "Mode de paiement inconnu"
	}
	return ""
}

// generateReservationNumber draws RES + uppercase UUID fragments until an
// unused one comes up.
func generateReservationNumber(exists func(string) bool) string {
	for {
		numero := "RES" + strings.ToUpper(uuid.NewString()[:8])
		if !exists(numero) {
			return numero
		}
	}
}

func reservationNumberExists(numero string) bool {
	var count int64
	storage.DB.Model(&models.Reservation{}).Where("number = ?", numero).Count(&count)
	return count > 0
}

// refreshPlanning rebuilds the snapshot after a successful mutation so the
// board always reflects one consistent state. Failures only log: the stale
// snapshot remains valid.
func refreshPlanning(ctx iris.Context) {
	if Planner == nil {
		return
	}
	if _, err := Planner.Refresh(ctx.Request().Context()); err != nil {
		log.Printf("planning refresh after mutation failed: %v", err)
	}
}
