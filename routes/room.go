package routes

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/MEMOUE/PrrojetMgh/models"
	"github.com/MEMOUE/PrrojetMgh/planning"
	"github.com/MEMOUE/PrrojetMgh/storage"
	"github.com/MEMOUE/PrrojetMgh/utils"
)

// Room catalog endpoints (chambres).

func GetRooms(ctx iris.Context) {
	query := storage.DB.Order("number ASC")
	if t := ctx.URLParam("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if s := ctx.URLParam("statut"); s != "" {
		query = query.Where("status = ?", s)
	}
	if etage := ctx.URLParam("etage"); etage != "" {
		query = query.Where("floor = ?", etage)
	}
	if capacite := ctx.URLParamIntDefault("capacite", 0); capacite > 0 {
		query = query.Where("capacity >= ?", capacite)
	}
	if prixMin := ctx.URLParam("prixMin"); prixMin != "" {
		query = query.Where("nightly_price >= ?", prixMin)
	}
	if prixMax := ctx.URLParam("prixMax"); prixMax != "" {
		query = query.Where("nightly_price <= ?", prixMax)
	}

	var rooms []models.Room
	if res := query.Find(&rooms); res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	planning.SortRoomsByNumber(rooms)
	ctx.JSON(iris.Map{"success": true, "data": rooms})
}

func GetRoom(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": room})
}

type RoomInput struct {
	Number       string  `json:"numero" validate:"required"`
	Type         string  `json:"type" validate:"required"`
	NightlyPrice float64 `json:"prixParNuit" validate:"required,gt=0"`
	Capacity     int     `json:"capacite" validate:"required,gte=1"`
	Area         float64 `json:"superficie" validate:"gte=0"`
	Description  string  `json:"description"`
	Floor        int     `json:"etage"`

	Wifi            bool `json:"wifi"`
	AirConditioning bool `json:"climatisation"`
	Television      bool `json:"television"`
	Minibar         bool `json:"minibar"`
	Safe            bool `json:"coffre"`
	Balcony         bool `json:"balcon"`
	SeaView         bool `json:"vueMer"`
}

func CreateRoom(ctx iris.Context) {
	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	room := models.Room{
		Number:          input.Number,
		Type:            input.Type,
		NightlyPrice:    input.NightlyPrice,
		Capacity:        input.Capacity,
		Area:            input.Area,
		Description:     input.Description,
		Status:          models.RoomAvailable,
		Floor:           input.Floor,
		Wifi:            input.Wifi,
		AirConditioning: input.AirConditioning,
		Television:      input.Television,
		Minibar:         input.Minibar,
		Safe:            input.Safe,
		Balcony:         input.Balcony,
		SeaView:         input.SeaView,
	}

	if err := storage.DB.Create(&room).Error; err != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "Ce numéro de chambre existe déjà", ctx)
		return
	}

	refreshPlanning(ctx)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "message": "Chambre créée", "data": room})
}

func UpdateRoom(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	room.Number = input.Number
	room.Type = input.Type
	room.NightlyPrice = input.NightlyPrice
	room.Capacity = input.Capacity
	room.Area = input.Area
	room.Description = input.Description
	room.Floor = input.Floor
	room.Wifi = input.Wifi
	room.AirConditioning = input.AirConditioning
	room.Television = input.Television
	room.Minibar = input.Minibar
	room.Safe = input.Safe
	room.Balcony = input.Balcony
	room.SeaView = input.SeaView

	if err := storage.DB.Save(&room).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	refreshPlanning(ctx)
	ctx.JSON(iris.Map{"success": true, "message": "Chambre mise à jour", "data": room})
}

func DeleteRoom(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	// A room with active reservations cannot disappear from the board.
	var active int64
	storage.DB.Model(&models.Reservation{}).
		Where("room_id = ?", room.ID).
		Where("status IN ?", []string{models.ReservationPending, models.ReservationConfirmed, models.ReservationInProgress}).
		Count(&active)
	if active > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "Des réservations actives existent pour cette chambre", ctx)
		return
	}

	if err := storage.DB.Delete(&room).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	utils.Audit(ctx, "room.delete", "room", room.ID, room, nil)
	refreshPlanning(ctx)
	ctx.JSON(iris.Map{"success": true, "message": "Chambre supprimée"})
}

var roomStatuses = []string{
	models.RoomAvailable, models.RoomOccupied, models.RoomReserved,
	models.RoomCleaning, models.RoomMaintenance, models.RoomOutOfOrder,
}

func UpdateRoomStatus(ctx iris.Context) {
	id := ctx.Params().Get("id")
	statut := ctx.URLParam("statut")

	valid := false
	for _, s := range roomStatuses {
		if s == statut {
			valid = true
			break
		}
	}
	if !valid {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Statut de chambre inconnu", ctx)
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := room
	room.Status = statut
	if err := storage.DB.Save(&room).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	utils.Audit(ctx, "room.status", "room", room.ID, before, room)
	ctx.JSON(iris.Map{"success": true, "message": "Statut mis à jour"})
}

type AvailabilityInput struct {
	ArrivalDate   time.Time `json:"dateArrivee" validate:"required"`
	DepartureDate time.Time `json:"dateDepart" validate:"required"`
	RoomType      string    `json:"typeChambre"`
	NumGuests     int       `json:"nombrePersonnes"`
}

// SearchAvailableRooms answers "which rooms are free over [arrival,
// departure)" from the occupancy grid of the current snapshot.
func SearchAvailableRooms(ctx iris.Context) {
	var input AvailabilityInput
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

	snap, err := Planner.CurrentOrRefresh(ctx.Request().Context())
	if err != nil {
		utils.CreateError(iris.StatusBadGateway, "Fetch Error", err.Error(), ctx)
		return
	}

	var available []models.Room
	for _, room := range snap.Rooms {
		if room.Status == models.RoomOutOfOrder || room.Status == models.RoomMaintenance {
			continue
		}
		if input.RoomType != "" && room.Type != input.RoomType {
			continue
		}
		if input.NumGuests > 0 && room.Capacity < input.NumGuests {
			continue
		}
		if snap.Grid.IsFree(room.ID, arrival, departure) {
			available = append(available, room)
		}
	}

	ctx.JSON(iris.Map{"success": true, "data": available})
}
