package routes

import (
	"encoding/json"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/MEMOUE/PrrojetMgh/models"
	"github.com/MEMOUE/PrrojetMgh/planning"
	"github.com/MEMOUE/PrrojetMgh/services"
	"github.com/MEMOUE/PrrojetMgh/utils"
)

// Planner holds the snapshot of rooms and reservations behind the planning
// board. Wired in main.
var Planner *services.PlanningService

// PlanningCell is one occupied room-day on the board.
type PlanningCell struct {
	Reservation *models.Reservation `json:"reservation"`
	IsStart     bool                `json:"isStart"`
	IsEnd       bool                `json:"isEnd"`
}

const defaultWindowDays = 30

// GetPlanning renders the occupancy board for a date window. Defaults to
// three days back through thirty days ahead, like the back-office default
// view.
func GetPlanning(ctx iris.Context) {
	now := time.Now()
	start := planning.Day(now).AddDate(0, 0, -3)
	end := start.AddDate(0, 0, defaultWindowDays)

	if s := ctx.URLParam("startDate"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid start date format", ctx)
			return
		}
		start = parsed
		end = start.AddDate(0, 0, defaultWindowDays)
	}
	if s := ctx.URLParam("endDate"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid end date format", ctx)
			return
		}
		end = parsed
	}
	if end.Before(start) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "endDate must not be before startDate", ctx)
		return
	}

	startKey := planning.DayKey(start)
	endKey := planning.DayKey(end)

	reqCtx := ctx.Request().Context()
	if body, ok := Planner.CachedView(reqCtx, startKey, endKey); ok {
		ctx.ContentType("application/json")
		ctx.Write(body)
		return
	}

	snap, err := Planner.CurrentOrRefresh(reqCtx)
	if err != nil {
		utils.CreateError(iris.StatusBadGateway, "Fetch Error", err.Error(), ctx)
		return
	}

	days := planning.DateRange(start, end)
	dates := make([]string, len(days))
	for i, d := range days {
		dates[i] = planning.DayKey(d)
	}

	// only occupied cells travel over the wire
	cells := make(map[uint]map[string]PlanningCell, len(snap.Rooms))
	for _, room := range snap.Rooms {
		roomCells := make(map[string]PlanningCell)
		for _, d := range days {
			res, ok := snap.Grid.Lookup(room.ID, d)
			if !ok {
				continue
			}
			roomCells[planning.DayKey(d)] = PlanningCell{
				Reservation: res,
				IsStart:     snap.Grid.IsStayStart(room.ID, d),
				IsEnd:       snap.Grid.IsStayEnd(room.ID, d),
			}
		}
		cells[room.ID] = roomCells
	}

	styles := make(map[string]planning.StatusStyle)
	for _, s := range []string{
		models.ReservationPending, models.ReservationConfirmed, models.ReservationInProgress,
		models.ReservationCompleted, models.ReservationCancelled, models.ReservationNoShow,
	} {
		styles[s] = planning.StyleFor(s)
	}

	payload := iris.Map{
		"success": true,
		"data": iris.Map{
			"dates":         dates,
			"chambres":      snap.Rooms,
			"cellules":      cells,
			"conflits":      snap.Grid.Overlaps,
			"statuts":       styles,
			"modesPaiement": planning.PaymentMethodOptions(),
			"fetchedAt":     snap.FetchedAt,
		},
	}

	if body, err := json.Marshal(payload); err == nil {
		Planner.StoreView(reqCtx, startKey, endKey, body)
	}

	ctx.JSON(payload)
}

// RefreshPlanning forces a re-fetch of both sources. On failure the
// previous snapshot stays served.
func RefreshPlanning(ctx iris.Context) {
	snap, err := Planner.Refresh(ctx.Request().Context())
	if err != nil {
		utils.CreateError(iris.StatusBadGateway, "Fetch Error", err.Error(), ctx)
		return
	}
	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"chambres":     len(snap.Rooms),
			"reservations": len(snap.Reservations),
			"conflits":     len(snap.Grid.Overlaps),
			"fetchedAt":    snap.FetchedAt,
		},
	})
}
