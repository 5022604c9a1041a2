package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/MEMOUE/PrrojetMgh/routes"
	"github.com/MEMOUE/PrrojetMgh/services"
	"github.com/MEMOUE/PrrojetMgh/storage"
	"github.com/MEMOUE/PrrojetMgh/utils"
)

func main() {
	// Only load .env in development
	if os.Getenv("APP_ENV") != "production" {
		godotenv.Load()
	}

	// Initialize services
	db := storage.InitializeDB()
	storage.InitializeRedis()

	routes.Planner = services.NewPlanningService(
		services.GormRoomSource{DB: db},
		services.GormReservationSource{DB: db},
	)

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT Verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Routes
	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
	}

	chambres := app.Party("/api/chambres", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		chambres.Get("/", routes.GetRooms)
		chambres.Get("/{id:uint}", routes.GetRoom)
		chambres.Post("/create", utils.AdminOnlyMiddleware, routes.CreateRoom)
		chambres.Put("/{id:uint}", utils.AdminOnlyMiddleware, routes.UpdateRoom)
		chambres.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.DeleteRoom)
		chambres.Put("/{id:uint}/statut", routes.UpdateRoomStatus)
		chambres.Post("/disponibilite", routes.SearchAvailableRooms)
	}

	reservations := app.Party("/api/reservations", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		reservations.Get("/", routes.GetReservations)
		reservations.Post("/", routes.CreateReservation)
		reservations.Get("/arrivees-aujourdhui", routes.GetArrivalsToday)
		reservations.Get("/departs-aujourdhui", routes.GetDeparturesToday)
		reservations.Get("/en-cours", routes.GetInHouse)
		reservations.Get("/recherche", routes.SearchReservations)
		reservations.Get("/numero/{numero:string}", routes.GetReservationByNumber)
		reservations.Get("/{id:uint}", routes.GetReservation)
		reservations.Put("/{id:uint}", routes.UpdateReservation)
		reservations.Post("/{id:uint}/checkin", routes.Checkin)
		reservations.Post("/{id:uint}/checkout", routes.Checkout)
		reservations.Post("/{id:uint}/no-show", routes.MarkNoShow)
		reservations.Post("/{id:uint}/paiements", routes.AddPayment)
		reservations.Delete("/{id:uint}", routes.CancelReservation)
	}

	planningParty := app.Party("/api/planning", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		planningParty.Get("/", routes.GetPlanning)
		planningParty.Post("/refresh", routes.RefreshPlanning)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server starting on port", port)
	app.Listen(fmt.Sprintf(":%s", port))
}
