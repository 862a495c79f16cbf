package router

import (
	"net/http"
	"time"

	"geoattend/backend/foundation/web"
	"geoattend/backend/internal/auth"
	"geoattend/backend/internal/middleware"
	"geoattend/backend/internal/pkg/repository/postgresql"
	"geoattend/backend/internal/repository/postgres/attendance"
	"geoattend/backend/internal/repository/postgres/office"
	"geoattend/backend/internal/repository/postgres/user"
	"geoattend/backend/internal/repository/redis/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	attendance_controller "geoattend/backend/internal/controller/http/v1/attendance"
	auth_controller "geoattend/backend/internal/controller/http/v1/auth"
	office_controller "geoattend/backend/internal/controller/http/v1/office"
	user_controller "geoattend/backend/internal/controller/http/v1/user"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	addr       string
	auth       *auth.Auth
	baseUrl    string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	addr string,
	auth *auth.Auth,
	baseUrl string,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		addr,
		auth,
		baseUrl,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.CorsMiddleware(r.baseUrl))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "GeoAttend Backend is running!",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Test route is working!",
		})
	})

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	officePostgres := office.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB)

	// - redis
	tokenRedis := token.NewRepository(r.redisDB)

	// controller
	authController := auth_controller.NewController(userPostgres, tokenRedis, r.auth)
	officeController := office_controller.NewController(officePostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres, officePostgres)
	userController := user_controller.NewController(userPostgres)

	// #auth
	r.Post("/auth/login", authController.SignIn)
	r.Post("/auth/refresh-token", authController.RefreshToken)
	r.Post("/auth/logout", authController.Logout, middleware.Authenticate(r.auth))
	r.Get("/auth/profile", authController.Profile, middleware.Authenticate(r.auth))

	// #office
	r.Get("/office", officeController.GetOffice, middleware.Authenticate(r.auth))
	r.Put("/office/:id", officeController.UpdateAll, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Post("/attendance/check-in", attendanceController.CheckIn, middleware.Authenticate(r.auth))
	r.Post("/attendance/check-out", attendanceController.CheckOut, middleware.Authenticate(r.auth))
	r.Get("/attendance/today", attendanceController.GetToday, middleware.Authenticate(r.auth))
	r.Get("/attendance/history", attendanceController.GetHistory, middleware.Authenticate(r.auth))
	r.Get("/attendance/export", attendanceController.Export, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/attendance/:id", attendanceController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #user
	r.Get("/user/stats", userController.GetStats, middleware.Authenticate(r.auth))
	r.Get("/user/qrcode", userController.GetQrCode, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/user/qrcode-cards", userController.GetQrCodeCards, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.addr)
}
