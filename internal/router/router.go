package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"durianfarm/internal/config"
	"durianfarm/internal/handler"
)

// Register wires routes and middleware. Paths mirror the API the mobile
// client already speaks, including the legacy update/tree and delete/tree
// segments.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	farmHandler *handler.FarmHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     cfg.CORSMethods,
		AllowHeaders:     cfg.CORSHeaders,
		AllowCredentials: cfg.CORSAllowCredentials,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded images, read-only.
	e.Static("/public", cfg.PublicDir)

	api := e.Group("/api/v1")

	farm := api.Group("/farm")
	farm.GET("", farmHandler.ListFarms)
	farm.POST("", farmHandler.CreateFarm)
	farm.POST("/upload-image/:id", farmHandler.UploadFarmImage)
	farm.POST("/:username", farmHandler.CreateFarmForUser)
	farm.GET("/user/:user_id/total", farmHandler.TotalCollectedTreesForUser)
	farm.GET("/:id", farmHandler.GetFarm)
	farm.PUT("/:id", farmHandler.UpdateFarm)
	farm.DELETE("/:id", farmHandler.DeleteFarm)
	farm.GET("/:id/predict", farmHandler.ListPredictionsForFarm)
	farm.GET("/:id/disease", farmHandler.ListDiseasesForFarm)
	farm.GET("/:id/trees", farmHandler.ListTreesForFarm)
	farm.GET("/:id/tree/:tree_id/disease", farmHandler.ListDiseasesForFarmAndTree)
	farm.GET("/:id/tree/:tree_id/predict", farmHandler.ListPredictionsForFarmAndTree)
	farm.POST("/:id/tree", farmHandler.CreateTree)
	farm.PUT("/update/tree/:tree_id", farmHandler.UpdateTree)
	farm.DELETE("/delete/tree/:tree_id", farmHandler.DeleteTree)

	user := api.Group("/user")
	user.POST("", userHandler.CreateUser)
	user.GET("", userHandler.GetAllUsers)
	user.POST("/login", userHandler.Login)
	user.GET("/me", userHandler.Me, echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))
	user.GET("/username/:name", userHandler.GetUserByUsername)
	user.GET("/:id", userHandler.GetUser)
	user.PUT("/:id", userHandler.UpdateUser)
	user.DELETE("/:id", userHandler.DeleteUser)
	user.GET("/:name/farms", userHandler.FarmsForUsername)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
