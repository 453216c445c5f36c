package main

import (
	"fmt"
	"time"

	_ "github.com/franciscosanchezn/gin-user-directory/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-user-directory/internal/config"
	"github.com/franciscosanchezn/gin-user-directory/internal/controllers"
	"github.com/franciscosanchezn/gin-user-directory/internal/database"
	"github.com/franciscosanchezn/gin-user-directory/internal/middleware"
	"github.com/franciscosanchezn/gin-user-directory/internal/services"
	"github.com/franciscosanchezn/gin-user-directory/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// application groups everything the router needs
type application struct {
	config            *config.Config
	db                *gorm.DB
	userController    controllers.UserController
	pagesController   controllers.UserPagesController
	accountController *controllers.AccountController
}

// @title User Directory API
// @version 1.0
// @description A user directory with server-rendered pages and a JSON API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the identity token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()
	if configuration.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database connection
	db := setupDatabase(configuration)

	// Initialize services and controllers
	app := newApplication(configuration, db)

	router, err := setupRouter(app)
	checkPanicErr(err)

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	checkPanicErr(router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes every package logger with a JSON formatter and the
// level resolved from LOG_LEVEL or the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	level := config.ResolveLogLevel(
		config.GetEnvWithDefault("LOG_LEVEL", ""),
		config.GetEnvWithDefault("APP_ENV", config.EnvDevelopment),
	)
	log.SetLevel(level)
	config.SetLogLevel(level)
	database.SetLogLevel(level)
	middleware.SetLogLevel(level)
	controllers.SetLogLevel(level)
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects, migrates the schema and applies the initial seed
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(conf.DatabaseConfig())
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	_, err = database.Seed(db)
	checkPanicErr(err)
	return db
}

func newApplication(conf *config.Config, db *gorm.DB) *application {
	userService := services.NewUserService(db)
	return &application{
		config:          conf,
		db:              db,
		userController:  controllers.NewUserController(userService),
		pagesController: controllers.NewUserPagesController(userService),
		accountController: controllers.NewAccountController(controllers.AccountOptions{
			TokenSecret:     conf.AuthTokenSecret,
			CookieName:      conf.AuthCookieName,
			SecureCookie:    conf.IsProduction(),
			DevLoginEnabled: conf.DevLoginEnabled,
		}),
	}
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter(app *application) (*gin.Engine, error) {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.SecureHeaders(app.config.IsProduction()),
		middleware.RequestTimeout(app.config.RequestTimeout),
	)

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	router.SetHTMLTemplate(templates)

	sqlDB, err := app.db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database handle: %w", err)
	}

	setupRoutes(router, app, sqlDB)
	return router, nil
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine, app *application, store controllers.Pinger) {
	secret := []byte(app.config.AuthTokenSecret)
	writeLimit := middleware.RateLimit(app.config.WriteRateLimit, time.Minute)

	// Health check endpoint
	router.GET("/health", controllers.HealthCheck(store))

	// Server-rendered pages, identity from the cookie when present; form posts carry a CSRF token
	pages := router.Group("/")
	pages.Use(
		middleware.CookieIdentity(secret, app.config.AuthCookieName),
		middleware.CSRF(secret, app.config.IsProduction()),
	)
	{
		pages.GET("/", controllers.Home)

		users := pages.Group("/users")
		{
			users.GET("", app.pagesController.Index)
			users.GET("/details", app.pagesController.Details)
			users.GET("/create", app.pagesController.CreateForm)
			users.POST("/create", writeLimit, app.pagesController.Create)
			users.GET("/delete", app.pagesController.DeleteConfirm)
			users.POST("/delete", writeLimit, app.pagesController.Delete)
		}

		account := pages.Group("/account")
		{
			account.GET("/login", app.accountController.Login)
			account.POST("/dev-login", writeLimit, app.accountController.DevLogin)
			account.POST("/logout", app.accountController.Logout)
			account.GET("/profile", middleware.RequireIdentity("/account/login"), app.accountController.Profile)
		}
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/users", app.userController.GetAllUsers)
		v1.GET("/users/:id", app.userController.GetUserByID)

		// Writes require a bearer identity token
		protectedApi := v1.Group("")
		protectedApi.Use(middleware.BearerAuth(secret), writeLimit)
		{
			protectedApi.POST("/users", app.userController.CreateUser)
			protectedApi.DELETE("/users/:id", app.userController.DeleteUser)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

