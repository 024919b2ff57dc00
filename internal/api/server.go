package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/evsys/event-scheduling-api/docs"
	v1 "github.com/evsys/event-scheduling-api/internal/api/handler/v1"
	"github.com/evsys/event-scheduling-api/internal/api/middleware"
	"github.com/evsys/event-scheduling-api/internal/config"
	"github.com/evsys/event-scheduling-api/internal/repository"
	"github.com/evsys/event-scheduling-api/internal/repository/dao"
	"github.com/evsys/event-scheduling-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	auditSvc := s.initAuditService(db)
	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db, auditSvc)
	bookingHandler := s.initBookingHandler(db, auditSvc)
	historyHandler := s.initHistoryHandler(db, auditSvc)
	s.MountHandlers(authHandler, userHandler, eventHandler, bookingHandler, historyHandler)

	return s
}

func (s *Server) initAuditService(db *gorm.DB) *service.AuditService {
	auditDAO := dao.NewAuditDAO(db)
	repo := repository.NewAuditRepository(auditDAO)
	svc := service.NewAuditService(repo)

	return svc
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB, auditSvc *service.AuditService) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo, auditSvc)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewEventHandler(svc, uSvc)

	return handler
}

func (s *Server) initBookingHandler(db *gorm.DB, auditSvc *service.AuditService) *v1.BookingHandler {
	bookingDAO := dao.NewBookingDAO(db)
	repo := repository.NewBookingRepository(bookingDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewBookingService(repo, eventRepo, auditSvc)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewBookingHandler(svc, uSvc)

	return handler
}

func (s *Server) initHistoryHandler(db *gorm.DB, auditSvc *service.AuditService) *v1.HistoryHandler {
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewHistoryHandler(auditSvc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, eventHandler *v1.EventHandler, bookingHandler *v1.BookingHandler, historyHandler *v1.HistoryHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		users.GET("/users/me", userHandler.HandleGetMyProfile)
		users.PATCH("/users/me", userHandler.HandleUpdateMyProfile)
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	events := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		events.GET("/events", eventHandler.HandleGetEvents)
		events.GET("/events/my", eventHandler.HandleGetMyEvents)
		events.GET("/events/upcoming", eventHandler.HandleGetUpcomingEvents)
		events.GET("/events/past", eventHandler.HandleGetPastEvents)
		events.GET("/events/:eventID", eventHandler.HandleGetEvent)
		events.POST("/events", eventHandler.HandleCreateEvent)
		events.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		events.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
	}

	bookings := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		bookings.GET("/bookings", bookingHandler.HandleGetBookings)
		bookings.GET("/bookings/:bookingID", bookingHandler.HandleGetBooking)
		bookings.POST("/bookings", bookingHandler.HandleCreateBooking)
		bookings.POST("/bookings/:bookingID/cancel", bookingHandler.HandleCancelBooking)
		bookings.PATCH("/bookings/:bookingID", bookingHandler.HandleUpdateBooking)
		bookings.DELETE("/bookings/:bookingID", bookingHandler.HandleDeleteBooking)
	}

	history := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		history.GET("/history", historyHandler.HandleGetHistory)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Event Scheduling API"
	docs.SwaggerInfo.Description = "REST API for scheduling events and booking slots with capacity control."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
