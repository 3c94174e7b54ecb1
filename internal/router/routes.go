package router

import (
	"github.com/gcclub/membercard/internal/auth"
	"github.com/gcclub/membercard/internal/card"
	"github.com/gcclub/membercard/internal/config"
	"github.com/gcclub/membercard/internal/member"
	"github.com/gcclub/membercard/internal/meta"
	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/access"
	"github.com/gcclub/membercard/internal/shared/database"
	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/gcclub/membercard/internal/shared/flash"
	"github.com/gcclub/membercard/internal/shared/middleware"
	"github.com/gcclub/membercard/internal/shared/storage"
	"github.com/gcclub/membercard/internal/shared/token"
	"github.com/gcclub/membercard/internal/staff"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Infra holds the optional backing services. Redis and Photos may be nil.
type Infra struct {
	Redis  redis.UniversalClient
	Photos storage.PhotoStore
	Flash  flash.Store
}

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB, infra Infra) {
	// Meta handler (health check, metrics)
	metaHandler := meta.NewHandler(cfg, db, infra.Redis)
	router.GET("/health", metaHandler.Health)
	router.GET(middleware.MetricsPath, gin.WrapH(promhttp.Handler()))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(sharedError.NotFound.Status, sharedError.NotFound)
	})

	// repository
	memberRepository := member.NewMemberRepository()
	userRepository := member.NewUserRepository()
	allocator := member.NewIDAllocator()

	// shared services
	tokenManager := token.NewJWTManager(cfg)

	// service
	authService := auth.NewAuthService(db.DB, userRepository, memberRepository, tokenManager)
	memberService := member.NewMemberService(db.DB, cfg, memberRepository, userRepository, allocator, infra.Flash, infra.Photos)
	staffService := staff.NewStaffService(db.DB, cfg, memberRepository, userRepository, allocator)
	cardService := card.NewCardService(db.DB, cfg, memberRepository, infra.Photos)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	memberHandler := member.NewMemberHandler(memberService)
	profileHandler := member.NewProfileHandler(memberService)
	staffHandler := staff.NewStaffHandler(staffService)
	cardHandler := card.NewCardHandler(cardService)

	// Public card pages
	memberCard := router.Group("/member/:publicId")
	{
		memberCard.GET("/", cardHandler.Card)
		memberCard.GET("/expired/", cardHandler.Expired)
		memberCard.GET("/print/", cardHandler.Print)
		memberCard.GET("/qr.png", cardHandler.QR)
		memberCard.GET("/photo", cardHandler.Photo)
	}
	viewOnlyCard := router.Group("/card/:publicId")
	{
		viewOnlyCard.GET("/", cardHandler.ViewOnly)
		viewOnlyCard.GET("/expired/", cardHandler.ExpiredViewOnly)
	}

	// API v1 routes
	jwt := middleware.JWT(tokenManager)

	authV1 := router.Group("/api/v1/auth")
	{
		authV1.POST("/login", middleware.RateLimit(infra.Redis, "ratelimit:login:", cfg.Server.LoginRateLimit), authHandler.Login)
		authV1.POST("/refresh", authHandler.Refresh)
		authV1.POST("/password", jwt, authHandler.ChangePassword)
	}

	profileV1 := router.Group("/api/v1/profile", jwt, access.Require(memberService))
	{
		profileV1.GET("", profileHandler.Dashboard)
		profileV1.GET("/form", profileHandler.Form)
		profileV1.PUT("", profileHandler.Update)
		profileV1.PUT("/photo", profileHandler.UploadPhoto)
		profileV1.GET("/card", profileHandler.MyCard)
	}

	staffV1 := router.Group("/api/v1/staff", jwt)
	{
		staffV1.GET("/dashboard", access.Require(memberService, model.StaffRoles...), staffHandler.Dashboard)
		staffV1.POST("/register", access.Require(memberService, model.RoleCommittee, model.RolePresident), staffHandler.Register)
	}

	memberV1 := router.Group("/api/v1/members", jwt, access.Require(memberService, model.StaffRoles...))
	{
		memberV1.GET("", memberHandler.List)
		memberV1.POST("", memberHandler.Create)
		memberV1.GET("/:memberId", memberHandler.Detail)
		memberV1.GET("/:memberId/form", memberHandler.Form)
		memberV1.PUT("/:memberId", memberHandler.Update)
		memberV1.PUT("/:memberId/photo", memberHandler.UploadPhoto)
		memberV1.PUT("/:memberId/active", memberHandler.SetActive)
		memberV1.GET("/:memberId/delete", memberHandler.DeleteConfirm)
		memberV1.POST("/:memberId/delete", memberHandler.Delete)
	}
}
