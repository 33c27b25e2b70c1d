package routes

import (
	"html/template"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blog/config"
	"blog/controllers"
	"blog/middleware"
	"blog/session"
	"blog/store"
	"blog/utils"
)

// SetupRouter wires templates, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if utils.Logger != nil {
		r.Use(utils.Ginzap(utils.Logger))
		r.Use(utils.RecoveryWithZap(utils.Logger))
	} else {
		r.Use(gin.Recovery())
	}

	// Bodies and comments are sanitized at write time, so templates may
	// render them unescaped.
	r.SetFuncMap(template.FuncMap{
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	})
	r.LoadHTMLGlob(cfg.TemplatesGlob)
	r.Static("/static", cfg.StaticDir)

	st := store.New(db)
	sessions := session.NewStore(cfg)
	r.Use(middleware.CurrentUser(sessions, st))

	blogController := controllers.NewBlogController(st)
	authController := controllers.NewAuthController(st, sessions)
	postController := controllers.NewPostController(st)
	contactController := controllers.NewContactController(utils.NewContactMailer(cfg))

	r.GET("/", blogController.Index)
	r.GET("/about", blogController.About)
	r.GET("/post/:id", blogController.Show)
	r.POST("/post/:id", blogController.Comment)

	authGroup := r.Group("")
	authGroup.Use(middleware.RateLimit())
	authGroup.GET("/register", authController.ShowRegister)
	authGroup.POST("/register", authController.Register)
	authGroup.GET("/login", authController.ShowLogin)
	authGroup.POST("/login", authController.Login)

	r.GET("/logout", authController.Logout)

	r.GET("/contact", contactController.Show)
	r.POST("/contact", middleware.RateLimit(), contactController.Send)

	admin := r.Group("")
	admin.Use(middleware.AdminRequired())
	admin.GET("/new-post", postController.ShowNew)
	admin.POST("/new-post", postController.Create)
	admin.GET("/edit-post/:id", postController.ShowEdit)
	admin.POST("/edit-post/:id", postController.Update)
	admin.GET("/delete/:id", postController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.HTML(404, "error.html", gin.H{"Status": 404, "Message": "Page not found"})
	})

	return r
}
