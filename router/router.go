package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/controllers"
	"github.com/acadmatch/academic-matchmaker/llm"
	"github.com/acadmatch/academic-matchmaker/matcher"
	"github.com/acadmatch/academic-matchmaker/middlewares"
	"github.com/acadmatch/academic-matchmaker/services"
)

func SetupRouter(db *gorm.DB, llmClient llm.Client) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Gin snapshots handler chains at registration, so the global per-IP
	// limiter must be attached before any route below.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	notificationSvc := services.NewNotificationService(db)
	chatSvc := services.NewChatService(db, notificationSvc)
	assistantSvc := services.NewAssistantService(db, llmClient)
	pipeline := matcher.NewPipeline(llmClient)

	userCtrl := controllers.NewUserController(db)
	professorCtrl := controllers.NewProfessorController(db)
	studentCtrl := controllers.NewStudentController(db)
	postCtrl := controllers.NewPostController(db)
	matchCtrl := controllers.NewMatchController(db, pipeline)
	chatCtrl := controllers.NewChatController(chatSvc)
	notificationCtrl := controllers.NewNotificationController(notificationSvc)
	assistantCtrl := controllers.NewAssistantController(assistantSvc)
	adminCtrl := controllers.NewAdminController(db)
	healthCtrl := controllers.NewHealthController(llmClient != nil && llmClient.Enabled())

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/health", healthCtrl.Health)

	// Rate limiter for login/register
	public := r.Group("/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}
	r.POST("/auth/logout", userCtrl.Logout)

	// Matching without an account (landing-page search)
	r.POST("/smart-match-public", matchCtrl.SmartMatch)

	// Context-aware assistant for one profile
	r.POST("/api/chat-assistant/query", assistantCtrl.Query)

	// Public directory browsing
	r.GET("/professors", professorCtrl.GetAllProfessors)
	r.GET("/professors/:prof_id", professorCtrl.GetProfessorByID)
	r.GET("/students", studentCtrl.GetAllStudents)
	r.GET("/students/:student_id", studentCtrl.GetStudentByID)
	r.GET("/posts", postCtrl.GetAllPosts)

	// Realtime events (token via query string)
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	ws.GET("", controllers.WSHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	r.POST("/smart-match", middlewares.StrictBearerMiddleware(), matchCtrl.SmartMatch)

	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// PROFILES (owner-only mutation enforced in the controllers)
	auth.POST("/professors", professorCtrl.CreateProfessor)
	auth.PATCH("/professors/:prof_id", professorCtrl.UpdateProfessor)
	auth.POST("/students", studentCtrl.CreateStudent)
	auth.PATCH("/students/:student_id", studentCtrl.UpdateStudent)

	// POSTS
	auth.POST("/posts", postCtrl.CreatePost)
	auth.DELETE("/posts/:post_id", postCtrl.DeletePost)

	// CHATS
	auth.POST("/chats", chatCtrl.OpenChat)
	auth.GET("/chats", chatCtrl.GetMyChats)
	auth.GET("/chats/:chat_id/messages", chatCtrl.GetMessages)
	auth.POST("/chats/:chat_id/messages", chatCtrl.SendMessage)
	auth.DELETE("/chats/:chat_id", chatCtrl.DeleteChat)
	auth.PATCH("/chats/:chat_id/pin", chatCtrl.PinChat)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetMyNotifications)
	auth.GET("/notifications/unread-count", notificationCtrl.GetUnreadCount)
	auth.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkRead)

	// ADMIN
	admin := auth.Group("/admin")
	admin.Use(middlewares.RequireRole("admin"))
	{
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.GET("/stats", adminCtrl.GetStats)
		admin.POST("/professors/import", adminCtrl.ImportProfessors)
	}

	return r
}
