package router

import (
	"github.com/gin-gonic/gin"

	"litigator/internal/controller"
	"litigator/internal/middleware"
	"litigator/internal/rag"
)

func SetUpRouters(
	r *gin.Engine,
	uc *controller.UserController,
	fc *controller.FactController,
	ec *controller.EvidenceController,
	lc *controller.ElementController,
	cc *controller.ComplaintController,
	vc *controller.ConversationController,
	ragHandler *rag.Handler,
) {
	api := r.Group("/api")
	{
		publicUser := api.Group("/users")
		{
			publicUser.POST("/register", uc.Register)
			publicUser.POST("/login", uc.Login)
		}

		user := api.Group("/users")
		user.Use(middleware.JWTAuth())
		{
			user.GET("/me", uc.Me)
		}

		facts := api.Group("/facts")
		facts.Use(middleware.JWTAuth())
		{
			facts.POST("", fc.Create)
			facts.GET("", fc.List)
			facts.GET("/:id", fc.Get)
			facts.PUT("/:id", fc.Update)
			facts.DELETE("/:id", fc.Delete)
			facts.POST("/:id/causes", fc.LinkCauses)
			facts.GET("/:id/exhibits", ec.ListByFact)
		}

		evidence := api.Group("/exhibits")
		evidence.Use(middleware.JWTAuth())
		{
			evidence.POST("/upload", ec.Upload)
			evidence.GET("/page", ec.Page)
			evidence.GET("/:id", ec.Get)
			evidence.POST("/:id/reprocess", ec.Reprocess)
			evidence.GET("/:id/url", ec.FileURL)
			evidence.DELETE("/:id", ec.Delete)
		}

		elements := api.Group("/elements")
		elements.Use(middleware.JWTAuth())
		{
			elements.POST("", lc.Create)
			elements.GET("", lc.ListElements)
			elements.GET("/causes", lc.ListCauses)
			elements.POST("/compare-facts", lc.CompareFacts)
			elements.GET("/matrix", lc.Matrix)
		}

		complaint := api.Group("/complaint")
		complaint.Use(middleware.JWTAuth())
		{
			complaint.POST("/sections", cc.CreateSection)
			complaint.GET("/sections", cc.ListSections)
			complaint.GET("/sections/:id", cc.GetSection)
			complaint.POST("/draft", cc.DraftSection)
		}

		conversations := api.Group("/conversations")
		conversations.Use(middleware.JWTAuth())
		{
			conversations.POST("", vc.Create)
			conversations.GET("/page", vc.Page)
			conversations.DELETE("/:id", vc.Delete)
			conversations.POST("/:id/archive", vc.Archive)
			conversations.POST("/:id/pin", vc.Pin)
			conversations.GET("/:id/messages", vc.Messages)
			conversations.POST("/agent-chat", vc.AgentChat)
		}

		// Streaming RAG chat; auth-free like the rest of the chat surface the
		// UI talks to during a session.
		chat := api.Group("/chat")
		{
			ragHandler.Attach(chat, "/stream")
		}
	}
}
