package api

import (
	"Patchouli/internal/api/middleware"
	"Patchouli/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", group.UserHandler.Register)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
			}

			// 需要登录 & 拥有 admin 角色
			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				adminGroup.POST("/ban", group.UserHandler.SetBan)
			}
		}

		postGroup := apiGroup.Group("/post")
		{
			// 公开流与详情（详情对非作者只展示已发布的）
			publicGroup := postGroup.Group("")
			publicGroup.Use(middleware.AuthOptionalMiddleware())
			{
				publicGroup.GET("/latest", group.PostHandler.LastestPost)
				publicGroup.GET("/search", group.SearchHandler.SearchPost)
				publicGroup.GET("/:post_id", group.PostHandler.GetPost)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.SubmitPost)
				authGroup.PUT("/:post_id", group.PostHandler.EditPost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.GET("/self", group.PostHandler.GetPostSelf)
				authGroup.GET("/self/search", group.SearchHandler.SearchPostMe)
			}

			// 审核队列与裁决
			reviewGroup := authGroup.Group("/review")
			reviewGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				reviewGroup.GET("", group.ModerationHandler.ReviewPosts)
				reviewGroup.POST("/:post_id/approve", group.ModerationHandler.ApprovePost)
				reviewGroup.POST("/:post_id/reject", group.ModerationHandler.RejectPost)
			}
		}

		noticeGroup := apiGroup.Group("/notice")
		noticeGroup.Use(middleware.AuthMiddleware())
		{
			noticeGroup.GET("", group.NoticeHandler.GetNoticeList)
			noticeGroup.PUT("/read/all", group.NoticeHandler.MarkAllAsRead)
			noticeGroup.PUT("/:notice_id/read", group.NoticeHandler.MarkAsRead)
		}

		attachmentGroup := apiGroup.Group("/attachment")
		attachmentGroup.Use(middleware.AuthMiddleware())
		{
			attachmentGroup.POST("/upload", group.AttachmentHandler.Upload)
			attachmentGroup.GET("/preview", group.AttachmentHandler.PreviewLink)
		}
	}

	return r
}
