package main

import (
	"log"

	"go-group-chat/internal/api"
	"go-group-chat/internal/middleware"
	"go-group-chat/internal/repository"
	"go-group-chat/internal/service"
	"go-group-chat/pkg/config"
	"go-group-chat/pkg/db"
	"go-group-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// 初始化配置
	if err := config.Init(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.InitLogger(config.GlobalConfig.Log.Level, config.GlobalConfig.Log.ProductionMode); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库连接
	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 仓库
	userRepo := repository.NewUserRepository()
	imageRepo := repository.NewUserImageRepository()
	groupRepo := repository.NewGroupRepository()
	memberRepo := repository.NewGroupMemberRepository()
	requestRepo := repository.NewSentRequestRepository()
	messageRepo := repository.NewMessageRepository()

	// 服务
	fileService, err := service.NewFileService()
	if err != nil {
		log.Fatalf("Failed to initialize file service: %v", err)
	}
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, imageRepo, fileService)
	groupService := service.NewGroupService(groupRepo, memberRepo)
	requestService := service.NewRequestService(requestRepo, groupRepo, memberRepo)
	messageService := service.NewMessageService(messageRepo, groupRepo, memberRepo, fileService)

	// 处理器
	authHandler := api.NewAuthHandler(authService)
	userHandler := api.NewUserHandler(userService, fileService)
	groupHandler := api.NewGroupHandler(groupService)
	requestHandler := api.NewRequestHandler(requestService)
	messageHandler := api.NewMessageHandler(messageService)

	// 创建Gin引擎
	r := gin.New()
	r.Use(middleware.GinZapLogger(), gin.Recovery())

	// 公开路由
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)

	// 受保护的路由
	protected := r.Group("/api", middleware.AuthMiddleware())
	{
		protected.POST("/users", userHandler.CreateUser)
		protected.POST("/users/update", userHandler.UpdateUser)
		protected.GET("/users", userHandler.ListUsers)
		protected.POST("/users/images", userHandler.UploadImage)
		protected.DELETE("/users/images/:id", userHandler.DeleteImage)

		protected.POST("/groups", groupHandler.CreateGroup)
		protected.GET("/groups", groupHandler.ListGroups)
		protected.PUT("/groups/:group_code", groupHandler.UpdateGroup)

		protected.POST("/groups/:group_code/members", groupHandler.AddGroupMember)
		protected.GET("/groups/:group_code/members", groupHandler.ListGroupMembers)
		protected.GET("/groups/:group_code/members/:id", groupHandler.GetGroupMember)

		protected.POST("/groups/:group_code/requests", requestHandler.CreateRequest)
		protected.GET("/groups/:group_code/requests", requestHandler.ListGroupRequests)
		protected.POST("/requests/:id/resolve", requestHandler.ResolveRequest)

		protected.POST("/groups/:group_code/messages", messageHandler.SendMessage)
		protected.GET("/groups/:group_code/messages", messageHandler.ListGroupMessages)
		protected.DELETE("/messages/:code/files/:id", messageHandler.DeleteMessageFile)
	}

	// 启动服务器
	addr := config.GlobalConfig.Server.Addr
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
