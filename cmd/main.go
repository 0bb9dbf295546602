package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"litigator/config"
	"litigator/internal/agent"
	"litigator/internal/component/embedding"
	llmfactory "litigator/internal/component/llm"
	"litigator/internal/controller"
	"litigator/internal/dao"
	"litigator/internal/dao/history"
	"litigator/internal/database"
	"litigator/internal/middleware"
	"litigator/internal/rag"
	"litigator/internal/router"
	"litigator/internal/service"
	"litigator/internal/storage"
)

func main() {
	config.InitConfig()
	cfg := config.GetConfig()
	ctx := context.Background()

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("[Main] failed to init database: %v", err)
	}
	milvusClient, err := database.InitMilvus(ctx)
	if err != nil {
		log.Fatalf("[Main] failed to init milvus: %v", err)
	}
	milvusDao := dao.NewMilvusDao(milvusClient)
	if err := milvusDao.EnsureCollection(ctx); err != nil {
		log.Fatalf("[Main] failed to ensure milvus collection: %v", err)
	}

	driver, err := storage.NewDriver(cfg.Storage)
	if err != nil {
		log.Fatalf("[Main] failed to init storage driver: %v", err)
	}
	embedder, err := embedding.NewEmbedder(ctx, cfg.Embedding)
	if err != nil {
		log.Fatalf("[Main] failed to init embedder: %v", err)
	}
	llm, err := llmfactory.GetLLMClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("[Main] failed to init llm client: %v", err)
	}

	userDao := dao.NewUserDao(db)
	factDao := dao.NewFactDao(db)
	evidenceDao := dao.NewEvidenceDao(db)
	elementDao := dao.NewElementDao(db)
	complaintDao := dao.NewComplaintDao(db)
	convDao := history.NewConvDao(db)
	msgDao := history.NewMsgDao(db)

	userService := service.NewUserService(userDao)
	factService := service.NewFactService(factDao)
	evidenceService := service.NewEvidenceService(evidenceDao, milvusDao, driver, embedder)
	elementService := service.NewElementService(elementDao, factDao, evidenceDao, llm)
	complaintService := service.NewComplaintService(complaintDao, factDao, llm)
	historyService := service.NewHistoryService(convDao, msgDao)

	// Streaming RAG pipeline.
	retriever := rag.NewMilvusRetriever(embedder, milvusDao)
	completer := rag.NewModelCompleter(llm)
	processor := rag.NewProcessor(
		completer,
		rag.NewSearchStrategy(retriever),
		rag.NewKnowledgeAgentStrategy(retriever, completer),
	)
	ragHandler := rag.NewHandler(processor)

	// Tool-calling agent: local toolset plus whatever the configured MCP and
	// OpenAPI servers expose.
	toolset := agent.NewToolset(retriever, factDao, elementDao)
	tools, err := toolset.Tools(ctx)
	if err != nil {
		log.Fatalf("[Main] failed to build agent tools: %v", err)
	}
	if len(cfg.Agent.MCPServers) > 0 {
		mcpTools, err := agent.LoadMCPTools(ctx, cfg.Agent.MCPServers)
		if err != nil {
			log.Printf("[Main] skipping MCP tools: %v", err)
		} else {
			tools = append(tools, mcpTools...)
		}
	}
	for _, server := range cfg.Agent.ToolServers {
		remote, err := agent.DiscoverOpenAPITools(ctx, server)
		if err != nil {
			log.Printf("[Main] skipping tool server %s: %v", server, err)
			continue
		}
		tools = append(tools, remote...)
	}
	orchestrator, err := agent.NewOrchestrator(ctx, llm, tools, cfg.Agent)
	if err != nil {
		log.Fatalf("[Main] failed to init agent orchestrator: %v", err)
	}

	userController := controller.NewUserController(userService)
	factController := controller.NewFactController(factService)
	evidenceController := controller.NewEvidenceController(evidenceService)
	elementController := controller.NewElementController(elementService)
	complaintController := controller.NewComplaintController(complaintService)
	conversationController := controller.NewConversationController(historyService, orchestrator)

	r := gin.Default()
	r.Use(middleware.SetupCORS())
	router.SetUpRouters(r,
		userController,
		factController,
		evidenceController,
		elementController,
		complaintController,
		conversationController,
		ragHandler,
	)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("[Main] server exited: %v", err)
	}
}
