package main

import (
	"github.com/gin-gonic/gin"
	"contract-hub.backend/internal/interfaces/http/handlers"
	"contract-hub.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	contractHandler   *handlers.ContractHandler
	templateHandler   *handlers.TemplateHandler
	signatureHandler  *handlers.SignatureHandler
	generationHandler *handlers.GenerationHandler
	documentHandler   *handlers.DocumentHandler
	authMiddleware    gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Contract routes (protected, except the token-gated public view)
		contracts := v1.Group("/contracts")
		{
			contracts.GET("/:id/public", d.contractHandler.PublicView)
		}
		contractsAuth := v1.Group("/contracts")
		contractsAuth.Use(d.authMiddleware)
		{
			contractsAuth.POST("", middleware.IdempotencyMiddleware(), d.contractHandler.Create)
			contractsAuth.GET("", d.contractHandler.List)
			contractsAuth.GET("/stats", d.contractHandler.Stats)
			contractsAuth.GET("/recent", d.contractHandler.Recent)
			contractsAuth.GET("/pending", d.contractHandler.Pending)
			contractsAuth.POST("/bulk-download", d.documentHandler.BulkDownload)
			contractsAuth.GET("/:id", d.contractHandler.Get)
			contractsAuth.PATCH("/:id", d.contractHandler.Update)
			contractsAuth.DELETE("/:id", d.contractHandler.Delete)
			contractsAuth.POST("/:id/duplicate", d.contractHandler.Duplicate)
			contractsAuth.PATCH("/:id/content", d.contractHandler.UpdateContent)
			contractsAuth.GET("/:id/versions", d.contractHandler.GetVersions)
			contractsAuth.PATCH("/:id/status", d.contractHandler.UpdateStatus)
			contractsAuth.GET("/:id/transitions", d.contractHandler.GetTransitions)
			contractsAuth.GET("/:id/history", d.contractHandler.GetHistory)
			contractsAuth.GET("/:id/history/export", d.documentHandler.ExportHistory)
			contractsAuth.GET("/:id/parties", d.contractHandler.ListParties)
			contractsAuth.POST("/:id/parties", d.contractHandler.AddParty)
			contractsAuth.DELETE("/:id/parties/:partyId", d.contractHandler.RemoveParty)
			contractsAuth.GET("/:id/document", d.documentHandler.Download)
		}

		// Template routes (public)
		templates := v1.Group("/templates")
		{
			templates.GET("", d.templateHandler.List)
			templates.GET("/types", d.templateHandler.ListTypes)
			templates.GET("/types/:typeId/schema", d.templateHandler.GetFormSchema)
			templates.GET("/:id", d.templateHandler.Get)
		}

		// Generation routes (protected)
		ai := v1.Group("/ai")
		ai.Use(d.authMiddleware)
		{
			ai.POST("/generate", d.generationHandler.Generate)
			ai.POST("/generate-async", d.generationHandler.GenerateAsync)
			ai.GET("/jobs/:id", d.generationHandler.GetJob)
		}

		// Signature routes
		signatures := v1.Group("/signatures")
		{
			// Token-gated guest flow (public)
			signatures.GET("/tokens/:token/validate", d.signatureHandler.ValidateToken)
			signatures.POST("/guest-sign", d.signatureHandler.GuestSign)
		}
		signaturesAuth := v1.Group("/signatures")
		signaturesAuth.Use(d.authMiddleware)
		{
			signaturesAuth.POST("/tokens", d.signatureHandler.CreateToken)
			signaturesAuth.POST("/sign", middleware.IdempotencyMiddleware(), d.signatureHandler.Sign)
			signaturesAuth.GET("/contracts/:id", d.signatureHandler.GetContractSignatures)
		}
	}
}
