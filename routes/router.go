// file: routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"

	"hyperion/controllers"
	"hyperion/middlewares"
	"hyperion/models"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	apiV1 := r.Group("/api/v1")
	{
		// Provider webhook, unauthenticated. The checkout secret inside the
		// notification metadata authenticates it.
		apiV1.POST("/payment/webhook", controllers.PaymentWebhook)

		editionRoutes := apiV1.Group("/editions")
		editionRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			editionRoutes.GET("", controllers.GetEditions)
			editionRoutes.GET("/active", controllers.GetActiveEdition)
			editionRoutes.POST("", middlewares.GroupAuthMiddleware(), controllers.CreateEdition)
			editionRoutes.PUT("/:id", middlewares.GroupAuthMiddleware(), controllers.EditEdition)
			editionRoutes.POST("/:id/activate", middlewares.GroupAuthMiddleware(), controllers.ActivateEdition)
			editionRoutes.PUT("/:id/inscription", middlewares.GroupAuthMiddleware(), controllers.SetEditionInscription)
		}

		schoolRoutes := apiV1.Group("/schools")
		schoolRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			schoolRoutes.GET("", controllers.GetSchoolExtensions)
			schoolRoutes.GET("/:school_id", controllers.GetSchoolExtension)
			schoolRoutes.POST("", middlewares.GroupAuthMiddleware(), controllers.CreateSchoolExtension)
			schoolRoutes.PUT("/:school_id", middlewares.GroupAuthMiddleware(), controllers.EditSchoolExtension)
			schoolRoutes.DELETE("/:school_id", middlewares.GroupAuthMiddleware(), controllers.DeleteSchoolExtension)
		}

		quotaRoutes := apiV1.Group("/schools/:school_id/quotas")
		quotaRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			quotaRoutes.GET("/general", controllers.GetGeneralQuota)
			quotaRoutes.GET("/sports", controllers.GetSportQuotas)
			quotaRoutes.GET("/products", controllers.GetProductQuotas)

			quotaAdmin := quotaRoutes.Group("")
			quotaAdmin.Use(middlewares.GroupAuthMiddleware())
			{
				quotaAdmin.PUT("/general", controllers.SetGeneralQuota)
				quotaAdmin.DELETE("/general", controllers.DeleteGeneralQuota)
				quotaAdmin.PUT("/sports/:sport_id", controllers.SetSportQuota)
				quotaAdmin.DELETE("/sports/:sport_id", controllers.DeleteSportQuota)
				quotaAdmin.PUT("/products/:product_id", controllers.SetProductQuota)
				quotaAdmin.DELETE("/products/:product_id", controllers.DeleteProductQuota)
			}
		}

		sportRoutes := apiV1.Group("/sports")
		sportRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			sportRoutes.GET("", controllers.GetSports)
			sportRoutes.POST("", middlewares.GroupAuthMiddleware(), controllers.CreateSport)
			sportRoutes.PUT("/:id", middlewares.GroupAuthMiddleware(), controllers.EditSport)
			sportRoutes.DELETE("/:id", middlewares.GroupAuthMiddleware(), controllers.DeleteSport)
		}

		userRoutes := apiV1.Group("/competition-users")
		userRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			userRoutes.GET("/me", controllers.GetMyCompetitionUser)
			userRoutes.POST("", controllers.RegisterCompetitionUser)
			userRoutes.PUT("/:user_id", controllers.EditCompetitionUser)
			userRoutes.GET("", middlewares.GroupAuthMiddleware(models.GroupSchoolsBDS), controllers.GetCompetitionUsers)
			userRoutes.POST("/:user_id/validate", middlewares.GroupAuthMiddleware(models.GroupSchoolsBDS), controllers.ValidateCompetitionUser)
			userRoutes.POST("/:user_id/invalidate", middlewares.GroupAuthMiddleware(models.GroupSchoolsBDS), controllers.InvalidateCompetitionUser)
		}

		teamRoutes := apiV1.Group("/teams")
		teamRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			teamRoutes.GET("", controllers.GetTeams)
			teamRoutes.GET("/:id", controllers.GetTeam)
			teamRoutes.POST("", controllers.CreateTeam)
			teamRoutes.PUT("/:id", controllers.EditTeam)
			teamRoutes.DELETE("/:id", controllers.DeleteTeam)
		}

		participantRoutes := apiV1.Group("/participants")
		participantRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			participantRoutes.GET("/me", controllers.GetMyParticipations)
			participantRoutes.POST("/sports/:sport_id", controllers.JoinSport)
			participantRoutes.DELETE("/sports/:sport_id", controllers.WithdrawFromSport)
			participantRoutes.POST("/sports/:sport_id/certificate", controllers.UploadCertificate)

			participantStaff := participantRoutes.Group("")
			participantStaff.Use(middlewares.GroupAuthMiddleware(models.GroupSchoolsBDS))
			{
				participantStaff.GET("", controllers.GetParticipants)
				participantStaff.DELETE("/users/:user_id/sports/:sport_id", controllers.DeleteParticipant)
				participantStaff.PUT("/users/:user_id/sports/:sport_id/license", controllers.SetLicenseValidity)
				participantStaff.GET("/users/:user_id/sports/:sport_id/certificate", controllers.DownloadCertificate)
			}
		}

		productRoutes := apiV1.Group("/products")
		productRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			productRoutes.GET("", controllers.GetProducts)
			productRoutes.GET("/available", controllers.GetAvailableVariants)

			productAdmin := productRoutes.Group("")
			productAdmin.Use(middlewares.GroupAuthMiddleware())
			{
				productAdmin.POST("", controllers.CreateProduct)
				productAdmin.PUT("/:id", controllers.EditProduct)
				productAdmin.DELETE("/:id", controllers.DeleteProduct)
				productAdmin.POST("/:id/variants", controllers.CreateVariant)
			}
		}

		variantRoutes := apiV1.Group("/product-variants")
		variantRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.GroupAuthMiddleware())
		{
			variantRoutes.PUT("/:variant_id", controllers.EditVariant)
			variantRoutes.DELETE("/:variant_id", controllers.DeleteVariant)
		}

		purchaseRoutes := apiV1.Group("/purchases")
		purchaseRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			purchaseRoutes.GET("/me", controllers.GetMyPurchases)
			purchaseRoutes.POST("", controllers.CreatePurchase)
			purchaseRoutes.DELETE("/me/:variant_id", controllers.DeletePurchase)
			purchaseRoutes.GET("/users/:user_id", middlewares.GroupAuthMiddleware(models.GroupSchoolsBDS), controllers.GetUserPurchases)
			purchaseRoutes.DELETE("/users/:user_id/:variant_id", middlewares.GroupAuthMiddleware(), controllers.DeleteUserPurchase)
		}

		paymentRoutes := apiV1.Group("/payments")
		paymentRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			paymentRoutes.POST("/pay", controllers.Pay)
			paymentRoutes.GET("/users/:user_id", middlewares.GroupAuthMiddleware(models.GroupSchoolsBDS), controllers.GetUserPayments)
			paymentRoutes.POST("/users/:user_id", middlewares.GroupAuthMiddleware(), controllers.CreatePayment)
			paymentRoutes.DELETE("/users/:user_id/:payment_id", middlewares.GroupAuthMiddleware(), controllers.DeletePayment)
		}
	}

	return r
}
