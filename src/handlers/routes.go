package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every public route on r
func RegisterRoutes(r gin.IRoutes, auth *AuthHandler, questions *QuestionHandler, health *HealthHandler) {
	r.GET("/health", health.HandleHealth)
	r.GET("/ready", health.HandleReady)
	r.GET("/info", health.HandleInfo)

	r.POST("/registration", auth.HandleRegistration)
	r.POST("/login", auth.HandleLogin)

	r.GET("/questions", questions.HandleGetQuestions)
	r.POST("/questions", questions.HandleAddQuestion)
	r.PUT("/questions/:id", questions.HandleUpdateQuestion)
	r.DELETE("/questions/:id", questions.HandleDeleteQuestion)
	r.POST("/answers", questions.HandleAddAnswer)
}
