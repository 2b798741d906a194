package handlers

import (
	"errors"
	"net/http"

	"menulink/internal/logger"
	"menulink/internal/repository"
	"menulink/internal/services"
	"menulink/internal/validation"
	"menulink/pkg/menuapi"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Remote 4xx messages
// are shown to the user; remote 5xx and transport failures are not.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var verrs validation.Errors
	var apiErr *menuapi.APIError

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": verrs})
	case errors.Is(err, services.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
	case errors.Is(err, services.ErrMenuNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Menú no encontrado"})
	case errors.Is(err, repository.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido no encontrado"})
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "El carrito está vacío"})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estado inválido"})
	case errors.Is(err, services.ErrNoBusinessPhone):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "El negocio no tiene WhatsApp configurado"})
	case errors.As(err, &apiErr):
		if apiErr.Status == http.StatusUnauthorized {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sesión expirada"})
			return
		}
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
			return
		}
		log.Error(c.Request.Context()).Err(err).Msg("menu API failure")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Servicio no disponible, intenta de nuevo"})
	default:
		log.Error(c.Request.Context()).Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
	}
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
}
