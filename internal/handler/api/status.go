package api

import (
	"net/http"

	"wedding-booking/internal/domain/booking"
	resdto "wedding-booking/internal/handler/dto/response"

	"github.com/gin-gonic/gin"
)

// @Summary Status graph
// @Description Every booking status in registry order, the terminal ones, and the legal transitions with the roles allowed to drive them
// @Tags statuses
// @Produce json
// @Success 200 {object} resdto.StatusGraphResponse
// @Router /statuses [get]
func StatusGraph(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromGraph(booking.AllStatuses(), booking.Graph()))
}
