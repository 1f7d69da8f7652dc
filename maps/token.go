// Package maps hands out the tile-provider token the client map SDK needs.
// The map is optional UI; nothing else depends on this endpoint.
package maps

import (
	"net/http"
	"os"

	"mandi/utils"

	"github.com/julienschmidt/httprouter"
)

func GetToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := os.Getenv("MAP_TILE_TOKEN")
	if token == "" {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Map provider not configured")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token})
}
