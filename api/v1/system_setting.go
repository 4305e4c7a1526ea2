package v1

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/seowoojae/shelfd/http/response"
	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/model"
)

// setGeneralSettings toggles instance-wide settings. The ACL restricts this
// path to the host.
func (h *Handler) setGeneralSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.SystemSettingGeneral
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if _, err := h.store.UpsertSystemSetting(&model.SystemSetting{
		Name:  model.SettingTypeGeneral,
		Value: settings.ToJSON(),
	}); err != nil {
		log.Error("Failed to set general settings", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &settings)
}
