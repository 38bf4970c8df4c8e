package worker

import (
	"github.com/echonet/echonet/internal/service"
)

// StartActivityWorker registers activity handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
