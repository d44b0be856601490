package worker

import (
	"github.com/careops/hospitalops/internal/events"
	"github.com/careops/hospitalops/internal/service"
)

// StartNotificationWorker registers the notification handlers and the stats
// cache invalidation hooks on the dispatcher.
func StartNotificationWorker(notifications *service.NotificationService, stats *service.StatsService, dispatcher events.Dispatcher) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if stats != nil {
		stats.RegisterInvalidation(dispatcher)
	}
}
