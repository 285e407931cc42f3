package audit

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventLoginSuccess  EventType = "login_success"
	EventLoginFailure  EventType = "login_failure"
	EventLogout        EventType = "logout"
	EventContentUpdate EventType = "content_update"
	EventServiceCreate EventType = "service_create"
	EventServiceUpdate EventType = "service_update"
	EventServiceDelete EventType = "service_delete"
	EventMediaUpload   EventType = "media_upload"
	EventMediaDelete   EventType = "media_delete"
	EventMessageDelete EventType = "message_delete"
)

type Event struct {
	Type    EventType
	IP      string
	Details map[string]interface{}
}

func Log(event Event) {
	logger := log.With().
		Str("audit", "admin").
		Str("event_type", string(event.Type)).
		Time("timestamp", time.Now()).
		Logger()

	if event.IP != "" {
		logger = logger.With().Str("ip", event.IP).Logger()
	}

	logEvent := logger.Info()
	for k, v := range event.Details {
		logEvent = logEvent.Interface(k, v)
	}
	logEvent.Msg("audit event")
}

func FromRequest(r *http.Request, eventType EventType, details map[string]interface{}) {
	Log(Event{
		Type:    eventType,
		IP:      r.RemoteAddr,
		Details: details,
	})
}
