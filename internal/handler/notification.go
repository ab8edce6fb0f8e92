package handler

import (
	"net/http"
)

// NotificationBell is the navbar badge partial, polled on an interval. A
// failed poll renders an empty bell rather than an error; the next tick
// retries anyway.
func (v *View) NotificationBell(w http.ResponseWriter, r *http.Request) {
	notifications, err := v.api.UnreadNotifications(r.Context())
	if err != nil {
		v.logger.Warn("notification poll failed", "error", err)
		v.renderPartial(w, "notification-bell", map[string]any{"Count": 0})
		return
	}

	v.renderPartial(w, "notification-bell", map[string]any{
		"Count":         len(notifications),
		"Notifications": notifications,
	})
}

func (v *View) NotificationsPage(w http.ResponseWriter, r *http.Request) {
	notifications, err := v.api.UnreadNotifications(r.Context())
	if err != nil {
		v.fail(w, r, err, "failed to load notifications")
		return
	}

	data := v.baseData("Notifications — BlueMoon Fees")
	data["Notifications"] = notifications
	v.render(w, "notifications.html", data)
}

// NotificationRead marks one notification read and sends the browser to
// the screen its entity lives on.
func (v *View) NotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := v.api.MarkNotificationRead(r.Context(), id); err != nil {
		v.fail(w, r, err, "failed to mark notification read")
		return
	}

	target := r.FormValue("target")
	if target == "" {
		target = "/"
	}
	w.Header().Set("HX-Redirect", target)
	w.WriteHeader(http.StatusOK)
}
