package service

// Broadcaster pushes events to connected teacher dashboards. The websocket
// hub implements it; services treat it as optional.
type Broadcaster interface {
	NotifyTeacher(teacherID, event string, payload interface{})
}
