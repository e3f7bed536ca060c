package ports

// NotificationLevel distinguishes success toasts from failure toasts
type NotificationLevel int

const (
	NotifySuccess NotificationLevel = iota
	NotifyFailure
)

// Notification is a transient, non-blocking message for the user
type Notification struct {
	Level   NotificationLevel
	Message string
}

// Notifier surfaces the outcome of optimistic actions
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(n Notification)

// Notify calls f(n)
func (f NotifierFunc) Notify(n Notification) { f(n) }
