package ports

// NotificationLevel classifica uma notificação exibida ao operador
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
	NotificationInfo    NotificationLevel = "info"
)

// Notification é uma mensagem transitória para o operador
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
}

// Notifier entrega notificações. Implementações não devem bloquear
// o chamador por tempo indeterminado.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapta uma função comum a Notifier
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// NopNotifier descarta todas as notificações
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}
