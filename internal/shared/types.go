package shared

// Asynq task types and queues.
const (
	TypeSendOrderConfirmation = "order:send_confirmation"
	TypeCancelStaleOrders     = "order:cancel_stale"

	QueueDefault = "default"
	QueueEmail   = "email"
)

// Roles known to the access guard.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"
)
