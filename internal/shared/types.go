package shared

// Task types handled by the background worker.
const (
	TypeSendContactEmail    = "contact:send_email"
	TypeDeleteProductImages = "product:delete_images"
)

// Queue names.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)
