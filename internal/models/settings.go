package models

// Settings represents application-wide settings
type Settings struct {
	FeedTime             string `json:"feed_time"`             // the daily feeding reminder time, e.g. "08:00"
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether overdue notifications are sent
	Timezone             string `json:"timezone"`              // IANA timezone name, or "Local" for system timezone
	Language             string `json:"language"`              // preferred language for AI advice
	PollIntervalSec      int    `json:"poll_interval_sec"`     // overdue check interval in seconds
}
