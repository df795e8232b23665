package constant

// Scheduled job groups. The job name within a group is the entity id the job
// acts on (order item, order, booking, customer purchase or subscription).
const (
	JobGroupProfitRelease      = "profit-release"
	JobGroupAutoCancelOrder    = "auto-cancel-order"
	JobGroupFeedbackReminder   = "feedback-reminder"
	JobGroupEntitlementExpiry  = "entitlement-expiry"
	JobGroupTrainerRelease     = "trainer-release"
	JobGroupSubscriptionExpiry = "subscription-expiry"
)

// Settlement setting keys, stored in settlement_settings and read through the
// snapshot cache.
const (
	SettingCommissionRate       = "commission_rate"
	SettingProfitGraceDays      = "profit_grace_days"
	SettingAutoCancelMinutes    = "auto_cancel_unpaid_minutes"
	SettingFeedbackReminderDays = "feedback_reminder_days"
)

// Event type codes published on the outbound bus.
const (
	EventOrderSettled    = "ORDER_SETTLED"
	EventOrderCancelled  = "ORDER_CANCELLED"
	EventProfitReleased  = "PROFIT_RELEASED"
	EventBookingCreated  = "BOOKING_CREATED"
	EventBookingReminder = "BOOKING_REMINDER"
	EventReportOpened    = "REPORT_OPENED"
	EventReportResolved  = "REPORT_RESOLVED"
)

// Topic for the in-process bus carrying completed-booking ids to the
// early-release checker.
const TopicBookingCompleted = "BOOKING_COMPLETED"
