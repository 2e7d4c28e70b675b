package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	SessionStatusActive = "active"
	SessionStatusEnded  = "ended"

	// AnonymousAdminID is stored as admin_id when no principal is attached to the request.
	AnonymousAdminID = "00000000-0000-0000-0000-000000000000"
)

// Audit actions written to audit_logs.
const (
	AuditSessionNotFound        = "session_not_found"
	AuditSessionInactive        = "session_inactive"
	AuditSessionValidationError = "session_validation_error"
	AuditNoDataFound            = "no_data_found"
	AuditBlockedGeneralQuery    = "blocked_general_query"
	AuditLLMError               = "llm_error"
	AuditFallbackTriggered      = "fallback_triggered"
	AuditUserMessageReceived    = "user_message_received"
	AuditChatCompleted          = "chat_completed"
	AuditChatHistorySaveFailed  = "chat_history_save_failed"
	AuditSessionStarted         = "session_started"
	AuditSessionEnded           = "session_ended"
)

// NoDataFoundCode marks a retrieval attempt where the source answered with zero rows.
const NoDataFoundCode = "no_data_found"
