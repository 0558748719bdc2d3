package domain

var (
	PRACTICE_STATE_SUCCESS          = "Practice state loaded"
	PRACTICE_STATE_FAILED           = "Failed to load practice state"
	PRACTICE_CONFIGURE_SUCCESS      = "Practice session updated"
	PRACTICE_CONFIGURE_FAILED       = "Failed to update practice session"
	PRACTICE_CONTROL_SUCCESS        = "Practice control applied"
	PRACTICE_CONTROL_FAILED         = "Failed to apply practice control"
	PRACTICE_NAVIGATE_SUCCESS       = "Moved to question"
	PRACTICE_NAVIGATE_FAILED        = "Failed to move to question"
	PRACTICE_SAVE_SUCCESS           = "Practice record saved"
	PRACTICE_SAVE_FAILED            = "Failed to save practice record"
	REVIEW_SAVE_SUCCESS             = "Review saved"
	REVIEW_SAVE_FAILED              = "Failed to save review"
	SESSION_LIST_SUCCESS            = "Session records loaded"
	SESSION_LIST_FAILED             = "Failed to load session records"
	SESSION_DETAIL_SUCCESS          = "Session detail loaded"
	SESSION_DETAIL_FAILED           = "Failed to load session detail"
	SESSION_NOT_FOUND               = "Session not found"
	SESSION_UPDATE_SUCCESS          = "Session updated"
	SESSION_UPDATE_FAILED           = "Failed to update session"
	SESSION_DELETE_SUCCESS          = "Session deleted"
	SESSION_DELETE_FAILED           = "Failed to delete session"
	STATS_DAILY_SUCCESS             = "Daily stats loaded"
	STATS_DAILY_FAILED              = "Failed to load daily stats"
	STATS_DASHBOARD_SUCCESS         = "Dashboard stats loaded"
	STATS_DASHBOARD_FAILED          = "Failed to load dashboard stats"
	QUESTION_TYPE_LIST_SUCCESS      = "Question types loaded"
	QUESTION_TYPE_LIST_FAILED       = "Failed to load question types"
	QUESTION_TYPE_SAVE_SUCCESS      = "Question type saved"
	QUESTION_TYPE_SAVE_FAILED       = "Failed to save question type"
	QUESTION_TYPE_DELETE_SUCCESS    = "Question type deleted"
	QUESTION_TYPE_DELETE_FAILED     = "Failed to delete question type"
	TEMPLATE_LIST_SUCCESS           = "Templates loaded"
	TEMPLATE_LIST_FAILED            = "Failed to load templates"
	TEMPLATE_DETAIL_SUCCESS         = "Template loaded"
	TEMPLATE_DETAIL_FAILED          = "Failed to load template"
	TEMPLATE_NOT_FOUND              = "Template not found"
	TEMPLATE_SAVE_SUCCESS           = "Template saved"
	TEMPLATE_SAVE_FAILED            = "Failed to save template"
	TEMPLATE_DELETE_SUCCESS         = "Template deleted"
	TEMPLATE_DELETE_FAILED          = "Failed to delete template"
	BACKUP_EXPORT_SUCCESS           = "Backup exported"
	BACKUP_EXPORT_FAILED            = "Failed to export backup"
	BACKUP_IMPORT_SUCCESS           = "Backup imported"
	BACKUP_IMPORT_FAILED            = "Failed to import backup"
	SETTINGS_GET_SUCCESS            = "Settings loaded"
	SETTINGS_GET_FAILED             = "Failed to load settings"
	SETTINGS_SAVE_SUCCESS           = "Settings saved"
	SETTINGS_SAVE_FAILED            = "Failed to save settings"
)
