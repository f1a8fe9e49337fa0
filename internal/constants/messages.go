package constants

// Notification titles
const (
	TitleValidationFailed  = "Settings validation failed"
	TitlePreparationFailed = "Preparation failed"
	TitleNotExecuted       = "Purge not executed"
	TitlePurgeError        = "Error during purge"
	TitleIncomplete        = "Purge execution incomplete"
	TitleCompleted         = "Purge completed"
)

// Notification and log messages
const (
	MsgValidationFailed  = "The validation of the settings failed with code %d. Enable/see logs for details."
	MsgPreparationFailed = "The administrative preparation failed with code %d. Enable/see logs for details."
	MsgStageListInvalid  = "The purge folder definition is invalid and returned code %d. Enable/see logs for details."
	MsgGateInvalid       = "The purge execution cannot be performed due to invalid argument(s)"
	MsgTooFrequent       = "The time since the last purge is too short. The purge was skipped"
	MsgSkipToken         = "The purge was skipped by a token (%s), manually added to the primary purge folder"
	MsgGateError         = "The purge execution cannot be performed due to other errors"
	MsgCreateStage       = "Could not create the stage folder '%s' (error code %d)"
	MsgDeleteLast        = "Failed to delete the last folder '%s'"
	MsgRename            = "Failed to rename folder '%s' to '%s'"
	MsgReport            = "Failed to report the contents of '%s'"
	MsgCreateInit        = "Could not create initial purge folder %s (error code %d)"
	MsgTimestamp         = "Could not write the last purge token (error code %d)"
	MsgUnexpected        = "An error occurred during purge execution: %v"
	MsgCompleted         = "Purge was executed successfully"
)
