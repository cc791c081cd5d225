package app

// User-facing notification texts
const (
	MsgTaskAdded       = "Task added successfully"
	MsgTitleRequired   = "Please enter a task title"
	MsgInvalidPriority = "Please choose high, medium or low priority"
	MsgTaskCompleted   = "Task completed"
	MsgTaskPending     = "Task marked as pending"
	MsgTaskDeleted     = "Task deleted"
	MsgTaskUpdated     = "Task updated"
	MsgInvalidTitle    = "Please enter a valid title"
	MsgExported        = "Tasks exported successfully"
	MsgExportFailed    = "Failed to export tasks"
	MsgImported        = "Tasks imported successfully"
	MsgImportFailed    = "Failed to import file"
	MsgNotSaved        = "Changes could not be saved"
	MsgCopied          = "Title copied to clipboard"
	MsgCopyFailed      = "Clipboard is not available"
)
