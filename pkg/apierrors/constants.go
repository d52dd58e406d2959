package apierrors

const (
	MsgFailListTasks      = "errorListTasks"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailTaskStats      = "failTaskStats"
	MsgFailTaskCalendar   = "failTaskCalendar"
	MsgInvalidCalendar    = "invalidCalendar"
	MsgFailListSubtasks   = "failListSubtasks"
	MsgFailCreateSubtask  = "failCreateSubtask"
	MsgMissingToken       = "missingToken"
	MsgInvalidToken       = "invalidToken"
)
