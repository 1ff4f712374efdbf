package core

import "errors"

// Sentinel errors returned by the mission services. Callers match them with
// errors.Is; the returned errors wrap them with the offending value.
var (
	ErrInvalidMission  = errors.New("invalid mission")
	ErrIndexOutOfRange = errors.New("task index out of range")
	ErrCriteriaUnmet   = errors.New("completion criteria not met")
	ErrMissionFinished = errors.New("mission already finished")
	ErrMissionNotFound = errors.New("mission not found")
	ErrNoActiveMission = errors.New("no active mission")
)
