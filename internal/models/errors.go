package models

import "errors"

// ErrUnknownStatus indicates a status string outside the CREATED/IN_PROGRESS/DONE set
var ErrUnknownStatus = errors.New("unknown task status")
