package tui

import "github.com/MKhiriev/go-fit-sync/models"

type syncDoneMsg struct {
	result models.SyncResult
}

type statusLoadedMsg struct {
	status  models.SyncStatus
	pending int
	err     error
}
