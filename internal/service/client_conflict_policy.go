package service

import "github.com/MKhiriev/go-fit-sync/models"

// LastWriterWins keeps a pending local change when its logical timestamp is
// newer than or equal to the remote row's.
type LastWriterWins struct{}

func (LastWriterWins) LocalWins(local models.ChangeRecord, remote models.Row) bool {
	return !local.LocalTimestamp.Before(remote.UpdatedAt)
}
