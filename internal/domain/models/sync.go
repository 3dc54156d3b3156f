package models

// SyncState enumerates the cloud sync badge states.
type SyncState string

const (
	SyncOffline  SyncState = "offline"
	SyncOnline   SyncState = "online"
	SyncSyncing  SyncState = "syncing"
	SyncRestored SyncState = "restored"
)

// SyncStatus is the /api/sync/status payload.
type SyncStatus struct {
	State    SyncState `json:"status"`
	Message  string    `json:"message"`
	LastSync string    `json:"last_sync,omitempty"`
}
