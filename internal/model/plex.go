package model

// Pin is a plex.tv login PIN. AuthToken stays empty until the user approves it.
type Pin struct {
	ID        int
	Code      string
	AuthToken string
}

type ServerInfo struct {
	MachineIdentifier string `json:"machineIdentifier"`
	Name              string `json:"name"`
}
