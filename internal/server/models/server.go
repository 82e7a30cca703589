package models

// ServerInfo is the singleton server directory record. Motd is readable by
// anyone and writable by admins only.
type ServerInfo struct {
	Name string
	Motd string
}
