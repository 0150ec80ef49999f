// models/database.go
package models

// Database is the single on-disk document owned by the record store:
// both collections live in one JSON file and are rewritten as a whole
// on every mutation.
type Database struct {
	Announcements []Announcement `json:"announcements"`
	Users         []User         `json:"users"`
}

// EmptyDatabase returns a fresh document with non-nil collections so the
// file always round-trips as {"announcements": [], "users": []}.
func EmptyDatabase() Database {
	return Database{
		Announcements: []Announcement{},
		Users:         []User{},
	}
}
