package commands

import (
	"log"

	"geoattend/backend/internal/pkg/repository/postgresql"
)

// ClearAttendance deletes every attendance record. Meant for resetting
// a development database, not for production use.
func ClearAttendance(db *postgresql.Database) {
	res, err := db.Exec(`DELETE FROM attendance`)
	if err != nil {
		log.Fatalln("clear attendance error", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		log.Fatalln("clear attendance rows affected error", err)
	}
	log.Printf("cleared %d attendance records", count)
}
