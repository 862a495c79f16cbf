package commands

import (
	"fmt"
	"log"

	"geoattend/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{

	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('user', 'admin');`,
	},
	{
		Index:       2,
		Description: "CREATE TYPE \"attendance_status\" AS ENUM",
		Query: `
        CREATE TYPE "attendance_status" AS ENUM ('present', 'absent', 'half-day');`,
	},
	{
		Index:       3,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            email varchar(255) not null unique,
            password text not null,
            full_name varchar(255) not null,
            role user_role not null default 'user',
            organization varchar(255) not null,
            is_active boolean not null default true,
            created_at timestamp default now(),
            updated_at timestamp
        );`,
	},
	{
		Index:       4,
		Description: "Create table: offices.",
		Query: `
        CREATE TABLE IF NOT EXISTS offices (
            id serial primary key,
            name varchar(255) not null,
            address text,
            latitude float not null,
            longitude float not null,
            radius float not null,
            organization varchar(255) not null,
            is_active boolean not null default true,
            created_at timestamp default now(),
            updated_at timestamp
        );`,
	},
	{
		Index:       5,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            user_id int not null references users(id),
            check_in_time timestamp not null,
            check_in_latitude float not null,
            check_in_longitude float not null,
            check_in_within_office boolean not null default true,
            check_in_distance int not null default 0,
            check_out_time timestamp,
            check_out_latitude float,
            check_out_longitude float,
            check_out_within_office boolean,
            check_out_distance int,
            total_minutes int,
            status attendance_status not null default 'present',
            work_day date not null,
            created_at timestamp default now(),
            updated_at timestamp,
            UNIQUE (user_id, work_day)
        );`,
	},
	{
		Index:       6,
		Description: "Create index: attendance by user and day.",
		Query: `
        CREATE INDEX IF NOT EXISTS idx_attendance_user_work_day ON attendance (user_id, work_day DESC);`,
	},
}

// MigrateUP applies any scheme entries newer than the version recorded in
// schema_migrations, retrying a dirty entry first.
func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
