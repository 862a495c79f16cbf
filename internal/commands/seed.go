package commands

import (
	"log"

	"geoattend/backend/internal/pkg/repository/postgresql"

	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Email        string
	Password     string
	FullName     string
	Role         string
	Organization string
}

var seedUsers = []seedUser{
	{
		Email:        "admin@company.com",
		Password:     "admin123",
		FullName:     "Admin User",
		Role:         "admin",
		Organization: "Tech Company Inc.",
	},
	{
		Email:        "john@company.com",
		Password:     "user123",
		FullName:     "John Doe",
		Role:         "user",
		Organization: "Tech Company Inc.",
	},
}

// Seed inserts the default users and office when they do not exist yet.
func Seed(db *postgresql.Database) {
	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalln("seed hash error", err)
		}
		// ? placeholders: bun substitutes them client-side, $N would be
		// passed through unbound.
		if _, err = db.Exec(`
			INSERT INTO users (email, password, full_name, role, organization)
			SELECT ?, ?, ?, ?::user_role, ?
			WHERE NOT EXISTS (SELECT id FROM users WHERE email = ?);
		`, u.Email, string(hash), u.FullName, u.Role, u.Organization, u.Email); err != nil {
			log.Fatalln("seed user error", err)
		}
	}

	if _, err := db.Exec(`
		INSERT INTO offices (name, address, latitude, longitude, radius, organization)
		SELECT 'Main Office', '123 Business District, Nagpur, Maharashtra',
		       21.12880603727172, 79.05808101933607, 200, 'Tech Company Inc.'
		WHERE NOT EXISTS (SELECT id FROM offices WHERE organization = 'Tech Company Inc.');
	`); err != nil {
		log.Fatalln("seed office error", err)
	}

	log.Println("seed complete")
}
