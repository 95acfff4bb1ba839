package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	m.addMigration(&migration{
		version: "20250601090000",
		up:      mig_20250601090000_users_up,
		down:    mig_20250601090000_users_down,
	})
}

func mig_20250601090000_users_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name VARCHAR(255) NOT NULL,
            email VARCHAR(255) NOT NULL UNIQUE,
            phone VARCHAR(50),
            password_hash TEXT NOT NULL,
            pin_hash TEXT,
            role VARCHAR(50) NOT NULL CHECK (role IN ('admin', 'software-engineer', 'viewer', 'roming-quality-inspector')),
            last_login TIMESTAMP WITH TIME ZONE,
            recent_login TIMESTAMP WITH TIME ZONE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
    `)
	if err != nil {
		return err
	}

	// Seed with default admin
	password := "admin"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	_, err = tx.Exec(`
        INSERT INTO users (name, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO NOTHING;
    `, "Admin", "admin@admin.com", string(hashedPassword), "admin")

	return err
}

func mig_20250601090000_users_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS users;`)
	return err
}
