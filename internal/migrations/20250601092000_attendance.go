package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20250601092000",
		up:      mig_20250601092000_attendance_up,
		down:    mig_20250601092000_attendance_down,
	})
}

func mig_20250601092000_attendance_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS attendance (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            login_time TIMESTAMP WITH TIME ZONE NOT NULL,
            logout_time TIMESTAMP WITH TIME ZONE,
            available_time BIGINT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	// At most one open record per user. The partial unique index makes the
	// open-session check atomic instead of a read-then-insert round trip.
	_, err = tx.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_one_open
        ON attendance(user_id)
        WHERE logout_time IS NULL;
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_attendance_user_login ON attendance(user_id, login_time DESC);
    `)

	return err
}

func mig_20250601092000_attendance_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS attendance;`)
	return err
}
