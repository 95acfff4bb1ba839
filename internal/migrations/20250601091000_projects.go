package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20250601091000",
		up:      mig_20250601091000_projects_up,
		down:    mig_20250601091000_projects_down,
	})
}

func mig_20250601091000_projects_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS projects (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name VARCHAR(255) NOT NULL,
            client VARCHAR(255),
            url TEXT,
            db_url TEXT,
            factory VARCHAR(255),
            unit VARCHAR(255),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            UNIQUE(name)
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE TABLE IF NOT EXISTS project_assignments (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            UNIQUE(project_id, user_id)
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_project_assignments_user ON project_assignments(user_id);
    `)

	return err
}

func mig_20250601091000_projects_down(tx *sqlx.Tx) error {
	if _, err := tx.Exec(`DROP TABLE IF EXISTS project_assignments;`); err != nil {
		return err
	}
	_, err := tx.Exec(`DROP TABLE IF EXISTS projects;`)
	return err
}
