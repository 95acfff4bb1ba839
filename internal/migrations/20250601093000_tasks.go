package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20250601093000",
		up:      mig_20250601093000_tasks_up,
		down:    mig_20250601093000_tasks_down,
	})
}

func mig_20250601093000_tasks_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS tasks (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            title VARCHAR(255) NOT NULL,
            description TEXT,
            priority VARCHAR(20) NOT NULL CHECK (priority IN ('low', 'medium', 'high', 'critical')),
            deadline TIMESTAMP WITH TIME ZONE,
            remark TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE TABLE IF NOT EXISTS task_assignments (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            task_id UUID NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
            project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            status VARCHAR(20) NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'Ongoing', 'Complete')),
            sequence INTEGER,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            UNIQUE(task_id, project_id, user_id)
        );
    `)
	if err != nil {
		return err
	}

	// Sequence positions are unique within a task's rows for a project
	_, err = tx.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_task_assignments_sequence
        ON task_assignments(task_id, project_id, sequence)
        WHERE sequence IS NOT NULL;
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_task_assignments_user ON task_assignments(user_id);
    `)

	return err
}

func mig_20250601093000_tasks_down(tx *sqlx.Tx) error {
	if _, err := tx.Exec(`DROP TABLE IF EXISTS task_assignments;`); err != nil {
		return err
	}
	_, err := tx.Exec(`DROP TABLE IF EXISTS tasks;`)
	return err
}
