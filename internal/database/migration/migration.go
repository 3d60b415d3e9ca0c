package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_documentos",
		SQL: `CREATE TABLE IF NOT EXISTS public.documentos (
  id                            SERIAL        PRIMARY KEY,
  arquivo                       TEXT          NOT NULL,
  data_disponibilizacao         DATE,
  processo                      TEXT,
  autores                       TEXT,
  advogados                     TEXT,
  valor_principal_bruto_liquido NUMERIC(15,2),
  valor_juros_moratorios        NUMERIC(15,2),
  valor_honorarios_advocaticios NUMERIC(15,2),
  paragrafo                     TEXT          NOT NULL,
  reu                           TEXT          NOT NULL,
  status                        TEXT          NOT NULL DEFAULT 'nova',
  created_at                    TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at                    TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documentos_processo",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documentos_processo ON public.documentos (processo);`,
	},
	{
		Name: "create_index_documentos_data_disponibilizacao",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documentos_data_disponibilizacao ON public.documentos (data_disponibilizacao);`,
	},
	{
		Name: "create_index_documentos_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documentos_status ON public.documentos (status);`,
	},
}

// EnsureMigrated creates the documentos schema unless the table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *zap.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check")

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass('public.documentos') IS NOT NULL").Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed",
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("reason", "schema already exists"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug("db_migration_step",
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success", zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
