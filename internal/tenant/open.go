package tenant

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/config"
)

// gormOpener returns the production OpenFunc: open a GORM/Postgres connection
// for the tenant's database, tune the pool, verify the connection with a
// bounded ping and, when enabled, synchronize the schema.
func gormOpener(dbCfg *config.DBConfig) OpenFunc {
	return func(ctx context.Context, entry *config.TenantEntry) (*gorm.DB, error) {
		pgConfig := postgres.Config{
			DSN:                  dbCfg.DSN(entry),
			PreferSimpleProtocol: true, // Disables implicit prepared statement usage
		}

		db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
			Logger: gormlogger.Default.LogMode(dbCfg.LogLevel),
		})
		if err != nil {
			return nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}

		sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)

		// GORM opens lazily; ping so a bad host or password fails here, inside
		// the connect timeout, instead of on the first query.
		pingCtx, cancel := context.WithTimeout(ctx, dbCfg.ConnectTimeout)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}

		if dbCfg.AutoMigrate {
			if err := db.AutoMigrate(model.AllModels()...); err != nil {
				_ = sqlDB.Close()
				return nil, err
			}
		}

		return db, nil
	}
}
