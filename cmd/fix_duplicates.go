package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/time-tracking/internal/department"
	departmentPostgres "github.com/frahmantamala/time-tracking/internal/department/postgres"
	"github.com/frahmantamala/time-tracking/pkg/logger"
	"github.com/spf13/cobra"
)

// fixDuplicatesCmd collapses departments that share a name. The schema never
// enforced uniqueness, so early deployments could accumulate duplicates.
var fixDuplicatesCmd = &cobra.Command{
	Use:   "fix-duplicates",
	Short: "Remove duplicate department rows, keeping the oldest of each name",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		repo := departmentPostgres.NewDepartmentRepository(gormDB)
		service := department.NewService(repo, logger.L())

		removed, err := service.DeduplicateByName()
		if err != nil {
			log.Fatalf("failed to deduplicate departments: %v", err)
		}

		fmt.Printf("Removed %d duplicate departments\n", removed)
	},
}
