package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crub-courses/internal/cache"
	"crub-courses/internal/config"
	"crub-courses/internal/console"
	"crub-courses/internal/domain"
	"crub-courses/internal/service"
)

// backend is the part of *service.Service the commands use.
type backend interface {
	Health(ctx context.Context) ([]string, error)
	Courses(ctx context.Context, f service.CourseFilter) ([]domain.Course, error)
	Course(ctx context.Context, code string, period domain.Period) (domain.Course, error)
	CourseDepartments(ctx context.Context) ([]string, error)
	Summary(ctx context.Context) (domain.Summary, error)
	Status(ctx context.Context) (domain.SourceStatus, error)
	CacheStatus() cache.Status
	Designation(ctx context.Context, desig string) (domain.Designation, error)
	Profiles(ctx context.Context) (domain.ProfileSet, error)
	Profile(ctx context.Context, name string) (domain.PersonProfile, error)
	SearchProfiles(ctx context.Context, partial string) ([]domain.PersonProfile, error)
	Departments(ctx context.Context) ([]domain.DepartmentStats, error)
	Department(ctx context.Context, name string) (service.Department, error)
}

var (
	jsonOut bool
	fields  string

	cfg    config.Config
	logger *zap.Logger
	svc    backend

	// newBackend is replaced in tests.
	newBackend = func(cfg config.Config, log *zap.Logger) (backend, error) {
		return service.FromConfig(cfg, log)
	}
)

var rootCmd = &cobra.Command{
	Use:   "crubctl",
	Short: "Consulta materias, equipos docentes y designaciones del CRUB",
	Long: `crubctl lee la planilla de asignaciones y designaciones y el catálogo de
materias de Huayca, y muestra las materias con su equipo docente, los perfiles
por docente y los agrupamientos por departamento.

Las credenciales se toman del entorno (o de un archivo .env).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = config.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		svc, err = newBackend(cfg, logger)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print JSON instead of tables")
	rootCmd.PersistentFlags().StringVar(&fields, "fields", "", "with --json, keep only these comma-separated keys")

	rootCmd.AddCommand(
		healthCmd,
		coursesCmd,
		courseCmd,
		summaryCmd,
		statusCmd,
		designationCmd,
		profilesCmd,
		departmentsCmd,
		exportCmd,
	)
}

// render writes v as JSON when --json is set, otherwise the text from view.
func render(w io.Writer, v any, view func() string) error {
	if jsonOut {
		return console.WriteJSON(w, v, console.ParseFields(fields))
	}
	_, err := io.WriteString(w, view())
	return err
}

func renderList[T any](w io.Writer, items []T, view func() string) error {
	if jsonOut {
		return console.WriteJSONList(w, items, console.ParseFields(fields))
	}
	_, err := io.WriteString(w, view())
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
