package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crub-courses/internal/console"
	"crub-courses/internal/domain"
	"crub-courses/internal/export"
	"crub-courses/internal/service"
	"crub-courses/internal/sftpclient"
)

var view = console.NewView()

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Verifica que la planilla responda",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := svc.Health(cmd.Context())
		if err != nil {
			return err
		}
		out := map[string]any{"status": "ok", "sheets": names}
		return render(cmd.OutOrStdout(), out, func() string {
			return "ok: " + strings.Join(names, ", ") + "\n"
		})
	},
}

var courseFilter service.CourseFilter
var listCourseDepartments bool

var coursesCmd = &cobra.Command{
	Use:     "materias",
	Aliases: []string{"courses"},
	Short:   "Lista las materias con su equipo docente",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if listCourseDepartments {
			names, err := svc.CourseDepartments(ctx)
			if err != nil {
				return err
			}
			return renderList(cmd.OutOrStdout(), names, func() string {
				t := console.NewTable(fmt.Sprintf("Departamentos (%d)", len(names)), "Departamento")
				for _, n := range names {
					t.AddRow(n)
				}
				return t.Render(console.NewStyles())
			})
		}

		courses, err := svc.Courses(ctx, courseFilter)
		if err != nil {
			return err
		}
		return renderList(cmd.OutOrStdout(), courses, func() string { return view.Courses(courses) })
	},
}

var courseCmd = &cobra.Command{
	Use:     "materia COD_SIU PERIODO",
	Aliases: []string{"course"},
	Short:   "Muestra una materia con su equipo y datos de Huayca",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := svc.Course(cmd.Context(), args[0], domain.Period(strings.ToUpper(args[1])))
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), c, func() string { return view.Course(c) })
	},
}

var summaryCmd = &cobra.Command{
	Use:     "resumen",
	Aliases: []string{"summary"},
	Short:   "Totales por período, departamento y carrera",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := svc.Summary(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), s, func() string { return view.Summary(s) })
	},
}

var statusCmd = &cobra.Command{
	Use:     "estado",
	Aliases: []string{"status"},
	Short:   "Cantidad de registros por fuente y tasas de coincidencia",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := svc.Status(cmd.Context())
		if err != nil {
			return err
		}
		cs := svc.CacheStatus()
		out := struct {
			domain.SourceStatus
			Cache any `json:"cache"`
		}{st, cs}
		return render(cmd.OutOrStdout(), out, func() string { return view.Status(st, cs) })
	},
}

var designationCmd = &cobra.Command{
	Use:     "designacion DESIG",
	Aliases: []string{"designation"},
	Short:   "Muestra una designación con sus materias",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := svc.Designation(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		p := domain.PersonProfile{
			PersonName:        d.PersonName,
			FileNumber:        d.FileNumber,
			NationalID:        d.NationalID,
			CUIL:              d.CUIL,
			Emails:            d.Emails,
			TotalDesignations: 1,
			TotalCourses:      len(d.Courses),
			Designations:      []domain.Designation{d},
		}
		return render(cmd.OutOrStdout(), d, func() string { return view.Profile(p) })
	},
}

var searchProfiles string

var profilesCmd = &cobra.Command{
	Use:   "docentes [APELLIDO_Y_NOMBRE]",
	Short: "Lista docentes con sus designaciones, o muestra uno",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w := cmd.OutOrStdout()

		if len(args) == 1 {
			p, err := svc.Profile(ctx, args[0])
			if err != nil {
				return err
			}
			return render(w, p, func() string { return view.Profile(p) })
		}

		if searchProfiles != "" {
			found, err := svc.SearchProfiles(ctx, searchProfiles)
			if err != nil {
				return err
			}
			return renderList(w, found, func() string { return view.Profiles(found) })
		}

		set, err := svc.Profiles(ctx)
		if err != nil {
			return err
		}
		if jsonOut && fields != "" {
			return console.WriteJSONList(w, set.Profiles, console.ParseFields(fields))
		}
		return render(w, set, func() string { return view.Profiles(set.Profiles) })
	},
}

var departmentsCmd = &cobra.Command{
	Use:   "departamentos [NOMBRE]",
	Short: "Designaciones agrupadas por departamento",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w := cmd.OutOrStdout()

		if len(args) == 1 {
			d, err := svc.Department(ctx, args[0])
			if err != nil {
				return err
			}
			return render(w, d, func() string { return view.Department(d) })
		}

		stats, err := svc.Departments(ctx)
		if err != nil {
			return err
		}
		return renderList(w, stats, func() string { return view.Departments(stats) })
	},
}

var (
	exportFormat   string
	exportOut      string
	exportUpload   bool
	exportWarnings bool
)

var exportCmd = &cobra.Command{
	Use:     "exportar",
	Aliases: []string{"export"},
	Short:   "Genera el reporte de equipos (csv o xml) y opcionalmente lo sube por SFTP",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		courses, err := svc.Courses(ctx, courseFilter)
		if err != nil {
			return err
		}

		if exportOut == "" {
			exportOut = filepath.Join("out", "crub_equipos."+exportFormat)
		}
		if err := os.MkdirAll(filepath.Dir(exportOut), 0o755); err != nil {
			return fmt.Errorf("mkdir out: %w", err)
		}

		start := time.Now()
		if err := writeReport(exportOut, exportFormat, courses); err != nil {
			return err
		}
		logger.Info("report written",
			zap.String("path", exportOut),
			zap.String("format", exportFormat),
			zap.Int("courses", len(courses)),
			zap.Duration("elapsed", time.Since(start)))

		if exportUpload {
			if err := uploadReport(ctx, exportOut); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d materias -> %s\n", len(courses), exportOut)
		return nil
	},
}

func writeReport(path, format string, courses []domain.Course) error {
	switch format {
	case "csv":
		return export.WriteTeamCSVFile(path, courses)
	case "xml":
		return export.WriteCourseXML(path, courses, export.XMLConfig{
			Generated:       time.Now().UTC().Format(time.RFC3339),
			IncludeWarnings: exportWarnings,
		})
	default:
		return fmt.Errorf("unknown format %q (csv or xml)", format)
	}
}

func uploadReport(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	err := sftpclient.UploadFile(ctx, sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
		KnownHostsFile:        cfg.SFTPKnownHosts,
	}, path, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	logger.Info("report uploaded", zap.String("host", cfg.SFTPHost), zap.String("dir", cfg.SFTPDir))
	return nil
}

func init() {
	for _, c := range []*cobra.Command{coursesCmd, exportCmd} {
		c.Flags().StringVar(&courseFilter.Department, "departamento", "", "filtrar por departamento (Huayca)")
		c.Flags().StringVar(&courseFilter.Area, "area", "", "filtrar por área (Huayca)")
		c.Flags().StringVar(&courseFilter.Career, "carrera", "", "filtrar por carrera")
	}
	coursesCmd.Flags().BoolVar(&listCourseDepartments, "departamentos", false, "listar los departamentos con materias")

	profilesCmd.Flags().StringVar(&searchProfiles, "buscar", "", "buscar docentes por nombre parcial")

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "csv o xml")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "ruta de salida (por defecto out/crub_equipos.<format>)")
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "subir el archivo por SFTP")
	exportCmd.Flags().BoolVar(&exportWarnings, "warnings", false, "incluir advertencias en el xml")
}
