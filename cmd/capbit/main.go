package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tzvibm/capbit/pkg/config"
	"github.com/tzvibm/capbit/pkg/engine"
	"github.com/tzvibm/capbit/pkg/log"
	"github.com/tzvibm/capbit/pkg/metrics"
	"github.com/tzvibm/capbit/pkg/types"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"

	cfg config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "capbit",
	Short: "capbit - an embedded authorization engine",
	Long: `capbit stores grants, roles, and inheritance in a memory-mapped
B+tree and checks its own mutation API against a reserved _system object,
so there is no separate admin bootstrap path to secure.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("capbit version %s\nCommit: %s\n", Version, Commit))

	rootCmd.PersistentFlags().String("db", "", "Path to the capbit database file")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")

	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(grantCmd)
	rootCmd.AddCommand(revokeCmd)
	rootCmd.AddCommand(setRoleCmd)
	rootCmd.AddCommand(deleteRoleCmd)
	rootCmd.AddCommand(setInheritCmd)
	rootCmd.AddCommand(removeInheritCmd)
	rootCmd.AddCommand(createEntityCmd)
	rootCmd.AddCommand(deleteEntityCmd)
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(getMaskCmd)
	rootCmd.AddCommand(getRoleCmd)
	rootCmd.AddCommand(listForSubjectCmd)
	rootCmd.AddCommand(listForObjectCmd)
	rootCmd.AddCommand(serveMetricsCmd)
	rootCmd.AddCommand(statsCmd)
}

func initConfig() {
	path, _ := rootCmd.PersistentFlags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}

	loaded, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	if v, _ := rootCmd.PersistentFlags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("log-json"); v {
		cfg.LogJSON = true
	}
}

func initLogging() {
	log.Init(cfg, nil)
}

// openEngine opens the configured database, creating it (but not
// bootstrapping it) if it doesn't already exist.
func openEngine() (*engine.Engine, error) {
	return engine.Open(cfg.DBPath)
}

func parseEntityID(s string) (types.EntityID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entity id %q: %w", s, err)
	}
	return types.EntityID(v), nil
}

func parseMask(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid mask/role %q: %w", s, err)
	}
	return v, nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database file and its keyspaces, without bootstrapping",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()
		fmt.Printf("initialized %s\n", cfg.DBPath)
		return nil
	},
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Seed _system, _root, and the default role masks (one-time)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		systemID, rootID, err := e.Bootstrap()
		if err != nil {
			return err
		}
		fmt.Printf("bootstrapped: system=%d root=%d\n", systemID, rootID)
		return nil
	},
}

var grantCmd = &cobra.Command{
	Use:   "grant <actor> <subject> <object> <role>",
	Short: "Record that subject holds role on object",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, subject, object, err := parseActorSubjectObject(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		role, err := parseMask(args[3])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.Grant(actor, subject, object, role); err != nil {
			return err
		}
		fmt.Println("granted")
		return nil
	},
}

var revokeCmd = &cobra.Command{
	Use:   "revoke <actor> <subject> <object>",
	Short: "Remove the grant for (subject, object), if any",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, subject, object, err := parseActorSubjectObject(args[0], args[1], args[2])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.Revoke(actor, subject, object); err != nil {
			return err
		}
		fmt.Println("revoked")
		return nil
	},
}

var setRoleCmd = &cobra.Command{
	Use:   "set-role <actor> <object> <role> <mask>",
	Short: "Define what role means on object",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, object, err := parseActorObject(args[0], args[1])
		if err != nil {
			return err
		}
		role, err := parseMask(args[2])
		if err != nil {
			return err
		}
		mask, err := parseMask(args[3])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.SetRole(actor, object, role, mask); err != nil {
			return err
		}
		fmt.Println("role set")
		return nil
	},
}

var deleteRoleCmd = &cobra.Command{
	Use:   "delete-role <actor> <object> <role>",
	Short: "Remove the role mask definition for (object, role), if any",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, object, err := parseActorObject(args[0], args[1])
		if err != nil {
			return err
		}
		role, err := parseMask(args[2])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.DeleteRole(actor, object, role); err != nil {
			return err
		}
		fmt.Println("role deleted")
		return nil
	},
}

var setInheritCmd = &cobra.Command{
	Use:   "set-inherit <actor> <object> <child> <parent>",
	Short: "Record that, on object, child inherits from parent",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := parseEntityID(args[0])
		if err != nil {
			return err
		}
		object, err := parseEntityID(args[1])
		if err != nil {
			return err
		}
		child, err := parseEntityID(args[2])
		if err != nil {
			return err
		}
		parent, err := parseEntityID(args[3])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.SetInherit(actor, object, child, parent); err != nil {
			return err
		}
		fmt.Println("inherit set")
		return nil
	},
}

var removeInheritCmd = &cobra.Command{
	Use:   "remove-inherit <actor> <object> <child>",
	Short: "Remove the inheritance edge for (object, child), if any",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, object, err := parseActorObject(args[0], args[1])
		if err != nil {
			return err
		}
		child, err := parseEntityID(args[2])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.RemoveInherit(actor, object, child); err != nil {
			return err
		}
		fmt.Println("inherit removed")
		return nil
	},
}

var createEntityCmd = &cobra.Command{
	Use:   "create-entity <actor> [label]",
	Short: "Allocate a fresh entity id, optionally aliasing it to a label",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := parseEntityID(args[0])
		if err != nil {
			return err
		}
		label := ""
		if len(args) == 2 {
			label = args[1]
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		id, err := e.CreateEntity(actor, label)
		if err != nil {
			return err
		}
		fmt.Printf("created entity %d\n", id)
		return nil
	},
}

var deleteEntityCmd = &cobra.Command{
	Use:   "delete-entity <actor> <id>",
	Short: "Remove id's label mapping (does not cascade to grants/roles/inherit)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, id, err := parseActorObject(args[0], args[1])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.DeleteEntity(actor, id); err != nil {
			return err
		}
		fmt.Println("entity deleted")
		return nil
	},
}

var labelCmd = &cobra.Command{
	Use:   "label <actor> <id> <label>",
	Short: "Alias an already-allocated entity id to a label",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, id, err := parseActorObject(args[0], args[1])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.SetLabel(actor, id, args[2]); err != nil {
			return err
		}
		fmt.Println("labeled")
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <subject> <object> <required>",
	Short: "Report whether subject holds every bit of required on object",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, object, err := parseActorObject(args[0], args[1])
		if err != nil {
			return err
		}
		required, err := parseMask(args[2])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		held, err := e.Check(subject, object, types.Mask(required))
		if err != nil {
			return err
		}
		fmt.Println(held)
		return nil
	},
}

var getMaskCmd = &cobra.Command{
	Use:   "get-mask <subject> <object>",
	Short: "Print the effective permission mask subject holds on object",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, object, err := parseActorObject(args[0], args[1])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		mask, err := e.GetMask(subject, object)
		if err != nil {
			return err
		}
		fmt.Printf("0x%x\n", uint64(mask))
		return nil
	},
}

var getRoleCmd = &cobra.Command{
	Use:   "get-role <object> <role>",
	Short: "Print the mask role means on object, if defined",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		object, err := parseEntityID(args[0])
		if err != nil {
			return err
		}
		role, err := parseMask(args[1])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		mask, ok, err := e.GetRole(object, role)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("undefined (treated as a literal mask by the resolver)")
			return nil
		}
		fmt.Printf("0x%x\n", mask)
		return nil
	},
}

var listForSubjectCmd = &cobra.Command{
	Use:   "list-for-subject <subject>",
	Short: "List every (object, role) grant held by subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := parseEntityID(args[0])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		grants, err := e.ListForSubject(subject)
		if err != nil {
			return err
		}
		for _, g := range grants {
			fmt.Printf("object=%d role=0x%x\n", g.Object, g.Role)
		}
		return nil
	},
}

var listForObjectCmd = &cobra.Command{
	Use:   "list-for-object <object>",
	Short: "List every (subject, role) grant on object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		object, err := parseEntityID(args[0])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		grants, err := e.ListForObject(object)
		if err != nil {
			return err
		}
		for _, g := range grants {
			fmt.Printf("subject=%d role=0x%x\n", g.Subject, g.Role)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Sample capbit_entities_total and print the allocated entity count",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		count, err := e.EntityCount()
		if err != nil {
			return err
		}
		metrics.EntitiesTotal.Set(float64(count))
		fmt.Printf("entities: %d\n", count)
		return nil
	},
}

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics <addr>",
	Short: "Serve Prometheus metrics over HTTP until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		log.WithComponent("cli").Info().Str("addr", args[0]).Msg("serving metrics")
		return http.ListenAndServe(args[0], mux)
	},
}

func parseActorObject(a, b string) (types.EntityID, types.EntityID, error) {
	x, err := parseEntityID(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseEntityID(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseActorSubjectObject(a, b, c string) (types.EntityID, types.EntityID, types.EntityID, error) {
	x, err := parseEntityID(a)
	if err != nil {
		return 0, 0, 0, err
	}
	y, err := parseEntityID(b)
	if err != nil {
		return 0, 0, 0, err
	}
	z, err := parseEntityID(c)
	if err != nil {
		return 0, 0, 0, err
	}
	return x, y, z, nil
}
