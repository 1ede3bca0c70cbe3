package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kfiggins/pest-control-empire/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "backup":
		err = cmdBackup(os.Args[2:])
	case "restore":
		err = cmdRestore(os.Args[2:])
	case "drill":
		err = cmdDrill(os.Args[2:])
	case "export":
		err = cmdExport(os.Args[2:])
	case "import":
		err = cmdImport(os.Args[2:])
	case "inspect":
		err = cmdInspect(os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "pestempire-"+ts+".tar.gz")
	}
	if err := ops.Backup(*dataDir, *out); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	return ops.Restore(*archive, *target)
}

// drill proves a backup is restorable: archive the live data dir, unpack it
// somewhere fresh, and load the save out of the copy.
func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	backend := fs.String("backend", "file", "save backend (file or sqlite)")
	workDir := fs.String("work-dir", os.TempDir(), "workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "pestempire-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "pestempire-drill-restore-"+ts)

	if err := ops.Backup(*dataDir, archive); err != nil {
		return err
	}
	if err := ops.Restore(archive, restoreDir); err != nil {
		return err
	}
	sum, err := ops.Inspect(restoreDir, *backend)
	if err != nil {
		return fmt.Errorf("restored save did not load: %w", err)
	}

	fmt.Println("backup:", archive)
	fmt.Println("restored:", restoreDir)
	fmt.Printf("save: week %d, $%d, %d clients, %d employees\n",
		sum.Week, sum.Money, sum.Clients, sum.Employees)
	return nil
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	backend := fs.String("backend", "file", "save backend (file or sqlite)")
	out := fs.String("out", "pestempire-save.json", "output save file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := ops.OpenStore(*dataDir, *backend)
	if err != nil {
		return err
	}
	defer ops.CloseStore(store)

	blob, err := store.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, blob, 0o644); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

func cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	backend := fs.String("backend", "file", "save backend (file or sqlite)")
	in := fs.String("in", "", "save file to import")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("in is required")
	}

	blob, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	store, err := ops.OpenStore(*dataDir, *backend)
	if err != nil {
		return err
	}
	defer ops.CloseStore(store)
	return store.Import(blob)
}

func cmdInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	backend := fs.String("backend", "file", "save backend (file or sqlite)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sum, err := ops.Inspect(*dataDir, *backend)
	if err != nil {
		return err
	}
	fmt.Printf("week %d, $%d, %d clients, %d employees\n",
		sum.Week, sum.Money, sum.Clients, sum.Employees)
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  pestempire-ops backup  --data-dir data --out backups/backup.tar.gz")
	fmt.Println("  pestempire-ops restore --archive backups/backup.tar.gz --target-dir data-restored")
	fmt.Println("  pestempire-ops drill   --data-dir data --backend file --work-dir /tmp")
	fmt.Println("  pestempire-ops export  --data-dir data --backend file --out save.json")
	fmt.Println("  pestempire-ops import  --data-dir data --backend file --in save.json")
	fmt.Println("  pestempire-ops inspect --data-dir data --backend file")
}
