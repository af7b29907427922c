package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/turtlefin/turtle-finance/internal/auth"
	"github.com/turtlefin/turtle-finance/internal/backup"
	"github.com/turtlefin/turtle-finance/internal/domain"
	"github.com/turtlefin/turtle-finance/internal/i18n"
	"github.com/turtlefin/turtle-finance/internal/logger"
	"github.com/turtlefin/turtle-finance/internal/prefs"
	"github.com/turtlefin/turtle-finance/internal/sheetsync"
	"github.com/turtlefin/turtle-finance/internal/suggest"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "login":
		runLogin(log)
	case "fetch":
		runFetch(log)
	case "add":
		runAdd(log)
	case "delete":
		runDelete(log)
	case "create":
		runCreate(log)
	case "repair":
		runRepair(log)
	case "backup":
		runBackup(log)
	case "export":
		runExport(log)
	case "suggest":
		runSuggest(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Turtle Finance CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  login     Sign in with Google and store the credential")
	fmt.Println("  fetch     Fetch and print the records of one kind")
	fmt.Println("  add       Append a record to the spreadsheet")
	fmt.Println("  delete    Delete a record by ID")
	fmt.Println("  create    Create a new spreadsheet and make it active")
	fmt.Println("  repair    Reconcile tab titles and header rows")
	fmt.Println("  backup    Upload a CSV snapshot of all records to GCS")
	fmt.Println("  export    Export records to a BigQuery table")
	fmt.Println("  suggest   Suggest a category for a description")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

// env is the wiring every command shares.
type env struct {
	store   *prefs.Store
	session *auth.Manager
	sync    *sheetsync.Synchronizer
}

func setup(log zerolog.Logger) *env {
	dataDir := os.Getenv("TURTLE_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("Could not resolve home directory")
		}
		dataDir = filepath.Join(home, ".turtle-finance")
	}

	secretPath := os.Getenv("GOOGLE_CLIENT_SECRET_FILE")
	if secretPath == "" {
		log.Fatal().Msg("GOOGLE_CLIENT_SECRET_FILE is not set")
	}
	secretJSON, err := os.ReadFile(secretPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", secretPath).Msg("Failed to read client secret")
	}

	store, err := prefs.Open(filepath.Join(dataDir, "preferences.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open preference store")
	}

	session, err := auth.NewManager(secretJSON, filepath.Join(dataDir, "token.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize OAuth manager")
	}

	return &env{
		store:   store,
		session: session,
		sync:    sheetsync.New(auth.NewSheetService(session), session, store),
	}
}

func commandContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	return logger.WithContext(ctx, log), cancel
}

func parseKindArg(log zerolog.Logger, s string) domain.Kind {
	switch domain.Kind(s) {
	case domain.KindExpenses, domain.KindIncomes:
		return domain.Kind(s)
	}
	log.Fatal().Str("kind", s).Msg("Kind must be 'expenses' or 'incomes'")
	return ""
}

func runLogin(log zerolog.Logger) {
	e := setup(log)

	fmt.Println("Open this URL in your browser and authorize access:")
	fmt.Println("\n  " + e.session.AuthURL("turtle-cli") + "\n")
	fmt.Print("Paste the authorization code: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		log.Fatal().Msg("No authorization code provided")
	}

	ctx, cancel := commandContext(log)
	defer cancel()

	if err := e.session.Exchange(ctx, scanner.Text()); err != nil {
		log.Fatal().Err(err).Msg("Authorization failed")
	}

	profile, err := e.session.Profile(ctx)
	if err != nil {
		fmt.Println("Signed in.")
		return
	}
	fmt.Printf("Signed in as %s <%s>\n", profile.Name, profile.Email)
}

func runFetch(log zerolog.Logger) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	kindArg := fs.String("kind", string(domain.KindExpenses), "Record kind: expenses or incomes")
	fs.Parse(os.Args[2:])

	e := setup(log)
	kind := parseKindArg(log, *kindArg)

	ctx, cancel := commandContext(log)
	defer cancel()

	records, err := e.sync.FetchAll(ctx, kind)
	if err != nil {
		log.Fatal().Err(err).Msg("Fetch failed")
	}

	currency := e.store.Currency()
	region := e.store.Region()
	for _, r := range records {
		fmt.Printf("%-38s %-12s %-30s %12s  %s\n",
			r.ID, r.Date, r.Description, i18n.FormatCurrency(r.Amount, currency, region), r.Category)
	}
	fmt.Printf("\n%d records\n", len(records))
}

func runAdd(log zerolog.Logger) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	kindArg := fs.String("kind", string(domain.KindExpenses), "Record kind: expenses or incomes")
	date := fs.String("date", time.Now().Format("2006-01-02"), "Record date (YYYY-MM-DD)")
	description := fs.String("description", "", "Record description")
	amount := fs.Float64("amount", 0, "Record amount")
	category := fs.String("category", "", "Record category")
	method := fs.String("method", "", "Payment method (defaults to Cash)")
	cardID := fs.String("card", "", "Credit card ID")
	accountID := fs.String("account", "", "Bank account ID")
	fs.Parse(os.Args[2:])

	if *description == "" {
		log.Fatal().Msg("Error: --description is required")
	}

	e := setup(log)
	kind := parseKindArg(log, *kindArg)

	recordType := domain.TypeExpense
	if kind == domain.KindIncomes {
		recordType = domain.TypeIncome
	}

	ctx, cancel := commandContext(log)
	defer cancel()

	record, err := e.sync.Append(ctx, kind, domain.Record{
		Date:          *date,
		Description:   *description,
		Amount:        *amount,
		Type:          recordType,
		Category:      *category,
		Method:        domain.PaymentMethod(*method),
		CreditCardID:  *cardID,
		BankAccountID: *accountID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Append failed")
	}

	fmt.Printf("Added record %s\n", record.ID)
}

func runDelete(log zerolog.Logger) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	kindArg := fs.String("kind", string(domain.KindExpenses), "Record kind: expenses or incomes")
	recordID := fs.String("id", "", "Record ID to delete")
	fs.Parse(os.Args[2:])

	if *recordID == "" {
		log.Fatal().Msg("Error: --id is required")
	}

	e := setup(log)
	kind := parseKindArg(log, *kindArg)

	ctx, cancel := commandContext(log)
	defer cancel()

	if err := e.sync.DeleteByID(ctx, kind, *recordID); err != nil {
		log.Fatal().Err(err).Msg("Delete failed")
	}

	fmt.Printf("Deleted record %s\n", *recordID)
}

func runCreate(log zerolog.Logger) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	shareOneTab := fs.Bool("share-one-tab", false, "Keep expenses and incomes on a single tab")
	fs.Parse(os.Args[2:])

	e := setup(log)

	ctx, cancel := commandContext(log)
	defer cancel()

	spreadsheetID, err := e.sync.CreateSpreadsheet(ctx, *shareOneTab)
	if err != nil {
		log.Fatal().Err(err).Msg("Create failed")
	}

	fmt.Printf("Created spreadsheet %s\n", spreadsheetID)
	fmt.Printf("https://docs.google.com/spreadsheets/d/%s\n", spreadsheetID)
}

func runRepair(log zerolog.Logger) {
	e := setup(log)

	ctx, cancel := commandContext(log)
	defer cancel()

	if err := e.sync.RepairStructure(ctx); err != nil {
		log.Fatal().Err(err).Msg("Repair failed")
	}

	fmt.Println("Spreadsheet structure reconciled.")
}

func runBackup(log zerolog.Logger) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	bucket := fs.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for snapshots (or set GCS_BUCKET env)")
	fs.Parse(os.Args[2:])

	if *bucket == "" {
		log.Fatal().Msg("Error: --bucket is required")
	}

	e := setup(log)

	ctx, cancel := commandContext(log)
	defer cancel()

	expenses, err := e.sync.FetchAll(ctx, domain.KindExpenses)
	if err != nil {
		log.Fatal().Err(err).Msg("Fetching expenses failed")
	}
	incomes, err := e.sync.FetchAll(ctx, domain.KindIncomes)
	if err != nil && !sheetsync.IsSkipped(err) {
		log.Fatal().Err(err).Msg("Fetching incomes failed")
	}

	objectName, err := backup.UploadSnapshot(ctx, *bucket, expenses, incomes)
	if err != nil {
		log.Fatal().Err(err).Msg("Backup failed")
	}

	fmt.Printf("Snapshot uploaded to gs://%s/%s\n", *bucket, objectName)
}

func runExport(log zerolog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	project := fs.String("project", os.Getenv("GCP_PROJECT"), "GCP project ID (or set GCP_PROJECT env)")
	dataset := fs.String("dataset", "turtle_finance", "BigQuery dataset ID")
	table := fs.String("table", "records", "BigQuery table ID")
	kindArg := fs.String("kind", string(domain.KindExpenses), "Record kind: expenses or incomes")
	fs.Parse(os.Args[2:])

	if *project == "" {
		log.Fatal().Msg("Error: --project is required")
	}

	e := setup(log)
	kind := parseKindArg(log, *kindArg)

	ctx, cancel := commandContext(log)
	defer cancel()

	records, err := e.sync.FetchAll(ctx, kind)
	if err != nil {
		log.Fatal().Err(err).Msg("Fetch failed")
	}

	if err := backup.ExportToBigQuery(ctx, *project, *dataset, *table, kind, records); err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	fmt.Printf("Exported %d %s records to %s.%s.%s\n", len(records), kind, *project, *dataset, *table)
}

func runSuggest(log zerolog.Logger) {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	kindArg := fs.String("kind", string(domain.KindExpenses), "Record kind: expenses or incomes")
	description := fs.String("description", "", "Record description to classify")
	fs.Parse(os.Args[2:])

	if *description == "" {
		log.Fatal().Msg("Error: --description is required")
	}

	e := setup(log)
	kind := parseKindArg(log, *kindArg)

	categories := e.store.ExpenseCategories()
	if kind == domain.KindIncomes {
		categories = e.store.IncomeCategories()
	}

	ctx, cancel := commandContext(log)
	defer cancel()

	category, err := suggest.Category(ctx, *description, categories)
	if err != nil {
		log.Fatal().Err(err).Msg("Suggestion failed")
	}

	fmt.Println(category)
}
