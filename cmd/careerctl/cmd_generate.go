package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/infrastructure/router"
	"pilot-career-service/internal/interface/repository"
	"pilot-career-service/internal/usecase"
	"pilot-career-service/templates"
)

var (
	genCatalog     string
	genStart       string
	genEnd         string
	genHomeBase    string
	genReturnTo    string
	genDays        int
	genShort       float64
	genMedium      float64
	genLong        float64
	genPrefer      string
	genAirline     string
	genAirlineOnly bool
	genPolicy      string
	genSeed        int64
	genStartAt     string
	genMaxLayover  int
	genTurnaround  int
	genJSON        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a schedule from a YAML route catalog",
	Long: `Generate a schedule offline from a YAML route catalog and print the itinerary.

Examples:
  # Three days out of LAX, back to LAX, short haul preferred
  careerctl generate --catalog routes.yaml --start LAX --days 3 --prefer short

  # Weighted mix ending in JFK, reproducible
  careerctl generate --catalog routes.yaml --start LAX --end JFK --days 5 \
    --short 50 --medium 30 --long 20 --policy weighted --seed 42
`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genCatalog, "catalog", "", "Path to the YAML route catalog")
	f.StringVar(&genStart, "start", "", "Start airport (IATA)")
	f.StringVar(&genEnd, "end", "", "End airport (IATA)")
	f.StringVar(&genHomeBase, "home-base", "", "Home base airport (IATA), defaults to start")
	f.StringVar(&genReturnTo, "return-to", "", "Where to finish without --end: start or home_base")
	f.IntVar(&genDays, "days", 1, "Schedule length in days")
	f.Float64Var(&genShort, "short", 0, "Short haul weight")
	f.Float64Var(&genMedium, "medium", 0, "Medium haul weight")
	f.Float64Var(&genLong, "long", 0, "Long haul weight")
	f.StringVar(&genPrefer, "prefer", "", "Single haul preference: short, medium, long or any")
	f.StringVar(&genAirline, "airline", "", "Preferred airline (IATA)")
	f.BoolVar(&genAirlineOnly, "airline-only", false, "Only fly the preferred airline")
	f.StringVar(&genPolicy, "policy", usecase.PolicyScoreRanked, "Selection policy: ranked or weighted")
	f.Int64Var(&genSeed, "seed", 0, "Random seed for the weighted policy")
	f.StringVar(&genStartAt, "start-at", "", "First departure (RFC3339), defaults to now")
	f.IntVar(&genMaxLayover, "max-layover", 0, "Turnaround cap in minutes")
	f.IntVar(&genTurnaround, "turnaround", 60, "Ground time between legs in minutes")
	f.BoolVar(&genJSON, "json", false, "Print the schedule as JSON")
	generateCmd.MarkFlagRequired("catalog")
	generateCmd.MarkFlagRequired("start")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	file, err := repository.LoadCatalogFile(genCatalog)
	if err != nil {
		return err
	}
	catalog := file.MemoryCatalog()

	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	opts := []usecase.GeneratorOption{usecase.WithTurnaround(time.Duration(genTurnaround) * time.Minute)}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, usecase.WithSeed(genSeed))
	}

	scheduler := usecase.NewCareerScheduler(
		catalog,
		catalog,
		nil,
		router.NewDefaultPolicyRouter(log),
		usecase.NewScheduleGenerator(opts...),
		nil,
		log,
		usecase.PolicyScoreRanked,
	)

	schedule, err := scheduler.Preview(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if genJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(schedule)
	}

	text, err := templates.NewItineraryRenderer(catalog, log).Render(cmd.Context(), schedule)
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)
	return nil
}

func buildRequest(cmd *cobra.Command) (entity.ScheduleRequest, error) {
	req := entity.ScheduleRequest{
		StartLocation:     genStart,
		EndLocation:       genEnd,
		HomeBase:          genHomeBase,
		ReturnTo:          entity.ReturnPolicy(genReturnTo),
		DurationDays:      genDays,
		PreferredAirline:  genAirline,
		AirlineOnly:       genAirlineOnly,
		MaxLayoverMinutes: genMaxLayover,
		Policy:            genPolicy,
	}

	weighted := cmd.Flags().Changed("short") || cmd.Flags().Changed("medium") || cmd.Flags().Changed("long")
	switch {
	case genPrefer != "" && weighted:
		return req, fmt.Errorf("--prefer cannot be combined with --short/--medium/--long")
	case genPrefer != "":
		haul, err := entity.ParseHaulType(genPrefer)
		if err != nil {
			return req, err
		}
		req.HaulPreferences = entity.PreferHaul(haul)
	case weighted:
		req.HaulPreferences = entity.WeightedHaul(genShort, genMedium, genLong)
	default:
		req.HaulPreferences = entity.PreferHaul(entity.HaulAny)
	}

	if genStartAt != "" {
		startAt, err := time.Parse(time.RFC3339, genStartAt)
		if err != nil {
			return req, fmt.Errorf("invalid --start-at: %w", err)
		}
		req.StartAt = startAt
	}
	return req, nil
}
