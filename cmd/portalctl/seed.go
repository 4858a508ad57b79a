package main

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/coaching/exercises"
	"github.com/2beens/coachportal/internal/coaching/programs"
	"github.com/2beens/coachportal/internal/coaching/routines"
	"github.com/2beens/coachportal/internal/coaching/sets"
	"github.com/2beens/coachportal/internal/docstore"

	"github.com/brianvoe/gofakeit/v6"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type seedCounts struct {
	Exercises int
	Sets      int
	Routines  int
	Phases    int
	Weeks     int
}

type seedResult struct {
	ExerciseIDs []string
	SetIDs      []string
	RoutineIDs  []string
	ProgramID   string
}

func seedCmd(flags *globalFlags) *cobra.Command {
	var (
		ownerID string
		seed    int64
		counts  = seedCounts{}
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the document store with demo exercises, sets, routines and a program",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dbPool, err := connect(ctx, flags)
			if err != nil {
				return err
			}
			defer dbPool.Close()

			store := docstore.NewPsqlStore(dbPool)
			if err := store.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("ensure documents schema: %w", err)
			}

			res, err := newSeeder(store, gofakeit.New(seed)).Run(ctx, ownerID, counts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"seeded %d exercises, %d sets, %d routines and program %s\n",
				len(res.ExerciseIDs), len(res.SetIDs), len(res.RoutineIDs), res.ProgramID,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner", "", "user id that owns the seeded documents")
	cmd.Flags().Int64Var(&seed, "seed", 0, "faker seed, 0 for random")
	cmd.Flags().IntVar(&counts.Exercises, "exercises", 12, "number of exercises")
	cmd.Flags().IntVar(&counts.Sets, "sets", 6, "number of sets")
	cmd.Flags().IntVar(&counts.Routines, "routines", 4, "number of routines")
	cmd.Flags().IntVar(&counts.Phases, "phases", 2, "number of program phases")
	cmd.Flags().IntVar(&counts.Weeks, "weeks", 4, "number of program weeks")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

type seeder struct {
	faker     *gofakeit.Faker
	exercises *exercises.Repo
	sets      *sets.Repo
	routines  *routines.Repo
	programs  *programs.Repo
	now       func() time.Time
}

func newSeeder(store docstore.Store, faker *gofakeit.Faker) *seeder {
	return &seeder{
		faker:     faker,
		exercises: exercises.NewRepo(store, nil),
		sets:      sets.NewRepo(store, nil),
		routines:  routines.NewRepo(store, nil),
		programs:  programs.NewRepo(store, nil),
		now:       time.Now,
	}
}

func optionValues(options []coaching.Option) []string {
	values := make([]string, 0, len(options))
	for _, o := range options {
		values = append(values, o.Value)
	}
	return values
}

func (s *seeder) name() string {
	return fmt.Sprintf("%s %s", s.faker.Verb(), s.faker.Noun())
}

// pick returns up to n distinct random ids, at least one.
func (s *seeder) pick(ids []string, n int) []string {
	n = min(max(n, 1), len(ids))
	shuffled := append([]string(nil), ids...)
	s.faker.ShuffleStrings(shuffled)
	return shuffled[:n]
}

// Run goes through the same validation the HTTP handlers use.
func (s *seeder) Run(ctx context.Context, ownerID string, counts seedCounts) (seedResult, error) {
	if ownerID == "" {
		return seedResult{}, fmt.Errorf("owner id empty")
	}
	if counts.Exercises < 1 || counts.Sets < 1 || counts.Routines < 1 || counts.Phases < 1 || counts.Weeks < 1 {
		return seedResult{}, fmt.Errorf("all counts must be positive")
	}

	var res seedResult
	bodyParts := optionValues(exercises.BodyPartOptions)
	measurements := optionValues(exercises.MeasurementOptions)
	routineTypes := optionValues(routines.TypeOptions)

	for range counts.Exercises {
		exercise, err := exercises.CreateRequest{
			Name:        s.name(),
			BodyParts:   s.pick(bodyParts, s.faker.Number(1, 3)),
			Measurement: s.faker.RandomString(measurements),
			Timed:       s.faker.Bool(),
			Weights:     s.faker.Bool(),
			Description: s.faker.Sentence(8),
		}.Validate(ownerID, s.now())
		if err != nil {
			return res, fmt.Errorf("seed exercise: %w", err)
		}
		id, err := s.exercises.Add(ctx, exercise)
		if err != nil {
			return res, fmt.Errorf("add exercise: %w", err)
		}
		res.ExerciseIDs = append(res.ExerciseIDs, id)
	}

	for range counts.Sets {
		set, err := sets.CreateRequest{
			Name:        s.name(),
			Description: s.faker.Sentence(6),
			Exercises:   s.pick(res.ExerciseIDs, s.faker.Number(2, 4)),
		}.Validate(ownerID, s.now())
		if err != nil {
			return res, fmt.Errorf("seed set: %w", err)
		}
		id, err := s.sets.Add(ctx, set)
		if err != nil {
			return res, fmt.Errorf("add set: %w", err)
		}
		res.SetIDs = append(res.SetIDs, id)
	}

	routineNames := map[string]string{}
	for range counts.Routines {
		routine, err := routines.CreateRequest{
			Name:        s.name(),
			Description: s.faker.Sentence(6),
			Type:        s.faker.RandomString(routineTypes),
			Sets:        s.pick(res.SetIDs, s.faker.Number(1, 3)),
		}.Validate(ownerID, s.now())
		if err != nil {
			return res, fmt.Errorf("seed routine: %w", err)
		}
		id, err := s.routines.Add(ctx, routine)
		if err != nil {
			return res, fmt.Errorf("add routine: %w", err)
		}
		res.RoutineIDs = append(res.RoutineIDs, id)
		routineNames[id] = routine.Name
	}

	program, err := programs.Draft{
		Name:           s.name() + " Program",
		NumberOfWeeks:  programs.FormInt(counts.Weeks),
		NumberOfPhases: programs.FormInt(counts.Phases),
		Description:    s.faker.Sentence(10),
	}.Validate()
	if err != nil {
		return res, fmt.Errorf("seed program: %w", err)
	}

	phases := programs.NewPhaseTemplates(counts.Phases)
	for i := range phases {
		phases[i].PhaseName = fmt.Sprintf("Phase %d", i+1)
		// consecutive blocks of weeks per phase
		for week := 1; week <= counts.Weeks; week++ {
			if (week-1)*counts.Phases/counts.Weeks == i {
				phases[i].ApplicableWeeks = append(phases[i].ApplicableWeeks, week)
			}
		}
		if len(phases[i].ApplicableWeeks) == 0 {
			phases[i].ApplicableWeeks = []int{min(i+1, counts.Weeks)}
		}
		for d := range phases[i].Days {
			routineID := s.faker.RandomString(res.RoutineIDs)
			phases[i].Days[d].Routine = &coaching.Option{Value: routineID}
		}
	}
	if err := programs.ValidatePhases(phases); err != nil {
		return res, fmt.Errorf("seed phases: %w", err)
	}
	phases, err = programs.ResolveRoutines(phases, routineNames)
	if err != nil {
		return res, fmt.Errorf("resolve routines: %w", err)
	}

	program.Phases = phases
	program.OwnerID = ownerID
	program.CreatedAt = s.now()
	res.ProgramID, err = s.programs.Create(ctx, program)
	if err != nil {
		return res, fmt.Errorf("create program: %w", err)
	}

	log.Infof("seeded program %s for %s", res.ProgramID, ownerID)
	return res, nil
}
