package main

import (
	"context"
	"database/sql"
	"log"

	"codedojo/internal/domain/model"
	"codedojo/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// seedProblems inserts the starter problems when the problems table is
// empty, so a fresh install has something to solve.
func seedProblems(ctx context.Context, problemRepo repository.ProblemRepository, db *sql.DB) error {
	count, err := problemRepo.CountProblems(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []struct {
		title       string
		description string
		cases       []model.TestCase
	}{
		{
			title:       "Hello World",
			description: "Write a program that prints \"Hello, World!\".",
			cases: []model.TestCase{
				{Input: "", ExpectedOutput: "Hello, World!\n"},
			},
		},
		{
			title:       "Sum Two Numbers",
			description: "Read two integers from input and print their sum.",
			cases: []model.TestCase{
				{Input: "2 3\n", ExpectedOutput: "5\n"},
				{Input: "10 20\n", ExpectedOutput: "30\n"},
			},
		},
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, s := range seeds {
		problem := &model.Problem{
			ID:          uuid.NewString(),
			Title:       s.title,
			Slug:        slug.Make(s.title),
			Description: s.description,
		}
		if err := problemRepo.CreateProblem(ctx, tx, problem); err != nil {
			return err
		}
		for i := range s.cases {
			s.cases[i].ID = uuid.NewString()
			s.cases[i].ProblemID = problem.ID
			s.cases[i].SortOrder = i + 1
		}
		if err := problemRepo.AddTestCasesToProblem(ctx, tx, problem.ID, s.cases); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("Seeded %d starter problems.", len(seeds))
	return nil
}
