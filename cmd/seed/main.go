package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inov8tr/placement-api/internal/config"
	"github.com/inov8tr/placement-api/internal/model"
	"github.com/inov8tr/placement-api/internal/repository"
)

// Seeds a small demo catalog: questions across all four sections and
// levels, reading passages with attached question sets, plus one parent
// survey so test assignment exercises the placement seeder.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	questionRepo := repository.NewQuestionRepo(db)
	passageRepo := repository.NewPassageRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)

	total := 0
	for level := cfg.Engine.MinLevel; level <= cfg.Engine.MaxLevel; level++ {
		for _, sublevel := range model.Sublevels {
			for _, section := range []model.Section{model.SectionGrammar, model.SectionListening, model.SectionDialog} {
				for i := 1; i <= 6; i++ {
					q := demoQuestion(section, level, sublevel, i)
					if err := questionRepo.Create(ctx, q); err != nil {
						log.Fatalf("seed question: %v", err)
					}
					total++
				}
			}

			// Reading: two passages per level/sublevel, each with a full set.
			for p := 1; p <= 2; p++ {
				passage := &model.Passage{
					ID:       primitive.NewObjectID().Hex(),
					Section:  model.SectionReading,
					Level:    level,
					Sublevel: sublevel,
					Title:    fmt.Sprintf("Passage %d-%s #%d", level, sublevel, p),
					Body:     fmt.Sprintf("Demo reading passage for level %d.%s.", level, sublevel),
					Active:   true,
				}
				if err := passageRepo.Create(ctx, passage); err != nil {
					log.Fatalf("seed passage: %v", err)
				}
				for i := 1; i <= cfg.Engine.PassageSetSize; i++ {
					q := demoQuestion(model.SectionReading, level, sublevel, i)
					q.PassageID = passage.ID
					if err := questionRepo.Create(ctx, q); err != nil {
						log.Fatalf("seed reading question: %v", err)
					}
					total++
				}
			}
		}
	}

	survey := &model.ParentSurvey{
		StudentID: "student_demo",
		Data: model.SurveyData{
			Grade:             "중2",
			Academies:         []string{},
			HighestScore:      "96",
			WeeklyReadingBook: "1",
			StrongestSubject:  "reading",
			WeakestSubject:    "listening",
			Motivation:        "Wants to improve conversation for a school exchange program.",
		},
	}
	if err := surveyRepo.Create(ctx, survey); err != nil {
		log.Fatalf("seed survey: %v", err)
	}

	log.Printf("seeded %d questions and 1 demo survey", total)
}

func demoQuestion(section model.Section, level int, sublevel string, n int) *model.Question {
	return &model.Question{
		ID:       primitive.NewObjectID().Hex(),
		Section:  section,
		Level:    level,
		Sublevel: sublevel,
		Stem:     fmt.Sprintf("[%s %d.%s] Demo question %d", section, level, sublevel, n),
		Options: []string{
			"Option A",
			"Option B",
			"Option C",
			"Option D",
		},
		CorrectIndex: n % 4,
		SkillTags:    []string{string(section)},
		Active:       true,
	}
}
