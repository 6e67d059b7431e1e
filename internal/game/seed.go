// internal/game/seed.go
package game

import (
	"context"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/models"
	log "github.com/sirupsen/logrus"
)

// DefaultTeams is the roster created on an empty database.
var DefaultTeams = []string{"ALPHA", "NOVA", "ZENITH", "TITAN", "NEXUS"}

// DefaultQuestions is the bank loaded on an empty database, in round order.
var DefaultQuestions = []models.Question{
	{QuestionText: "Which company is the world’s largest container shipping company (2025)?", OptionA: "CMA CGM", OptionB: "MSC", OptionC: "Maersk", OptionD: "Hapag-Lloyd", CorrectOption: models.OptionB, Explanation: "MSC (Mediterranean Shipping Company)"},
	{QuestionText: "Which company operates India’s largest logistics and supply chain network for e-commerce?", OptionA: "DHL", OptionB: "Blue Dart", OptionC: "Delhivery", OptionD: "DTDC", CorrectOption: models.OptionC, Explanation: "Delhivery"},
	{QuestionText: "Which Indian company owns the largest container port in India (Mundra Port)?", OptionA: "Reliance", OptionB: "Tata Group", OptionC: "Adani Group", OptionD: "L&T", CorrectOption: models.OptionC, Explanation: "Adani Group"},
	{QuestionText: "Which organization is responsible for public health globally?", OptionA: "WHO", OptionB: "UNICEF", OptionC: "Red Cross", OptionD: "UNESCO", CorrectOption: models.OptionA, Explanation: "WHO (World Health Organization)"},
	{QuestionText: "Which logistics system keeps vaccines at correct temperature?", OptionA: "Warm Chain", OptionB: "Cold Chain", OptionC: "Supply Chain", OptionD: "Storage Chain", CorrectOption: models.OptionB, Explanation: "Cold Chain"},
	{QuestionText: "How many high-speed rail corridors were announced in Budget 2026?", OptionA: "3", OptionB: "5", OptionC: "7", OptionD: "10", CorrectOption: models.OptionC, Explanation: "7 high-speed rail corridors"},
	{QuestionText: "Which tax rate was reduced from 15% to 14% in Budget 2026?", OptionA: "GST", OptionB: "Corporate Tax", OptionC: "MAT", OptionD: "Income Tax", CorrectOption: models.OptionC, Explanation: "MAT rate reduced to 14%"},
	{QuestionText: "What major mission was launched to improve semiconductor manufacturing?", OptionA: "Digital India", OptionB: "Startup India", OptionC: "Semiconductor Mission 2.0", OptionD: "Make in India", CorrectOption: models.OptionC, Explanation: "Semiconductor Mission 2.0"},
	{QuestionText: "Which company is one of the largest employers in India (600k+)?", OptionA: "Infosys", OptionB: "TCS", OptionC: "Wipro", OptionD: "Reliance", CorrectOption: models.OptionB, Explanation: "TCS (Tata Consultancy Services)"},
	{QuestionText: "What is the process of training new employees called?", OptionA: "Recruitment", OptionB: "Selection", OptionC: "Onboarding", OptionD: "Promotion", CorrectOption: models.OptionC, Explanation: "Onboarding"},
}

// Seed fills an empty store with the default roster and question bank. Each part is skipped
// when the store already has data, so running it on every start is safe.
func Seed(ctx context.Context, store Store) (teamsCreated, questionsCreated int, err error) {
	teams, err := store.ListTeams(ctx)
	if err != nil {
		return 0, 0, wrapStoreErr("list teams", err)
	}
	if len(teams) == 0 {
		for _, name := range DefaultTeams {
			t := models.NewTeam(name)
			if err := store.CreateTeam(ctx, &t); err != nil {
				return teamsCreated, 0, wrapStoreErr("seed team", err)
			}
			teamsCreated++
		}
	}

	questions, err := store.ListQuestions(ctx)
	if err != nil {
		return teamsCreated, 0, wrapStoreErr("list questions", err)
	}
	if len(questions) == 0 {
		for i, q := range DefaultQuestions {
			q.ID = uuid.New()
			q.Seq = i + 1
			if err := store.CreateQuestion(ctx, &q); err != nil {
				return teamsCreated, questionsCreated, wrapStoreErr("seed question", err)
			}
			questionsCreated++
		}
	}

	log.WithFields(log.Fields{
		"teams":     teamsCreated,
		"questions": questionsCreated,
	}).Info("seed complete")
	return teamsCreated, questionsCreated, nil
}
