package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hmakino/quizrush/clients/triviabank"
	"github.com/hmakino/quizrush/internal/db"
	"github.com/hmakino/quizrush/internal/dbconfig"
	"github.com/hmakino/quizrush/internal/quiz"
)

// Imports question sets into the question bank. With -remote it pulls from
// the trivia bank API; otherwise it loads the bundled default set.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	remote := flag.Bool("remote", false, "fetch questions from the trivia bank API")
	source := flag.String("source", string(quiz.BookSourceBoth), "book source to import")
	amount := flag.Int("amount", 50, "questions to import per source (remote only)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	ctx := context.Background()

	database, err := db.Open(ctx, dbconfig.NewConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()
	store := quiz.NewSQLStore(database)

	var questions []quiz.Question
	if *remote {
		client := triviabank.NewClient(os.Getenv("TRIVIA_BANK_URL"), os.Getenv("TRIVIA_BANK_API_KEY"))
		questions, err = client.FetchQuestions(ctx, quiz.BookSource(*source), *amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch questions: %v\n", err)
			os.Exit(1)
		}
	} else {
		questions = quiz.DefaultQuestions()
	}

	if err := store.PutQuestions(ctx, questions); err != nil {
		fmt.Fprintf(os.Stderr, "seed questions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Questions seed: total=%d source=%s\n", len(questions), *source)
}
