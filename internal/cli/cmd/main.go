package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hmakino/quizrush/internal/cli"
	"github.com/hmakino/quizrush/internal/quiz"
)

func main() {
	source := flag.String("source", string(quiz.DefaultBookSource), "question bank: readableCode, principles or both")
	count := flag.Int("count", quiz.DefaultQuestionCount, "number of questions")
	timeLimit := flag.Int("time-limit", quiz.DefaultTimeLimitSec, "seconds per question")
	flag.Parse()

	opts := cli.Options{
		Source:        quiz.BookSource(*source),
		QuestionCount: *count,
		TimeLimitSec:  *timeLimit,
	}
	if err := cli.Run(context.Background(), os.Stdin, os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
