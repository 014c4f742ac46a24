package triviabank

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hmakino/quizrush/clients"
	"github.com/hmakino/quizrush/internal/quiz"
)

const defaultBaseURL = "https://api.triviabank.dev"

// Client fetches question sets from the trivia bank API. The seed tool uses
// it to import larger question banks than the bundled defaults.
type Client struct {
	*clients.BaseClient
}

// NewClient builds a trivia bank client. apiKey may be empty for public
// question sets.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := &Client{
		BaseClient: clients.NewBaseClient(baseURL),
	}
	if apiKey != "" {
		client.SetHeader("Authorization", "Bearer "+apiKey)
	}
	return client
}

// rawQuestion mirrors the trivia bank question payload.
type rawQuestion struct {
	ID            string `json:"id"`
	BookSource    string `json:"bookSource"`
	Category      string `json:"category"`
	Question      string `json:"question"`
	Options       []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"options"`
	CorrectOption string `json:"correctOption"`
	Explanation   string `json:"explanation"`
}

type questionsResponse struct {
	Count     int           `json:"count"`
	Questions []rawQuestion `json:"questions"`
}

// FetchQuestions pulls up to amount questions for the given book source and
// maps them into the domain model.
func (c *Client) FetchQuestions(ctx context.Context, source quiz.BookSource, amount int) ([]quiz.Question, error) {
	if amount <= 0 {
		amount = quiz.DefaultQuestionCount
	}

	query := url.Values{}
	query.Set("bookSource", string(source))
	query.Set("amount", strconv.Itoa(amount))

	body, err := c.Get(ctx, "/v1/questions?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}

	var response questionsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	questions := make([]quiz.Question, 0, len(response.Questions))
	for _, raw := range response.Questions {
		questions = append(questions, mapQuestion(raw))
	}
	return questions, nil
}

func mapQuestion(raw rawQuestion) quiz.Question {
	options := make([]quiz.Option, 0, len(raw.Options))
	for _, o := range raw.Options {
		options = append(options, quiz.Option{ID: o.ID, Text: o.Text})
	}
	return quiz.Question{
		ID:            raw.ID,
		Source:        quiz.BookSource(raw.BookSource),
		Category:      raw.Category,
		Text:          raw.Question,
		Options:       options,
		CorrectOption: raw.CorrectOption,
		Explanation:   raw.Explanation,
	}
}
