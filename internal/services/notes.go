package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dipeshtilara/NotesHub/internal/config"
	"github.com/dipeshtilara/NotesHub/internal/domain"
)

const (
	completionsEndpoint = "https://api.openai.com/v1/chat/completions"
	notesRequestTimeout = 2 * time.Minute
	notesMaxTokens      = 1000
	// maxResourceChars bounds how much extracted PDF text goes into the prompt.
	maxResourceChars = 30000
)

var notesPromptTemplate = "You are an assistant producing CBSE study notes for class %s, subject %s, chapter %q, topic %q. " +
	"Respond with strict JSON only, no markdown, matching this schema: " +
	`{"topic": string, "title": string, "learning_objectives": [string], ` +
	`"theory": [{"section_title": string, "text": string}], ` +
	`"quick_revision": [string], ` +
	`"sample_questions": [{"question": string, "answer": string}] with exactly 3 entries}.`

// NotesService generates structured study notes from extracted resource
// text via the OpenAI chat completions API.
type NotesService struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewNotesService(cfg config.Config) *NotesService {
	return &NotesService{
		apiKey:   cfg.OpenAIAPIKey,
		model:    cfg.OpenAIModelNotes,
		endpoint: completionsEndpoint,
		httpClient: &http.Client{
			Timeout: notesRequestTimeout,
		},
	}
}

// Configured reports whether an API key is present. Without one the caller
// goes straight to the fallback document.
func (s *NotesService) Configured() bool {
	return strings.TrimSpace(s.apiKey) != ""
}

// Generate asks the model for a notes document grounded on the extracted
// resource text. Any failure, including a response that is not valid notes
// JSON, is an error; callers substitute FallbackNotes.
func (s *NotesService) Generate(ctx context.Context, class, subject, chapter, topic, resourceText string) (domain.NotesDocument, error) {
	if !s.Configured() {
		return domain.NotesDocument{}, errors.New("openai api key is not configured")
	}

	prompt := fmt.Sprintf(notesPromptTemplate, class, subject, chapter, topic)
	if text := []rune(resourceText); len(text) > maxResourceChars {
		resourceText = string(text[:maxResourceChars])
	}
	prompt += "\n\nRESOURCE_TEXT:\n" + resourceText

	payload := map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  notesMaxTokens,
		"temperature": 0.0,
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return domain.NotesDocument{}, fmt.Errorf("encode notes payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, buf)
	if err != nil {
		return domain.NotesDocument{}, fmt.Errorf("create notes request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.NotesDocument{}, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return domain.NotesDocument{}, s.decodeAPIError(resp)
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return domain.NotesDocument{}, fmt.Errorf("decode completions response: %w", err)
	}
	if len(response.Choices) == 0 {
		return domain.NotesDocument{}, errors.New("no completion returned")
	}

	var doc domain.NotesDocument
	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return domain.NotesDocument{}, fmt.Errorf("completion is not valid notes JSON: %w", err)
	}

	return doc, nil
}

func (s *NotesService) decodeAPIError(resp *http.Response) error {
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}

	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("openai api error: status %d type %s message %s", resp.StatusCode, apiErr.Error.Type, apiErr.Error.Message)
	}
	return fmt.Errorf("openai api error: status %d body %s", resp.StatusCode, string(body))
}

// FallbackNotes is the static sample document used whenever generation is
// unavailable or its output cannot be parsed.
func FallbackNotes() domain.NotesDocument {
	return domain.NotesDocument{
		Title: "Perceptron",
		Topic: "Perceptron",
		LearningObjectives: []string{
			"Define a perceptron and identify its parts",
			"Explain how weights and bias shape the decision boundary",
			"Apply the perceptron learning rule to a small dataset",
		},
		Theory: []domain.TheorySection{
			{
				SectionTitle: "What is a Perceptron?",
				Text: "A perceptron is the simplest artificial neuron. It takes a set of " +
					"numeric inputs, multiplies each by a weight, adds a bias term, and " +
					"passes the sum through a step function. If the weighted sum crosses " +
					"the threshold the perceptron fires (outputs 1), otherwise it stays " +
					"silent (outputs 0). Despite its simplicity it can learn any linearly " +
					"separable classification task.",
			},
			{
				SectionTitle: "The Learning Rule",
				Text: "Training adjusts the weights after every misclassified example: each " +
					"weight moves by the learning rate times the error times the input. " +
					"Correctly classified examples leave the weights untouched. Repeated " +
					"passes over the data converge to a separating line whenever one " +
					"exists, a result known as the perceptron convergence theorem.",
			},
			{
				SectionTitle: "Limitations",
				Text: "A single perceptron cannot represent functions whose classes are not " +
					"linearly separable, the XOR function being the classic example. " +
					"Stacking perceptrons into layers removes this limitation and leads " +
					"directly to modern multi-layer neural networks.",
			},
		},
		QuickRevision: []string{
			"Perceptron output = step(weights · inputs + bias)",
			"Weights update only on misclassified examples",
			"Convergence is guaranteed for linearly separable data",
			"XOR is not solvable by a single perceptron",
		},
		SampleQuestions: []domain.SampleQuestion{
			{
				Question: "What decision function does a perceptron compute?",
				Answer:   "A step function applied to the weighted sum of inputs plus bias.",
			},
			{
				Question: "When does the perceptron learning rule change the weights?",
				Answer:   "Only when an example is misclassified.",
			},
			{
				Question: "Why can a single perceptron not learn XOR?",
				Answer:   "Because XOR's classes are not linearly separable.",
			},
		},
	}
}
