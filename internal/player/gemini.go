package player

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/math-battles/internal/engine"
	"github.com/tatianab/math-battles/internal/models"
)

//go:embed prompts/answer_problem.txt
var answerProblemPrompt string

var answerTmpl = template.Must(template.New("answer_problem").Parse(answerProblemPrompt))

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Gemini asks a Gemini model to solve each problem.
type Gemini struct {
	client *genai.Client
	model  contentGenerator
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{
		client: client,
		model:  client.GenerativeModel(model),
	}, nil
}

func (g *Gemini) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Answer(ctx context.Context, st engine.BattleState, enemy models.Enemy) (string, error) {
	prompt, err := buildPrompt(st, enemy)
	if err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return parseAnswer(string(text))
}

func buildPrompt(st engine.BattleState, enemy models.Enemy) (string, error) {
	data := struct {
		Enemy        string
		Level        int
		MaxLevel     int
		PlayerHealth int
		EnemyHealth  int
		Category     models.Category
		Question     string
	}{
		Enemy:        enemy.Name,
		Level:        st.EnemyLevel,
		MaxLevel:     models.MaxLevel,
		PlayerHealth: st.PlayerHealth,
		EnemyHealth:  st.EnemyHealth,
		Category:     st.Problem.Category,
		Question:     st.Problem.Question,
	}

	var buf bytes.Buffer
	if err := answerTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parseAnswer extracts the answer from a YAML reply, tolerating code fences.
func parseAnswer(text string) (string, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```yaml")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	var reply struct {
		Answer string `yaml:"answer"`
	}
	if err := yaml.Unmarshal([]byte(clean), &reply); err != nil {
		return "", fmt.Errorf("failed to parse answer YAML: %w\nOutput was: %s", err, clean)
	}
	if reply.Answer == "" {
		return "", fmt.Errorf("empty answer in reply: %s", clean)
	}
	return strings.TrimSpace(reply.Answer), nil
}
